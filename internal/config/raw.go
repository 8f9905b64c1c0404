package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargin struct {
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
}

type RawConfig struct {
	Include           IncludeList       `yaml:"include"`
	LogLevel          *string           `yaml:"log_level"`
	FocusFollowsMouse *bool             `yaml:"focus_follows_mouse"`
	Workspaces        []string          `yaml:"workspaces"`
	DefaultLayout     *string           `yaml:"default_layout"`
	GapSize           *int              `yaml:"gap_size"`
	Margin            *RawMargin        `yaml:"margin"`
	KeyBindings       map[string]string `yaml:"key_bindings"`
	MouseBindings     map[string]string `yaml:"mouse_bindings"`
	IgnoredClasses    []string          `yaml:"ignored_classes"`
	IgnoredInstances  []string          `yaml:"ignored_instances"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.FocusFollowsMouse != nil {
		out.FocusFollowsMouse = overlay.FocusFollowsMouse
	}
	if overlay.Workspaces != nil {
		out.Workspaces = overlay.Workspaces
	}
	if overlay.DefaultLayout != nil {
		out.DefaultLayout = overlay.DefaultLayout
	}
	if overlay.GapSize != nil {
		out.GapSize = overlay.GapSize
	}
	if overlay.Margin != nil {
		if out.Margin == nil {
			out.Margin = &RawMargin{}
		}
		merged := mergeRawMargin(*out.Margin, *overlay.Margin)
		out.Margin = &merged
	}
	if overlay.KeyBindings != nil {
		if out.KeyBindings == nil {
			out.KeyBindings = make(map[string]string, len(overlay.KeyBindings))
		}
		for chord, action := range overlay.KeyBindings {
			out.KeyBindings[chord] = action
		}
	}
	if overlay.MouseBindings != nil {
		if out.MouseBindings == nil {
			out.MouseBindings = make(map[string]string, len(overlay.MouseBindings))
		}
		for chord, action := range overlay.MouseBindings {
			out.MouseBindings[chord] = action
		}
	}
	if overlay.IgnoredClasses != nil {
		out.IgnoredClasses = overlay.IgnoredClasses
	}
	if overlay.IgnoredInstances != nil {
		out.IgnoredInstances = overlay.IgnoredInstances
	}

	return out
}

func mergeRawMargin(base RawMargin, overlay RawMargin) RawMargin {
	out := base
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	if overlay.Top != nil {
		out.Top = overlay.Top
	}
	if overlay.Bottom != nil {
		out.Bottom = overlay.Bottom
	}
	return out
}
