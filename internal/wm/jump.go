package wm

import (
	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/workspace"
)

type jumpKind int

const (
	jumpOnWorkspace jumpKind = iota
	jumpByName
	jumpByClass
	jumpByInstance
	jumpForCond
)

// JumpCriterium selects the client a jump should land on.
type JumpCriterium struct {
	kind      jumpKind
	workspace cycle.Index
	selector  workspace.ClientSelector
	method    client.MatchMethod
	pattern   string
	cond      func(*client.Client) bool
}

func JumpOnWorkspace(index cycle.Index, sel workspace.ClientSelector) JumpCriterium {
	return JumpCriterium{kind: jumpOnWorkspace, workspace: index, selector: sel}
}

func JumpByName(method client.MatchMethod, pattern string) JumpCriterium {
	return JumpCriterium{kind: jumpByName, method: method, pattern: pattern}
}

func JumpByClass(method client.MatchMethod, pattern string) JumpCriterium {
	return JumpCriterium{kind: jumpByClass, method: method, pattern: pattern}
}

func JumpByInstance(method client.MatchMethod, pattern string) JumpCriterium {
	return JumpCriterium{kind: jumpByInstance, method: method, pattern: pattern}
}

func JumpForCond(cond func(*client.Client) bool) JumpCriterium {
	return JumpCriterium{kind: jumpForCond, cond: cond}
}
