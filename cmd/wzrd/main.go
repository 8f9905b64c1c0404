package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/deurzen/wzrd/internal/config"
	"github.com/deurzen/wzrd/internal/ipc"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		os.Exit(runWM(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWM(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "workspaces":
		os.Exit(runWorkspaces(os.Args[2:]))
	case "workspace":
		os.Exit(runWorkspace(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "jump":
		os.Exit(runJump(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "version", "-v", "--version":
		fmt.Println("wzrd", version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wzrd [<command>] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Without a command, wzrd starts the window manager.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the window manager (foreground)")
	fmt.Fprintln(w, "  status              Show window manager status")
	fmt.Fprintln(w, "  workspaces          List workspaces")
	fmt.Fprintln(w, "  workspace <name>    Activate a workspace by name or number")
	fmt.Fprintln(w, "  layout <name>       Set the layout on the active workspace")
	fmt.Fprintln(w, "  jump <pattern>      Focus the first matching client")
	fmt.Fprintln(w, "  reload              Reload the configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  version             Print version")
	fmt.Fprintln(w, "  help                Show this help")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wzrd status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show window manager status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("active_workspace: %s (%d)\n", status.ActiveWorkspace, status.WorkspaceIndex+1)
	fmt.Printf("active_layout:    %s\n", status.ActiveLayout)
	fmt.Printf("client_count:     %d\n", status.ClientCount)
	fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
	return 0
}

func runWorkspaces(args []string) int {
	fs := flag.NewFlagSet("workspaces", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wzrd workspaces")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List workspaces with their layout and client count.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "workspaces takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetWorkspaces()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, ws := range data.Workspaces {
		marker := " "
		if ws.Active {
			marker = "*"
		}
		fmt.Printf("%s %2d  %-12s %-10s %d\n", marker, ws.Index+1, ws.Name, ws.Layout, ws.ClientCount)
	}
	return 0
}

func runWorkspace(args []string) int {
	fs := flag.NewFlagSet("workspace", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wzrd workspace <name|number>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Activate a workspace by name or 1-based number.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "workspace takes exactly one argument")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.ActivateWorkspace(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wzrd layout <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set the layout on the active workspace.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "layout takes exactly one argument")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.SetLayout(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runJump(args []string) int {
	fs := flag.NewFlagSet("jump", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	property := fs.String("by", "class", "property to match: name, class or instance")
	contains := fs.Bool("contains", false, "substring match instead of exact match")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wzrd jump [-by name|class|instance] [-contains] <pattern>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Focus the first client whose property matches the pattern.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "jump takes exactly one pattern")
		fs.Usage()
		return 2
	}

	match := "equals"
	if *contains {
		match = "contains"
	}

	client := ipc.NewClient()
	if err := client.JumpClient(*property, match, fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wzrd reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Reload the configuration of the running window manager.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("configuration reloaded")
	return 0
}

func runConfig(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wzrd config <validate|print> [-config <path>]")
		return 2
	}

	sub := args[0]
	fs := flag.NewFlagSet("config "+sub, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	path := *configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return 1
	}

	switch sub {
	case "validate":
		fmt.Printf("%s: OK\n", path)
		return 0
	case "print":
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		fmt.Printf("focus_follows_mouse: %v\n", cfg.FocusFollowsMouse)
		fmt.Printf("default_layout: %s\n", cfg.DefaultLayout)
		fmt.Printf("gap_size: %d\n", cfg.GapSize)
		fmt.Printf("workspaces: %v\n", cfg.Workspaces)
		fmt.Printf("key_bindings: %d\n", len(cfg.KeyBindings))
		fmt.Printf("mouse_bindings: %d\n", len(cfg.MouseBindings))
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", sub)
		return 2
	}
}
