package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

func init() {
	// GL contexts and GLFW calls are bound to the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDemo(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: aurora <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open the demo window")
	fmt.Fprintln(w, "  displays            List displays of the selected backend")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate config file")
	fmt.Fprintln(w, "  config print        Print effective config")
	fmt.Fprintln(w, "  config explain      Show a value and where it was set")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  help                Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Config: ~/.config/aurora/config.yaml")
}
