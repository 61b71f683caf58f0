// Package cmd implements the tapdemo CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, snapshot, config).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/tappable/cmd/tapdemo/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "tapdemo",
	Short: "tapdemo - press feedback playground",
	Long: `tapdemo mounts tappable surfaces from tapdemo.yaml and lets you press,
hover, drag and focus them in a terminal, or renders a scripted press
to a PNG snapshot.

Use "tapdemo <command> --help" for more information about a command.`,
	Usage: "tapdemo <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Global flags shared by every command.
var global struct {
	configPath string
	verbose    bool
}

// stdout is where commands print; tests replace it.
var stdout io.Writer = os.Stdout

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	global.configPath = ""
	global.verbose = false

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "tapdemo version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			global.verbose = true
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			global.configPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--config=") {
				global.configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

// loadConfig loads --config if given, else tapdemo.yaml from the working
// directory when present.
func loadConfig() (*config.Config, error) {
	if global.configPath != "" {
		return config.Load(global.configPath)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadOptional(dir)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --config FILE        Read layout from FILE (default: ./tapdemo.yaml if present)")
	fmt.Fprintln(stdout, "  --verbose            Log debug output")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  tapdemo run                       Interactive terminal demo")
	fmt.Fprintln(stdout, "  tapdemo snapshot --out press.png  Render a press to PNG")
	fmt.Fprintln(stdout, "  tapdemo config                    Validate and print the layout")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
