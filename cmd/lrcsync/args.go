package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"lrcsync/internal/config"
)

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > config file > defaults
func parseArgs() (config.Config, string, error) {
	args := os.Args[1:]

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, "", initConfigFile()
		}
	}

	var configPath string

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--config requires a path argument")
			}
			configPath = args[i+1]
			break
		}
	}

	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--lrclib-url", "-u":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--lrclib-url requires a URL argument")
			}
			i++
			cfg.LrclibURL = args[i]

		case "--hidden", "-a":
			cfg.Hidden = true

		case "--force", "-f":
			cfg.Force = true

		case "--ignore", "-i":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--ignore requires a comma-separated field list")
			}
			i++
			for _, tok := range strings.Split(args[i], ",") {
				if tok = strings.TrimSpace(tok); tok != "" {
					cfg.Ignore = append(cfg.Ignore, tok)
				}
			}

		case "--search", "-s":
			cfg.Search = true

		case "--tolerance", "-t":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--tolerance requires a number of seconds")
			}
			i++
			tolerance, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return config.Config{}, "", fmt.Errorf("invalid tolerance value: %s", args[i])
			}
			cfg.Tolerance = tolerance

		case "--verbose", "-v":
			cfg.Verbose = true

		case "--dry-run", "-n":
			cfg.DryRun = true

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return config.Config{}, "", fmt.Errorf("unknown flag: %s", arg)
			}
			cfg.Root = arg
		}
	}

	return cfg, configPath, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  lrclib_url: base URL of an LRCLIB-compatible service")
	fmt.Println("  search: true/false (fuzzy search fallback after an exact miss)")
	fmt.Println("  tolerance: seconds of duration mismatch allowed for search results")
	fmt.Println("  ignore: fields not sent to the service (duration, album, artist)")
	fmt.Println("  hidden: true/false (scan hidden files and directories)")
	fmt.Println("  force: true/false (overwrite existing .lrc files)")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("lrcsync - Pull synchronized .lrc lyrics files for your music collection")
	fmt.Println()
	fmt.Println("Usage: lrcsync [options] [root]")
	fmt.Println()
	fmt.Println("The root directory defaults to the current directory.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -u, --lrclib-url <url>     LRCLIB base URL (default: https://lrclib.net)")
	fmt.Println("  -a, --hidden               Include hidden files and directories")
	fmt.Println("  -f, --force                Overwrite existing .lrc files")
	fmt.Println("  -i, --ignore <fields>      Comma-separated fields to leave out of lookups:")
	fmt.Println("                             duration, album, artist (artist only affects search)")
	fmt.Println("  -s, --search               Fall back to fuzzy search when the exact lookup misses")
	fmt.Println("  -t, --tolerance <secs>     Max duration mismatch for search results (default: 5.0;")
	fmt.Println("                             0 or less disables the filter)")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -n, --dry-run              Resolve lyrics but write nothing")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./lrcsync.yaml")
	fmt.Println("  ~/.config/lrcsync/config.yaml")
	fmt.Println("  ~/.lrcsync.yaml")
	fmt.Println()
	fmt.Println("Ignore file:")
	fmt.Println("  Directories may contain a .lrcsyncignore file with one glob pattern")
	fmt.Println("  per line; matching entries in that subtree are skipped.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Fetch lyrics for the current directory")
	fmt.Println("  lrcsync")
	fmt.Println()
	fmt.Println("  # Scan a library with search fallback and a 3 second tolerance")
	fmt.Println("  lrcsync -s -t 3 ~/Music")
	fmt.Println()
	fmt.Println("  # Re-fetch everything, ignoring album tags during lookup")
	fmt.Println("  lrcsync -f -i album ~/Music")
	fmt.Println()
	fmt.Println("  # Preview without writing files")
	fmt.Println("  lrcsync -n -v ~/Music")
}
