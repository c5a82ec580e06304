package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		if err := runExport(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("panelexport %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`panelexport - Export comic panels as PDF, strip, or square images

Usage:
  panelexport <command> [arguments]

Commands:
  export <manifest.json>   Run an export described by a JSON manifest
      -out <dir>           Output directory (default ".")
  serve                    Start the export HTTP service
  version                  Print the panelexport version
  help                     Show this help message

Examples:
  panelexport export story.json -out exports/
  PANELEXPORT_ADDR=:8080 panelexport serve`)
}
