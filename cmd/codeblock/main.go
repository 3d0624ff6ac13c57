// Command codeblock shows the code blocks of a markdown or source file with
// syntax highlighting in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/ionut-t/codeblock/cmd/codeblock/commands"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "view":
		err = commands.ViewCommand(args)
	case "watch":
		err = commands.WatchCommand(args)
	case "blocks":
		err = commands.BlocksCommand(args)
	case "version":
		fmt.Printf("codeblock version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("codeblock - syntax highlighted code blocks in the terminal")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  codeblock view [-config PATH] FILE    Show the code blocks of FILE")
	fmt.Println("  codeblock watch [-config PATH] FILE   Show FILE and reload it on change")
	fmt.Println("  codeblock blocks [-config PATH] FILE  List the code blocks of FILE")
	fmt.Println("  codeblock version                     Show version")
	fmt.Println("  codeblock help                        Show this help")
	fmt.Println()
	fmt.Println("Markdown files (.md, .markdown) are split into prose and code blocks;")
	fmt.Println("any other file is shown as a single block named after its extension.")
	fmt.Println()
	fmt.Println("Keys:")
	fmt.Println("  tab / shift+tab   focus next / previous block")
	fmt.Println("  c, y              copy the focused block")
	fmt.Println("  w                 toggle line wrapping")
	fmt.Println("  ←/h →/l           scroll the focused block horizontally")
	fmt.Println("  ↑/k ↓/j pgup pgdn scroll the document")
	fmt.Println("  q, ctrl+c         quit")
	fmt.Println()
	fmt.Println("Configuration is read from ~/.config/codeblock/config.yaml when present.")
}
