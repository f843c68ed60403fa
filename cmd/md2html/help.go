package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html [flags] <input>...")
	fmt.Fprintln(w, "       md2html <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to standalone HTML pages with a table of")
	fmt.Fprintln(w, "contents and highlighted code.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory (searched for *.md, *.markdown),")
	fmt.Fprintln(w, "           or - to read from stdin and write to stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  template [name]  Print the page template to stdout")
	fmt.Fprintln(w, "  themes           List highlight themes")
	fmt.Fprintln(w, "  styles           List built-in stylesheets")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (- = stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --title <s>           Page title (default: first heading)")
	fmt.Fprintln(w, "      --lang <s>            Page language (default: en)")
	fmt.Fprintln(w, "      --style <name>        Stylesheet name")
	fmt.Fprintln(w, "      --template <name>     Page template name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code:")
	fmt.Fprintln(w, "      --theme <name>        Highlight theme (default: github)")
	fmt.Fprintln(w, "      --no-highlight        Leave code blocks as plain text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc-title <s>       TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>   Min heading depth (1-6)")
	fmt.Fprintln(w, "      --toc-max-depth <n>   Max heading depth (1-6)")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --unsafe              Keep raw HTML from the source")
	fmt.Fprintln(w, "      --hard-wraps          Render line breaks as <br>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inlining:")
	fmt.Fprintln(w, "      --inline <mode>       none, native, monolith")
	fmt.Fprintln(w, "      --monolith-path <p>   monolith executable")
	fmt.Fprintln(w, "      --inline-timeout <d>  Inlining timeout (e.g., 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF next to each page")
	fmt.Fprintln(w, "  -p, --page-size <s>       letter, legal, a4, a5")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches")
	fmt.Fprintln(w, "      --pdf-timeout <d>     PDF timeout (e.g., 1m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "template":
		fmt.Fprintln(env.Stdout, "Usage: md2html template [name] [--asset-path <dir>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print a page template to stdout (default: the built-in page template).")
	case "themes":
		fmt.Fprintln(env.Stdout, "Usage: md2html themes")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the highlight themes accepted by --theme.")
	case "styles":
		fmt.Fprintln(env.Stdout, "Usage: md2html styles")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the built-in stylesheets accepted by --style.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
