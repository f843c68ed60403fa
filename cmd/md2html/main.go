package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/highlight"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command line and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[1] {
	case "help", "-h", "--help":
		runHelp(args[2:], env)
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
		return ExitSuccess
	case "template":
		return exitWith(runTemplate(args[2:], env), env)
	case "themes":
		for _, name := range highlight.Themes() {
			fmt.Fprintln(env.Stdout, name)
		}
		return ExitSuccess
	case "styles":
		for _, name := range assets.NewEmbeddedLoader().StyleNames() {
			fmt.Fprintln(env.Stdout, name)
		}
		return ExitSuccess
	}

	flags, positional, err := parseConvertFlags(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return exitWith(runConvert(ctx, positional, flags, env), env)
}

// exitWith prints err with its hints and maps it to an exit code.
func exitWith(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %s\n", formatError(err))
	return exitCodeFor(err)
}

// runTemplate prints a page template: the built-in one, or the named one
// from --asset-path.
func runTemplate(args []string, env *Environment) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	assetPath := fs.String("asset-path", "", "custom asset directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	name := assets.DefaultTemplateName
	if fs.NArg() > 0 {
		name = fs.Arg(0)
	}

	resolver, err := assets.NewAssetResolver(*assetPath)
	if err != nil {
		return err
	}
	source, err := resolver.LoadTemplate(name)
	if err != nil {
		return err
	}
	fmt.Fprint(env.Stdout, source)
	return nil
}
