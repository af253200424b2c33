// Command optchain lowers optional chain expressions in source files into
// null-safe conditional expressions.
//
// Examples:
//
//	optchain -c 'oc(user).address.city("unknown")'
//	optchain src.js
//	optchain -w src.js lib.js
//	cat src.js | optchain
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/optchain/parser"
	"github.com/deepnoodle-ai/optchain/rewrite"
)

var version = "dev"

var cli struct {
	Code    string           `short:"c" help:"Rewrite the given source text instead of reading files."`
	Marker  string           `default:"oc" help:"Name of the marker function that begins a chain."`
	Write   bool             `short:"w" help:"Write results back to the source files instead of printing them."`
	Verbose bool             `short:"v" help:"Enable verbose logging."`
	Version kong.VersionFlag `help:"Print version information and quit."`

	Files []string `arg:"" optional:"" type:"existingfile" help:"Source files to rewrite."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("optchain"),
		kong.Description("Lower optional chain expressions into null-safe conditionals."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	logger := newLogger(cli.Verbose)
	if err := run(context.Background(), logger); err != nil {
		printError(err)
		kctx.Exit(1)
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func run(ctx context.Context, logger zerolog.Logger) error {
	rw := rewrite.New(rewrite.WithMarker(cli.Marker))

	if cli.Code != "" {
		out, err := process(ctx, rw, cli.Code, "", logger)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if len(cli.Files) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		out, err := process(ctx, rw, string(src), "", logger)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	for _, path := range cli.Files {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		out, err := process(ctx, rw, string(src), path, logger)
		if err != nil {
			return err
		}
		if cli.Write {
			if err := os.WriteFile(path, []byte(out+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logger.Info().Str("file", path).Msg("rewrote file")
		} else {
			fmt.Println(out)
		}
	}
	return nil
}

func process(ctx context.Context, rw *rewrite.Rewriter, src, filename string, logger zerolog.Logger) (string, error) {
	var opts []parser.Option
	if filename != "" {
		opts = append(opts, parser.WithFilename(filename))
	}
	prog, err := parser.Parse(ctx, src, opts...)
	if err != nil {
		return "", err
	}
	chains := rewrite.Count(prog, rw.Marker())
	out := rw.Rewrite(prog)
	logger.Debug().
		Str("file", filename).
		Int("chains", chains).
		Msg("lowered optional chains")
	return out.String(), nil
}

func printError(err error) {
	var errs *parser.Errors
	if errors.As(err, &errs) {
		for _, e := range errs.Errors() {
			printParserError(e)
		}
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: %s\n", err)
}

func printParserError(e *parser.ParserError) {
	start := e.StartPosition()
	file := e.File()
	if file == "" {
		file = "<input>"
	}
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%s:%d:%d: %s\n",
		file, start.LineNumber(), start.ColumnNumber(), e.Error())

	line := e.SourceCode()
	if line == "" {
		return
	}
	width := e.EndPosition().Column - start.Column + 1
	if width < 1 || start.Column+width > len(line) {
		width = 1
	}
	fmt.Fprintf(os.Stderr, "    %s\n", line)
	fmt.Fprintf(os.Stderr, "    %s%s\n",
		strings.Repeat(" ", start.Column),
		color.RedString(strings.Repeat("^", width)))
}
