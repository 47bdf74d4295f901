// Command typstgen expands a Typst template file against YAML variable
// bindings and optionally hands the result to the typst compiler.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/typst"
)

type cli struct {
	Template string `arg:"" help:"Template file to expand." type:"existingfile"`

	Data   string `help:"YAML file with template variables." short:"d" type:"existingfile"`
	Out    string `help:"Write output to a file instead of stdout." short:"o" type:"path"`
	Mode   string `help:"Initial mode: markup, code, or math." default:"markup" enum:"markup,code,math"`
	Indent int    `help:"Spaces per indentation level." default:"4"`
	Block  bool   `help:"Render top-level math as display blocks instead of inline."`

	Compile  bool     `help:"Run the typst compiler on the output file (requires --out)."`
	Bin      string   `help:"Compiler executable." default:"typst"`
	FontPath []string `help:"Font directories passed to the compiler." name:"font-path" type:"existingdir"`

	Verbose bool `help:"Enable debug logging." short:"v"`
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("typstgen"),
		kong.Description("Expand a Typst template with value splices."),
	)
	kctx.FatalIfErrorf(run(context.Background(), args))
}

func run(ctx context.Context, args cli) error {
	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	source, err := os.ReadFile(args.Template)
	if err != nil {
		return err
	}
	tmpl, err := typst.Parse(string(source))
	if err != nil {
		return err
	}

	vars, err := loadVars(args.Data)
	if err != nil {
		return err
	}
	logger.Debug("template parsed", "file", args.Template, "vars", len(vars))

	mode, err := typst.ParseMode(args.Mode)
	if err != nil {
		return err
	}
	overrides := map[string]any{
		typst.KeyMode:   mode,
		typst.KeyIndent: indentUnit(args.Indent),
		typst.KeyInline: !args.Block,
	}

	var buf bytes.Buffer
	if err := tmpl.RenderTo(&buf, vars, overrides); err != nil {
		return err
	}

	if args.Out == "" {
		if args.Compile {
			return fmt.Errorf("--compile requires --out")
		}
		_, err := io.Copy(os.Stdout, &buf)
		return err
	}
	if err := atomic.WriteFile(args.Out, &buf); err != nil {
		return err
	}
	logger.Debug("output written", "file", args.Out)

	if !args.Compile {
		return nil
	}
	compiler := typst.Compiler{Path: args.Bin}
	if len(args.FontPath) > 0 {
		compiler.Env = []string{typst.FontPathEnv(args.FontPath...)}
	}
	exit, stdout, stderr, err := compiler.Run(ctx, "compile", args.Out)
	if stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}
	if err != nil {
		return fmt.Errorf("compile failed (exit %d): %w", exit, err)
	}
	logger.Debug("compiled", "file", args.Out)
	return nil
}

func loadVars(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vars map[string]any
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}

func indentUnit(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
