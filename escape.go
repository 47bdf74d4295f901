package typst

import (
	"io"
	"strings"
)

// reversed returns s with its runes in reverse order. Used to derive a
// closing delimiter from an opening one ("$ " closes with " $").
func reversed(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// enclose writes left, runs body, then writes right.
func enclose(w io.Writer, left, right string, body func(io.Writer) error) error {
	if _, err := io.WriteString(w, left); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, right)
	return err
}

// encloseReversed is enclose with the closing delimiter defaulted to the
// rune-reverse of the opening one.
func encloseReversed(w io.Writer, left string, body func(io.Writer) error) error {
	return enclose(w, left, reversed(left), body)
}

// codeSigil returns the "#" that switches into code syntax, or "" when the
// context is already in code mode.
func codeSigil(ctx Context) (string, error) {
	mode, err := ctx.Mode()
	if err != nil {
		return "", err
	}
	if mode == ModeCode {
		return "", nil
	}
	return "#", nil
}

// mathPad returns the opening delimiter for a math expression: nothing when
// already inside math, "$" for inline math, "$ " for a display block. The
// closing delimiter is the rune-reverse of the result.
func mathPad(ctx Context) (string, error) {
	mode, err := ctx.Mode()
	if err != nil {
		return "", err
	}
	if mode == ModeMath {
		return "", nil
	}
	inline, err := ctx.Inline()
	if err != nil {
		return "", err
	}
	if inline {
		return "$", nil
	}
	return "$ ", nil
}

// quoteEscapePattern escapes only the double quotes in a regex pattern,
// leaving the pattern's own backslash escaping untouched.
func quoteEscapePattern(pattern string) string {
	return strings.ReplaceAll(pattern, `"`, `\"`)
}

// writeQuoted writes text wrapped in double quotes. Interior quotes escape as
// `\"` in markup mode; in code and math mode the text sits one string-literal
// level deeper, so the escape itself is escaped to `\\\"`.
func writeQuoted(w io.Writer, ctx Context, text string) error {
	mode, err := ctx.Mode()
	if err != nil {
		return err
	}
	esc := `\"`
	if mode != ModeMarkup {
		esc = `\\\"`
	}
	return enclose(w, `"`, `"`, func(w io.Writer) error {
		_, err := io.WriteString(w, strings.ReplaceAll(text, `"`, esc))
		return err
	})
}
