package typst

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Splice expressions see the three mode names as constants unless the caller
// shadows them, so a template can write \(x, mode: code).
var modeEnv = map[string]any{
	"markup": ModeMarkup,
	"code":   ModeCode,
	"math":   ModeMath,
}

// Template is literal Typst text containing zero or more splices. A splice
// is introduced by an unescaped `\(` marker and runs to the matching closing
// parenthesis; its body is an expression, optionally followed by trailing
// `name: value` settings that override the formatting context for that
// splice only:
//
//	t := typst.MustParse(`x is \(x) and half of it is \(x / 2, mode: code)`)
//	out, err := t.Render(map[string]any{"x": 2})
//
// Expressions use expr-lang syntax and are compiled when the template is
// parsed; evaluation happens per [Template.Render] call against the caller's
// variable map. All syntax errors, including an unterminated splice, are
// reported by [Parse] before any output exists.
//
// A marker is escaped when preceded by an odd number of backslashes: a run
// of n backslashes before `\(` emits n/2 literal backslashes, and the marker
// is active exactly when n is even. An escaped marker re-emits the two
// marker characters as literal text. Backslashes anywhere else pass through
// verbatim.
type Template struct {
	source string
	parts  []part
}

// part is one span of a parsed template: literal text, or a splice.
type part struct {
	literal string
	splice  *splice
}

type splice struct {
	source   string // expression text, for error messages
	program  *vm.Program
	settings []spliceSetting
}

type spliceSetting struct {
	key     string
	source  string
	program *vm.Program
}

// Parse parses a template. It returns [ErrInvalidTemplate] for an
// unterminated splice, a malformed trailing setting, or an expression the
// expr grammar rejects.
func Parse(source string) (*Template, error) {
	t := &Template{source: source}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{literal: lit.String()})
			lit.Reset()
		}
	}
	i := 0
	for i < len(source) {
		if source[i] != '\\' {
			lit.WriteByte(source[i])
			i++
			continue
		}
		j := i
		for j < len(source) && source[j] == '\\' {
			j++
		}
		if j >= len(source) || source[j] != '(' {
			// A backslash run with no marker after it is plain text.
			lit.WriteString(source[i:j])
			i = j
			continue
		}
		// The run's final backslash plus '(' form the marker; the
		// backslashes before it are the escape run.
		run := j - i - 1
		lit.WriteString(strings.Repeat(`\`, run/2))
		if run%2 == 1 {
			// Escaped marker: re-emit the marker text itself.
			lit.WriteString(`\(`)
			i = j + 1
			continue
		}
		end, err := matchParen(source, j)
		if err != nil {
			return nil, err
		}
		sp, err := parseSplice(source[j+1 : end])
		if err != nil {
			return nil, err
		}
		flush()
		t.parts = append(t.parts, part{splice: sp})
		i = end + 1
	}
	flush()
	return t, nil
}

// MustParse is [Parse] that panics on error, for templates known at compile
// time.
func MustParse(source string) *Template {
	t, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return t
}

// Source returns the original template text.
func (t *Template) Source() string { return t.source }

// Render expands the template against vars and returns the result. Literal
// spans and formatted splice results are concatenated in source order.
func (t *Template) Render(vars map[string]any) (Markup, error) {
	var buf bytes.Buffer
	if err := t.RenderTo(&buf, vars, nil); err != nil {
		return "", err
	}
	return Markup(buf.String()), nil
}

// RenderTo expands the template into w. overrides (which may be nil) is the
// base settings layer for every splice; a splice's own trailing settings win
// over it. If a splice fails partway, earlier spans have already reached w.
func (t *Template) RenderTo(w io.Writer, vars map[string]any, overrides map[string]any) error {
	env := make(map[string]any, len(modeEnv)+len(vars))
	maps.Copy(env, modeEnv)
	maps.Copy(env, vars)
	for _, p := range t.parts {
		if p.splice == nil {
			if _, err := io.WriteString(w, p.literal); err != nil {
				return err
			}
			continue
		}
		out, err := vm.Run(p.splice.program, env)
		if err != nil {
			return fmt.Errorf("splice %q: %w", p.splice.source, err)
		}
		ov := make(map[string]any, len(overrides)+len(p.splice.settings))
		maps.Copy(ov, overrides)
		for _, s := range p.splice.settings {
			v, err := vm.Run(s.program, env)
			if err != nil {
				return fmt.Errorf("splice setting %q: %w", s.source, err)
			}
			ov[s.key] = v
		}
		if err := Write(w, out, ov); err != nil {
			return err
		}
	}
	return nil
}

// matchParen returns the index of the ')' matching the '(' at open. The scan
// is balanced and string-literal aware, since the splice body may itself
// contain parentheses and quoted text.
func matchParen(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		case '"', '\'', '`':
			i = skipString(s, i)
		}
	}
	return 0, fmt.Errorf("%w: unterminated splice at offset %d", ErrInvalidTemplate, open-1)
}

// skipString returns the index of the closing quote for the string literal
// opening at i, or the end of s when unclosed. Backslash escapes are honored
// inside single- and double-quoted strings; backticks are raw.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if quote != '`' {
				j++
			}
		case quote:
			return j
		}
	}
	return len(s)
}

// parseSplice parses a splice body: an expression, then zero or more
// trailing `name: value` settings separated by top-level commas.
func parseSplice(body string) (*splice, error) {
	segments := splitTop(body)
	exprSrc := strings.TrimSpace(segments[0])
	if exprSrc == "" {
		return nil, fmt.Errorf("%w: empty splice expression", ErrInvalidTemplate)
	}
	program, err := expr.Compile(exprSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: splice %q: %v", ErrInvalidTemplate, exprSrc, err)
	}
	sp := &splice{source: exprSrc, program: program}
	for _, seg := range segments[1:] {
		key, valueSrc, ok := cutSetting(seg)
		if !ok {
			return nil, fmt.Errorf("%w: splice argument %q is not a name: value setting", ErrInvalidTemplate, strings.TrimSpace(seg))
		}
		vp, err := expr.Compile(valueSrc)
		if err != nil {
			return nil, fmt.Errorf("%w: setting %q: %v", ErrInvalidTemplate, strings.TrimSpace(seg), err)
		}
		sp.settings = append(sp.settings, spliceSetting{key: key, source: valueSrc, program: vp})
	}
	return sp, nil
}

// splitTop splits s on commas at the top level, outside any brackets or
// string literals. The result always has at least one segment.
func splitTop(s string) []string {
	var segments []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '"', '\'', '`':
			i = skipString(s, i)
		case ',':
			if depth == 0 {
				segments = append(segments, s[start:i])
				start = i + 1
			}
		}
	}
	return append(segments, s[start:])
}

// cutSetting splits a "name: value" segment. The name must be an identifier
// (hyphens allowed, matching context keys like "row-gap") directly followed
// by a colon; anything else is not a setting.
func cutSetting(seg string) (key, value string, ok bool) {
	s := strings.TrimSpace(seg)
	end := 0
	for end < len(s) {
		c := s[end]
		if c == '_' || c == '-' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(end > 0 && c >= '0' && c <= '9') {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return "", "", false
	}
	rest := strings.TrimSpace(s[end:])
	if !strings.HasPrefix(rest, ":") {
		return "", "", false
	}
	value = strings.TrimSpace(rest[1:])
	if value == "" {
		return "", "", false
	}
	return s[:end], value, true
}
