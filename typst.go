package typst

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"regexp"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedKind = errors.New("unsupported kind")
	ErrContextType     = errors.New("invalid context setting")
	ErrInvalidTemplate = errors.New("invalid template")
)

// Mode is one of the three mutually exclusive lexical contexts of Typst
// source: markup (prose), code (evaluated expressions behind a "#" sigil),
// and math (formulas between "$" sigils).
type Mode int

const (
	ModeMarkup Mode = iota
	ModeCode
	ModeMath
)

var modeNames = map[Mode]string{
	ModeMarkup: "markup",
	ModeCode:   "code",
	ModeMath:   "math",
}

// String returns the mode name.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses a mode name: "markup", "code", or "math".
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a mode", ErrContextType, s)
}

// MarshalText implements [encoding.TextMarshaler].
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler], so a Mode can be used
// directly as a CLI flag or config field.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Formatter is the extension contract: a value that knows how to render
// itself as Typst source. Formatter is checked before built-in dispatch, so
// the most specific kind wins. [Markup], [Raw], [Char], and [Range] satisfy
// it themselves.
type Formatter interface {
	WriteTypst(w io.Writer, ctx Context) error
}

// Defaulted lets a kind declare default settings distinct from the global
// defaults. The settings are layered above [DefaultContext] and beneath the
// caller's overrides when the value enters formatting at the top level.
type Defaulted interface {
	DefaultSettings() map[string]any
}

// Write formats v and writes the Typst source to w. overrides (which may be
// nil) is layered over the default context and any [Defaulted] settings the
// value declares. If a rule fails partway, earlier output has already
// reached w; use [Format] for all-or-nothing results.
func Write(w io.Writer, v any, overrides map[string]any) error {
	ctx := DefaultContext()
	if d, ok := v.(Defaulted); ok {
		ctx = ctx.Derive(d.DefaultSettings())
	}
	if len(overrides) > 0 {
		ctx = ctx.Derive(overrides)
	}
	return write(w, v, ctx)
}

// Format formats v and returns the Typst source. A failed call returns ""
// and the error; no partial output is observable.
func Format(v any, overrides map[string]any) (Markup, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, overrides); err != nil {
		return "", err
	}
	return Markup(buf.String()), nil
}

// write dispatches on the kind of v. Every rule is deterministic in
// (v, ctx): no global state, no randomness.
func write(w io.Writer, v any, ctx Context) error {
	if f, ok := v.(Formatter); ok {
		return f.WriteTypst(w, ctx)
	}
	switch x := v.(type) {
	case nil:
		return writeNone(w, ctx)
	case bool:
		return writeBool(w, ctx, x)
	case int:
		return writeInt(w, int64(x))
	case int8:
		return writeInt(w, int64(x))
	case int16:
		return writeInt(w, int64(x))
	case int32:
		// rune is int32; bare runes format as integers. Wrap in [Char]
		// for character output.
		return writeInt(w, int64(x))
	case int64:
		return writeInt(w, x)
	case uint:
		return writeUint(w, uint64(x))
	case uint8:
		return writeUint(w, uint64(x))
	case uint16:
		return writeUint(w, uint64(x))
	case uint32:
		return writeUint(w, uint64(x))
	case uint64:
		return writeUint(w, x)
	case float32:
		return writeFloat(w, float64(x), 32)
	case float64:
		return writeFloat(w, x, 64)
	case complex64:
		return writeComplex(w, ctx, complex128(x))
	case complex128:
		return writeComplex(w, ctx, x)
	case *big.Int:
		return writeBigInt(w, ctx, x)
	case *big.Rat:
		return writeRat(w, ctx, x)
	case string:
		return writeQuoted(w, ctx, x)
	case *regexp.Regexp:
		return writeRegexp(w, ctx, x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if isMatrix(rv) {
			return writeMat(w, ctx, rv)
		}
		return writeVec(w, ctx, rv)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedKind, v)
	}
}
