package typst

import (
	"io"
	"math/big"
	"regexp"
	"strconv"
)

// Markup is already-serialized Typst source. It is the result type of
// [Format] and the identity case of formatting: a Markup value is emitted
// verbatim, so previously produced output can be embedded without being
// processed twice. Concatenation of two Markup values is itself valid
// Markup.
type Markup string

// WriteTypst implements [Formatter] as a verbatim pass-through.
func (m Markup) WriteTypst(w io.Writer, _ Context) error {
	_, err := io.WriteString(w, string(m))
	return err
}

// Raw is pre-rendered or intentionally unescaped text, emitted verbatim in
// every mode. It is the escape hatch for content the formatter must not
// touch.
type Raw string

// WriteTypst implements [Formatter] as a verbatim pass-through.
func (r Raw) WriteTypst(w io.Writer, _ Context) error {
	_, err := io.WriteString(w, string(r))
	return err
}

// Char is a single character. Go's rune is an alias of int32 and therefore
// formats as an integer; wrap a rune in Char to format it as a character:
// quote-enclosed in code mode, bare otherwise.
type Char rune

// WriteTypst implements [Formatter].
func (c Char) WriteTypst(w io.Writer, ctx Context) error {
	mode, err := ctx.Mode()
	if err != nil {
		return err
	}
	if mode == ModeCode {
		return writeQuoted(w, ctx, string(rune(c)))
	}
	_, err = io.WriteString(w, string(rune(c)))
	return err
}

// Range is an inclusive integer range with an optional step. A Step of zero
// means one. Typst's range() primitive is half-open, so Last is emitted as
// Last+1.
type Range struct {
	First, Last int
	Step        int
}

// WriteTypst implements [Formatter]. The output is code syntax, so a code
// sigil is emitted first unless the context is already in code mode.
func (r Range) WriteTypst(w io.Writer, ctx Context) error {
	sigil, err := codeSigil(ctx)
	if err != nil {
		return err
	}
	step := r.Step
	if step == 0 {
		step = 1
	}
	if _, err := io.WriteString(w, sigil); err != nil {
		return err
	}
	return enclose(w, "range(", ")", func(w io.Writer) error {
		_, err := io.WriteString(w, strconv.Itoa(r.First)+", "+strconv.Itoa(r.Last+1)+", step: "+strconv.Itoa(step))
		return err
	})
}

// writeNone renders the absent value: nothing in markup mode, an empty
// string literal in code and math mode.
func writeNone(w io.Writer, ctx Context) error {
	mode, err := ctx.Mode()
	if err != nil {
		return err
	}
	if mode == ModeMarkup {
		return nil
	}
	_, err = io.WriteString(w, `""`)
	return err
}

func writeBool(w io.Writer, ctx Context, b bool) error {
	mode, err := ctx.Mode()
	if err != nil {
		return err
	}
	s := strconv.FormatBool(b)
	switch mode {
	case ModeMath:
		return writeQuoted(w, ctx, s)
	case ModeMarkup:
		_, err := io.WriteString(w, "#"+s)
		return err
	default:
		_, err := io.WriteString(w, s)
		return err
	}
}

func writeInt(w io.Writer, n int64) error {
	_, err := io.WriteString(w, strconv.FormatInt(n, 10))
	return err
}

func writeUint(w io.Writer, n uint64) error {
	_, err := io.WriteString(w, strconv.FormatUint(n, 10))
	return err
}

func writeFloat(w io.Writer, f float64, bits int) error {
	_, err := io.WriteString(w, strconv.FormatFloat(f, 'g', -1, bits))
	return err
}

func writeBigInt(w io.Writer, ctx Context, n *big.Int) error {
	if n == nil {
		return writeNone(w, ctx)
	}
	_, err := io.WriteString(w, n.String())
	return err
}

// writeRat renders an exact rational as a division expression. In code and
// math mode the expression is parenthesized so the output is unambiguous in
// any surrounding expression; in markup mode it is wrapped in math sigils
// instead.
func writeRat(w io.Writer, ctx Context, x *big.Rat) error {
	if x == nil {
		return writeNone(w, ctx)
	}
	mode, err := ctx.Mode()
	if err != nil {
		return err
	}
	body := func(sub Context) func(io.Writer) error {
		return func(w io.Writer) error {
			if err := write(w, x.Num(), sub); err != nil {
				return err
			}
			if _, err := io.WriteString(w, " / "); err != nil {
				return err
			}
			return write(w, x.Denom(), sub)
		}
	}
	if mode == ModeMarkup {
		pad, err := mathPad(ctx)
		if err != nil {
			return err
		}
		sub := ctx.Derive(map[string]any{KeyMode: ModeMath})
		return encloseReversed(w, pad, body(sub))
	}
	sub := ctx.Derive(map[string]any{KeyMode: mode})
	return enclose(w, "(", ")", body(sub))
}

// writeComplex renders a complex number between math sigils. Go's natural
// representation already uses the "i" suffix Typst math expects.
func writeComplex(w io.Writer, ctx Context, z complex128) error {
	pad, err := mathPad(ctx)
	if err != nil {
		return err
	}
	return encloseReversed(w, pad, func(w io.Writer) error {
		_, err := io.WriteString(w, strconv.FormatComplex(z, 'g', -1, 128))
		return err
	})
}

// writeRegexp renders a compiled pattern as a regex("...") constructor call.
// The pattern's own escaping passes through unchanged; only the enclosing
// quotes are escaped.
func writeRegexp(w io.Writer, ctx Context, re *regexp.Regexp) error {
	if re == nil {
		return writeNone(w, ctx)
	}
	sigil, err := codeSigil(ctx)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, sigil); err != nil {
		return err
	}
	return enclose(w, `regex("`, `")`, func(w io.Writer) error {
		_, err := io.WriteString(w, quoteEscapePattern(re.String()))
		return err
	})
}
