package typst

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Recognized layout parameters, in emission order. Values are read from the
// context and emitted by writeParameters only when present and non-empty.
var (
	vecParams = []string{KeyDelim, KeyGap}
	matParams = []string{KeyDelim, KeyAugment, KeyGap, KeyRowGap, KeyColumnGap}
)

// isMatrix reports whether rv is a two-dimensional value: a non-empty
// slice/array whose elements are all themselves slices or arrays.
func isMatrix(rv reflect.Value) bool {
	if rv.Len() == 0 {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i)
		for el.Kind() == reflect.Interface {
			el = el.Elem()
		}
		if k := el.Kind(); k != reflect.Slice && k != reflect.Array {
			return false
		}
	}
	return true
}

// writeParameters emits a function-call head: the name, an opening
// parenthesis, then "key: value, " for each recognized key whose context
// value is a non-empty string, then a newline. Absent and empty parameters
// are skipped silently; a present non-string value is a context-type error.
func writeParameters(w io.Writer, ctx Context, name string, keys []string) error {
	if _, err := io.WriteString(w, name+"("); err != nil {
		return err
	}
	for _, key := range keys {
		s, err := ctx.stringParam(key)
		if err != nil {
			return err
		}
		if s == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s, ", key, s); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// layout carries the pieces of a container rendering that depend on the
// incoming context: the math delimiters, the indentation blocks, and the
// derived context for the elements.
type layout struct {
	pad  string  // opening math delimiter, "" when already in math
	head string  // indentation at the element depth
	tail string  // newline + indentation at the container depth + ")"
	sub  Context // element context: math mode, depth+1
}

// containerLayout derives the layout for a container at the current context.
// Only the outermost container switches into math mode; nested containers
// inherit math and emit no extra sigils. Depth increases by exactly one per
// nesting level.
func containerLayout(ctx Context) (layout, error) {
	pad, err := mathPad(ctx)
	if err != nil {
		return layout{}, err
	}
	indent, err := ctx.Indent()
	if err != nil {
		return layout{}, err
	}
	depth, err := ctx.Depth()
	if err != nil {
		return layout{}, err
	}
	return layout{
		pad:  pad,
		head: strings.Repeat(indent, depth+1),
		tail: "\n" + strings.Repeat(indent, depth) + ")",
		sub: ctx.Derive(map[string]any{
			KeyMode:  ModeMath,
			KeyDepth: depth + 1,
		}),
	}, nil
}

// writeVec renders a one-dimensional sequence as a vec(...) call inside math
// delimiters, its elements joined by ", " on one indented line.
func writeVec(w io.Writer, ctx Context, rv reflect.Value) error {
	lay, err := containerLayout(ctx)
	if err != nil {
		return err
	}
	return encloseReversed(w, lay.pad, func(w io.Writer) error {
		if err := writeParameters(w, ctx, "vec", vecParams); err != nil {
			return err
		}
		if _, err := io.WriteString(w, lay.head); err != nil {
			return err
		}
		if err := writeElements(w, lay.sub, rv); err != nil {
			return err
		}
		_, err := io.WriteString(w, lay.tail)
		return err
	})
}

// writeMat renders a two-dimensional value as a mat(...) call. Rows are
// joined by ";\n"; within a row, elements are joined by ", " after one
// indentation block. Depth increases once for the whole matrix, not once
// per row.
func writeMat(w io.Writer, ctx Context, rv reflect.Value) error {
	lay, err := containerLayout(ctx)
	if err != nil {
		return err
	}
	return encloseReversed(w, lay.pad, func(w io.Writer) error {
		if err := writeParameters(w, ctx, "mat", matParams); err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				if _, err := io.WriteString(w, ";\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, lay.head); err != nil {
				return err
			}
			row := rv.Index(i)
			for row.Kind() == reflect.Interface {
				row = row.Elem()
			}
			if err := writeElements(w, lay.sub, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, lay.tail)
		return err
	})
}

// writeElements formats the elements of rv joined by ", " under the element
// context.
func writeElements(w io.Writer, sub Context, rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := write(w, rv.Index(i).Interface(), sub); err != nil {
			return err
		}
	}
	return nil
}
