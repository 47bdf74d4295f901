package typst

import (
	"fmt"
	"maps"
	"strings"
)

// Well-known context keys. Formatting rules read these with the typed
// accessors on [Context]; layout rules additionally read the parameter keys
// via [Context.Value].
const (
	KeyMode   = "mode"   // Mode
	KeyInline = "inline" // bool
	KeyIndent = "indent" // string
	KeyDepth  = "depth"  // int

	KeyDelim     = "delim"      // string, vec/mat delimiter
	KeyGap       = "gap"        // string, vec/mat element gap
	KeyAugment   = "augment"    // string, mat augmentation line
	KeyRowGap    = "row-gap"    // string, mat row gap
	KeyColumnGap = "column-gap" // string, mat column gap
)

// Context is the settings bag threaded through every formatting call. It is
// immutable by convention: formatting rules never mutate a Context they
// receive, they call [Context.Derive] to build a new one for nested calls.
//
// Missing keys are normal. The typed accessors fall back to the defaults of
// [DefaultContext]; arbitrary keys are read with [Context.Value].
type Context map[string]any

// DefaultContext returns the top-level settings: markup mode, inline math,
// four-space indent, depth zero.
func DefaultContext() Context {
	return Context{
		KeyMode:   ModeMarkup,
		KeyInline: true,
		KeyIndent: strings.Repeat(" ", 4),
		KeyDepth:  0,
	}
}

// Derive returns a copy of c with each key in overrides replacing the prior
// value. Keys absent from overrides are inherited unchanged. The receiver is
// never modified.
func (c Context) Derive(overrides map[string]any) Context {
	out := make(Context, len(c)+len(overrides))
	maps.Copy(out, c)
	maps.Copy(out, overrides)
	return out
}

// Value returns the stored value for key and whether it was present.
func (c Context) Value(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// Mode returns the active lexical mode, defaulting to [ModeMarkup].
func (c Context) Mode() (Mode, error) {
	v, ok := c[KeyMode]
	if !ok {
		return ModeMarkup, nil
	}
	m, ok := v.(Mode)
	if !ok {
		return 0, fmt.Errorf("%w: %q is %T, want typst.Mode", ErrContextType, KeyMode, v)
	}
	return m, nil
}

// Inline reports whether math renders inline rather than as a display block.
// Defaults to true.
func (c Context) Inline() (bool, error) {
	v, ok := c[KeyInline]
	if !ok {
		return true, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is %T, want bool", ErrContextType, KeyInline, v)
	}
	return b, nil
}

// Indent returns the unit of horizontal indentation, defaulting to four
// spaces.
func (c Context) Indent() (string, error) {
	v, ok := c[KeyIndent]
	if !ok {
		return strings.Repeat(" ", 4), nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrContextType, KeyIndent, v)
	}
	return s, nil
}

// Depth returns the current container nesting level, defaulting to zero.
func (c Context) Depth() (int, error) {
	v, ok := c[KeyDepth]
	if !ok {
		return 0, nil
	}
	d, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %q is %T, want int", ErrContextType, KeyDepth, v)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %q is %d, want non-negative", ErrContextType, KeyDepth, d)
	}
	return d, nil
}

// stringParam returns the string stored under key, "" when absent. A present
// value of any other type is a context-type error.
func (c Context) stringParam(key string) (string, error) {
	v, ok := c[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrContextType, key, v)
	}
	return s, nil
}
