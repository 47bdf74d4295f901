// Package typst serializes Go values into syntactically valid Typst source.
//
// The central entry points are [Format] and [Write], which render a value
// against a settings [Context], and [Parse] / [Template.Render], which expand
// a template string with \(...) splices. Every rule is deterministic in
// (value, context), so two independent calls never interfere.
//
// # Modes
//
// Typst has three mutually exclusive lexical contexts, modeled by [Mode]:
// markup (prose, the default), code (evaluated expressions behind a "#"
// sigil), and math (formulas between "$" sigils). The active mode decides
// how each kind renders:
//
//	typst.Format(true, nil)                                           // #true
//	typst.Format(true, map[string]any{typst.KeyMode: typst.ModeCode}) // true
//	typst.Format(true, map[string]any{typst.KeyMode: typst.ModeMath}) // "true"
//
// # Supported kinds
//
// Booleans, all integer and float kinds, complex numbers, *big.Int, *big.Rat
// (exact rationals), strings, *regexp.Regexp, nil, and slices and arrays.
// One-dimensional sequences render as an indented vec(...) block in math
// delimiters; values whose elements are all slices render as mat(...) with
// ";"-separated rows. Nesting indents by one [KeyIndent] unit per level.
//
// Four wrapper types round out the set: [Markup] (already-serialized source,
// emitted verbatim — the identity case), [Raw] (intentionally unescaped
// text), [Char] (a rune rendered as a character rather than an integer), and
// [Range] (an inclusive integer range, emitted through Typst's half-open
// range() primitive).
//
// # Context
//
// A [Context] is an immutable settings bag passed down every recursive call.
// [Context.Derive] layers overrides onto a parent context; missing keys fall
// back to [DefaultContext]. Layout parameters such as [KeyDelim] and
// [KeyGap] are emitted only when present and non-empty.
//
// # Extension
//
// A type that implements [Formatter] renders itself; it is checked before
// built-in dispatch, so the most specific kind wins. Implement [Defaulted]
// to declare per-kind default settings layered beneath the caller's
// overrides. A value with no rule fails with [ErrUnsupportedKind].
//
// # Templates
//
// [Parse] builds a [Template] from literal text with \(expr) splices. The
// expression uses expr-lang syntax, may carry trailing name: value settings,
// and is compiled at parse time; [Template.Render] evaluates it against a
// variable map and splices the formatted result in place:
//
//	t := typst.MustParse(`ratio: \(x) / \(x + 1)`)
//	out, _ := t.Render(map[string]any{"x": 1}) // ratio: 1 / 2
//
// A `\(` preceded by an odd number of backslashes is escaped and re-emitted
// as literal text.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedKind] — no formatting rule for the value's kind
//   - [ErrContextType] — a stored setting has the wrong type
//   - [ErrInvalidTemplate] — unterminated splice or bad splice expression
package typst
