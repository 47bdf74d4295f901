package typst

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReversed(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", reversed(""))
	assert.Equal(t, "$", reversed("$"))
	assert.Equal(t, " $", reversed("$ "))
}

func TestQuoteEscapePattern(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `\d+\"x\"`, quoteEscapePattern(`\d+"x"`))
	assert.Equal(t, `\(`, quoteEscapePattern(`\(`))
}

func TestMathPad(t *testing.T) {
	t.Parallel()
	pad, err := mathPad(Context{KeyMode: ModeMath})
	require.NoError(t, err)
	assert.Equal(t, "", pad)

	pad, err = mathPad(Context{KeyMode: ModeMarkup, KeyInline: true})
	require.NoError(t, err)
	assert.Equal(t, "$", pad)

	pad, err = mathPad(Context{KeyMode: ModeCode, KeyInline: false})
	require.NoError(t, err)
	assert.Equal(t, "$ ", pad)
}

func TestCodeSigil(t *testing.T) {
	t.Parallel()
	sigil, err := codeSigil(Context{KeyMode: ModeCode})
	require.NoError(t, err)
	assert.Equal(t, "", sigil)

	sigil, err = codeSigil(Context{KeyMode: ModeMarkup})
	require.NoError(t, err)
	assert.Equal(t, "#", sigil)
}

func TestEncloseReversed(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := encloseReversed(&buf, "$ ", func(w io.Writer) error {
		_, err := w.Write([]byte("x"))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "$ x $", buf.String())
}

func TestMatchParen(t *testing.T) {
	t.Parallel()
	end, err := matchParen("(a(b)c)", 0)
	require.NoError(t, err)
	assert.Equal(t, 6, end)

	end, err = matchParen(`(")" + x)`, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, end)

	_, err = matchParen("(a(b)", 0)
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestSkipString(t *testing.T) {
	t.Parallel()
	// skipString returns the index of the closing quote, or len(s) when
	// the literal is unclosed.
	assert.Equal(t, 3, skipString(`"ab"x`, 0))
	assert.Equal(t, 5, skipString(`"a\"b`, 0)) // escaped quote, unclosed
	assert.Equal(t, 4, skipString(`"a\""x`, 0))
	assert.Equal(t, 2, skipString("`a`", 0))
}

func TestSplitTop(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a"}, splitTop("a"))
	assert.Equal(t, []string{"a", " b: 1"}, splitTop("a, b: 1"))
	assert.Equal(t, []string{"f(a, b)", " c"}, splitTop("f(a, b), c"))
	assert.Equal(t, []string{`"a,b"`, ` c`}, splitTop(`"a,b", c`))
	assert.Equal(t, []string{"[1, 2]", " x"}, splitTop("[1, 2], x"))
}

func TestCutSetting(t *testing.T) {
	t.Parallel()
	key, value, ok := cutSetting(" mode: code")
	require.True(t, ok)
	assert.Equal(t, "mode", key)
	assert.Equal(t, "code", value)

	key, value, ok = cutSetting("row-gap: \"#1em\"")
	require.True(t, ok)
	assert.Equal(t, "row-gap", key)
	assert.Equal(t, `"#1em"`, value)

	_, _, ok = cutSetting("x ? a : b")
	assert.False(t, ok)

	_, _, ok = cutSetting("mode:")
	assert.False(t, ok)

	_, _, ok = cutSetting("42: x")
	assert.False(t, ok)
}

func TestIsMatrix(t *testing.T) {
	t.Parallel()
	assert.True(t, isMatrix(reflect.ValueOf([][]int{{1}})))
	assert.True(t, isMatrix(reflect.ValueOf([]any{[]int{1}, []string{"a"}})))
	assert.False(t, isMatrix(reflect.ValueOf([]int{1})))
	assert.False(t, isMatrix(reflect.ValueOf([]any{[]int{1}, 2})))
	assert.False(t, isMatrix(reflect.ValueOf([]int{})))
}

func TestWriteParametersOrder(t *testing.T) {
	t.Parallel()
	ctx := Context{KeyGap: "#1em", KeyDelim: `"["`}
	var buf bytes.Buffer
	err := writeParameters(&buf, ctx, "vec", vecParams)
	require.NoError(t, err)
	assert.Equal(t, "vec(delim: \"[\", gap: #1em, \n", buf.String())
}
