package typst_test

import (
	"math/big"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/typst"
)

func inMode(m typst.Mode) map[string]any {
	return map[string]any{typst.KeyMode: m}
}

func TestFormatBool(t *testing.T) {
	t.Parallel()
	cases := []struct {
		mode typst.Mode
		want typst.Markup
	}{
		{typst.ModeMarkup, "#true"},
		{typst.ModeCode, "true"},
		{typst.ModeMath, `"true"`},
	}
	for _, tc := range cases {
		out, err := typst.Format(true, inMode(tc.mode))
		require.NoError(t, err)
		assert.Equal(t, tc.want, out, "mode %s", tc.mode)
	}
}

func TestFormatIntegers(t *testing.T) {
	t.Parallel()
	for _, v := range []any{42, int8(42), int16(42), int32(42), int64(42), uint(42), uint8(42), uint16(42), uint32(42), uint64(42)} {
		for _, mode := range []typst.Mode{typst.ModeMarkup, typst.ModeCode, typst.ModeMath} {
			out, err := typst.Format(v, inMode(mode))
			require.NoError(t, err)
			assert.Equal(t, typst.Markup("42"), out, "%T in %s mode", v, mode)
		}
	}
}

func TestFormatNegativeInt(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(-7, nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("-7"), out)
}

func TestFormatFloats(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(1.5, nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("1.5"), out)

	out, err = typst.Format(float32(0.25), nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("0.25"), out)
}

func TestFormatBigInt(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(new(big.Int).SetInt64(1234567890), nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("1234567890"), out)
}

func TestFormatRational(t *testing.T) {
	t.Parallel()
	half := big.NewRat(1, 2)

	out, err := typst.Format(half, nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("$1 / 2$"), out)

	out, err = typst.Format(half, inMode(typst.ModeCode))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("(1 / 2)"), out)

	out, err = typst.Format(half, inMode(typst.ModeMath))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("(1 / 2)"), out)
}

func TestFormatRationalDisplayBlock(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(big.NewRat(1, 2), map[string]any{typst.KeyInline: false})
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("$ 1 / 2 $"), out)
}

func TestFormatComplex(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(complex(1, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("$(1+2i)$"), out)

	out, err = typst.Format(complex(1, 2), inMode(typst.ModeMath))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("(1+2i)"), out)

	out, err = typst.Format(complex64(complex(0, -1)), nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("$(0-1i)$"), out)
}

func TestFormatChar(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(typst.Char('a'), nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("a"), out)

	out, err = typst.Format(typst.Char('a'), inMode(typst.ModeCode))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`"a"`), out)
}

func TestFormatRuneIsInteger(t *testing.T) {
	t.Parallel()
	// rune is int32; only the Char wrapper renders a character.
	out, err := typst.Format('a', nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("97"), out)
}

func TestFormatString(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(`a"b`, nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`"a\"b"`), out)

	out, err = typst.Format(`a"b`, inMode(typst.ModeCode))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`"a\\\"b"`), out)

	out, err = typst.Format(`a"b`, inMode(typst.ModeMath))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`"a\\\"b"`), out)
}

func TestFormatRegexp(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`[a-z]+\d`)

	out, err := typst.Format(re, nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`#regex("[a-z]+\d")`), out)

	out, err = typst.Format(re, inMode(typst.ModeCode))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`regex("[a-z]+\d")`), out)
}

func TestFormatRegexpQuoteEscaping(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(regexp.MustCompile(`say "hi"`), nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`#regex("say \"hi\"")`), out)
}

func TestFormatNil(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(""), out)

	out, err = typst.Format(nil, inMode(typst.ModeCode))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`""`), out)

	out, err = typst.Format(nil, inMode(typst.ModeMath))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup(`""`), out)
}

func TestFormatRawIgnoresContext(t *testing.T) {
	t.Parallel()
	for _, mode := range []typst.Mode{typst.ModeMarkup, typst.ModeCode, typst.ModeMath} {
		out, err := typst.Format(typst.Raw(`*bold "text"*`), inMode(mode))
		require.NoError(t, err)
		assert.Equal(t, typst.Markup(`*bold "text"*`), out)
	}
}

func TestFormatMarkupVerbatim(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(typst.Markup("$x^2$"), inMode(typst.ModeCode))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("$x^2$"), out)
}

func TestFormatRange(t *testing.T) {
	t.Parallel()
	out, err := typst.Format(typst.Range{First: 1, Last: 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("#range(1, 5, step: 1)"), out)

	out, err = typst.Format(typst.Range{First: 1, Last: 9, Step: 2}, inMode(typst.ModeCode))
	require.NoError(t, err)
	assert.Equal(t, typst.Markup("range(1, 10, step: 2)"), out)
}
