package scanner

import (
	"testing"

	"github.com/mna/jplc/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanSrc(t *testing.T, src string) ([]TokenAndValue, error) {
	t.Helper()
	fset := token.NewFileSet()
	_, toks, err := ScanFile(fset, "test", []byte(src))
	return toks, err
}

func kinds(toks []TokenAndValue) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tv := range toks {
		out[i] = tv.Tok
	}
	return out
}

func TestScanKeywordsAndIdent(t *testing.T) {
	toks, err := scanSrc(t, "let x fn blur_h")
	require.NoError(t, err)
	assert.Equal(t, []token.Token{token.LET, token.VARIABLE, token.FN, token.VARIABLE, token.EOF}, kinds(toks))
	assert.Equal(t, "x", toks[1].Text)
	assert.Equal(t, "blur_h", toks[3].Text)
}

func TestScanIntLiteral(t *testing.T) {
	toks, err := scanSrc(t, "123")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.INTVAL, toks[0].Tok)
	assert.Equal(t, int64(123), toks[0].Value.Int)
}

func TestScanFloatLiteralForms(t *testing.T) {
	for _, src := range []string{"1.23e45", "1.0", ".5"} {
		toks, err := scanSrc(t, src)
		require.NoError(t, err, src)
		require.GreaterOrEqual(t, len(toks), 1)
		assert.Equal(t, token.FLOATVAL, toks[0].Tok, src)
	}
}

func TestScanIntOverflowIsError(t *testing.T) {
	_, err := scanSrc(t, "99999999999999999999")
	assert.Error(t, err)
}

func TestScanStringLiteralDecodesEscapedQuote(t *testing.T) {
	toks, err := scanSrc(t, `"a\"b"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Tok)
	assert.Equal(t, `a"b`, toks[0].Value.Str)
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	_, err := scanSrc(t, `"abc`)
	assert.Error(t, err)
}

func TestScanTwoCharOperators(t *testing.T) {
	toks, err := scanSrc(t, "<= >= == != && ||")
	require.NoError(t, err)
	for _, tv := range toks[:6] {
		assert.Equal(t, token.OP, tv.Tok)
	}
	assert.Equal(t, "<=", toks[0].Text)
	assert.Equal(t, "||", toks[5].Text)
}

func TestScanNewlineTracksLine(t *testing.T) {
	fset := token.NewFileSet()
	file, toks, err := ScanFile(fset, "test", []byte("a\nb"))
	require.NoError(t, err)
	var bTok TokenAndValue
	for _, tv := range toks {
		if tv.Tok == token.VARIABLE && tv.Text == "b" {
			bTok = tv
		}
	}
	require.NotEmpty(t, bTok.Text)
	assert.Equal(t, 2, file.Position(bTok.Pos).Line)
}

func TestScanCommentIsSkipped(t *testing.T) {
	toks, err := scanSrc(t, "let x // a comment\n")
	require.NoError(t, err)
	assert.Equal(t, []token.Token{token.LET, token.VARIABLE, token.NEWLINE, token.EOF}, kinds(toks))
}

func TestScanIllegalCharacterIsError(t *testing.T) {
	_, err := scanSrc(t, "@")
	assert.Error(t, err)
}

func TestScanEmptySourceIsJustEOF(t *testing.T) {
	toks, err := scanSrc(t, "")
	require.NoError(t, err)
	assert.Equal(t, []token.Token{token.EOF}, kinds(toks))
}
