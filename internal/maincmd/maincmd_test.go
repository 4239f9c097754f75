package maincmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSrc(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, "prog.jpl")
	require.NoError(t, os.WriteFile(name, []byte(src), 0o644))
	return name
}

func TestLexPrintsOneLinePerToken(t *testing.T) {
	name := writeSrc(t, "let x = 3\n")
	var out, errOut bytes.Buffer
	c := &Cmd{}

	err := c.Lex(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{name})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "let")
	assert.Contains(t, out.String(), "int literal 3")
	assert.Contains(t, errOut.String(), "Compilation succeeded")
}

func TestLexReportsIllegalCharacter(t *testing.T) {
	name := writeSrc(t, "let x = @\n")
	var out, errOut bytes.Buffer
	c := &Cmd{}

	err := c.Lex(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{name})
	assert.Error(t, err)
	assert.Contains(t, errOut.String(), "Compilation failed")
}

func TestParsePrintsChunk(t *testing.T) {
	name := writeSrc(t, "let x = 3\nlet y = x + 4\n")
	var out, errOut bytes.Buffer
	c := &Cmd{}

	err := c.Parse(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{name})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "chunk")
	assert.Contains(t, errOut.String(), "Compilation succeeded")
}

func TestCheckAnnotatesResolvedTypes(t *testing.T) {
	name := writeSrc(t, "let x = 3\nshow x\n")
	var out, errOut bytes.Buffer
	c := &Cmd{}

	err := c.Check(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{name})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(IntType)")
}

func TestCheckReportsUndeclaredVariable(t *testing.T) {
	name := writeSrc(t, "show undeclared\n")
	var out, errOut bytes.Buffer
	c := &Cmd{}

	err := c.Check(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{name})
	assert.Error(t, err)
	assert.Contains(t, errOut.String(), "Compilation failed")
}

func TestCompileEmitsAssembly(t *testing.T) {
	name := writeSrc(t, "let x = 3\nshow x\n")
	var out, errOut bytes.Buffer
	c := &Cmd{}

	err := c.Compile(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{name})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "_jpl_main:")
	assert.Contains(t, errOut.String(), "Compilation succeeded")
}

func TestValidatePicksPhaseByFlagPriority(t *testing.T) {
	name := writeSrc(t, "let x = 3\n")

	c := &Cmd{Lex: true, Parse: true}
	c.SetArgs([]string{name})
	require.NoError(t, c.Validate())
	assert.NotNil(t, c.cmdFn)
}

func TestValidateRejectsMultipleFiles(t *testing.T) {
	c := &Cmd{}
	c.SetArgs([]string{"a.jpl", "b.jpl"})
	assert.Error(t, c.Validate())
}
