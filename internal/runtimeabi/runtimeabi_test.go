package runtimeabi_test

import (
	"testing"

	"github.com/mna/jplc/internal/runtimeabi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesEmbeddedManifest(t *testing.T) {
	abi, err := runtimeabi.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"jpl_main", "_jpl_main"}, abi.Globals)
	assert.Contains(t, abi.Externs, "_fail_assertion")
	assert.Contains(t, abi.Externs, "_jpl_alloc")
	assert.Contains(t, abi.Externs, "_atan2")
}

func TestLoadPreservesManifestOrder(t *testing.T) {
	abi, err := runtimeabi.Load()
	require.NoError(t, err)
	require.NotEmpty(t, abi.Externs)
	assert.Equal(t, "_fail_assertion", abi.Externs[0])
}
