package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceOf_Known(t *testing.T) {
	c := New()
	assert.InDelta(t, 0.50, c.PriceOf("apple"), 1e-9)
	assert.InDelta(t, 1.50, c.PriceOf("milk"), 1e-9)
}

func TestPriceOf_CaseInsensitive(t *testing.T) {
	c := New()
	assert.InDelta(t, 0.50, c.PriceOf("Apple"), 1e-9)
	assert.InDelta(t, 0.50, c.PriceOf("  APPLE "), 1e-9)
}

func TestPriceOf_UnknownFallsBack(t *testing.T) {
	c := New()
	assert.InDelta(t, DefaultPrice, c.PriceOf("quantum_widget"), 1e-9)
	assert.False(t, c.Has("quantum_widget"))
}

func TestSetPrice_Overwrites(t *testing.T) {
	c := New()
	c.SetPrice("Apple", 0.99)
	assert.InDelta(t, 0.99, c.PriceOf("apple"), 1e-9)
}

func TestSetPrice_ClampsNegative(t *testing.T) {
	c := empty()
	c.SetPrice("freebie", -3)
	assert.InDelta(t, 0, c.PriceOf("freebie"), 1e-9)
	assert.True(t, c.Has("freebie"))
}

func TestNames_Sorted(t *testing.T) {
	c := empty()
	c.SetPrice("milk", 1.5)
	c.SetPrice("apple", 0.5)
	c.SetPrice("bread", 2.0)
	assert.Equal(t, []string{"apple", "bread", "milk"}, c.Names())
	assert.Equal(t, 3, c.Len())
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	content := "prices:\n  apple: 0.75\n  dragonfruit: 4.20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c := New()
	require.NoError(t, c.LoadFile(path))

	assert.InDelta(t, 0.75, c.PriceOf("apple"), 1e-9)
	assert.InDelta(t, 4.20, c.PriceOf("dragonfruit"), 1e-9)
	// Untouched defaults survive the merge.
	assert.InDelta(t, 1.50, c.PriceOf("milk"), 1e-9)
}

func TestLoadFile_MissingFile(t *testing.T) {
	c := New()
	err := c.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prices: [not a map"), 0644))

	err := New().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing price file")
}
