package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DuplicateKey(t *testing.T) {
	_, err := New([]Setting{
		{Key: "axes.grid", Value: "True"},
		{Key: "axes.grid", Value: "False"},
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLookup_NotFound(t *testing.T) {
	_, err := Default().Lookup("axes.nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "axes.nonexistent")

	_, err = Default().Float("lines.nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.False(t, Default().Has("axes.nonexistent"))
	assert.Equal(t, "fallback", Default().LookupOr("axes.nonexistent", "fallback").String())
}

func TestTypedAccessor_WrapsKey(t *testing.T) {
	table, err := New([]Setting{{Key: "axes.grid", Value: "maybe"}})
	require.NoError(t, err)

	_, err = table.Bool("axes.grid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "axes.grid")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestInt_OutOfRange(t *testing.T) {
	table, err := New([]Setting{{Key: "savefig.dpi", Value: "1e300"}})
	require.NoError(t, err)

	_, err = table.Int("savefig.dpi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "savefig.dpi")
}

func TestSection(t *testing.T) {
	grid := Default().Section("grid")
	require.Len(t, grid, 3)
	assert.Equal(t, "grid.color", grid[0].Key)
	assert.Equal(t, "grid.linestyle", grid[1].Key)
	assert.Equal(t, "grid.linewidth", grid[2].Key)

	assert.Empty(t, Default().Section("nothing"))
}

func TestSettings_ReturnsCopy(t *testing.T) {
	settings := Default().Settings()
	settings[0].Value = "changed"

	v, err := Default().Value(settings[0].Key)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", v.String())
}

func TestCycle_LegacyKey(t *testing.T) {
	table, err := New([]Setting{{Key: "axes.color_cycle", Value: "348ABD, A60628, 7A68A6"}})
	require.NoError(t, err)

	cycle, err := table.Cycle()
	require.NoError(t, err)
	assert.Equal(t, []string{"348ABD", "A60628", "7A68A6"}, cycle)
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "figure", Namespace("figure.subplot.bottom"))
	assert.Equal(t, "backend", Namespace("backend"))
	assert.Equal(t, "xtick", Setting{Key: "xtick.major.size"}.Namespace())
}

func TestConcurrentReaders(t *testing.T) {
	table := Default()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for _, k := range table.Keys() {
				_, _ = table.Lookup(k)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
