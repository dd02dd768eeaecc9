package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherWithoutPathServesDefaults(t *testing.T) {
	w, err := NewWatcher("", zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, float64(20000), w.MaxBudget())
	assert.True(t, w.Current().Features.EnablePayments)
}

func TestWatcherLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynamic.yaml")
	content := []byte("limits:\n  maxBudget: 5000\nfeatures:\n  enableSurvey: false\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, float64(5000), w.MaxBudget())
	assert.False(t, w.Current().Features.EnableSurvey)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 20, w.Current().Limits.MaxKeywordsPerOffer)
}

func TestWatcherRejectsInvalidBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynamic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  maxBudget: -1\n"), 0o644))

	_, err := NewWatcher(path, zap.NewNop())
	assert.Error(t, err)
}
