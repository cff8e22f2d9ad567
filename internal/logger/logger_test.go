package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "f1next.log")

		l, f, err := New(path)
		require.NoError(t, err)
		l.Debug("fetching next race", "url", "http://localhost")
		require.NoError(t, f.Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "level=DEBUG")
		assert.Contains(t, string(b), `msg="fetching next race"`)
	})

	t.Run("Disabled", func(t *testing.T) {
		l, f, err := New("")
		require.NoError(t, err)
		l.Error("dropped")
		assert.NoError(t, f.Close())
	})
}
