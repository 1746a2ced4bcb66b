package fs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Balance string `json:"balance"`
}

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_out", "state.json")

	require.NoError(t, SaveJSON(path, sample{Balance: "1500000000"}))

	var got sample
	require.NoError(t, LoadJSON(path, &got))
	require.Equal(t, "1500000000", got.Balance)

	require.NoError(t, SaveJSON(path, sample{Balance: "7"}))
	require.NoError(t, LoadJSON(path, &got))
	require.Equal(t, "7", got.Balance)
}

func TestLoadJSONMissing(t *testing.T) {
	var got sample
	err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"), &got)
	require.ErrorIs(t, err, ErrNotFound)
}
