package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "enrichcli/internal/errors"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, testRecords(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Records     []map[string]string `json:"records"`
		Count       int                 `json:"count"`
		GeneratedAt string              `json:"generated_at"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "10", doc.Records[0]["Close"])
	assert.Equal(t, "-", doc.Records[0]["Close Moving Average - 2 days"])
	assert.Equal(t, "15.00", doc.Records[1]["Close Moving Average - 2 days"])

	_, err = time.Parse(time.RFC3339, doc.GeneratedAt)
	assert.NoError(t, err)
}

func TestWriteJSONPreservesColumnOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, testRecords(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	dateIdx := strings.Index(text, `"Date"`)
	closeIdx := strings.Index(text, `"Close"`)
	maIdx := strings.Index(text, `"Close Moving Average - 2 days"`)
	require.NotEqual(t, -1, dateIdx)
	require.NotEqual(t, -1, closeIdx)
	require.NotEqual(t, -1, maIdx)
	assert.Less(t, dateIdx, closeIdx)
	assert.Less(t, closeIdx, maIdx)
}

func TestWriteJSONEmpty(t *testing.T) {
	err := WriteJSON(filepath.Join(t.TempDir(), "out.json"), nil)
	require.Error(t, err)
	assert.True(t, ierrors.IsType(err, ierrors.ErrTypeValidation))
}
