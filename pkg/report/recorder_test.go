package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileWithoutEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	written, err := NewRecorder().WriteFile(path)
	require.NoError(t, err)
	assert.False(t, written)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	at := time.Date(2025, time.June, 1, 9, 30, 15, 0, time.UTC)

	recorder := NewRecorder()
	recorder.Add(Entry{Email: "alice@example.com", AccountID: "a-1", ProcessedAt: at, GroupID: "g-1", LastSeen: "Never accessed", AddedToOrg: "15 Jan 2020"})
	recorder.Add(Entry{Email: "bob@example.com", AccountID: "b-2", ProcessedAt: at, GroupID: "g-1", LastSeen: "01 Jan 2020", AddedToOrg: "2 Feb 2019"})
	require.Equal(t, 2, recorder.Len())

	written, err := recorder.WriteFile(path)
	require.NoError(t, err)
	require.True(t, written)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"alice@example.com", "a-1", "2025-06-01 09:30:15", "g-1", "Never accessed", "15 Jan 2020"}, rows[1])
	assert.Equal(t, "b-2", rows[2][1])
}

func TestEntriesIsACopy(t *testing.T) {
	recorder := NewRecorder()
	recorder.Add(Entry{Email: "alice@example.com"})

	entries := recorder.Entries()
	entries[0].Email = "changed"

	assert.Equal(t, "alice@example.com", recorder.Entries()[0].Email)
}

func TestWriteFileUnwritablePath(t *testing.T) {
	recorder := NewRecorder()
	recorder.Add(Entry{Email: "alice@example.com"})

	written, err := recorder.WriteFile(filepath.Join(t.TempDir(), "missing", "report.csv"))
	assert.Error(t, err)
	assert.False(t, written)
}
