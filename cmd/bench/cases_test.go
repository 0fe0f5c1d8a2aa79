package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSQL(t *testing.T) {
	sql := `-- comment
CREATE TABLE IF NOT EXISTS a (id INT);

CREATE INDEX a_idx ON a (id);
`
	assert.Equal(t, []string{
		"CREATE TABLE IF NOT EXISTS a (id INT)",
		"CREATE INDEX a_idx ON a (id)",
	}, splitSQL(sql))
}

func TestExtractTables_Migration(t *testing.T) {
	tables, err := extractTables(filepath.Join("..", "..", "migrations", "0001_region_tariffs.sql"))
	require.NoError(t, err)
	assert.Equal(t, []string{"region_tariffs"}, tables)

	_, err = extractTables(filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusPass, classify(200, time.Millisecond, []int{200}, []int{404}).Status)
	assert.Equal(t, StatusPending, classify(404, time.Millisecond, []int{200}, []int{404}).Status)
	assert.Equal(t, StatusFail, classify(500, time.Millisecond, []int{200}, nil).Status)
}

func TestSummarize(t *testing.T) {
	s := summarize([]Result{
		{Status: StatusPass}, {Status: StatusPass}, {Status: StatusFail},
		{Status: StatusPending}, {Status: StatusSkip},
	})
	assert.Equal(t, summary{pass: 2, fail: 1, pending: 1, skipped: 1}, s)
}
