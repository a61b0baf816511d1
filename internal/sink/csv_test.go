package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-manager/internal/models"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	result := &models.Result{
		Question: "q4",
		Rows: []models.ResultRow{
			{Subject: "Toronto, Canada", Statistic: 5},
			{Subject: `Say "hi"`, Statistic: 1.5},
		},
	}

	path, err := Write(dir, result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "q4.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "subject,statistic\n\"Toronto, Canada\",5\n\"Say \"\"hi\"\"\",1.5\n", string(content))
}

func TestWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q2.csv"), []byte("stale content that is longer\n"), 0o644))

	result := &models.Result{Question: "q2", Rows: []models.ResultRow{{Subject: "Chad", Statistic: 1}}}
	path, err := Write(dir, result)
	require.NoError(t, err)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "subject,statistic\nChad,1\n", string(first))

	// Writing the same answer again is byte-identical
	_, err = Write(dir, result)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteEmptyResult(t *testing.T) {
	path, err := Write(t.TempDir(), &models.Result{Question: "q5"})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "subject,statistic\n", string(content))
}

func TestWriteMissingDir(t *testing.T) {
	_, err := Write(filepath.Join(t.TempDir(), "absent"), &models.Result{Question: "q1"})
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "q3.csv", CSVName("q3"))
	assert.Equal(t, "q3.pdf", ChartName("q3"))
}
