package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRowQuotesAndFlushes(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	require.NoError(t, w.WriteRow([]string{"ID", "Name"}))
	assert.Equal(t, "ID,Name\r\n", buf.String())

	require.NoError(t, w.WriteRow([]string{"2", `Doe, "JD" Jane`}))
	assert.Equal(t, "ID,Name\r\n2,\"Doe, \"\"JD\"\" Jane\"\r\n", buf.String())
	assert.NoError(t, w.Close())
}

func TestWriteRowNormalizesToNFC(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	// "e" followed by a combining acute accent
	require.NoError(t, w.WriteRow([]string{"Jose\u0301", "Sa\u0303o Paulo"}))
	assert.Equal(t, "Jos\u00e9,S\u00e3o Paulo\r\n", buf.String())
}

func TestWriteRowRejectsInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	require.NoError(t, w.WriteRow([]string{"1", "ok"}))
	err := w.WriteRow([]string{"2", "bad\xff"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUTF8))

	// nothing of the rejected row reached the stream
	assert.Equal(t, "1,ok\r\n", buf.String())
}

func TestCreateTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale,data\n"), 0o644))

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteRow([]string{"ID"}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID\r\n", string(got))
}
