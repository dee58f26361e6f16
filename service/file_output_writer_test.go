package service

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileOutputWriter_WritesToWriter(t *testing.T) {
	var status, out bytes.Buffer
	w := NewFileOutputWriter(&status)

	err := w.Write(&out, "", domain.OutputFormatText, func(dst io.Writer) error {
		_, err := io.WriteString(dst, "report")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "report", out.String())
	assert.Empty(t, status.String(), "no status line without a file")
}

func TestFileOutputWriter_WritesToFile(t *testing.T) {
	var status, out bytes.Buffer
	path := filepath.Join(t.TempDir(), ".podlock", "reports", "parse.json")

	err := NewFileOutputWriter(&status).Write(&out, path, domain.OutputFormatJSON, func(dst io.Writer) error {
		_, err := io.WriteString(dst, "{}")
		return err
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
	assert.Empty(t, out.String())
	assert.Contains(t, status.String(), "JSON report generated: ")
	assert.Contains(t, status.String(), "parse.json")
}

func TestFileOutputWriter_WrapsWriteErrors(t *testing.T) {
	err := NewFileOutputWriter(io.Discard).Write(io.Discard, "", domain.OutputFormatCSV, func(io.Writer) error {
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeOutputError, domain.ErrorCode(err))
}
