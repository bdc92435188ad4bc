package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"translized/src/logging"
	"translized/src/translized"
)

type fakeExporter struct {
	mu       sync.Mutex
	requests []translized.ExportRequest
	exports  map[string][]translized.LocaleExport
	err      error
}

func (exporter *fakeExporter) ExportAll(_ context.Context, req translized.ExportRequest) ([]translized.LocaleExport, error) {
	exporter.mu.Lock()
	defer exporter.mu.Unlock()

	exporter.requests = append(exporter.requests, req)

	if exporter.err != nil {
		return nil, exporter.err
	}

	return exporter.exports[req.ExportFormat], nil
}

type fakeOpener struct {
	mu     sync.Mutex
	files  map[string]string
	broken map[string]bool
	calls  []string
}

func (opener *fakeOpener) Open(_ context.Context, url string) (io.ReadCloser, int64, error) {
	opener.mu.Lock()
	defer opener.mu.Unlock()

	opener.calls = append(opener.calls, url)

	if opener.broken[url] {
		return io.NopCloser(&failingReader{data: "partial"}), -1, nil
	}

	content, ok := opener.files[url]
	if !ok {
		return nil, 0, errors.New("connection reset by peer")
	}

	return io.NopCloser(strings.NewReader(content)), int64(len(content)), nil
}

// failingReader returns some bytes, then a read error.
type failingReader struct {
	data string
	done bool
}

func (reader *failingReader) Read(p []byte) (int, error) {
	if reader.done {
		return 0, errors.New("unexpected EOF from server")
	}

	reader.done = true

	return copy(p, reader.data), nil
}

type fakeImporter struct {
	uploads []string
	types   []string
	imports []translized.ImportRequest
	failFor map[string]error
}

func (importer *fakeImporter) UploadContent(_ context.Context, name, contentType string, body []byte) (string, error) {
	importer.uploads = append(importer.uploads, name+"="+string(body))
	importer.types = append(importer.types, contentType)

	if err := importer.failFor[name]; err != nil {
		return "", err
	}

	return "https://files.example.com/" + name, nil
}

func (importer *fakeImporter) Import(_ context.Context, req translized.ImportRequest) (translized.ImportResult, error) {
	importer.imports = append(importer.imports, req)

	return translized.ImportResult{TotalParsed: 2, TotalAdded: 1, TotalUpdated: 1}, nil
}

func (importer *fakeImporter) calls() int {
	return len(importer.uploads) + len(importer.imports)
}

// captureLogs returns a context whose logger writes JSON records to the buffer.
func captureLogs() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := logging.New(logging.Config{Out: &buf, JSON: true, Level: slog.LevelDebug})

	return logging.WithLogger(context.Background(), logger), &buf
}

func countLevel(buf *bytes.Buffer, level string) int {
	return strings.Count(buf.String(), `"level":"`+level+`"`)
}

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()

	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
}
