package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"translized/src/config"
)

// Source represents an exported file that can be streamed.
type Source interface {
	// Download opens the file content.
	// Returns the reader, total file size (-1 when unknown), and any error.
	Download(ctx context.Context) (io.ReadCloser, int64, error)
}

// Opener resolves export URLs to sources by scheme.
type Opener struct {
	aliases map[string]config.Alias
	header  http.Header
	client  *http.Client
}

// NewOpener creates an Opener. header is sent with every HTTP request.
func NewOpener(aliases map[string]config.Alias, header http.Header, timeout time.Duration) *Opener {
	return &Opener{
		aliases: aliases,
		header:  header,
		client:  &http.Client{Timeout: timeout},
	}
}

// Open starts streaming the file behind url.
func (opener *Opener) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	source, err := opener.NewSource(ctx, url)
	if err != nil {
		return nil, 0, err
	}

	return source.Download(ctx)
}

// NewSource creates a Source based on the URL scheme.
func (opener *Opener) NewSource(ctx context.Context, url string) (Source, error) {
	switch {
	case strings.HasPrefix(url, "s3://"):
		return newS3Object(ctx, url, opener.aliases)
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return newHTTPSource(url, opener.header, opener.client), nil
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s", url)
	}
}

// Store writes data to an s3://alias/key URL.
func (opener *Opener) Store(ctx context.Context, url string, data []byte) error {
	if !strings.HasPrefix(url, "s3://") {
		return fmt.Errorf("unsupported store URL scheme: %s", url)
	}

	object, err := newS3Object(ctx, url, opener.aliases)
	if err != nil {
		return err
	}

	return object.Put(ctx, data)
}
