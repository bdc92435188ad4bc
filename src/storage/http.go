package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPSource implements Source for HTTP/HTTPS URLs.
type HTTPSource struct {
	url    string
	header http.Header
	client *http.Client
}

func newHTTPSource(url string, header http.Header, client *http.Client) *HTTPSource {
	return &HTTPSource{
		url:    url,
		header: header,
		client: client,
	}
}

// Download retrieves the file content.
func (httpSource *HTTPSource) Download(ctx context.Context) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpSource.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range httpSource.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := httpSource.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()

		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, resp.ContentLength, nil
}
