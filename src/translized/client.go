// Package translized is a minimal client for the Translized REST API.
package translized

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"translized/src/apperr"
)

// TokenHeader carries the project access token on every authenticated request.
const TokenHeader = "api-token"

// Client talks to the Translized API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client. A zero timeout leaves requests unbounded.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ExportAll requests an export of every project locale.
func (client *Client) ExportAll(ctx context.Context, req ExportRequest) ([]LocaleExport, error) {
	var resp exportResponse

	err := client.postJSON(ctx, "export", "/project/exportAll", req.body(), http.StatusOK, &resp)
	if err != nil {
		return nil, err
	}

	return resp.exports(), nil
}

// UploadContent stores a file body and returns the URL it is hosted at.
func (client *Client) UploadContent(ctx context.Context, name, contentType string, body []byte) (string, error) {
	endpoint := client.baseURL + "/upload/" + url.PathEscape(name)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Network("upload", fmt.Errorf("creating request: %w", err))
	}

	httpReq.Header.Set("Content-Type", contentType)

	var resp uploadResponse

	err = client.do(httpReq, "upload", http.StatusCreated, &resp)
	if err != nil {
		return "", err
	}

	if resp.URL == "" {
		return "", apperr.Network("upload", fmt.Errorf("response carries no url"))
	}

	return resp.URL, nil
}

// Import imports a previously uploaded file into one project language.
func (client *Client) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	var resp importResponse

	err := client.postJSON(ctx, "import", "/import", req.body(), http.StatusOK, &resp)
	if err != nil {
		return ImportResult{}, err
	}

	return resp.Result, nil
}

func (client *Client) postJSON(ctx context.Context, op, path string, body any, want int, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return apperr.Network(op, fmt.Errorf("creating request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(TokenHeader, client.token)

	return client.do(httpReq, op, want, out)
}

func (client *Client) do(httpReq *http.Request, op string, want int, out any) error {
	resp, err := client.httpClient.Do(httpReq)
	if err != nil {
		return apperr.Network(op, fmt.Errorf("executing request: %w", err))
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Network(op, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != want {
		return apperr.RemoteRejection(op, resp.StatusCode, errorMessage(data, resp.Status))
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return apperr.Network(op, fmt.Errorf("decoding response: %w", err))
	}

	return nil
}

// errorMessage pulls the "error" field out of a rejection payload.
func errorMessage(data []byte, status string) string {
	var payload struct {
		Error json.RawMessage `json:"error"`
	}

	if json.Unmarshal(data, &payload) != nil || len(payload.Error) == 0 {
		if len(data) > 0 {
			return strings.TrimSpace(string(data))
		}

		return status
	}

	var msg string
	if json.Unmarshal(payload.Error, &msg) == nil {
		return msg
	}

	return string(payload.Error)
}
