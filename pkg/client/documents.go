package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// ProgressFunc receives upload progress as a 0-100 percentage.
type ProgressFunc func(percent int)

// ListDocuments returns every document visible to the current user.
func (c *Client) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("list documents request failed: %w", err)
	}

	var result []*models.Document
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// UploadDocument uploads one PDF as a multipart form with fields "title" and
// "file". onProgress, when non-nil, is called with the transferred percentage
// as the request body is consumed; the final call reports 100 only if the
// whole body went out.
func (c *Client) UploadDocument(ctx context.Context, title, filename string, file io.Reader, onProgress ProgressFunc) (*models.Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("failed to write title field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var body io.Reader = &buf
	if onProgress != nil {
		body = &progressReader{r: &buf, total: int64(buf.Len()), report: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/upload", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}

	var result models.Document
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DocumentFileURL returns the URL serving the raw PDF bytes of a document,
// suitable for handing to an embedded viewer.
func (c *Client) DocumentFileURL(id models.DocumentID) string {
	return fmt.Sprintf("%s/documents/%s/file", c.baseURL, id)
}

// FetchDocumentFile downloads the raw PDF bytes of a document.
func (c *Client) FetchDocumentFile(ctx context.Context, id models.DocumentID) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/documents/%s/file", id), nil)
	if err != nil {
		return nil, fmt.Errorf("document file request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apiError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	return data, nil
}

// progressReader reports the running percentage of a fixed-size body as it
// is consumed by the HTTP transport.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.total > 0 {
			p.report(int(p.read * 100 / p.total))
		}
	}
	return n, err
}
