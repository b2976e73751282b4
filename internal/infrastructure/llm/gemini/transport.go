package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "gemini status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("gemini generateContent status: %s", e.Status)
	}
	return fmt.Sprintf("gemini generateContent status: %s: %s", e.Status, e.Body)
}

// endpoint appends the API key as a query parameter, joining with & when the
// configured URL already carries a query string.
func endpoint(apiURL, apiKey string) string {
	sep := "?"
	if strings.Contains(apiURL, "?") {
		sep = "&"
	}
	return apiURL + sep + "key=" + apiKey
}

func (c *Classifier) postJSON(ctx context.Context, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal generateContent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(c.apiURL, c.apiKey), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create generateContent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error renders the request URL, which carries the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.apiURL
		}
		return nil, fmt.Errorf("gemini generateContent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read generateContent response: %w", err)
	}
	return raw, nil
}
