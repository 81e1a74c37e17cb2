package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// generateOllama posts the prompt to the local generation endpoint with
// streaming disabled and waits for the complete response.
func (c *Client) generateOllama(ctx context.Context, prompt string) (string, error) {
	payload := ollamaGenerateRequest{Model: c.cfg.OllamaModel, Prompt: prompt, Stream: false}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &BackendError{Backend: BackendOllama, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OllamaURL, bytes.NewReader(body))
	if err != nil {
		return "", &BackendError{Backend: BackendOllama, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &BackendError{Backend: BackendOllama, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Backend: BackendOllama, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &BackendError{Backend: BackendOllama, Err: fmt.Errorf("status %d: %s", resp.StatusCode, respBody)}
	}

	var out ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", &BackendError{Backend: BackendOllama, Err: fmt.Errorf("parse response: %w", err)}
	}
	return out.Response, nil
}
