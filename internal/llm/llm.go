package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/datagenie/datagenie/internal/config"
	"github.com/datagenie/datagenie/pkg/logger"
	"github.com/datagenie/datagenie/pkg/metrics"
)

// Known backend selectors. "openai" is enumerated but not implemented.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
	BackendAzure  = "azure"
)

// Generator sends one prompt to the configured text-generation backend and
// returns the raw text response.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BackendError reports an unknown, unimplemented, or unreachable backend.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("llm backend %q: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Client dispatches to the backend named in its configuration. The backend
// choice is injected at construction so it is testable; there is no env
// lookup at call time, no retry, and no fallback to another backend.
type Client struct {
	cfg   config.LLMConfig
	http  *http.Client
	azure *openai.Client
}

func NewClient(cfg config.LLMConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	c := &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
	if cfg.Backend == BackendAzure && cfg.Azure.Endpoint != "" {
		acfg := openai.DefaultAzureConfig(cfg.Azure.APIKey, cfg.Azure.Endpoint)
		if cfg.Azure.APIVersion != "" {
			acfg.APIVersion = cfg.Azure.APIVersion
		}
		c.azure = openai.NewClientWithConfig(acfg)
	}
	return c
}

// Generate implements Generator.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := c.generate(ctx, prompt)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.LLMRequests.WithLabelValues(c.cfg.Backend, status).Inc()
	metrics.LLMDuration.WithLabelValues(c.cfg.Backend).Observe(time.Since(start).Seconds())
	logger.Debugf("LLM call backend=%s took %.2fs status=%s", c.cfg.Backend, time.Since(start).Seconds(), status)
	return out, err
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	switch c.cfg.Backend {
	case BackendOllama:
		return c.generateOllama(ctx, prompt)
	case BackendAzure:
		return c.generateAzure(ctx, prompt)
	case BackendOpenAI:
		return "", &BackendError{Backend: c.cfg.Backend, Err: errors.New("openai backend not implemented yet")}
	}
	return "", &BackendError{Backend: c.cfg.Backend, Err: errors.New("unknown llm backend")}
}
