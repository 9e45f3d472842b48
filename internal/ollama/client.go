package ollama

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultBaseURL is the local inference endpoint.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "llama3.2"

	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 120 * time.Second

	// cacheableTemperature is the highest temperature at which responses are
	// treated as deterministic enough to cache.
	cacheableTemperature = 0.2
)

// Common errors
var (
	ErrUnavailable   = errors.New("generation service unavailable")
	ErrEmptyPrompt   = errors.New("prompt cannot be empty")
	ErrEmptyResponse = errors.New("generation service returned an empty response")
)

// Options tunes a single generation call.
type Options struct {
	Temperature float64
	TopP        float64
	TopK        int
	NumPredict  int
}

// Service is the generation surface the pipeline stages consume. Any failure
// is treated as non-fatal at the per-record granularity by callers.
type Service interface {
	// Chat sends a prompt through the conversational endpoint.
	Chat(ctx context.Context, prompt string, opts Options) (string, error)

	// Generate sends a prompt through the plain completion endpoint.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Config configures a Client.
type Config struct {
	BaseURL   string
	Model     string
	Timeout   time.Duration
	CacheSize int // 0 disables response caching
}

// Client talks to an Ollama-compatible inference endpoint. Low-temperature
// Generate responses are cached by prompt hash so repeated validation and
// feedback passes over the same bank do not re-pay the model.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	cache      *lru.Cache[string, string]
	retry      RetryConfig
}

// New creates a Client, filling unset fields with defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var cache *lru.Cache[string, string]
	if cfg.CacheSize > 0 {
		cache, _ = lru.New[string, string](cfg.CacheSize)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		retry:      DefaultRetryConfig(),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []chatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Chat sends the prompt through /api/chat and returns the trimmed reply.
func (c *Client) Chat(ctx context.Context, prompt string, opts Options) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	body := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Options:  opts.wire(),
	}

	var parsed chatResponse
	if err := c.post(ctx, "/api/chat", body, &parsed); err != nil {
		return "", err
	}

	reply := strings.TrimSpace(parsed.Message.Content)
	if reply == "" {
		return "", ErrEmptyResponse
	}
	return reply, nil
}

// Generate sends the prompt through /api/generate and returns the trimmed
// response.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	cacheable := c.cache != nil && opts.Temperature <= cacheableTemperature
	key := responseKey(c.model, prompt)
	if cacheable {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
	}

	body := generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Options: opts.wire(),
	}

	var parsed generateResponse
	if err := c.post(ctx, "/api/generate", body, &parsed); err != nil {
		return "", err
	}

	reply := strings.TrimSpace(parsed.Response)
	if reply == "" {
		return "", ErrEmptyResponse
	}

	if cacheable {
		c.cache.Add(key, reply)
	}
	return reply, nil
}

// Models lists the models the endpoint has available. Used as a preflight
// before a long generation run.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tags returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode tags response: %w", err)
	}

	names := make([]string, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// post sends a JSON request with retry and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	raw, err := retryWithBackoff(ctx, c.retry, func() ([]byte, error) {
		return c.doPost(ctx, path, payload)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doPost(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	return raw, nil
}

// wire converts Options to the endpoint's options object, omitting zero
// values so the server's defaults apply.
func (o Options) wire() map[string]interface{} {
	opts := make(map[string]interface{})
	if o.Temperature > 0 {
		opts["temperature"] = o.Temperature
	}
	if o.TopP > 0 {
		opts["top_p"] = o.TopP
	}
	if o.TopK > 0 {
		opts["top_k"] = o.TopK
	}
	if o.NumPredict > 0 {
		opts["num_predict"] = o.NumPredict
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

func responseKey(model, prompt string) string {
	h := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(h[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
