package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

const (
	// DefaultBaseURL points at a locally hosted LibreTranslate instance.
	DefaultBaseURL = "http://localhost:5000"

	DefaultSource = "en"
	DefaultTarget = "it"

	defaultTimeout = 30 * time.Second
)

// ErrTranslationFailed wraps any transport or decoding failure.
var ErrTranslationFailed = errors.New("translation failed")

// Translator is the opaque translation collaborator. The pipeline never
// depends on how a translation is produced.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Config configures the HTTP client.
type Config struct {
	BaseURL string
	Source  string
	Target  string
	APIKey  string
	Timeout time.Duration
}

// Client translates text through a LibreTranslate-compatible endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a Client, filling unset fields with defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate translates a single text field.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: c.cfg.Source,
		Target: c.cfg.Target,
		Format: "text",
		APIKey: c.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("%w: status %d: %s", ErrTranslationFailed, resp.StatusCode, raw)
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTranslationFailed, err)
	}
	return parsed.TranslatedText, nil
}

// TranslateRecord translates the question and all options of a record,
// keeping the correct letter unchanged. Any failure returns the original
// record untouched.
func TranslateRecord(ctx context.Context, tr Translator, rec types.QuestionRecord) types.QuestionRecord {
	out := rec.Clone()

	question, err := tr.Translate(ctx, rec.Question)
	if err != nil {
		log.Printf("translation error, keeping original: %v", err)
		return rec
	}
	out.Question = question

	for i, opt := range rec.Options {
		translated, err := tr.Translate(ctx, opt)
		if err != nil {
			log.Printf("translation error, keeping original: %v", err)
			return rec
		}
		out.Options[i] = translated
	}
	return out
}

// TranslateBatch translates records one by one, logging progress. Records
// whose translation fails pass through unchanged.
func TranslateBatch(ctx context.Context, tr Translator, records []types.QuestionRecord) []types.QuestionRecord {
	out := make([]types.QuestionRecord, 0, len(records))
	for i, rec := range records {
		if i%10 == 0 {
			log.Printf("translating question %d/%d", i+1, len(records))
		}
		out = append(out, TranslateRecord(ctx, tr, rec))
	}
	return out
}
