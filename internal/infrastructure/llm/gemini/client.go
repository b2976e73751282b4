// Package gemini classifies employee questions with a Gemini generateContent
// endpoint.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/infrastructure/resilience"
)

const (
	maxResponseBytes = 1 << 20
	answerPath       = "candidates.0.content.parts.0.text"
	operationName    = "gemini.generate_content"
)

type Classifier struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
	logger     *zap.Logger
}

func New(apiURL, apiKey string, timeout time.Duration, executor *resilience.Executor, logger *zap.Logger) *Classifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		apiURL:     strings.TrimSpace(apiURL),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
		logger:     logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

func (c *Classifier) Classify(ctx context.Context, question string) (domain.CanonicalQuery, error) {
	payload := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: buildQueryPrompt(question)}}}},
	}

	var raw []byte
	call := func(ctx context.Context) error {
		var err error
		raw, err = c.postJSON(ctx, payload)
		return err
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, operationName, call, classifyGeminiError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.CanonicalQuery{}, wrapTemporary(err)
	}

	answer, err := extractAnswer(raw)
	if err != nil {
		return domain.CanonicalQuery{}, err
	}
	query := domain.Canonicalize(answer)
	c.logger.Debug("gemini_classified", zap.String("answer", answer), zap.Stringer("kind", query.Kind))
	return query, nil
}

func extractAnswer(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", domain.WrapError(domain.ErrInvalidInput, "parse generateContent response", errors.New("malformed json"))
	}
	result := gjson.GetBytes(raw, answerPath)
	if !result.Exists() || result.Type != gjson.String {
		return "", domain.WrapError(domain.ErrInvalidInput, "parse generateContent response", errors.New("missing candidate text"))
	}
	text := strings.TrimSpace(result.String())
	if text == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "parse generateContent response", errors.New("empty candidate text"))
	}
	return text, nil
}
