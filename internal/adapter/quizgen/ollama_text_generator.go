// Package quizgen adapts a langchaingo LLM client to the domain.TextGenerator
// port. The network call lives here; prompt construction and reply parsing
// stay pure and run on the caller's side of the port.
package quizgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaTextGenerator implements domain.TextGenerator against an Ollama server.
type OllamaTextGenerator struct {
	llm         *ollama.LLM
	timeout     time.Duration
	temperature float64
}

// NewOllamaTextGenerator creates the adapter and its underlying LLM client.
func NewOllamaTextGenerator(cfg config.LLMConfig) (*OllamaTextGenerator, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("LLM server URL cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	logger.Get().Info("Initialized Ollama text generator",
		zap.String("server_url", cfg.ServerURL),
		zap.String("model", cfg.Model))

	return &OllamaTextGenerator{
		llm:         llm,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
	}, nil
}

// GenerateText sends the prompt and returns the raw model reply.
func (g *OllamaTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.llm.Call(ctx, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			l.Error("LLM request timed out", zap.Error(err))
			return "", domain.NewLLMServiceError(err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}

	l.Debug("Received LLM response", zap.Int("length", len(response)))
	return response, nil
}

var _ domain.TextGenerator = (*OllamaTextGenerator)(nil)
