package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client generates text from a single prompt.
type Client interface {
	// GenerateJSON asks for an application/json response and returns the raw text.
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
	Close() error
}

type client struct {
	log     *logger.Logger
	genai   *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := gc.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.ResponseMIMEType = "application/json"

	return &client{
		log:     log.With("client", "gemini", "model", cfg.Model),
		genai:   gc,
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

func (c *client) Close() error {
	return c.genai.Close()
}

func (c *client) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Shallow copy so concurrent callers do not share the instruction field.
	model := *c.model
	if strings.TrimSpace(system) != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}
	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	text, err := textOf(resp)
	if err != nil {
		return "", err
	}
	c.log.Debug("Gemini response", "latency_ms", time.Since(start).Milliseconds(), "chars", len(text))
	return text, nil
}

func textOf(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return sb.String(), nil
}
