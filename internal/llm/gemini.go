package llm

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider is the failover backend. Gemini takes a single prompt, so
// the system instruction and user message are concatenated.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGemini(client *genai.Client, model string) *GeminiProvider {
	return &GeminiProvider{client: client, model: model}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	prompt := system + "\n\n" + user
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](genTemperature),
			MaxOutputTokens: genMaxTokens,
		},
	)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty generation response")
	}
	return text, nil
}
