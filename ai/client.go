// Package ai wraps the OpenAI-compatible endpoint behind the culinary
// assistant, pairing analysis and encyclopedia generation features.
package ai

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"mise/config"
)

// Client provides access to an OpenAI-compatible endpoint.
type Client struct {
	client   *openai.Client
	model    string
	ttsModel string
	logger   *zap.Logger
}

var (
	defaultClient *Client
	clientErr     error
	clientOnce    sync.Once
	baseLogger    = zap.NewNop()
)

// SetLogger installs the logger used by the lazily created default client.
// Call before the first request; the default is a no-op logger.
func SetLogger(l *zap.Logger) {
	baseLogger = l
}

// Default returns the shared client, creating it from config on first use.
// A missing API key surfaces here as an error, not at boot.
func Default() (*Client, error) {
	clientOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			clientErr = err
			return
		}
		if cfg.AIAPIKey == "" {
			clientErr = fmt.Errorf("AI_API_KEY is not defined in the environment")
			return
		}
		defaultClient = NewClient(cfg.AIAPIKey, cfg.AIEndpoint, cfg.AIModel, cfg.AITTSModel, baseLogger)
	})
	return defaultClient, clientErr
}

func NewClient(apiKey, endpoint, model, ttsModel string, logger *zap.Logger) *Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(endpoint, "/")
	}
	return &Client{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    model,
		ttsModel: ttsModel,
		logger:   logger.Named("ai"),
	}
}

// Complete runs a single-turn chat completion and returns the text content.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.logger.Error("completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	c.logger.Info("completion done",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))
	return resp.Choices[0].Message.Content, nil
}

// CompleteJSON runs a completion expected to yield JSON and unmarshals the
// first balanced JSON value found in the reply into out.
func (c *Client) CompleteJSON(ctx context.Context, system, prompt string, out interface{}) error {
	content, err := c.Complete(ctx, system, prompt)
	if err != nil {
		return err
	}
	return UnmarshalResponse(content, out)
}

// Speak synthesizes text to raw 16-bit 24kHz mono PCM.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	start := time.Now()
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.ttsModel),
		Input:          text,
		Voice:          openai.VoiceNova,
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		c.logger.Error("speech failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, err
	}
	c.logger.Info("speech done",
		zap.Int("bytes", len(audio)),
		zap.Duration("elapsed", time.Since(start)))
	return audio, nil
}
