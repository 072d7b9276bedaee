package openai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"chatgpt-slack-bot/project/domain"
)

const (
	// DefaultModel は補完に使うモデルの既定値
	DefaultModel = openai.GPT3TextDavinci003

	temperature = 0.5
	maxTokens   = 2048
)

// CompletionClient は service.CompletionPort の OpenAI 実装です
type CompletionClient struct {
	cli   *openai.Client
	model string
}

// NewCompletionClient は OpenAI クライアントを初期化します
// baseURL が空の場合は公式エンドポイントを使います
func NewCompletionClient(apiKey, baseURL, model string) *CompletionClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}

	return &CompletionClient{
		cli:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// CreateCompletion は prompt の続きを生成し、最初の候補のテキストを返します
func (cc *CompletionClient) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := cc.cli.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       cc.model,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: 補完リクエスト失敗 (model=%s): %w", cc.model, err)
	}

	zerolog.Ctx(ctx).Debug().Str("id", resp.ID).Int("choices", len(resp.Choices)).
		Int("total_tokens", resp.Usage.TotalTokens).Msg("completion API response")

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w (model=%s)", domain.ErrEmptyCompletion, cc.model)
	}

	return resp.Choices[0].Text, nil
}
