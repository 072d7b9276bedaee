package config

import (
	"context"
	"errors"
	"fmt"

	env "github.com/netflix/go-env"

	"chatgpt-slack-bot/project/domain"
)

// Config は環境変数から読み込まれるアプリケーション設定を表します
type Config struct {
	// 基本設定（空なら Secret Manager を使わない）
	GcpProject string `env:"GCP_PROJECT"`

	// Slack API設定
	SlackBotToken      string `env:"SLACK_BOT_TOKEN"`
	SlackSigningSecret string `env:"SLACK_SIGNING_SECRET"`

	// OpenAI API設定
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`
	CompletionModel string `env:"OPENAI_COMPLETION_MODEL,default=text-davinci-003"`

	// Secret Manager 上のシークレット名
	SecretNameSlackBotToken      string `env:"SECRET_NAME_SLACK_BOT_TOKEN,default=slack-bot-token"`
	SecretNameSlackSigningSecret string `env:"SECRET_NAME_SLACK_SIGNING_SECRET,default=slack-signing-secret"`
	SecretNameOpenAIAPIKey       string `env:"SECRET_NAME_OPENAI_API_KEY,default=openai-api-key"`
}

// SecretGetter はシークレット名から値を取得します（secret.Manager が実装）
type SecretGetter interface {
	GetSecret(ctx context.Context, secretName string) (string, error)
}

// NewConfig は環境変数から設定を読み込み、Config構造体を返します
func NewConfig() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config: 環境変数の読み込み失敗: %w", err)
	}
	return &cfg, nil
}

// ResolveSecrets は環境変数で未設定のシークレットを Secret Manager から補完します
// Secret Manager に存在しないシークレットは空のまま残し、Validate で検出します
func (c *Config) ResolveSecrets(ctx context.Context, sg SecretGetter) error {
	targets := []struct {
		name  string
		value *string
	}{
		{c.SecretNameSlackBotToken, &c.SlackBotToken},
		{c.SecretNameSlackSigningSecret, &c.SlackSigningSecret},
		{c.SecretNameOpenAIAPIKey, &c.OpenAIAPIKey},
	}

	for _, t := range targets {
		if *t.value != "" {
			continue
		}
		v, err := sg.GetSecret(ctx, t.name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return fmt.Errorf("config: %s 取得失敗: %w", t.name, err)
		}
		*t.value = v
	}

	return nil
}

// Validate は必須のシークレットがすべて揃っているかを検証します
func (c *Config) Validate() error {
	if c.SlackBotToken == "" {
		return fmt.Errorf("%w: SLACK_BOT_TOKEN is not set", domain.ErrInvalid)
	}
	if c.SlackSigningSecret == "" {
		return fmt.Errorf("%w: SLACK_SIGNING_SECRET is not set", domain.ErrInvalid)
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrInvalid)
	}
	return nil
}
