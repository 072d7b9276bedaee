package httpsec

import (
	"fmt"
	"net/http"

	"github.com/slack-go/slack"

	"chatgpt-slack-bot/project/domain"
)

// VerifySlackSignature は Slack からのリクエストの署名を検証します
// X-Slack-Signature ヘッダと X-Slack-Request-Timestamp ヘッダを確認し、
// 改ざんやリプレイ攻撃（5分以上ずれたタイムスタンプ）から保護します
func VerifySlackSignature(signingSecret string, header http.Header, body []byte) error {
	if signingSecret == "" {
		return fmt.Errorf("%w: signing secret is not configured", domain.ErrInvalidSignature)
	}

	// ヘッダ欠落・タイムスタンプ期限切れはここで弾かれる
	sv, err := slack.NewSecretsVerifier(header, signingSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	if _, err := sv.Write(body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	// 定時間比較（hmac.Equal）
	if err := sv.Ensure(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	return nil
}
