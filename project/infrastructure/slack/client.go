package slack

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// SlackClient は service.SlackPort の Slack SDK 実装です
// プロセス起動時に 1 度だけ作成し、リクエスト間で共有します（読み取り専用）
type SlackClient struct {
	cli *slack.Client
}

// NewSlackClient は Bot トークンから Slack クライアントを初期化します
// opts はテスト時の API URL 差し替えなどに使います
func NewSlackClient(botToken string, opts ...slack.Option) *SlackClient {
	return &SlackClient{
		cli: slack.New(botToken, opts...),
	}
}

// PostThreadMessage はスレッドに Bot としてメッセージを投稿します
func (sc *SlackClient) PostThreadMessage(ctx context.Context, channelID, threadTS, text string) error {
	channel, ts, err := sc.cli.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(true),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("slack: スレッドメッセージ投稿失敗 (channel=%s, ts=%s): %w", channelID, threadTS, err)
	}

	zerolog.Ctx(ctx).Debug().Str("response_channel", channel).Str("response_ts", ts).
		Msg("chat.postMessage response")
	return nil
}
