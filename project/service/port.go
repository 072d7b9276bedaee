package service

import "context"

// SlackPort は Slack API 呼び出しのポートです
type SlackPort interface {
	// PostThreadMessage はスレッドにメッセージを投稿します
	PostThreadMessage(ctx context.Context, channelID, threadTS, text string) error
}

// CompletionPort はテキスト補完 API 呼び出しのポートです
type CompletionPort interface {
	// CreateCompletion は prompt の続きを生成し、最初の候補のテキストを返します
	CreateCompletion(ctx context.Context, prompt string) (string, error)
}
