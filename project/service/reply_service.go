package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"chatgpt-slack-bot/project/domain"
)

// ReplyService はメッセージを補完 API に渡し、生成結果をスレッドへ返信するサービスです
type ReplyService interface {
	// OnMessage はメッセージ本文から返信を生成してスレッドに投稿します
	// 補完結果が得られなかった場合は投稿せず domain.ErrCompletionUnavailable を返します
	OnMessage(ctx context.Context, msg *domain.Message) error
}

// replyService は ReplyService の実装です
type replyService struct {
	cp CompletionPort
	sp SlackPort
}

// NewReplyService は ReplyService のインスタンスを作成します
func NewReplyService(cp CompletionPort, sp SlackPort) ReplyService {
	return &replyService{
		cp: cp,
		sp: sp,
	}
}

// OnMessage は補完 → 投稿の順に処理します
func (rs *replyService) OnMessage(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("OnMessage: メッセージ検証失敗: %w", err)
	}

	l := zerolog.Ctx(ctx)

	prompt := StripMentions(msg.Text)
	l.Debug().Str("input", prompt).Msg("completion input")

	reply, ok := rs.complete(ctx, prompt)
	if !ok {
		return fmt.Errorf("OnMessage: %w", domain.ErrCompletionUnavailable)
	}

	rs.post(ctx, msg.ChannelID, msg.ThreadAnchor(), reply)
	return nil
}

// complete は補完 API を呼び出します
// エラーはログに残して握りつぶし、ok=false で「結果なし」を表します
func (rs *replyService) complete(ctx context.Context, prompt string) (string, bool) {
	l := zerolog.Ctx(ctx)

	text, err := rs.cp.CreateCompletion(ctx, prompt)
	if err != nil {
		l.Error().Err(err).Msg("completion request failed")
		return "", false
	}

	l.Debug().Str("completion", text).Msg("completion response")
	return text, true
}

// post はスレッドに返信します。失敗してもログに残すだけで呼び出し元には伝えません
func (rs *replyService) post(ctx context.Context, channelID, threadTS, text string) {
	l := zerolog.Ctx(ctx).With().Str("channel", channelID).Str("thread_ts", threadTS).Logger()

	if err := rs.sp.PostThreadMessage(ctx, channelID, threadTS, text); err != nil {
		l.Error().Err(err).Msg("failed to post reply")
		return
	}

	l.Info().Msg("posted reply")
}

// Slack メンション形式: <@USERID> や <@USERID|name>
var mentionPattern = regexp.MustCompile(`<@[^>]*>`)

// StripMentions はテキストからメンション記法を取り除きます
// 除去によって新しいメンションが現れる場合もあるため、変化がなくなるまで繰り返します
func StripMentions(text string) string {
	for {
		stripped := mentionPattern.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}
	return strings.TrimSpace(text)
}
