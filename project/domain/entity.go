package domain

import (
	"fmt"
	"strings"
)

// 返信対象の Slack メッセージ（1 リクエストの間だけ存在する）
type Message struct {
	// ChannelID はメッセージが投稿されたチャンネルのID
	ChannelID string

	// Text はメッセージ本文（メンション記法を含む場合がある）
	Text string

	// MessageTS はメッセージ自身のタイムスタンプ
	MessageTS string

	// ThreadTS は親スレッドのタイムスタンプ。スレッド外なら空
	ThreadTS string
}

// ThreadAnchor は返信先スレッドのタイムスタンプを返します
// スレッド内なら ThreadTS、そうでなければメッセージ自身の TS を起点に新しいスレッドを作ります
func (m Message) ThreadAnchor() string {
	if m.ThreadTS != "" {
		return m.ThreadTS
	}
	return m.MessageTS
}

// Validate はMessageの必須項目を検証します
func (m Message) Validate() error {
	if strings.TrimSpace(m.ChannelID) == "" {
		return fmt.Errorf("%w: ChannelIDは必須項目です", ErrInvalid)
	}
	if strings.TrimSpace(m.ThreadAnchor()) == "" {
		return fmt.Errorf("%w: MessageTSまたはThreadTSは必須項目です", ErrInvalid)
	}
	return nil
}
