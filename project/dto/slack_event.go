package dto

// SlackEventRequest は Slack Events API のリクエスト全体を表します
type SlackEventRequest struct {
	Token     string      `json:"token"`
	TeamID    string      `json:"team_id"`
	APIAppID  string      `json:"api_app_id"`
	Event     *SlackEvent `json:"event,omitempty"` // url_verification などでは nil
	Type      string      `json:"type"`            // "event_callback", "url_verification"
	EventID   string      `json:"event_id"`
	EventTime int64       `json:"event_time"`
	Challenge string      `json:"challenge,omitempty"` // URL検証時のみ
}

// SlackEvent は message / app_mention イベントを表します
type SlackEvent struct {
	Type      string `json:"type"`                // "message", "app_mention" など
	User      string `json:"user"`                // メッセージ送信者
	Text      string `json:"text"`                // メッセージ本文
	Channel   string `json:"channel"`             // チャンネルID
	Timestamp string `json:"ts"`                  // メッセージTS
	ThreadTs  string `json:"thread_ts,omitempty"` // スレッドTS（スレッド内の場合）
	BotID     string `json:"bot_id,omitempty"`    // Bot投稿の場合
	SubType   string `json:"subtype,omitempty"`   // "bot_message"など
}

// IsFromBot は Bot 自身（または他の Bot）の投稿かどうかを返します
func (e *SlackEvent) IsFromBot() bool {
	return e.BotID != "" || e.SubType == "bot_message"
}
