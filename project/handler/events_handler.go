package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chatgpt-slack-bot/project/domain"
	"chatgpt-slack-bot/project/dto"
	"chatgpt-slack-bot/project/infrastructure/httpsec"
	"chatgpt-slack-bot/project/service"
)

// Slack が再送時に付与するヘッダ（値は再送回数）
const retryNumHeader = "X-Slack-Retry-Num"

// EventsHandler は Slack Events API からのイベントを処理します
type EventsHandler struct {
	signingSecret string
	replyService  service.ReplyService
}

// NewEventsHandler はイベントハンドラーを作成します
func NewEventsHandler(signingSecret string, replyService service.ReplyService) *EventsHandler {
	return &EventsHandler{
		signingSecret: signingSecret,
		replyService:  replyService,
	}
}

// ServeHTTP は Slack イベント受信エンドポイントです
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	l := log.With().Str("http_method", r.Method).Str("url_path", r.URL.EscapedPath()).Logger()
	l.Info().Msg("received Slack event request")

	// 署名検証のため生の body を保持する
	body, err := io.ReadAll(r.Body)
	if err != nil {
		l.Warn().Err(err).Msg("failed to read request body")
		http.Error(w, "リクエスト本体の読み込み失敗", http.StatusBadRequest)
		return
	}
	l.Debug().RawJSON("body", jsonOrNull(body)).Send()

	// Slack は 3 秒で切断して再送してくるが、切断後も返信処理は最後まで続ける
	ctx := l.WithContext(context.WithoutCancel(r.Context()))

	challenge, err := h.handle(ctx, r.Header, body)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			l.Error().Err(err).Msg("event handling failed")
		} else {
			l.Warn().Err(err).Int("status", status).Msg("event rejected")
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(challenge))
}

// handle は検証 → フィルタ → 返信の順に処理し、応答 body（challenge の値）を返します
// 署名検証に失敗した場合は外部 API を一切呼ばずにエラーを返します
func (h *EventsHandler) handle(ctx context.Context, header http.Header, body []byte) (string, error) {
	l := zerolog.Ctx(ctx)

	if err := httpsec.VerifySlackSignature(h.signingSecret, header, body); err != nil {
		return "", err
	}

	var req dto.SlackEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", fmt.Errorf("%w: JSON パース失敗: %v", domain.ErrInvalid, err)
	}

	// 再送は処理済みとみなして無視
	if retry := header.Get(retryNumHeader); retry != "" {
		l.Info().Str("retry_num", retry).Msg("ignoring retried event delivery")
		return req.Challenge, nil
	}

	// url_verification など event を含まないリクエスト
	if req.Event == nil {
		l.Info().Str("type", req.Type).Msg("ignoring request without event")
		return req.Challenge, nil
	}

	// Bot 自身のメッセージや bot_message は無視（自分の返信に反応しないため）
	if req.Event.IsFromBot() {
		l.Info().Str("bot_id", req.Event.BotID).Msg("ignoring bot message")
		return req.Challenge, nil
	}

	msg := &domain.Message{
		ChannelID: req.Event.Channel,
		Text:      req.Event.Text,
		MessageTS: req.Event.Timestamp,
		ThreadTS:  req.Event.ThreadTs,
	}
	if err := h.replyService.OnMessage(ctx, msg); err != nil {
		return "", err
	}

	return req.Challenge, nil
}

// statusFor はエラー種別を HTTP ステータスコードに変換します
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// jsonOrNull は body が JSON でない場合にログが壊れないようにします
func jsonOrNull(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	return []byte("null")
}
