package domain

import "errors"

// ドメインエラー定義
var (
	// ErrInvalid は不正な値が設定された場合のエラー
	ErrInvalid = errors.New("ドメイン: 不正な値です")

	// ErrNotFound は要求されたリソースが見つからない場合のエラー
	ErrNotFound = errors.New("ドメイン: リソースが見つかりません")

	// ErrInvalidSignature は Slack リクエストの署名検証に失敗した場合のエラー
	ErrInvalidSignature = errors.New("ドメイン: 署名が不正です")

	// ErrEmptyCompletion は補完 API が choices を 1 件も返さなかった場合のエラー
	ErrEmptyCompletion = errors.New("ドメイン: 補完結果が空です")

	// ErrCompletionUnavailable は補完結果が得られず返信できなかった場合のエラー
	ErrCompletionUnavailable = errors.New("ドメイン: 補完結果を取得できませんでした")
)
