package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/urfave/cli/v3"

	"chatgpt-slack-bot/project/handler"
	"chatgpt-slack-bot/project/infrastructure/config"
	"chatgpt-slack-bot/project/infrastructure/openai"
	"chatgpt-slack-bot/project/infrastructure/secret"
	"chatgpt-slack-bot/project/infrastructure/slack"
	"chatgpt-slack-bot/project/service"
)

const (
	readTimeout     = 10 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cmd := &cli.Command{
		Name:  "chatgpt-slack-bot",
		Usage: "Reply to Slack messages in thread with text generated by the OpenAI completions API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "human-readable console logs",
			},
			&cli.StringFlag{
				Name:    "port",
				Usage:   "HTTP port for the Slack events webhook",
				Value:   "8080",
				Sources: cli.EnvVars("PORT"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	initLog(cmd.Bool("dev"))

	// ローカル開発用の .env（存在しなければ無視）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env 読み込み失敗: %w", err)
	}

	// 1. 設定を読み込む
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	// GCP_PROJECT があれば未設定のシークレットを Secret Manager から補完
	if cfg.GcpProject != "" {
		secretMgr, err := secret.NewManager(ctx, cfg.GcpProject)
		if err != nil {
			return err
		}
		defer secretMgr.Close()

		if err := cfg.ResolveSecrets(ctx, secretMgr); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// 2. 外部 API クライアントはプロセス起動時に 1 度だけ作成して共有する
	slackClient := slack.NewSlackClient(cfg.SlackBotToken)
	completionClient := openai.NewCompletionClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.CompletionModel)

	// 3. サービス層を初期化
	replyService := service.NewReplyService(completionClient, slackClient)

	// 4. HTTP ハンドラーを設定
	mux := http.NewServeMux()

	// Slack イベント受信
	mux.Handle("POST /slack/events", handler.NewEventsHandler(cfg.SlackSigningSecret, replyService))

	// ヘルスチェック
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 5. サーバー起動
	server := &http.Server{
		Addr:        net.JoinHostPort("", cmd.String("port")),
		Handler:     mux,
		ReadTimeout: readTimeout,
	}

	return serve(ctx, server)
}

// serve は SIGINT/SIGTERM を受けるまで HTTP サーバーを動かします
// 停止時は処理中のリクエスト（補完待ちなど）の完了を待ちます
func serve(ctx context.Context, server *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Msg("HTTP server error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// initLog はログ出力を初期化します
// dev モードではコンソール向けの読みやすい形式、それ以外は JSON を出力します
func initLog(devMode bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	if !devMode {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05.000",
	}).With().Caller().Logger()
}
