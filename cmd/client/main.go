// math-helper 는 AI helper 채팅과 기사 목록을 터미널에서 보여주는 클라이언트다.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"math-helper/cmd/client/httpclient"
	"math-helper/cmd/client/session"
	"math-helper/cmd/internal/logger"
	"math-helper/config"
)

type globalOptions struct {
	apiURL   string
	logLevel string
	timeout  time.Duration
}

// app 은 하위 명령이 공유하는 설정과 자원이다.
type app struct {
	cfg        config.AppConfig
	store      *session.SQLiteStore
	httpClient *http.Client
	closeLog   func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "math-helper",
		Short: "Matematik yordamchi: AI helper bilan suhbat va maqolalar",
		Long: `math-helper talks to the AI helper API from the terminal.

Without a subcommand it opens the chat view. The chat needs an access token,
saved with "math-helper login --token <TOKEN>".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "base URL of the remote API (overrides api_base_url / API_URL)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.DurationVar(&opts.timeout, "timeout", 0, "deadline for each network call (e.g. 10s)")

	root.AddCommand(
		newChatCmd(opts),
		newArticlesCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
	)
	return root
}

// setup 은 설정을 읽고 플래그를 덮어쓴 뒤, 로그 파일과 토큰 저장소를 연다.
func setup(opts *globalOptions) (*app, error) {
	cfg, err := config.Load(config.GetBasePath())
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.APIBaseURL = opts.apiURL
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.timeout > 0 {
		cfg.RequestTimeout = opts.timeout
	}

	closeLog := func() error { return nil }
	if cfg.Logging.File != "" {
		closeLog, err = logger.InitFile(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Init(cfg.Logging.Level, os.Stderr)
	}
	logger.SetServiceName("math-helper")

	store, err := session.OpenSQLite(cfg.CredentialStorePath)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		store:      store,
		httpClient: httpclient.New(httpclient.Config{Timeout: cfg.RequestTimeout}),
		closeLog:   closeLog,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.ErrorWithFields("failed to close credential store", logger.Fields{"error": err.Error()})
	}
	_ = a.closeLog()
}
