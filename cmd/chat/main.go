package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wolfman30/appointment-chat/internal/api/router"
	"github.com/wolfman30/appointment-chat/internal/assistant"
	"github.com/wolfman30/appointment-chat/internal/chat"
	appconfig "github.com/wolfman30/appointment-chat/internal/config"
	"github.com/wolfman30/appointment-chat/internal/observability/metrics"
	"github.com/wolfman30/appointment-chat/internal/ui"
	"github.com/wolfman30/appointment-chat/pkg/logging"
)

var (
	serverFlag  string
	logFileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Terminal front-end for the medical appointment assistant",
	Long: `chat opens one conversation with the appointment assistant service.
Type free-text messages to find and book an appointment slot; when a booking
completes, a confirmation card with the details is shown.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&serverFlag, "server", "", "assistant service base URL (overrides ASSISTANT_URL)")
	rootCmd.Flags().StringVar(&logFileFlag, "log-file", "", "write logs to this file (overrides LOG_FILE)")
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	if serverFlag != "" {
		cfg.AssistantURL = serverFlag
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger := logging.Discard()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = logging.NewWithWriter(cfg.LogLevel, f)
	}

	sessionID := chat.NewSessionID()
	logger.Info("starting appointment chat",
		"env", cfg.Env,
		"assistant_url", cfg.AssistantURL,
		"session_id", sessionID,
	)

	reg := prometheus.NewRegistry()
	chatMetrics := metrics.NewChatMetrics(reg)

	client, err := assistant.New(assistant.Config{
		BaseURL:   cfg.AssistantURL,
		Timeout:   cfg.ChatTimeout,
		Logger:    logger,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		return err
	}

	transcript := chat.NewTranscript(cfg.Greeting)
	confirmations := chat.NewConfirmationHolder()

	coordinator, err := chat.NewCoordinator(chat.Config{
		SessionID:  sessionID,
		Transcript: transcript,
		Client:     client,
		Sink:       confirmations,
		Logger:     logger,
		Metrics:    chatMetrics,
	})
	if err != nil {
		return err
	}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = &http.Server{
			Addr: cfg.MetricsAddr,
			Handler: router.New(&router.Config{
				Logger:         logger,
				MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
				SessionID:      sessionID,
			}),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	program := tea.NewProgram(
		ui.New(coordinator, transcript, confirmations, logger),
		tea.WithAltScreen(),
	)
	_, uiErr := program.Run()

	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(ctx)
	}

	logger.Info("conversation ended", "session_id", sessionID, "messages", transcript.Len())
	return uiErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
