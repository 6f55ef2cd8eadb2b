package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"keywave/internal/capture"
	"keywave/internal/common/fsutil"
	"keywave/internal/config"
	"keywave/internal/httpapi"
	"keywave/internal/hub"
	"keywave/internal/stream"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cfg := config.Config{
		WSAddr:     envOr("KEYWAVE_WS_ADDR", ":8765"),
		HTTPAddr:   envOr("KEYWAVE_HTTP_ADDR", ":8080"),
		StaticDir:  envOr("KEYWAVE_STATIC_DIR", "static"),
		LogLevel:   envOr("KEYWAVE_LOG_LEVEL", "info"),
		SendBuffer: 64,
	}

	root := &cobra.Command{
		Use:           "keywaved",
		Short:         "Broadcast global keyboard input to WebSocket viewers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				fileCfg, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = mergeConfig(cfg, fileCfg, changedFlags(cmd))
			}
			return run(cfg)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "Path to config file (.yaml/.json/.toml)")
	root.Flags().StringVar(&cfg.WSAddr, "ws-addr", cfg.WSAddr, "Event/API listen address")
	root.Flags().StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Static asset listen address")
	root.Flags().StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "Directory of presentation assets")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	root.Flags().IntVar(&cfg.SendBuffer, "send-buffer", cfg.SendBuffer, "Per-subscriber send queue size")
	root.Flags().StringSliceVar(&cfg.AllowedOrigins, "allowed-origins", nil, "Origins allowed to connect (empty allows all)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	return root
}

func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := make(map[string]bool)
	for _, name := range []string{"ws-addr", "http-addr", "static-dir", "log-level", "send-buffer", "allowed-origins"} {
		changed[name] = cmd.Flags().Changed(name)
	}
	return changed
}

// mergeConfig overlays file values onto base, except where the flag was set
// explicitly: explicit flags win over the file, the file wins over defaults.
func mergeConfig(base, file config.Config, changed map[string]bool) config.Config {
	out := base
	if file.WSAddr != "" && !changed["ws-addr"] {
		out.WSAddr = file.WSAddr
	}
	if file.HTTPAddr != "" && !changed["http-addr"] {
		out.HTTPAddr = file.HTTPAddr
	}
	if file.StaticDir != "" && !changed["static-dir"] {
		out.StaticDir = file.StaticDir
	}
	if file.LogLevel != "" && !changed["log-level"] {
		out.LogLevel = file.LogLevel
	}
	if file.SendBuffer != 0 && !changed["send-buffer"] {
		out.SendBuffer = file.SendBuffer
	}
	if len(file.AllowedOrigins) > 0 && !changed["allowed-origins"] {
		out.AllowedOrigins = file.AllowedOrigins
	}
	return out
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}

func run(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)
	httpapi.SetLogger(logger)
	httpapi.SetAllowedOrigins(cfg.AllowedOrigins)

	staticDir, err := fsutil.ExpandHome(cfg.StaticDir)
	if err != nil {
		return fmt.Errorf("static dir: %w", err)
	}
	cfg.StaticDir = staticDir
	if !fsutil.PathExists(cfg.StaticDir) {
		logger.Warn().Str("dir", cfg.StaticDir).Msg("static dir does not exist; assets will 404")
	}

	h := hub.New(logger, cfg.SendBuffer)
	bridge := stream.NewBridge(h, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Capture domain: foreign thread, runs for process lifetime. A failure
	// to acquire the mechanism (missing OS permission) surfaces here once.
	var captureUp atomic.Bool
	captureErr := make(chan error, 1)
	go func() {
		captureUp.Store(true)
		err := bridge.Run(ctx, capture.NewSource())
		captureUp.Store(false)
		captureErr <- err
	}()

	svc := &service{hub: h, started: time.Now(), captureUp: &captureUp}
	apiSrv := &http.Server{Addr: cfg.WSAddr, Handler: httpapi.NewMux(svc)}
	staticSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpapi.NewStaticMux(cfg.StaticDir)}

	srvErr := make(chan error, 2)
	go func() {
		logger.Info().Str("addr", cfg.WSAddr).Msg("event server listening")
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srvErr <- err
		}
	}()
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("dir", cfg.StaticDir).Msg("static server listening")
		if err := staticSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srvErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
		logger.Info().Msg("shutting down")
	case err := <-captureErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("keyboard capture unavailable")
			runErr = err
		}
	case err := <-srvErr:
		logger.Error().Err(err).Msg("server error")
		runErr = err
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("event server shutdown")
	}
	if err := staticSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("static server shutdown")
	}
	h.Close()
	return runErr
}
