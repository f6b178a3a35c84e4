package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/bc-mrss/app/api"
	"github.com/lysyi3m/bc-mrss/app/brightcove"
	"github.com/lysyi3m/bc-mrss/app/cfg"
	"github.com/lysyi3m/bc-mrss/app/feed"
	"github.com/lysyi3m/bc-mrss/app/media"
	"github.com/lysyi3m/bc-mrss/app/metrics"
	"github.com/lysyi3m/bc-mrss/app/output"
	"github.com/lysyi3m/bc-mrss/app/pipeline"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg == nil {
		// help requested
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	channel, err := feed.LoadChannel(appCfg.ChannelFile)
	if err != nil {
		slog.Error("Failed to load channel", "path", appCfg.ChannelFile, "error", err)
		os.Exit(1)
	}

	client := brightcove.NewClient(brightcove.Options{
		AccountID:    appCfg.AccountID,
		ClientID:     appCfg.ClientID,
		ClientSecret: appCfg.ClientSecret,
		OAuthURL:     appCfg.OAuthURL,
		CMSBaseURL:   appCfg.CMSURL,
		UserAgent:    appCfg.UserAgent,
		HTTPClient:   brightcove.NewHTTPClient(appCfg.Timeout),
	})

	p, err := pipeline.New(client, media.NewNormalizer(channel.FallbackLink), feed.NewGenerator(channel), appCfg.Limit)
	if err != nil {
		slog.Error("Failed to create pipeline", "error", err)
		os.Exit(1)
	}
	p.WithRecorder(metrics.Recorder{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appCfg.Serve {
		if err := serve(ctx, appCfg, p); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
		return
	}

	var sink pipeline.Sink = output.NewWriterSink(os.Stdout)
	if appCfg.Output != "" {
		sink = output.NewFileSink(appCfg.Output)
	}

	slog.Info("Generating feed", "account", appCfg.AccountID, "limit", appCfg.Limit, "version", appCfg.Version)
	if err := p.Execute(ctx, sink); err != nil {
		// already logged by the pipeline
		os.Exit(1)
	}
}

func serve(ctx context.Context, appCfg *cfg.Cfg, p *pipeline.Pipeline) error {
	server := api.NewServer(api.NewHandler(p, appCfg.Version))

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * appCfg.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", appCfg.Port, "feed", "/feed.xml", "version", appCfg.Version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}
