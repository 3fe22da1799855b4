package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/danielhkuo/join-helper/cliparse"
	"github.com/danielhkuo/join-helper/controller"
	"github.com/danielhkuo/join-helper/handlers"
	"github.com/danielhkuo/join-helper/lambdafn"
	"github.com/danielhkuo/join-helper/router"
)

func main() {
	var err error

	inLambda := os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg, inLambda)
	slog.SetDefault(logger)

	// Controller client
	client := controller.New(cfg.ControllerURL, cfg.APIToken,
		controller.WithTimeout(cfg.ControllerTimeout))
	joinHandler := handlers.NewJoinHandler(cfg, client, logger)

	if inLambda {
		slog.Info("Starting Lambda function URL handler")
		lambda.Start(lambdafn.New(joinHandler, logger))
		return
	}

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(joinHandler),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ControllerTimeout+5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "controller", cfg.ControllerURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// newLogger picks JSON under Lambda so CloudWatch gets structured records
func newLogger(cfg cliparse.Config, inLambda bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	format := cfg.LogFormat
	if format == "" {
		format = "text"
		if inLambda {
			format = "json"
		}
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
