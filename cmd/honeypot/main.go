package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/config"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/honeypot"
	http_server "github.com/ShanawazS-bit/AI-Honeypot/pkg/http"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/media"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/messaging"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/metrics"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/pipeline"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/semantic"
)

const demoFile = "dummy_call.wav"

var logger = logrus.New()

func main() {
	filePath := flag.String("file", "", "Path to a WAV file to simulate (16kHz mono recommended)")
	backend := flag.String("backend", "", "ASR backend to use: vosk or mock (default from env)")
	live := flag.Bool("live", false, "Use live microphone input instead of a file")
	language := flag.String("language", "", "Language code: en, hi, or mix (default from env)")
	serve := flag.Bool("serve", false, "Run the HTTP service layer instead of a simulation")
	flag.Parse()

	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load(logger)
	logger.SetLevel(cfg.LogLevel)
	metrics.Init(logger)

	if *language != "" {
		cfg.Language = *language
	}
	if *backend != "" {
		cfg.UseMockRecognizer = *backend == "mock"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if *serve {
		runServer(ctx, cfg)
		return
	}

	runSimulation(ctx, cfg, *filePath, *live)
}

func runSimulation(ctx context.Context, cfg *config.Config, filePath string, live bool) {
	p, err := pipeline.NewFromConfig(logger, pipeline.Config{
		UseMockRecognizer: cfg.UseMockRecognizer,
		Language:          cfg.Language,
		ModelDir:          cfg.ModelDir,
		ChunkDuration:     cfg.ChunkDuration,
		OpenAIAPIKey:      cfg.OpenAIAPIKey,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to construct detection pipeline")
	}

	publisher := messaging.NewAMQPPublisher(logger, cfg.AMQPUrl, cfg.AMQPQueueName)
	if err := publisher.Connect(); err != nil {
		logger.WithError(err).Warn("AMQP unavailable, continuing without event publishing")
	}
	defer publisher.Close()
	p.AddObserver(publisher.Observer())

	if live {
		if err := p.ProcessMicrophoneSimulation(ctx); err != nil {
			logger.WithError(err).Fatal("Microphone simulation failed")
		}
		return
	}

	if filePath == "" {
		filePath = demoFile
		if _, err := os.Stat(filePath); err != nil {
			logger.WithField("file", filePath).Info("No input file provided, generating demo tone")
			if err := media.GenerateToneFile(filePath, 16000, 440, 10); err != nil {
				logger.WithError(err).Fatal("Failed to generate demo audio")
			}
		}
	}

	if err := p.ProcessFileSimulation(ctx, filePath); err != nil {
		logger.WithError(err).Fatal("File simulation failed")
	}

	logger.WithFields(logrus.Fields{
		"final_phase": p.Phase(),
		"escalated":   p.Escalated(),
	}).Info("Simulation complete")
}

func runServer(ctx context.Context, cfg *config.Config) {
	var encoder semantic.Encoder
	if cfg.OpenAIAPIKey != "" {
		encoder = semantic.NewOpenAIEncoder(cfg.OpenAIAPIKey)
	}
	sem := semantic.NewAnalyzer(logger, encoder)

	var generator honeypot.ReplyGenerator
	if responder := honeypot.NewLLMResponder(logger, cfg.OpenAIAPIKey); responder != nil {
		generator = responder
	}

	hub := http_server.NewEventHub(logger)
	go hub.Run(ctx)

	analyzer := http_server.NewTextAnalyzer(logger, sem, generator)
	server := http_server.NewServer(logger, cfg.HTTPPort, cfg.APIKey, analyzer, hub)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.Start(); err != nil {
		logger.WithError(err).Fatal("HTTP server failed")
	}
}
