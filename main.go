package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"creditrisk/config"
	chttp "creditrisk/http"
	"creditrisk/logging"
	"creditrisk/ml"
	"creditrisk/monitoring"

	"go.uber.org/zap"
)

func main() {
	configPath := os.Getenv("CREDITRISK_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer closeLog()
	defer logger.Sync()

	// 2. Load the classifier once; the handle is shared read-only from here on
	model, err := ml.LoadModel(cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		logger.Fatal("failed to load model",
			zap.String("type", cfg.Model.Type),
			zap.String("path", cfg.Model.Path),
			zap.Error(err))
	}
	loaded := []zap.Field{zap.String("type", cfg.Model.Type), zap.String("path", cfg.Model.Path)}
	if tree, ok := model.(*ml.DecisionTree); ok {
		loaded = append(loaded, zap.Int("nodes", tree.Size()))
	}
	logger.Info("model loaded", loaded...)

	assessor, err := ml.NewAssessor(model)
	if err != nil {
		logger.Fatal("failed to build assessor", zap.Error(err))
	}
	handler, err := chttp.NewHandler(assessor, monitoring.NewMetrics(), logger)
	if err != nil {
		logger.Fatal("failed to build handler", zap.Error(err))
	}

	// 3. Start HTTP server
	server := chttp.NewServer(chttp.ServerConfig{
		Port:         cfg.Http.Port,
		Timeout:      cfg.Http.Timeout,
		MaxBodyBytes: cfg.Http.MaxBodyBytes,
	}, handler, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("http server stopped", zap.Error(err))
		}
		return
	case <-quit:
	}

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exiting")
}
