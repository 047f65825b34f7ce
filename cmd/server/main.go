package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mixaill76/vertex_proxy/internal/auth"
	"github.com/mixaill76/vertex_proxy/internal/backend"
	"github.com/mixaill76/vertex_proxy/internal/chat"
	"github.com/mixaill76/vertex_proxy/internal/config"
	"github.com/mixaill76/vertex_proxy/internal/fail2ban"
	"github.com/mixaill76/vertex_proxy/internal/grpcserver"
	"github.com/mixaill76/vertex_proxy/internal/logger"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
	"github.com/mixaill76/vertex_proxy/internal/proxy"
	"github.com/mixaill76/vertex_proxy/internal/router"
	"github.com/mixaill76/vertex_proxy/internal/startup"
	"google.golang.org/grpc"
)

const defaultConfigPath = "config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Path to .env file (ignored when missing)")
	flag.Parse()

	if err := loadEnvFile(*envFile); err != nil {
		slog.Error("Failed to load env file", "file", *envFile, "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(resolveConfigPath(*configPath))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stdout, cfg.Server.LoggingLevel, cfg.Server.LogFormat)

	log.Info("Starting vertex_proxy",
		"mode", cfg.Server.Mode,
		"logging_level", cfg.Server.LoggingLevel,
		"model", cfg.Vertex.Model,
	)
	config.PrintConfig(log, cfg)

	ctx := context.Background()

	metrics := monitoring.New(cfg.Monitoring.PrometheusEnabled)

	f2b, err := fail2ban.New(cfg.Fail2Ban.MaxAttempts, cfg.Fail2Ban.BanDuration, cfg.Fail2Ban.CacheSize)
	if err != nil {
		log.Error("Failed to initialize fail2ban", "error", err)
		os.Exit(1)
	}
	gate := auth.NewGate(cfg.Server.APIKey, f2b, metrics, log)

	httpClient, err := auth.NewVertexHTTPClient(ctx, cfg.Vertex.CredentialsFile, cfg.Vertex.CredentialsJSON, log)
	if err != nil {
		log.Error("Failed to load Vertex credentials", "error", err)
		os.Exit(1)
	}

	startup.ValidateVertexCredentialsAtStartup(ctx, cfg, log)

	vertexClient, err := backend.NewVertexClient(ctx, cfg.Vertex, httpClient, log)
	if err != nil {
		log.Error("Failed to create Vertex AI client", "error", err)
		os.Exit(1)
	}

	service := chat.NewService(vertexClient, metrics, log)

	var (
		httpServer *http.Server
		grpcServer *grpc.Server
	)
	errChan := make(chan error, 2)

	if cfg.ServesHTTP() {
		prx := proxy.New(service, gate, log, metrics, cfg.Server.MaxBodySizeMB, cfg.Server.RequestTimeout, cfg.Server.TrustForwardedHeaders)
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           router.New(prx, &cfg.Monitoring, log),
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		}

		go func() {
			log.Info("HTTP server starting", "port", cfg.Server.Port)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	if cfg.ServesGRPC() {
		grpcServer = grpcserver.New(service, gate, metrics, log, grpcserver.Options{
			MaxRecvMsgSizeMB: cfg.Server.MaxBodySizeMB,
			RequestTimeout:   cfg.Server.RequestTimeout,
		})

		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
		if err != nil {
			log.Error("Failed to listen for gRPC", "port", cfg.Server.GRPCPort, "error", err)
			os.Exit(1)
		}

		go func() {
			log.Info("gRPC server starting", "port", cfg.Server.GRPCPort)
			if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errChan <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigChan:
		log.Info("Received signal", "signal", sig.String())
	case err := <-errChan:
		log.Error("Server failed", "error", err)
		exitCode = 1
	}

	log.Info("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx, httpServer, grpcServer); err != nil {
		log.Error("Servers forced to shutdown", "error", err)
		exitCode = 1
	} else {
		log.Info("Server shutdown complete")
	}

	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}

// loadEnvFile loads variables from path without overriding ones already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// resolveConfigPath falls back to environment-only configuration when the
// default config file does not exist. An explicitly named file must exist.
func resolveConfigPath(path string) string {
	if path != defaultConfigPath {
		return path
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}

// shutdown drains both servers in parallel. gRPC streams that outlive ctx are
// cut off with Stop.
func shutdown(ctx context.Context, httpServer *http.Server, grpcServer *grpc.Server) error {
	var (
		wg      sync.WaitGroup
		httpErr error
	)

	if httpServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			httpErr = httpServer.Shutdown(ctx)
		}()
	}

	if grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stopped := make(chan struct{})
			go func() {
				grpcServer.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
			case <-ctx.Done():
				grpcServer.Stop()
			}
		}()
	}

	wg.Wait()
	return httpErr
}
