package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"suimei/internal/cache"
	"suimei/internal/config"
	"suimei/internal/logging"
	mcpserver "suimei/internal/mcp"
	"suimei/internal/service"
	"suimei/pkg/tracing"
)

const defaultMCPHTTPMaxBodyBytes int64 = 1 << 20

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	newLoggerFunc     = logging.Must
	newRedisFunc      = cache.NewClient
	initTracerFunc    = tracing.InitTracer
	newMCPServerFunc  = mcpserver.NewServer
	newMCPHandlerFunc = mcpserver.NewHTTPTransportHandler
	runStdioFunc      = func(ctx context.Context, server *sdkmcp.Server) error {
		return server.Run(ctx, &sdkmcp.StdioTransport{})
	}
	startHTTPServerFunc  = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFn = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	// stdout belongs to the stdio transport; the production logger writes to stderr.
	logger := newLoggerFunc(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer := tracing.Noop()
	if cfg.TracingEnabled {
		var err error
		tp, tracer, err = initTracerFunc(ctx)
		if err != nil {
			log.Fatalf("failed to initialize tracer: %v", err)
		}
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("error shutting down tracer provider", zap.Error(err))
		}
	}()

	rdb, err := newRedisFunc(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Warn("calendar cache disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer func(c *redis.Client) { _ = c.Close() }(rdb)
	}

	charts := service.NewChartService(tracer,
		service.CalendarOracles(rdb, cfg.CalendarCacheTTL, cfg.HourPolicy, logger),
		service.WithLogger(logger),
		service.WithHourPolicy(cfg.HourPolicy),
		service.WithPillarCrossCheck(cfg.PillarCrossCheck),
		service.WithLuckCount(cfg.LuckPillarCount),
		service.WithTimelineMaxYears(cfg.TimelineMaxYears),
		service.WithDefaultTimezone(cfg.CalendarTimezone),
	)

	mcpSrv := newMCPServerFunc(tracer, charts, mcpserver.ServerConfig{
		RequestTimeout: time.Duration(cfg.MCPRequestTimeoutSecs) * time.Second,
	})

	switch strings.ToLower(strings.TrimSpace(cfg.MCPTransport)) {
	case "", "stdio":
		logger.Info("mcp server listening on stdio")
		if err := runStdioFunc(ctx, mcpSrv); err != nil {
			log.Fatalf("mcp stdio server failed: %v", err)
		}
	case "http":
		if err := runHTTPMode(ctx, cancel, cfg, logger, mcpSrv); err != nil {
			log.Fatalf("mcp http server failed: %v", err)
		}
	default:
		log.Fatalf("unsupported MCP_TRANSPORT: %s", cfg.MCPTransport)
	}
}

func runHTTPMode(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, logger *zap.Logger, mcpSrv *sdkmcp.Server) error {
	if !cfg.MCPHTTPEnabled {
		return fmt.Errorf("MCP_HTTP_ENABLED must be true when MCP_TRANSPORT=http")
	}
	if strings.TrimSpace(cfg.MCPAuthToken) == "" {
		return fmt.Errorf("MCP_AUTH_TOKEN is required when MCP_TRANSPORT=http")
	}

	handler := newMCPHandlerFunc(mcpSrv, mcpserver.HTTPHandlerConfig{
		AuthToken:       cfg.MCPAuthToken,
		RateLimitPerMin: cfg.MCPRateLimitPerMin,
		MaxBodyBytes:    defaultMCPHTTPMaxBodyBytes,
	})

	addr := net.JoinHostPort(cfg.MCPHTTPBind, fmt.Sprintf("%d", cfg.MCPHTTPPort))
	srv := &http.Server{Addr: addr, Handler: handler, BaseContext: func(net.Listener) context.Context { return ctx }}

	go func() {
		logger.Info("mcp http server listening", zap.String("addr", addr))
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			logger.Error("mcp http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFn(srv, shutdownCtx); err != nil {
		return fmt.Errorf("mcp server forced to shutdown: %w", err)
	}
	return nil
}
