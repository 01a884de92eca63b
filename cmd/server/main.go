package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"suimei/internal/advisor"
	"suimei/internal/bot"
	"suimei/internal/cache"
	"suimei/internal/calendar"
	"suimei/internal/chart"
	"suimei/internal/config"
	"suimei/internal/handler"
	"suimei/internal/job"
	"suimei/internal/logging"
	"suimei/internal/service"
	"suimei/internal/tui"
	"suimei/pkg/tracing"

	_ "suimei/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	newLoggerFunc        = logging.Must
	newRedisFunc         = cache.NewClient
	initTracerFunc       = tracing.InitTracer
	newOpenAIClientFunc  = advisor.NewOpenAIClient
	startTelegramBotFunc = func(token string, charts bot.ChartQuerier, adv bot.Advisor, logger *zap.Logger) *bot.FortuneDispatcher {
		return bot.StartTelegramBot(token, charts, adv, logger)
	}
	startTurnoverFunc      = func(t *job.AnnualTurnover, ctx context.Context) { go t.Start(ctx) }
	newSSHServerFunc       = tui.NewSSHServer
	startSSHServerFunc     = func(srv *ssh.Server) error { return srv.ListenAndServe() }
	shutdownSSHServerFunc  = func(srv *ssh.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	newRouterFunc          = gin.New
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Suimei API
// @version         1.0
// @description     Four-pillar (BaZi) charts, luck pillars and yearly fortune scores.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

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

	oracles := service.CalendarOracles(rdb, cfg.CalendarCacheTTL, cfg.HourPolicy, logger)
	charts := service.NewChartService(tracer, oracles,
		service.WithLogger(logger),
		service.WithHourPolicy(cfg.HourPolicy),
		service.WithPillarCrossCheck(cfg.PillarCrossCheck),
		service.WithLuckCount(cfg.LuckPillarCount),
		service.WithTimelineMaxYears(cfg.TimelineMaxYears),
		service.WithDefaultTimezone(cfg.CalendarTimezone),
		service.WithRenderer(chart.NewRenderer()),
	)

	var llm advisor.LLMClient
	if cfg.OpenAIAPIKey != "" {
		llm = newOpenAIClientFunc(cfg.OpenAIAPIKey)
	}
	adv := advisor.NewAdvisorService(tracer, llm, charts, cfg.OpenAIModel)

	// The turnover job only has someone to notify when the bot is running.
	if dispatcher := startTelegramBotFunc(cfg.TelegramBotToken, charts, adv, logger); dispatcher != nil {
		startAnnualTurnover(ctx, cfg, dispatcher, tracer, logger)
	}

	h := handler.New(tracer, logger, charts, adv)
	r := newRouterFunc()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(otelgin.Middleware(tracing.ServiceName))
	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddr(cfg.Port),
		Handler: r,
	}
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	var sshSrv *ssh.Server
	if cfg.SSHEnabled {
		svc := tui.Services{Charts: charts, Now: time.Now, Timezone: cfg.CalendarTimezone}
		if llm != nil {
			svc.Reading = adv
		}
		sshSrv = startSSH(cfg, svc, logger)
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	logger.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if sshSrv != nil {
		if err := shutdownSSHServerFunc(sshSrv, shutdownCtx); err != nil {
			logger.Warn("ssh server forced to shutdown", zap.Error(err))
		}
	}
	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("server exiting")
}

// startAnnualTurnover polls an uncached oracle: every tick asks about a new minute.
func startAnnualTurnover(ctx context.Context, cfg *config.Config, notifier job.YearNotifier, tracer trace.Tracer, logger *zap.Logger) {
	oracle, err := calendar.NewLunar(cfg.CalendarTimezone)
	if err != nil {
		logger.Warn("annual turnover disabled", zap.Error(err))
		return
	}
	startTurnoverFunc(job.NewAnnualTurnover(tracer, logger, oracle, oracle.Location(), notifier), ctx)
}

func startSSH(cfg *config.Config, svc tui.Services, logger *zap.Logger) *ssh.Server {
	srv, err := newSSHServerFunc(cfg.SSHAddr, cfg.SSHHostKeyPath, svc)
	if err != nil {
		logger.Error("ssh tui disabled", zap.Error(err))
		return nil
	}
	go func() {
		logger.Info("ssh tui listening", zap.String("addr", cfg.SSHAddr))
		if err := startSSHServerFunc(srv); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error("ssh server failed", zap.Error(err))
		}
	}()
	return srv
}

func httpAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return ":" + strconv.Itoa(port)
}
