package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"suimei/internal/cache"
	"suimei/internal/chart"
	"suimei/internal/config"
	"suimei/internal/domain"
	"suimei/internal/logging"
	"suimei/internal/service"
	"suimei/pkg/tracing"
)

// app holds what the subcommands share once the root command has loaded configuration.
type app struct {
	loadEnv    func(...string) error
	loadConfig func() *config.Config
	newLogger  func(level string) *zap.Logger
	newRedis   func(ctx context.Context, url string, logger *zap.Logger) (*redis.Client, error)
	runProgram func(m tea.Model) error
	now        func() time.Time

	cfg    *config.Config
	logger *zap.Logger
	rdb    *redis.Client
	charts *service.ChartService

	jsonOut bool
}

func newApp() *app {
	return &app{
		loadEnv:    godotenv.Load,
		loadConfig: config.Load,
		newLogger:  logging.Must,
		newRedis:   cache.NewClient,
		runProgram: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
		now: time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "suimei",
		Short:         "Four-pillar (BaZi) charts, luck pillars and yearly fortune scores",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(chartCmd(a), timelineCmd(a), annualCmd(a), tuiCmd(a))
	return root
}

func (a *app) init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_ = a.loadEnv()
	a.cfg = a.loadConfig()
	// Stdout carries command output; the logger stays quiet unless asked.
	level := a.cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	a.logger = a.newLogger(level)

	if a.cfg.RedisURL != "" {
		rdb, err := a.newRedis(ctx, a.cfg.RedisURL, a.logger)
		if err != nil {
			a.logger.Warn("calendar cache disabled", zap.Error(err))
		} else {
			a.rdb = rdb
		}
	}

	_, tracer := tracing.Noop()
	a.charts = service.NewChartService(tracer,
		service.CalendarOracles(a.rdb, a.cfg.CalendarCacheTTL, a.cfg.HourPolicy, a.logger),
		service.WithLogger(a.logger),
		service.WithHourPolicy(a.cfg.HourPolicy),
		service.WithPillarCrossCheck(a.cfg.PillarCrossCheck),
		service.WithLuckCount(a.cfg.LuckPillarCount),
		service.WithTimelineMaxYears(a.cfg.TimelineMaxYears),
		service.WithDefaultTimezone(a.cfg.CalendarTimezone),
		service.WithRenderer(chart.NewRenderer()),
		service.WithClock(a.now),
	)
	return nil
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// print writes v as indented JSON with --json, and text otherwise.
func (a *app) print(w io.Writer, v any, text string) error {
	if !a.jsonOut {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// birthFlags are the birth-data flags shared by chart, timeline and annual.
type birthFlags struct {
	date     string
	clock    string
	gender   string
	timezone string
}

func (f *birthFlags) register(cmd *cobra.Command, required bool) {
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.clock, "time", "t", "", "birth time, HH:MM (omit when unknown)")
	cmd.Flags().StringVarP(&f.gender, "gender", "g", "", "male or female")
	cmd.Flags().StringVar(&f.timezone, "tz", "", "IANA zone of the birth place (default CALENDAR_TIMEZONE)")
	if required {
		_ = cmd.MarkFlagRequired("date")
		_ = cmd.MarkFlagRequired("gender")
	}
}

func (f *birthFlags) set() bool { return f.date != "" }

func (f *birthFlags) birth() (domain.BirthData, error) {
	return domain.ParseBirth(f.date, f.clock, f.gender, f.timezone)
}
