package job

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"suimei/internal/calendar"
)

const defaultTurnoverTick = time.Hour

type YearNotifier interface {
	NotifyYear(ctx context.Context, year int) error
}

// AnnualTurnover watches for the start of a new solar year (Lichun) and hands the new
// year to its notifier. The first check only records the current year.
type AnnualTurnover struct {
	tracer   trace.Tracer
	logger   *zap.Logger
	oracle   calendar.Oracle
	loc      *time.Location
	notifier YearNotifier
	now      func() time.Time
	tick     time.Duration

	lastYear int
}

type TurnoverOption func(*AnnualTurnover)

func WithTurnoverClock(now func() time.Time) TurnoverOption {
	return func(j *AnnualTurnover) { j.now = now }
}

func WithTurnoverTick(d time.Duration) TurnoverOption {
	return func(j *AnnualTurnover) {
		if d > 0 {
			j.tick = d
		}
	}
}

func NewAnnualTurnover(tracer trace.Tracer, logger *zap.Logger, oracle calendar.Oracle, loc *time.Location, notifier YearNotifier, opts ...TurnoverOption) *AnnualTurnover {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	j := &AnnualTurnover{
		tracer:   tracer,
		logger:   logger,
		oracle:   oracle,
		loc:      loc,
		notifier: notifier,
		now:      time.Now,
		tick:     defaultTurnoverTick,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Start blocks until ctx is cancelled.
func (j *AnnualTurnover) Start(ctx context.Context) {
	if j == nil || j.notifier == nil || j.oracle == nil {
		<-ctx.Done()
		return
	}

	j.logger.Info("annual turnover watcher starting", zap.Duration("tick", j.tick))
	ticker := time.NewTicker(j.tick)
	defer ticker.Stop()

	j.check(ctx)
	for {
		select {
		case <-ctx.Done():
			j.logger.Info("annual turnover watcher stopped")
			return
		case <-ticker.C:
			j.check(ctx)
		}
	}
}

func (j *AnnualTurnover) check(ctx context.Context) {
	if j.tracer != nil {
		var span trace.Span
		ctx, span = j.tracer.Start(ctx, "annual-turnover.check")
		defer span.End()
	}

	now := j.now().In(j.loc)
	m := calendar.Moment{Year: now.Year(), Month: int(now.Month()), Day: now.Day(), Hour: now.Hour(), Minute: now.Minute()}
	res, err := j.oracle.ResolveMonthBranch(ctx, m)
	if err != nil {
		j.logger.Warn("annual turnover check failed", zap.Stringer("moment", m), zap.Error(err))
		return
	}

	year := res.EffectiveYear
	switch {
	case j.lastYear == 0:
		j.lastYear = year
	case year > j.lastYear:
		j.lastYear = year
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("year", year))
		j.logger.Info("solar year turned over", zap.Int("year", year))
		if err := j.notifier.NotifyYear(ctx, year); err != nil {
			j.logger.Warn("annual turnover notification failed", zap.Int("year", year), zap.Error(err))
		}
	}
}
