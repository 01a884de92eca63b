package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"suimei/internal/bazi"
	"suimei/internal/calendar"
	"suimei/internal/domain"
)

const (
	defaultTimelineMaxYears = 120
	// unknownTimeHour is the civil hour used for calendar lookups when the birth time is
	// not known.
	unknownTimeHour = 12
)

// OracleFactory returns the calendar oracle for an IANA time zone.
type OracleFactory func(tz string) (calendar.Oracle, error)

type TimelineRenderer interface {
	RenderTimeline(view domain.TimelineView, markYear int) (*domain.ImageData, error)
}

type ChartService struct {
	tracer     trace.Tracer
	logger     *zap.Logger
	oracles    OracleFactory
	defaultTZ  string
	hourPolicy bazi.HourPolicy
	luckCount  int
	maxYears   int
	crossCheck bool
	renderer   TimelineRenderer
	now        func() time.Time
	mu         sync.Mutex
	oracleByTZ map[string]calendar.Oracle
}

type ChartOption func(*ChartService)

func WithLogger(logger *zap.Logger) ChartOption {
	return func(s *ChartService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithHourPolicy(p bazi.HourPolicy) ChartOption {
	return func(s *ChartService) { s.hourPolicy = p }
}

func WithLuckCount(n int) ChartOption {
	return func(s *ChartService) { s.luckCount = n }
}

func WithTimelineMaxYears(n int) ChartOption {
	return func(s *ChartService) { s.maxYears = n }
}

func WithDefaultTimezone(tz string) ChartOption {
	return func(s *ChartService) { s.defaultTZ = tz }
}

// WithPillarCrossCheck asks oracles that can resolve pillars directly to do so. Their
// answer is trusted; a disagreement with the engine's own resolution is logged.
func WithPillarCrossCheck(enabled bool) ChartOption {
	return func(s *ChartService) { s.crossCheck = enabled }
}

func WithRenderer(r TimelineRenderer) ChartOption {
	return func(s *ChartService) { s.renderer = r }
}

// WithClock sets the clock used to mark the current year on rendered timelines.
func WithClock(now func() time.Time) ChartOption {
	return func(s *ChartService) { s.now = now }
}

func NewChartService(tracer trace.Tracer, oracles OracleFactory, opts ...ChartOption) *ChartService {
	s := &ChartService{
		tracer:     tracer,
		logger:     zap.NewNop(),
		oracles:    oracles,
		defaultTZ:  calendar.DefaultTimezone,
		luckCount:  bazi.DefaultLuckCount,
		maxYears:   defaultTimelineMaxYears,
		now:        time.Now,
		oracleByTZ: make(map[string]calendar.Oracle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxYears is the widest timeline window the service accepts.
func (s *ChartService) MaxYears() int { return s.maxYears }

// ComputeChart resolves the calendar facts for b and runs the engine on them.
func (s *ChartService) ComputeChart(ctx context.Context, b domain.BirthData) (*bazi.Chart, error) {
	ctx, span := s.tracer.Start(ctx, "chart-service.compute")
	defer span.End()
	span.SetAttributes(attribute.String("birth", b.String()))

	chart, err := s.computeChart(ctx, b)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return chart, nil
}

func (s *ChartService) ComputeChartView(ctx context.Context, b domain.BirthData) (domain.ChartView, error) {
	chart, err := s.ComputeChart(ctx, b)
	if err != nil {
		return domain.ChartView{}, err
	}
	return domain.NewChartView(b, chart), nil
}

func (s *ChartService) computeChart(ctx context.Context, b domain.BirthData) (*bazi.Chart, error) {
	if s.oracles == nil {
		return nil, fmt.Errorf("chart service is not fully initialized")
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !bazi.ValidDate(b.Year, b.Month, b.Day) {
		return nil, fmt.Errorf("%w: %04d-%02d-%02d", bazi.ErrInvalidDate, b.Year, b.Month, b.Day)
	}

	tz := b.Timezone
	if tz == "" {
		tz = s.defaultTZ
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, &domain.ValidationError{Field: "timezone", Message: err.Error()}
	}
	oracle, err := s.oracleFor(tz)
	if err != nil {
		return nil, err
	}

	m := calendar.Moment{Year: b.Year, Month: b.Month, Day: b.Day, Hour: unknownTimeHour}
	if b.Hour != nil {
		m.Hour = *b.Hour
		if b.Minute != nil {
			m.Minute = *b.Minute
		}
	}

	res, err := oracle.ResolveMonthBranch(ctx, m)
	if err != nil {
		return nil, s.calendarFailure("resolve month branch", m, err)
	}
	next, err := oracle.NextTransition(ctx, m)
	if err != nil {
		return nil, s.calendarFailure("next transition", m, err)
	}
	prev, err := oracle.PrevTransition(ctx, m)
	if err != nil {
		return nil, s.calendarFailure("previous transition", m, err)
	}

	in := bazi.Input{
		Year:       b.Year,
		Month:      b.Month,
		Day:        b.Day,
		Hour:       b.Hour,
		Minute:     b.Minute,
		Gender:     bazi.Male,
		HourPolicy: s.hourPolicy,
		LuckCount:  s.luckCount,
	}
	if b.Gender == domain.GenderFemale {
		in.Gender = bazi.Female
	}
	facts := bazi.CalendarFacts{
		MonthBranch:   res.MonthBranch,
		EffectiveYear: res.EffectiveYear,
		Birth:         m.In(loc),
		Next:          next.At,
		Prev:          prev.At,
	}

	if s.crossCheck {
		if src, ok := oracle.(calendar.PillarSource); ok {
			pillars, err := src.FourPillars(ctx, m, b.HasTime())
			if err != nil {
				return nil, s.calendarFailure("four pillars", m, err)
			}
			s.comparePillars(b, res, pillars)
			facts.Pillars = &pillars
		}
	}

	return bazi.Compute(in, facts)
}

func (s *ChartService) comparePillars(b domain.BirthData, res calendar.Resolution, source bazi.FourPillars) {
	own, err := bazi.ResolvePillars(bazi.PillarInput{
		Year:          b.Year,
		Month:         b.Month,
		Day:           b.Day,
		Hour:          b.Hour,
		MonthBranch:   res.MonthBranch,
		EffectiveYear: res.EffectiveYear,
		Policy:        s.hourPolicy,
	})
	if err != nil {
		s.logger.Warn("engine pillar resolution failed during cross-check", zap.String("birth", b.String()), zap.Error(err))
		return
	}
	if !own.Equal(source) {
		s.logger.Warn("pillar source disagrees with engine",
			zap.String("birth", b.String()),
			zap.Stringers("source", source.All()),
			zap.Stringers("engine", own.All()),
		)
	}
}

func (s *ChartService) oracleFor(tz string) (calendar.Oracle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.oracleByTZ[tz]; ok {
		return o, nil
	}
	o, err := s.oracles(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: oracle for %s: %w", bazi.ErrCalendarResolution, tz, err)
	}
	s.oracleByTZ[tz] = o
	return o, nil
}

func (s *ChartService) calendarFailure(op string, m calendar.Moment, err error) error {
	s.logger.Warn("calendar lookup failed", zap.String("op", op), zap.Stringer("moment", m), zap.Error(err))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s for %s: %w", op, m, err)
}

// Timeline scores every year of req's window against the birth chart.
func (s *ChartService) Timeline(ctx context.Context, req domain.TimelineRequest) (domain.TimelineView, error) {
	ctx, span := s.tracer.Start(ctx, "chart-service.timeline")
	defer span.End()
	span.SetAttributes(attribute.Int("start_year", req.StartYear), attribute.Int("end_year", req.EndYear))

	if err := req.Validate(s.maxYears); err != nil {
		return domain.TimelineView{}, err
	}
	chart, err := s.ComputeChart(ctx, req.Birth)
	if err != nil {
		return domain.TimelineView{}, err
	}
	entries, err := bazi.ScoreTimeline(chart, req.StartYear, req.EndYear)
	if err != nil {
		span.RecordError(err)
		return domain.TimelineView{}, err
	}
	return domain.NewTimelineView(req, entries), nil
}

// FortuneAt scores a single year. It fails with bazi.ErrOutsideTimeline when the year
// precedes birth or falls outside the luck pillars.
func (s *ChartService) FortuneAt(ctx context.Context, b domain.BirthData, year int) (domain.TimelineEntryView, error) {
	ctx, span := s.tracer.Start(ctx, "chart-service.fortune-at")
	defer span.End()

	chart, err := s.ComputeChart(ctx, b)
	if err != nil {
		return domain.TimelineEntryView{}, err
	}
	entry, err := bazi.FortuneAt(chart, year)
	if err != nil {
		return domain.TimelineEntryView{}, err
	}
	view := domain.NewTimelineView(domain.TimelineRequest{Birth: b, StartYear: year, EndYear: year}, []bazi.TimelineEntry{entry})
	return view.Entries[0], nil
}

// Annual returns the pillar governing year. With birth data the pillar is also
// classified against the day master.
func (s *ChartService) Annual(ctx context.Context, year int, birth *domain.BirthData) (domain.AnnualView, error) {
	ctx, span := s.tracer.Start(ctx, "chart-service.annual")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year))

	if birth == nil {
		return domain.NewAnnualView(year), nil
	}
	chart, err := s.ComputeChart(ctx, *birth)
	if err != nil {
		return domain.AnnualView{}, err
	}
	ap, err := bazi.NewAnnualPillar(year, birth.Year, chart.DayMaster())
	if err != nil {
		return domain.AnnualView{}, err
	}
	return domain.NewClassifiedAnnualView(ap), nil
}

// RenderTimeline draws the timeline of req as an image, marking the current year.
func (s *ChartService) RenderTimeline(ctx context.Context, req domain.TimelineRequest) (*domain.ImageData, error) {
	ctx, span := s.tracer.Start(ctx, "chart-service.render-timeline")
	defer span.End()

	if s.renderer == nil {
		return nil, fmt.Errorf("timeline renderer is not configured")
	}
	view, err := s.Timeline(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderTimeline(view, s.now().Year())
}
