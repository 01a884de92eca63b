package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"suimei/internal/advisor"
	"suimei/internal/bazi"
	"suimei/internal/domain"
)

const (
	commandTimeout      = 30 * time.Second
	defaultTimelineSpan = 10
	maxReplyLength      = 4000
)

const birthUsage = "YYYY-MM-DD [HH:MM] male|female [Area/City]"

type ChartQuerier interface {
	FortuneQuerier
	ComputeChartView(ctx context.Context, b domain.BirthData) (domain.ChartView, error)
	Annual(ctx context.Context, year int, birth *domain.BirthData) (domain.AnnualView, error)
	RenderTimeline(ctx context.Context, req domain.TimelineRequest) (*domain.ImageData, error)
}

type Advisor interface {
	Reading(ctx context.Context, b domain.BirthData, year int) (domain.Reading, error)
}

// StartTelegramBot registers the chart commands and starts long polling. It returns nil
// when token is empty or the bot cannot be created.
func StartTelegramBot(token string, charts ChartQuerier, adv Advisor, logger *zap.Logger) *FortuneDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if token == "" {
		logger.Info("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Error("failed to create Telegram bot", zap.Error(err))
		return nil
	}

	dispatcher := NewFortuneDispatcher(b, charts, logger)
	cmds := &commands{charts: charts, advisor: adv, subs: dispatcher, logger: logger, now: time.Now}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	b.Handle("/start", func(c tele.Context) error {
		return c.Send(helpText)
	})
	b.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText)
	})
	b.Handle("/chart", cmds.handle(cmds.chart))
	b.Handle("/timeline", cmds.handle(cmds.timeline))
	b.Handle("/year", cmds.handle(cmds.year))
	b.Handle("/reading", cmds.handle(cmds.reading))
	b.Handle("/subscribe", cmds.handle(cmds.subscribe))
	b.Handle("/unsubscribe", cmds.handle(cmds.unsubscribe))

	logger.Info("Telegram bot started")
	go b.Start()
	return dispatcher
}

const helpText = "/chart " + birthUsage + "\n" +
	"/timeline " + birthUsage + " [from] [to]\n" +
	"/year YYYY [" + birthUsage + "]\n" +
	"/reading " + birthUsage + " [year]\n" +
	"/subscribe " + birthUsage + "\n" +
	"/unsubscribe\n" +
	"/ping"

type commandFunc func(ctx context.Context, chatID int64, args []string) (interface{}, error)

type commands struct {
	charts  ChartQuerier
	advisor Advisor
	subs    *FortuneDispatcher
	logger  *zap.Logger
	now     func() time.Time
}

func (cmds *commands) handle(fn commandFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		var chatID int64
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		_ = c.Notify(tele.Typing)
		reply, err := fn(ctx, chatID, c.Args())
		if err != nil {
			cmds.logger.Warn("telegram command failed",
				zap.String("command", c.Text()), zap.Int64("chat_id", chatID), zap.Error(err))
			return c.Send(userMessage(err))
		}
		return c.Send(reply)
	}
}

func (cmds *commands) chart(ctx context.Context, _ int64, args []string) (interface{}, error) {
	b, _, err := parseBirthArgs(args)
	if err != nil {
		return nil, err
	}
	view, err := cmds.charts.ComputeChartView(ctx, b)
	if err != nil {
		return nil, err
	}
	return truncate(domain.FormatChart(view)), nil
}

func (cmds *commands) timeline(ctx context.Context, _ int64, args []string) (interface{}, error) {
	b, rest, err := parseBirthArgs(args)
	if err != nil {
		return nil, err
	}
	from, to, err := parseWindow(rest, cmds.now().Year())
	if err != nil {
		return nil, err
	}
	img, err := cmds.charts.RenderTimeline(ctx, domain.TimelineRequest{Birth: b, StartYear: from, EndYear: to})
	if err != nil {
		return nil, err
	}
	return &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(img.Bytes)),
		Caption: fmt.Sprintf("%s  %d〜%d", b, from, to),
	}, nil
}

func (cmds *commands) year(ctx context.Context, _ int64, args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, usageError("/year YYYY [" + birthUsage + "]")
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, usageError("/year YYYY [" + birthUsage + "]")
	}
	var birth *domain.BirthData
	if len(args) > 1 {
		b, _, err := parseBirthArgs(args[1:])
		if err != nil {
			return nil, err
		}
		birth = &b
	}
	view, err := cmds.charts.Annual(ctx, year, birth)
	if err != nil {
		return nil, err
	}
	return domain.FormatAnnual(view), nil
}

func (cmds *commands) reading(ctx context.Context, _ int64, args []string) (interface{}, error) {
	if cmds.advisor == nil {
		return nil, advisor.ErrDisabled
	}
	b, rest, err := parseBirthArgs(args)
	if err != nil {
		return nil, err
	}
	year := cmds.now().Year()
	if len(rest) > 0 {
		if year, err = strconv.Atoi(rest[0]); err != nil {
			return nil, usageError("/reading " + birthUsage + " [year]")
		}
	}
	r, err := cmds.advisor.Reading(ctx, b, year)
	if err != nil {
		return nil, err
	}
	return truncate(r.Text), nil
}

func (cmds *commands) subscribe(ctx context.Context, chatID int64, args []string) (interface{}, error) {
	b, _, err := parseBirthArgs(args)
	if err != nil {
		return nil, err
	}
	// Compute once so bad birth data is rejected now rather than at the next broadcast.
	if _, err := cmds.charts.ComputeChartView(ctx, b); err != nil {
		return nil, err
	}
	if cmds.subs.Subscribe(chatID, b) {
		return "You will receive your fortune when each new solar year begins.", nil
	}
	return "Subscription updated.", nil
}

func (cmds *commands) unsubscribe(_ context.Context, chatID int64, _ []string) (interface{}, error) {
	if cmds.subs.Unsubscribe(chatID) {
		return "Subscription removed.", nil
	}
	return "This chat has no subscription.", nil
}

type usageError string

func (e usageError) Error() string { return "Usage: " + string(e) }

// parseBirthArgs reads a date, an optional HH:MM time, a gender and an optional IANA
// zone from the front of args. The remaining arguments are returned.
func parseBirthArgs(args []string) (domain.BirthData, []string, error) {
	usage := usageError(birthUsage)
	if len(args) < 2 {
		return domain.BirthData{}, nil, usage
	}

	var b domain.BirthData
	parts := strings.Split(args[0], "-")
	if len(parts) != 3 {
		return domain.BirthData{}, nil, usage
	}
	for i, dst := range []*int{&b.Year, &b.Month, &b.Day} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return domain.BirthData{}, nil, usage
		}
		*dst = n
	}

	rest := args[1:]
	if hh, mm, ok := strings.Cut(rest[0], ":"); ok {
		h, herr := strconv.Atoi(hh)
		m, merr := strconv.Atoi(mm)
		if herr != nil || merr != nil {
			return domain.BirthData{}, nil, usage
		}
		b.Hour, b.Minute = &h, &m
		rest = rest[1:]
	}

	if len(rest) == 0 {
		return domain.BirthData{}, nil, usage
	}
	g, err := domain.ParseGender(rest[0])
	if err != nil {
		return domain.BirthData{}, nil, usage
	}
	b.Gender = g
	rest = rest[1:]

	if len(rest) > 0 && strings.Contains(rest[0], "/") {
		b.Timezone = rest[0]
		rest = rest[1:]
	}
	return b, rest, nil
}

// parseWindow reads optional [from] [to] years. Without them the window is centred on
// current.
func parseWindow(args []string, current int) (int, int, error) {
	usage := usageError("/timeline " + birthUsage + " [from] [to]")
	from, to := current-defaultTimelineSpan/2, current+defaultTimelineSpan/2
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, usage
		}
		from, to = n, n+defaultTimelineSpan
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, usage
		}
		to = n
	}
	return from, to, nil
}

func userMessage(err error) string {
	var usage usageError
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &usage):
		return usage.Error()
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	case errors.Is(err, bazi.ErrInvalidDate):
		return "That date does not exist."
	case errors.Is(err, bazi.ErrOutsideTimeline):
		return "That year is outside the luck pillars of this chart."
	case errors.Is(err, advisor.ErrDisabled):
		return "Advisor not configured. Set OPENAI_API_KEY to enable."
	case errors.Is(err, context.DeadlineExceeded):
		return "That took too long. Please try again."
	default:
		return "Sorry, I'm having trouble right now."
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxReplyLength {
		return s
	}
	return string(r[:maxReplyLength]) + "\n\n[truncated]"
}
