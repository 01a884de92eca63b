package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"suimei/internal/domain"
)

const systemPrompt = `You are a practitioner of Four Pillars (BaZi) astrology.
Write a concise reading in plain language from the chart data you are given.
Cover the day master and its strength, the current luck pillar and the requested year.
Do not invent pillars or scores that are not in the data. Keep it under 250 words.`

var ErrDisabled = errors.New("advisor is disabled")

// LLMClient sends one system and one user message and returns the reply text.
type LLMClient interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

type ChartReader interface {
	ComputeChartView(ctx context.Context, b domain.BirthData) (domain.ChartView, error)
	FortuneAt(ctx context.Context, b domain.BirthData, year int) (domain.TimelineEntryView, error)
}

type AdvisorService struct {
	tracer trace.Tracer
	llm    LLMClient
	charts ChartReader
	model  string
}

func NewAdvisorService(tracer trace.Tracer, llm LLMClient, charts ChartReader, model string) *AdvisorService {
	return &AdvisorService{tracer: tracer, llm: llm, charts: charts, model: model}
}

// Reading interprets the chart of b with year as the focus.
func (s *AdvisorService) Reading(ctx context.Context, b domain.BirthData, year int) (domain.Reading, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.reading")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year), attribute.String("model", s.model))

	if s.llm == nil {
		return domain.Reading{}, ErrDisabled
	}
	chart, err := s.charts.ComputeChartView(ctx, b)
	if err != nil {
		return domain.Reading{}, err
	}
	var fortune *domain.TimelineEntryView
	if entry, err := s.charts.FortuneAt(ctx, b, year); err == nil {
		fortune = &entry
	}

	text, err := s.llm.Complete(ctx, s.model, systemPrompt, BuildPrompt(chart, year, fortune))
	if err != nil {
		span.RecordError(err)
		return domain.Reading{}, fmt.Errorf("advisor completion: %w", err)
	}
	return domain.Reading{Birth: b, Year: year, Text: strings.TrimSpace(text), Model: s.model}, nil
}

// BuildPrompt renders the chart facts the model is allowed to draw on.
func BuildPrompt(chart domain.ChartView, year int, fortune *domain.TimelineEntryView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Birth: %s\n", chart.Birth)
	sb.WriteString("Pillars:")
	for _, p := range chart.Pillars {
		fmt.Fprintf(&sb, " %s=%s", p.Position, p.Pillar.Kanji)
		if p.TenGod != nil {
			fmt.Fprintf(&sb, "(%s)", p.TenGod.Kanji)
		}
	}
	fmt.Fprintf(&sb, "\nDay master: %s, %s (%s)\n", chart.DayMaster, chart.Strength, chart.StrengthKanji)
	sb.WriteString("Favourable:")
	for _, g := range chart.Favorable {
		sb.WriteString(" " + g.Kanji)
	}
	sb.WriteString("\nUnfavourable:")
	for _, g := range chart.Unfavorable {
		sb.WriteString(" " + g.Kanji)
	}
	fmt.Fprintf(&sb, "\nLuck runs %s from age %d\n", chart.Direction, chart.StartAge.Years)
	for _, in := range chart.Interactions {
		fmt.Fprintf(&sb, "Natal %s: %s\n", in.Kind, strings.Join(in.Branches, ""))
	}
	if fortune == nil {
		fmt.Fprintf(&sb, "Year %d: outside the luck pillars\n", year)
		return sb.String()
	}
	fmt.Fprintf(&sb, "Year %d (age %d): annual %s, luck %s %s\n",
		year, fortune.Age, fortune.Annual.Pillar.Kanji, fortune.Luck.Pillar.Kanji, fortune.Luck.Period)
	s := fortune.Scores
	fmt.Fprintf(&sb, "Scores: overall %d (%s), money %d, love %d, work %d, health %d\n",
		s.Overall, s.Level.Kanji, s.Money, s.Love, s.Work, s.Health)
	return sb.String()
}

type openAIClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	return &openAIClient{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (c *openAIClient) Complete(ctx context.Context, model, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
