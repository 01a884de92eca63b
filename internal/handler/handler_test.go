package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/trace"

	"suimei/internal/advisor"
	"suimei/internal/bazi"
	"suimei/internal/calendar"
	"suimei/internal/domain"
	"suimei/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const newYearBody = `{"year":1990,"month":1,"day":1,"hour":12,"minute":0,"gender":"male"}`

type stubOracle struct {
	err error
}

func (o stubOracle) ResolveMonthBranch(context.Context, calendar.Moment) (calendar.Resolution, error) {
	return calendar.Resolution{MonthBranch: bazi.Rat, EffectiveYear: 1989}, o.err
}

func (o stubOracle) NextTransition(context.Context, calendar.Moment) (calendar.Transition, error) {
	return calendar.Transition{Name: "小寒", At: time.Date(1990, 1, 5, 14, 31, 0, 0, time.UTC)}, o.err
}

func (o stubOracle) PrevTransition(context.Context, calendar.Moment) (calendar.Transition, error) {
	return calendar.Transition{Name: "大雪", At: time.Date(1989, 12, 7, 3, 19, 0, 0, time.UTC)}, o.err
}

type stubRenderer struct{}

func (stubRenderer) RenderTimeline(view domain.TimelineView, _ int) (*domain.ImageData, error) {
	return &domain.ImageData{MimeType: "image/png", Bytes: []byte{0x89, 0x50, 0x4e, 0x47}}, nil
}

type stubAdvisor struct {
	err error
}

func (a stubAdvisor) Reading(_ context.Context, b domain.BirthData, year int) (domain.Reading, error) {
	if a.err != nil {
		return domain.Reading{}, a.err
	}
	return domain.Reading{Birth: b, Year: year, Text: "steady"}, nil
}

func newTestHandler(oracle calendar.Oracle, adv Advisor) (*Handler, *gin.Engine) {
	tracer := trace.NewNoopTracerProvider().Tracer("handler-test")
	charts := service.NewChartService(tracer,
		func(string) (calendar.Oracle, error) { return oracle, nil },
		service.WithRenderer(stubRenderer{}),
		service.WithTimelineMaxYears(30),
	)
	h := New(tracer, nil, charts, adv)
	router := gin.New()
	h.RegisterRoutes(router)
	return h, router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, router := newTestHandler(stubOracle{}, nil)
	w := do(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || gjson.Get(w.Body.String(), "status").String() != "ok" {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	_, router := newTestHandler(stubOracle{}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected caller request id, got %s", got)
	}
}

func TestPostFortuneSuccess(t *testing.T) {
	_, router := newTestHandler(stubOracle{}, nil)
	w := do(router, http.MethodPost, "/api/fortune", newYearBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	kanji := gjson.Get(body, "pillars.#.pillar.kanji").Array()
	want := []string{"己巳", "丙子", "丙寅", "甲午"}
	if len(kanji) != len(want) {
		t.Fatalf("expected %d pillars, got %s", len(want), body)
	}
	for i, k := range kanji {
		if k.String() != want[i] {
			t.Fatalf("pillar %d: got %s want %s", i, k.String(), want[i])
		}
	}
	if gjson.Get(body, "pillars.2.ten_god").Exists() {
		t.Fatal("day pillar must not carry a ten god")
	}
	if got := gjson.Get(body, "day_master").String(); got != "丙" {
		t.Fatalf("unexpected day master %s", got)
	}
	if got := gjson.Get(body, "luck_direction").String(); got != "backward" {
		t.Fatalf("unexpected luck direction %s", got)
	}
	if got := gjson.Get(body, "luck_pillars.#").Int(); got != 10 {
		t.Fatalf("expected 10 luck pillars, got %d", got)
	}
	if got := gjson.Get(body, "luck_pillars.0.pillar.kanji").String(); got != "乙亥" {
		t.Fatalf("unexpected first luck pillar %s", got)
	}
}

func TestPostFortuneValidation(t *testing.T) {
	_, router := newTestHandler(stubOracle{}, nil)

	cases := map[string]string{
		"year":   `{"year":1899,"month":1,"day":1,"gender":"male"}`,
		"month":  `{"year":1990,"month":13,"day":1,"gender":"male"}`,
		"hour":   `{"year":1990,"month":1,"day":1,"hour":24,"gender":"male"}`,
		"gender": `{"year":1990,"month":1,"day":1,"gender":"x"}`,
	}
	for field, body := range cases {
		w := do(router, http.MethodPost, "/api/fortune", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", field, w.Code)
		}
		if got := gjson.Get(w.Body.String(), "field").String(); got != field {
			t.Fatalf("expected field %s, got %s", field, got)
		}
	}

	w := do(router, http.MethodPost, "/api/fortune", `{"year":1990,"month":2,"day":30,"gender":"male"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for impossible date, got %d", w.Code)
	}
	w = do(router, http.MethodPost, "/api/fortune", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestPostFortuneCalendarFailure(t *testing.T) {
	_, router := newTestHandler(stubOracle{err: fmt.Errorf("%w: out of range", bazi.ErrNoTransitionFound)}, nil)
	w := do(router, http.MethodPost, "/api/fortune", newYearBody)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestPostTimeline(t *testing.T) {
	_, router := newTestHandler(stubOracle{}, nil)
	body := `{"birth":` + newYearBody + `,"start_year":2024,"end_year":2028}`
	w := do(router, http.MethodPost, "/api/fortune/timeline", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	res := w.Body.String()
	if got := gjson.Get(res, "entries.#").Int(); got != 5 {
		t.Fatalf("expected 5 entries, got %d", got)
	}
	if got := gjson.Get(res, "entries.0.annual_pillar.pillar.kanji").String(); got != "甲辰" {
		t.Fatalf("unexpected 2024 annual pillar %s", got)
	}
	for _, score := range gjson.Get(res, "entries.#.scores.overall").Array() {
		if score.Int() < 0 || score.Int() > 100 {
			t.Fatalf("score out of range: %d", score.Int())
		}
	}

	tooWide := `{"birth":` + newYearBody + `,"start_year":2000,"end_year":2100}`
	if w := do(router, http.MethodPost, "/api/fortune/timeline", tooWide); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wide window, got %d", w.Code)
	}
}

func TestPostTimelineImage(t *testing.T) {
	_, router := newTestHandler(stubOracle{}, nil)
	body := `{"birth":` + newYearBody + `,"start_year":2024,"end_year":2028}`
	w := do(router, http.MethodPost, "/api/fortune/timeline.png", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); !strings.Contains(got, "image/png") {
		t.Fatalf("expected image/png content-type, got %s", got)
	}
}

func TestPostReading(t *testing.T) {
	body := `{"birth":` + newYearBody + `,"year":2026}`

	_, router := newTestHandler(stubOracle{}, nil)
	if w := do(router, http.MethodPost, "/api/fortune/reading", body); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without advisor, got %d", w.Code)
	}

	_, router = newTestHandler(stubOracle{}, stubAdvisor{})
	w := do(router, http.MethodPost, "/api/fortune/reading", body)
	if w.Code != http.StatusOK || gjson.Get(w.Body.String(), "text").String() != "steady" {
		t.Fatalf("unexpected reading response %d %s", w.Code, w.Body.String())
	}

	_, router = newTestHandler(stubOracle{}, stubAdvisor{err: advisor.ErrDisabled})
	if w := do(router, http.MethodPost, "/api/fortune/reading", body); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for disabled advisor, got %d", w.Code)
	}

	_, router = newTestHandler(stubOracle{}, stubAdvisor{err: errors.New("boom")})
	if w := do(router, http.MethodPost, "/api/fortune/reading", body); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetAnnual(t *testing.T) {
	_, router := newTestHandler(stubOracle{}, nil)
	w := do(router, http.MethodGet, "/api/annual/2024", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := gjson.Get(w.Body.String(), "pillar.kanji").String(); got != "甲辰" {
		t.Fatalf("unexpected annual pillar %s", got)
	}
	if gjson.Get(w.Body.String(), "age").Exists() {
		t.Fatal("unclassified annual view must not carry an age")
	}

	if w := do(router, http.MethodGet, "/api/annual/abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&domain.ValidationError{Field: "year"}, http.StatusBadRequest},
		{fmt.Errorf("x: %w", bazi.ErrInvalidHour), http.StatusBadRequest},
		{fmt.Errorf("x: %w", bazi.ErrCalendarResolution), http.StatusBadGateway},
		{bazi.ErrOutsideTimeline, http.StatusUnprocessableEntity},
		{bazi.ErrInvariantViolation, http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("%v: got %d want %d", tc.err, got, tc.want)
		}
	}
}
