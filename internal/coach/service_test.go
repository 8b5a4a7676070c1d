package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

type fakeHistory struct {
	dates []insights.Date
	err   error
}

func (f fakeHistory) CompletedHistory(context.Context, uuid.UUID) ([]insights.Date, error) {
	return f.dates, f.err
}

type fakeBurnout int

func (f fakeBurnout) BurnoutLevel(context.Context, uuid.UUID) (int, error) { return int(f), nil }

func completedOn(day time.Time, rating int, activities ...string) insights.Date {
	return insights.Date{
		Time:       day,
		Rating:     rating,
		Activities: activities,
		Status:     insights.StatusCompleted,
		DateNumber: 1,
	}
}

func history() []insights.Date {
	mon := time.Date(2024, 1, 8, 19, 0, 0, 0, time.UTC)
	return []insights.Date{
		completedOn(mon, 9, "Hiking"),
		completedOn(mon.AddDate(0, 0, 7), 8, "Hiking"),
		completedOn(mon.AddDate(0, 0, 9), 5, "Movies"),
	}
}

func newTestService(h DateHistory, burnout int) Service {
	return NewService(h, fakeBurnout(burnout), rand.New(rand.NewSource(1)))
}

func TestInsights(t *testing.T) {
	t.Parallel()

	report, err := newTestService(fakeHistory{dates: history()}, 0).Insights(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, report.Patterns)
	assert.Contains(t, report.Insights, "Success pattern: Hiking dates tend to go well for you. Focus on this more.")

	report, err = newTestService(fakeHistory{dates: history()[:2]}, 0).Insights(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, report.Patterns)
	assert.Equal(t, insights.MsgNeedMoreData, report.Message)

	_, err = newTestService(fakeHistory{err: errors.New("db down")}, 0).Insights(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	resp, err := newTestService(fakeHistory{dates: history()}, 5).Patterns(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, resp.Patterns)
	assert.Empty(t, resp.Message)
	assert.Equal(t, 3, resp.Stats.Count)
	assert.Equal(t, 5, resp.BurnoutLevel)
	assert.Contains(t, resp.Recommendations, insights.MsgOneDatePerWeek)

	resp, err = newTestService(fakeHistory{}, 0).Patterns(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, resp.Patterns)
	assert.Equal(t, insights.MsgNeedMoreData, resp.Message)
	assert.Equal(t, []string{insights.MsgNeedMoreDates}, resp.Recommendations)
}

func TestEvaluateDecision_UsesStoredBurnout(t *testing.T) {
	t.Parallel()

	in := insights.DecisionInput{Name: "Alex", Dates: 5, GreenFlagCount: 3, EnjoymentLevel: 9, Values: 9}

	d, err := newTestService(fakeHistory{}, 2).EvaluateDecision(context.Background(), uuid.New(), in)
	require.NoError(t, err)
	assert.Equal(t, insights.DecisionPursue, d.Decision)

	d, err = newTestService(fakeHistory{}, 8).EvaluateDecision(context.Background(), uuid.New(), in)
	require.NoError(t, err)
	assert.Equal(t, insights.DecisionTakeBreak, d.Decision)
	assert.Nil(t, d.Score)
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	svc := newTestService(fakeHistory{}, 0)

	assert.Equal(t, []string{insights.MsgNeedInterests}, svc.ConversationStarters(nil))
	assert.Len(t, svc.ConversationStarters([]string{"hiking", "cooking"}), insights.MaxSuggestions)

	assert.Equal(t, []string{insights.MsgNeedPreferences}, svc.DateIdeas(insights.DatePreferences{}))
	ideas := svc.DateIdeas(insights.DatePreferences{ActivityLevel: "high", Budget: "high", Interests: []string{"music"}})
	assert.NotEmpty(t, ideas)
	assert.LessOrEqual(t, len(ideas), insights.MaxSuggestions)
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestService(fakeHistory{dates: history()}, 0), logger.NewNop())
	userID := uuid.New()

	call := func(fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		req = req.WithContext(auth.WithClaims(req.Context(), &utils.JWTClaims{UserID: userID}, "t"))
		rec := httptest.NewRecorder()
		fn(rec, req)
		return rec
	}

	rec := call(h.GetInsights, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(h.GetPatterns, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(h.EvaluateDecision, `{"name":"Alex","dates":1,"enjoymentLevel":11,"values":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h.EvaluateDecision, `{"name":"Alex","dates":1,"enjoymentLevel":5,"values":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data insights.Decision `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, insights.DecisionCaution, body.Data.Decision)

	rec = call(h.DateIdeas, `{"budget":"lavish"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h.ConversationStarters, `{"interests":["books"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
