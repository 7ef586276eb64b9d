package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/tanveerhkit/habit-tracker/internal/adapters/handler/http"
	"github.com/tanveerhkit/habit-tracker/internal/adapters/repository"
	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/services"
)

type statsTestEnv struct {
	router     *gin.Engine
	habitRepo  *repository.InMemoryHabitRepository
	ledgerRepo *repository.InMemoryCompletionRepository
}

func setupStatsRouter() statsTestEnv {
	gin.SetMode(gin.TestMode)

	habitRepo := repository.NewInMemoryHabitRepository()
	ledgerRepo := repository.NewInMemoryCompletionRepository()
	ledgerRepo.BindHabits(habitRepo)

	svc := services.NewStatsService(habitRepo, ledgerRepo, nil, nil)
	handler := adapterHTTP.NewStatsHandler(svc, nil)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))

	return statsTestEnv{router: r, habitRepo: habitRepo, ledgerRepo: ledgerRepo}
}

func (e statsTestEnv) complete(t *testing.T, habitID, date string) {
	t.Helper()
	day, err := domain.ParseDay(date)
	require.NoError(t, err)
	_, err = e.ledgerRepo.Upsert(context.Background(), domain.NewCompletionRecord(habitID, day, true, nil))
	require.NoError(t, err)
}

func TestMonthOverview(t *testing.T) {
	t.Run("Success: 200 OK full grid and rollups", func(t *testing.T) {
		env := setupStatsRouter()

		h, _ := domain.NewHabit("Run", "", "", "", 1, 0)
		require.NoError(t, env.habitRepo.Create(context.Background(), h))

		env.complete(t, h.ID, "2025-03-10")
		env.complete(t, h.ID, "2025-03-11")
		// Padding day from February: counts weekly, never monthly.
		env.complete(t, h.ID, "2025-02-25")

		req, _ := http.NewRequest("GET", "/api/v1/stats/month?date=2025-03-15", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var overview domain.MonthOverview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))

		assert.Equal(t, "2025-03", overview.Month)

		// March 2025 spans Feb 23 through Apr 5: six Sunday-start weeks.
		require.Len(t, overview.Weeks, 6)
		assert.Equal(t, "2025-02-23", overview.Weeks[0][0])
		assert.Equal(t, "2025-04-05", overview.Weeks[5][6])

		// Monthly: 2 of 31 possible (the February completion is excluded).
		assert.Equal(t, 2, overview.Monthly.Completed)
		assert.Equal(t, 31, overview.Monthly.Possible)
		assert.Equal(t, 6, overview.Monthly.Rate)

		// Week 1 (Feb 23 - Mar 1) picks up the padding-day completion.
		require.Len(t, overview.Weekly, 6)
		assert.Equal(t, 1, overview.Weekly[0].Stats.Completed)
		assert.Equal(t, 7, overview.Weekly[0].Stats.Possible)

		// Per-day stats cover the in-month days only.
		require.Len(t, overview.Days, 31)
		assert.Equal(t, "2025-03-01", overview.Days[0].Date)
		assert.Equal(t, 1, overview.Days[9].Stats.Completed)
	})

	t.Run("Success: 200 OK empty state", func(t *testing.T) {
		env := setupStatsRouter()

		req, _ := http.NewRequest("GET", "/api/v1/stats/month?date=2025-03-15", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var overview domain.MonthOverview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))

		assert.Equal(t, 0, overview.Monthly.Completed)
		assert.Equal(t, 0, overview.Monthly.Possible)
		assert.Equal(t, 0, overview.Monthly.Rate)
	})

	t.Run("Fail: 400 Bad Request (Malformed Date)", func(t *testing.T) {
		env := setupStatsRouter()

		req, _ := http.NewRequest("GET", "/api/v1/stats/month?date=March", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
