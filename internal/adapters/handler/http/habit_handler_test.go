package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/tanveerhkit/habit-tracker/internal/adapters/handler/http"
	"github.com/tanveerhkit/habit-tracker/internal/adapters/repository"
	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/services"
	"github.com/tanveerhkit/habit-tracker/internal/core/view"
)

type habitTestEnv struct {
	router     *gin.Engine
	habitRepo  *repository.InMemoryHabitRepository
	ledgerRepo *repository.InMemoryCompletionRepository
}

func setupHabitRouter() habitTestEnv {
	gin.SetMode(gin.TestMode)

	habitRepo := repository.NewInMemoryHabitRepository()
	ledgerRepo := repository.NewInMemoryCompletionRepository()
	ledgerRepo.BindHabits(habitRepo)

	svc := services.NewHabitService(habitRepo, ledgerRepo)
	controller := view.NewController(ledgerRepo, nil, nil)
	handler := adapterHTTP.NewHabitHandler(svc, controller, nil)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))

	return habitTestEnv{router: r, habitRepo: habitRepo, ledgerRepo: ledgerRepo}
}

func TestCreateHabit(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		env := setupHabitRouter()

		body := `{"name": "Meditate", "description": "Ten minutes", "goal": 1}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Meditate"`)
		assert.Contains(t, w.Body.String(), `"id":`)
	})

	t.Run("Fail: 400 Bad Request (Missing Name)", func(t *testing.T) {
		env := setupHabitRouter()

		body := `{"description": "No name"}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 Bad Request (Negative Goal)", func(t *testing.T) {
		env := setupHabitRouter()

		body := `{"name": "Read", "goal": -3}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListHabits(t *testing.T) {
	t.Run("Success: 200 OK sorted by order", func(t *testing.T) {
		env := setupHabitRouter()

		second, _ := domain.NewHabit("Second", "", "", "", 1, 2)
		first, _ := domain.NewHabit("First", "", "", "", 1, 1)
		env.habitRepo.Create(context.Background(), second)
		env.habitRepo.Create(context.Background(), first)

		req, _ := http.NewRequest("GET", "/api/v1/habits", nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Less(t, strings.Index(body, "First"), strings.Index(body, "Second"))
	})

	t.Run("Success: 200 OK empty list", func(t *testing.T) {
		env := setupHabitRouter()

		req, _ := http.NewRequest("GET", "/api/v1/habits", nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUpdateHabit(t *testing.T) {
	t.Run("Success: 200 OK", func(t *testing.T) {
		env := setupHabitRouter()

		h, _ := domain.NewHabit("Old Name", "", "", "", 1, 0)
		env.habitRepo.Create(context.Background(), h)

		body := `{"name": "New Name", "color": "neon-pink", "goal": 2}`

		req, _ := http.NewRequest("PUT", "/api/v1/habits/"+h.ID, bytes.NewBufferString(body))

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		updated, err := env.habitRepo.GetByID(context.Background(), h.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "neon-pink", updated.Color)
		assert.Equal(t, 2, updated.Goal)
	})

	t.Run("Fail: 404 Not Found", func(t *testing.T) {
		env := setupHabitRouter()

		body := `{"name": "Ghost"}`
		req, _ := http.NewRequest("PUT", "/api/v1/habits/missing", bytes.NewBufferString(body))

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Run("Success: 204 No Content and cascades logs", func(t *testing.T) {
		env := setupHabitRouter()

		h, _ := domain.NewHabit("To Delete", "", "", "", 1, 0)
		env.habitRepo.Create(context.Background(), h)

		day, _ := domain.ParseDay("2025-03-10")
		_, err := env.ledgerRepo.Upsert(context.Background(), domain.NewCompletionRecord(h.ID, day, true, nil))
		require.NoError(t, err)

		req, _ := http.NewRequest("DELETE", "/api/v1/habits/"+h.ID, nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, 0, env.ledgerRepo.Len())
	})

	t.Run("Fail: 404 Not Found", func(t *testing.T) {
		env := setupHabitRouter()

		req, _ := http.NewRequest("DELETE", "/api/v1/habits/missing", nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToggleHabit(t *testing.T) {
	t.Run("Success: 200 OK toggles on then off", func(t *testing.T) {
		env := setupHabitRouter()

		h, _ := domain.NewHabit("Stretch", "", "", "", 1, 0)
		env.habitRepo.Create(context.Background(), h)

		body := `{"date": "2025-03-10"}`

		req, _ := http.NewRequest("POST", "/api/v1/habits/"+h.ID+"/toggle", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"completed":true`)

		req, _ = http.NewRequest("POST", "/api/v1/habits/"+h.ID+"/toggle", bytes.NewBufferString(body))
		w = httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"completed":false`)

		// One ledger row per (habit, day) no matter how often it flips.
		assert.Equal(t, 1, env.ledgerRepo.Len())
	})

	t.Run("Fail: 404 Not Found (Unknown Habit) rolls back", func(t *testing.T) {
		env := setupHabitRouter()

		body := `{"date": "2025-03-10"}`

		req, _ := http.NewRequest("POST", "/api/v1/habits/no-such-habit/toggle", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"rolled_back":true`)
		assert.Equal(t, 0, env.ledgerRepo.Len())
	})

	t.Run("Fail: 400 Bad Request (Invalid Date)", func(t *testing.T) {
		env := setupHabitRouter()

		body := `{"date": "10/03/2025"}`

		req, _ := http.NewRequest("POST", "/api/v1/habits/some-id/toggle", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
