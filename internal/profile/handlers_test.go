package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
)

func newTestRouter(svc Service, userID uuid.UUID) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.WithClaims(r.Context(), &utils.JWTClaims{UserID: userID}, "token")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})

	router.HandleFunc("/api/users/profile", h.GetMyProfile).Methods("GET")
	router.HandleFunc("/api/users/profile", h.UpdateProfile).Methods("PUT")
	router.HandleFunc("/api/users/burnout", h.SetBurnout).Methods("PUT")
	router.HandleFunc("/api/users/leaderboard", h.GetLeaderboard).Methods("GET")
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Profile(t *testing.T) {
	t.Parallel()

	user := testUser()
	router := newTestRouter(newTestService(newFakeRepo(user), fakeHistory{}), user.ID)

	rec := do(router, http.MethodGet, "/api/users/profile", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Sam", body.Data["displayName"])
	assert.NotContains(t, body.Data, "passwordHash")
	assert.Contains(t, body.Data, "stats")

	rec = do(router, http.MethodPut, "/api/users/profile", `{"displayName":"Samira","personalGoals":["be present"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"displayName":"Samira"`)
}

func TestHandler_ProfileValidation(t *testing.T) {
	t.Parallel()

	user := testUser()
	router := newTestRouter(newTestService(newFakeRepo(user), fakeHistory{}), user.ID)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"quota too high", "/api/users/profile", `{"weeklyQuota":11}`},
		{"bad avatar", "/api/users/profile", `{"avatar":"not a url"}`},
		{"unknown field", "/api/users/profile", `{"karma":3}`},
		{"blank name", "/api/users/profile", `{"displayName":"   "}`},
		{"missing burnout", "/api/users/burnout", `{}`},
		{"burnout out of range", "/api/users/burnout", `{"burnoutLevel":11}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_SetBurnout(t *testing.T) {
	t.Parallel()

	user := testUser()
	repo := newFakeRepo(user)
	router := newTestRouter(newTestService(repo, fakeHistory{}), user.ID)

	rec := do(router, http.MethodPut, "/api/users/burnout", `{"burnoutLevel":0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{"burnoutLevel":0}}`, rec.Body.String())

	rec = do(router, http.MethodPut, "/api/users/burnout", `{"burnoutLevel":6}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, repo.users[user.ID].BurnoutLevel)
}

func TestHandler_UnknownUser(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newTestService(newFakeRepo(), fakeHistory{}), uuid.New())

	rec := do(router, http.MethodGet, "/api/users/profile", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Leaderboard(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.rows = []LeaderboardRow{{DisplayName: "Ada", DateCount: 2, WeeklyQuota: 1}}
	router := newTestRouter(newTestService(repo, fakeHistory{}), uuid.New())

	rec := do(router, http.MethodGet, "/api/users/leaderboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mostDates":[{"name":"Ada"`)
}
