package assessment

import (
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
	router.HandleFunc("/api/assessments", h.CreateAssessment).Methods("POST")
	router.HandleFunc("/api/assessments", h.ListAssessments).Methods("GET")
	router.HandleFunc("/api/assessments/{id}", h.GetAssessment).Methods("GET")
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"contactName":"Jordan","sharedValues":["Honesty"],"communication":4,"emotional":4,
	"lifestyle":4,"conflictResolution":4,"longTermPotential":4,"physicalAttraction":4,
	"communicationStyle":"Direct","partnerCommunicationStyle":"Avoidant"}`

func TestHandler_CreateListGet(t *testing.T) {
	t.Parallel()

	repo := &memRepo{}
	router := newTestRouter(NewService(repo), uuid.New())

	rec := do(router, http.MethodPost, "/api/assessments", validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"verbal":"Moderate Compatibility"`)
	assert.Contains(t, rec.Body.String(), `"compatible":"no"`)

	rec = do(router, http.MethodGet, "/api/assessments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"contactName":"Jordan"`)

	rec = do(router, http.MethodGet, "/api/assessments/"+repo.rows[0].ID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/api/assessments/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/api/assessments/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewService(&memRepo{}), uuid.New())

	tests := []struct {
		name string
		body string
	}{
		{"missing name", strings.Replace(validBody, `"Jordan"`, `""`, 1)},
		{"score out of range", strings.Replace(validBody, `"communication":4`, `"communication":11`, 1)},
		{"missing score", strings.Replace(validBody, `"emotional":4,`, ``, 1)},
		{"unknown style", strings.Replace(validBody, `"Avoidant"`, `"Passive"`, 1)},
		{"malformed", `{"contactName":`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/api/assessments", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}
