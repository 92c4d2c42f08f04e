package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/testutils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testAPI is the API wired to services over a fresh SQLite database.
type testAPI struct {
	router http.Handler
	stores testutils.TestStores
	tokens auth.TokenStore
}

func newTestAPI(t *testing.T) *testAPI {
	return newTestAPIWithTokens(t, auth.NewMemoryTokenStore(quietLogger()))
}

func newTestAPIWithTokens(t *testing.T, tokens auth.TokenStore) *testAPI {
	t.Helper()

	db := testutils.OpenTestDB(t)
	stores := testutils.CreateTestStores(db)
	log := quietLogger()

	taskHandler := NewTaskHandler(service.NewTaskService(stores.TaskStore, db, log), log)
	attendanceHandler := NewAttendanceHandler(
		service.NewAttendanceService(stores.AttendanceStore, stores.EmployeeStore, db, log), log)
	authHandler := NewAuthHandler(
		service.NewUserService(stores.UserStore, stores.RoleStore,
			auth.NewBcryptHasher(bcrypt.MinCost), auth.NewBcryptVerifier(), log),
		tokens, log)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})
	r.Post("/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/me", authHandler.Me)
		r.Post("/attendances", attendanceHandler.CreateAttendance)
		r.Get("/attendances", attendanceHandler.ListAttendances)
		r.Delete("/attendances/{id}", attendanceHandler.DeleteAttendance)
	})

	return &testAPI{router: r, stores: stores, tokens: tokens}
}

// do sends a request with an optional JSON body and bearer token.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// login creates an employee with the given email and returns a token for it.
func (a *testAPI) login(t *testing.T, email string) string {
	t.Helper()

	testutils.MustInsertEmployee(context.Background(), t, a.stores, email)
	rec := a.do(t, http.MethodPost, "/login",
		LoginRequest{Email: email, Password: testutils.TestPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
