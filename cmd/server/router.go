package main

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
)

// corsMaxAge is how long browsers may cache preflight results, in seconds.
const corsMaxAge = 600

// setupRouter creates the router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(app.config.Server.CORSAllowOrigins)))
	r.Use(middleware.StripSlashes)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	attendanceHandler := api.NewAttendanceHandler(app.attendanceService, app.logger)
	authHandler := api.NewAuthHandler(app.userService, app.tokens, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokens)

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
		r.Route("/attendances", func(r chi.Router) {
			r.Post("/", attendanceHandler.CreateAttendance)
			r.Get("/", attendanceHandler.ListAttendances)
			r.Delete("/{id}", attendanceHandler.DeleteAttendance)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.MessageResponse{Message: "ToDo API is running"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// corsOptions allows credentialed requests from the given origins. "*"
// allows every origin; the request's origin is echoed back, as browsers
// reject a literal "*" on credentialed responses. No origins disables
// cross-origin access.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}

	switch {
	case slices.Contains(origins, "*"):
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	case len(origins) == 0:
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	default:
		opts.AllowedOrigins = origins
	}
	return opts
}
