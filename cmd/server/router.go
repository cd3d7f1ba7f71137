package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/plankhq/plank-api/internal/api"
	apiMiddleware "github.com/plankhq/plank-api/internal/api/middleware"
)

// setupRouter builds the HTTP surface: public auth endpoints, the
// authenticated board/column/task routes and the per-board event stream.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.userService)
	boardHandler := api.NewBoardHandler(app.boardService)
	columnHandler := api.NewColumnHandler(app.columnService)
	taskHandler := api.NewTaskHandler(app.taskService)
	streamHandler := api.NewStreamHandler(app.authz, app.hub)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything else requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/boards", boardHandler.ListBoards)
			r.Post("/boards", boardHandler.CreateBoard)
			r.Get("/boards/{boardID}", boardHandler.GetBoard)
			r.Delete("/boards/{boardID}", boardHandler.DeleteBoard)
			r.Post("/boards/{boardID}/members", boardHandler.InviteMember)
			r.Get("/boards/{boardID}/stream", streamHandler.Stream)

			r.Post("/boards/{boardID}/columns", columnHandler.CreateColumn)
			r.Delete("/columns/{columnID}", columnHandler.DeleteColumn)

			r.Post("/columns/{columnID}/tasks", taskHandler.CreateTask)
			r.Patch("/tasks/{taskID}", taskHandler.UpdateTask)
			r.Delete("/tasks/{taskID}", taskHandler.DeleteTask)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
