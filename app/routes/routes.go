package routes

import (
	"context"
	"net/http"

	"postboard/app/config"
	"postboard/app/controllers"
	"postboard/app/errs"
	"postboard/app/middleware"
	"postboard/app/repositories"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NewRouter registers the API routes on a bare router.
func NewRouter(store repositories.Store) *mux.Router {
	router := mux.NewRouter()

	postController := controllers.NewPostController(store)
	commentController := controllers.NewCommentController(store)

	// Posts API endpoints
	router.HandleFunc("/api/posts", postController.Index).Methods("GET")
	router.HandleFunc("/api/posts/", postController.Index).Methods("GET")
	router.HandleFunc("/api/posts", postController.Create).Methods("POST")
	router.HandleFunc("/api/posts/", postController.Create).Methods("POST")
	router.HandleFunc("/api/posts/{id}", postController.Show).Methods("GET")
	router.HandleFunc("/api/posts/{id}", postController.Edit).Methods("PUT")
	router.HandleFunc("/api/posts/{id}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	router.HandleFunc("/api/posts/{id}/comments", commentController.Index).Methods("GET")
	router.HandleFunc("/api/posts/{id}/comments", commentController.Create).Methods("POST")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controllers.WriteError(w, r, errs.NewNotFoundError("The requested resource does not exist."))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controllers.WriteError(w, r, errs.NewMethodNotAllowedError("The method is not allowed for this resource."))
	})

	return router
}

// SetupRoutes wraps the API router in the global middleware chain.
func SetupRoutes(store repositories.Store, log zerolog.Logger) http.Handler {
	var handler http.Handler = NewRouter(store)

	// innermost first
	handler = middleware.ContentTypeJSON(handler)
	handler = middleware.Recoverer(handler)
	handler = middleware.Logger(log)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(handler)

	return handler
}

// StartServer serves handler until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func StartServer(ctx context.Context, cfg config.ServerConfig, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
