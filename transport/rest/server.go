package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

func NewRouter(handlers Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", NewPingHandler().PingHandler).Methods(http.MethodGet)
	router.HandleFunc("/rooms", handlers.ListRooms).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{id}", handlers.GetRoom).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{id}/players/{playerID}", handlers.GetRoomPlayer).Methods(http.MethodGet)
	router.HandleFunc("/players/{playerID}", handlers.GetPlayer).Methods(http.MethodGet)

	return router
}

// Start - starts HTTP server and stops it when ctx is done.
func Start(ctx context.Context, port string, handlers Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
