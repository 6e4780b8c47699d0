// Package fixture serves a fixed user collection over HTTP so rollcall can be
// developed and tested without reaching the public directory.
package fixture

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/five82/rollcall/internal/record"
)

// UsersPath is the route serving the collection.
const UsersPath = "/users"

//go:embed users.json
var usersJSON []byte

// Users returns a fresh decoded copy of the embedded collection.
func Users() []record.Record {
	var out []record.Record
	if err := json.Unmarshal(usersJSON, &out); err != nil {
		panic(fmt.Sprintf("fixture: embedded users.json is invalid: %v", err))
	}
	return out
}

// Handler returns the router for the fixture API.
func Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(UsersPath, listUsers).Methods(http.MethodGet)
	router.HandleFunc(UsersPath+"/{id:[0-9]+}", getUser).Methods(http.MethodGet)
	return router
}

func listUsers(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(usersJSON)
}

func getUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, u := range Users() {
		if u.Key() == id {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(u)
			return
		}
	}
	http.NotFound(w, r)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("fixture api listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("fixture api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown fixture api: %w", err)
	}
	return nil
}
