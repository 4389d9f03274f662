// Demo web application showing the full instrumentation wiring: config
// gates, the singleton analytics client, identity/page-view/vitals
// tracking, and runtime error capture.
//
// Run the dev collector first, then:
//
//	OBS_ANALYTICS_WRITE_KEY=demo OBS_ERROR_DSN=http://localhost:8080/v1/errors go run ./cmd/example
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/config"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/errorreport"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/httpx"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/track"
)

// session holds the per-tab demo state: current navigation plus the three
// trackers emitting through the shared client.
type session struct {
	mu  sync.Mutex
	nav track.NavigationState

	identity *track.IdentityReconciler
	pageView *track.PageViewTracker
	vitals   *track.WebVitalsCollector
}

func (s *session) navigate(state track.NavigationState) {
	s.mu.Lock()
	s.nav = state
	s.mu.Unlock()

	s.pageView.Observe(state)
	s.vitals.PageLoad()
}

func (s *session) current() track.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gates := config.NewGates(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Singleton analytics client: nil when analytics is not configured.
	factory := analytics.NewFactory(cfg)
	defer factory.Close()

	client, err := factory.Get(ctx)
	if err != nil {
		log.Printf("Analytics unavailable: %v", err)
	}
	var sink track.Analytics
	if client != nil {
		sink = client
	}

	// Error reporter: registered once, path chosen by runtime kind.
	kind, err := errorreport.ParseRuntimeKind(cfg.Runtime)
	if err != nil {
		log.Fatalf("Invalid OBS_RUNTIME: %v", err)
	}
	reporter := errorreport.NewReporter(cfg)
	if err := reporter.Register(kind); err != nil {
		log.Printf("Error reporting unavailable: %v", err)
	}

	sess := &session{identity: track.NewIdentityReconciler(sink)}
	sess.pageView = track.NewPageViewTracker(sink, sess.current)
	sess.vitals = track.NewWebVitalsCollector(sink)

	// Deferred activation: by the time the tracker activates, the session
	// may already have navigated; Activate reads the current state.
	sess.nav = track.NavigationState{Path: "/"}
	sess.pageView.Activate()
	sess.vitals.Init()

	router := mux.NewRouter()
	router.Use(errorreport.Middleware(reporter))

	page := func(path string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess.navigate(track.NavigationState{
				Path:  r.URL.Path,
				Query: r.URL.RawQuery,
			})
			fmt.Fprintf(w, "rendered %s\n", path)
		}
	}
	router.HandleFunc("/", page("home"))
	router.HandleFunc("/docs", page("docs"))
	router.HandleFunc("/pricing", page("pricing"))

	router.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {
		if !gates.AuthEnabled() {
			httpx.RespondError(w, http.StatusServiceUnavailable, "auth not configured")
			return
		}
		sess.identity.Observe(&track.User{
			ID:        "demo-user",
			Email:     "demo@example.com",
			CreatedAt: time.Now().UTC(),
		})
		fmt.Fprintln(w, "signed in")
	})
	router.HandleFunc("/signout", func(w http.ResponseWriter, r *http.Request) {
		sess.identity.Observe(nil)
		fmt.Fprintln(w, "signed out")
	})

	// The browser beacons vitals here once per page load.
	router.HandleFunc("/beacon/vitals", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
		if name == "" || err != nil {
			httpx.RespondError(w, http.StatusBadRequest, "name and numeric value required")
			return
		}
		sess.vitals.Report(name, value)
		w.WriteHeader(http.StatusAccepted)
	}).Methods(http.MethodPost)

	// Deliberately failing route to exercise error capture.
	router.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("demo panic")
	})

	server := &http.Server{
		Addr:    ":8000",
		Handler: router,
	}

	go func() {
		log.Println("Example app listening on http://localhost:8000")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown warning: %v", err)
	}
}
