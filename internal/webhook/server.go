package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/tidwall/gjson"

	"github.com/jmalles/diffscope/internal/logging"
	"github.com/jmalles/diffscope/internal/review"
)

// reviewActions are the pull request actions that trigger a review. Every
// other action (closed, labeled, edited, ...) is acknowledged and dropped.
var reviewActions = map[string]bool{
	"opened":      true,
	"synchronize": true,
	"reopened":    true,
}

// Processor runs the review pipeline for one pull request number.
// review.Service is the production implementation.
type Processor interface {
	ProcessPR(ctx context.Context, number int, force bool) (review.Review, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Addr string
	// Secret signs incoming deliveries. Empty disables verification, which
	// is only sane on a loopback deployment.
	Secret string
	// Repository is the full name this server reviews; deliveries for any
	// other repository are acknowledged and dropped.
	Repository string
	// JobTimeout bounds one background review, model calls included.
	JobTimeout time.Duration
	Logger     logr.Logger
}

type Server struct {
	cfg Config
	log logging.Logger
	svc Processor
	db  Pinger

	// jobs tracks in-flight background reviews so shutdown can drain them.
	jobs sync.WaitGroup
}

func NewServer(cfg Config, svc Processor, db Pinger) *Server {
	return &Server{
		cfg: cfg,
		log: logging.New(cfg.Logger).WithName("webhook"),
		svc: svc,
		db:  db,
	}
}

// Start serves until ctx is canceled, then drains in-flight reviews.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Addr == "" {
		return errors.New("webhook server address required")
	}
	if s.cfg.Secret == "" {
		s.log.Info("webhook secret not configured; accepting unsigned deliveries")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/github", s.handleDelivery)
	mux.HandleFunc("/healthz", s.handleHealthz)

	server := &http.Server{Addr: s.cfg.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("webhook server listening", "addr", s.cfg.Addr)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	s.jobs.Wait()
	return err
}

func (s *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if s.cfg.Secret != "" {
		if !VerifySignature(s.cfg.Secret, raw, r.Header.Get("X-Hub-Signature-256")) {
			s.log.Info("rejected delivery with bad signature")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	event := r.Header.Get("X-GitHub-Event")
	if event == "ping" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if event != "pull_request" {
		s.log.Debug("ignoring event", "event", event)
		w.WriteHeader(http.StatusOK)
		return
	}

	action := gjson.GetBytes(raw, "action").String()
	number := int(gjson.GetBytes(raw, "pull_request.number").Int())
	repo := gjson.GetBytes(raw, "repository.full_name").String()

	if !reviewActions[action] {
		s.log.Debug("ignoring action", "action", action, "pr", number)
		w.WriteHeader(http.StatusOK)
		return
	}
	if number <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if s.cfg.Repository != "" && repo != s.cfg.Repository {
		s.log.Info("ignoring delivery for unconfigured repository", "repo", repo)
		w.WriteHeader(http.StatusOK)
		return
	}

	s.log.Info("accepted delivery", "action", action, "pr", number)
	s.jobs.Add(1)
	go s.runReview(number)

	w.WriteHeader(http.StatusAccepted)
}

// runReview executes one review on a context detached from the HTTP request;
// the delivery was already acknowledged with 202.
func (s *Server) runReview(number int) {
	defer s.jobs.Done()

	timeout := s.cfg.JobTimeout
	if timeout <= 0 {
		timeout = 15 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := s.svc.ProcessPR(ctx, number, false)
	if err != nil {
		s.log.Error(err, "review job failed", "pr", number)
		return
	}
	s.log.Info("review job finished",
		"pr", number,
		"succeeded", result.Succeeded,
		"category", string(result.FailureCategory),
	)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
