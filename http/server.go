package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/mailpress"
	"github.com/rs/zerolog"
)

// DefaultPublishTimeout bounds the background processing of one webhook
// delivery.
const DefaultPublishTimeout = 5 * time.Minute

// Server receives campaign webhooks from the email vendor and hands the
// campaign ids to a publisher. Webhook deliveries are acknowledged
// before the pipeline runs; vendors retry slow webhooks, and a retry of
// an already-published campaign is skipped by the publisher's
// idempotency check rather than refused here.
type Server struct {
	server         *http.Server
	publisher      mailpress.CampaignPublisher
	logger         zerolog.Logger
	publishTimeout time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithPublishTimeout sets the timeout for background campaign
// processing. Defaults to DefaultPublishTimeout (5m) if not specified.
func WithPublishTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.publishTimeout = d
	}
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, publisher mailpress.CampaignPublisher, logger zerolog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		publisher:      publisher,
		logger:         logger,
		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/mailchimp", s.handleWebhook)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/", s.handleNotFound)

	s.server = &http.Server{Addr: addr, Handler: s.logRequests(mux)}

	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe starts serving and blocks until Shutdown is called or
// the listener fails.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// up to the context deadline. Background publishes are not joined.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		// The vendor validates a webhook URL with a GET before saving it.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "OK")
	case http.MethodPost:
		s.handleWebhookPost(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleWebhookPost(w http.ResponseWriter, r *http.Request) {
	campaignID := campaignIDFromRequest(r)
	if campaignID == "" {
		s.writeError(w, http.StatusBadRequest, "no campaign id found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})

	go s.publish(campaignID)
}

// publish runs the pipeline for one campaign with its own timeout
// context, detached from the webhook request. Failures are logged; the
// delivery log holds the durable record.
func (s *Server) publish(campaignID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
	defer cancel()

	delivery, err := s.publisher.PublishCampaign(ctx, campaignID)
	if err != nil {
		s.logger.Error().Err(err).Str("campaign_id", campaignID).Msg("campaign publish failed")
		return
	}
	s.logger.Info().
		Str("campaign_id", campaignID).
		Str("status", string(delivery.Status)).
		Str("post_url", delivery.PostURL).
		Msg("campaign processed")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// campaignIDFromRequest pulls the campaign id out of a webhook delivery.
// The vendor posts form-encoded data with a data[id] field; manual
// integrations may post JSON {"data":{"id":"..."}}.
func campaignIDFromRequest(r *http.Request) string {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var payload struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return ""
		}
		return payload.Data.ID
	}

	if err := r.ParseForm(); err != nil {
		return ""
	}
	return r.PostForm.Get("data[id]")
}

// logRequests logs method, path, status and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
