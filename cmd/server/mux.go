package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const maxBodySize = 1 << 20

type Handler struct {
	processor   MessageProcessor
	sender      ChannelSender
	pinger      Pinger
	verifyToken string
	sendAPIKey  string
}

func NewHandler(
	processor MessageProcessor,
	sender ChannelSender,
	pinger Pinger,
	verifyToken string,
	sendAPIKey string,
) *Handler {
	return &Handler{
		processor:   processor,
		sender:      sender,
		pinger:      pinger,
		verifyToken: verifyToken,
		sendAPIKey:  sendAPIKey,
	}
}

func NewRouter(
	h *Handler,
	logger zerolog.Logger,
	metricsHandler http.Handler,
) http.Handler {
	r := mux.NewRouter()

	r.Use(
		hlog.NewHandler(logger),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
	)

	r.HandleFunc("/api/webhook", h.Verify).Methods(http.MethodGet)
	r.HandleFunc("/api/webhook", h.Receive).Methods(http.MethodPost)
	r.HandleFunc("/api/webhook", h.Options).Methods(http.MethodOptions)
	r.HandleFunc("/api/send", h.Send).Methods(http.MethodPost)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"},
	}).Handler(r)
}

// Verify answers the subscription handshake of the channel provider.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if h.verifyToken == "" ||
		query.Get("hub.mode") != "subscribe" ||
		query.Get("hub.verify_token") != h.verifyToken {
		hlog.FromRequest(r).Warn().Msg("webhook verification rejected")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(query.Get("hub.challenge")))
}

// Receive acknowledges a delivery once it parses; per-message failures are only logged.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	lg := hlog.FromRequest(r)

	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	var webhook Webhook
	if err = json.Unmarshal(b, &webhook); err != nil {
		lg.Err(err).Msg("failed to parse webhook")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "invalid payload"})
		return
	}

	// the provider may drop the connection, messages must still be processed to the end
	ctx := context.WithoutCancel(lg.WithContext(r.Context()))

	messages := ToInboundMessages(ctx, &webhook)
	if len(messages) > 0 {
		if err = h.processor.ProcessMessages(ctx, messages); err != nil {
			lg.Err(err).Int("count", len(messages)).Msg("some messages failed")
		}
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) Options(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	w.WriteHeader(http.StatusOK)
}

// Send delivers an arbitrary text, guarded by the api_key query parameter.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	if h.sendAPIKey == "" || h.sendAPIKey != r.URL.Query().Get("api_key") {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var body SendRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
		return
	}

	if strings.TrimSpace(body.PhoneNumber) == "" || strings.TrimSpace(body.Message) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "phoneNumber and message are required"})
		return
	}

	resp, err := h.sender.SendMessage(r.Context(), body.PhoneNumber, body.Message)
	if err != nil {
		hlog.FromRequest(r).Err(err).Msg("failed to send message")
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "failed to send message"})
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Result: resp})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		hlog.FromRequest(r).Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "database unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
