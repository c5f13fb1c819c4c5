package serve

import (
	"encoding/json"
	"log/slog"
	"net/http"

	se "github.com/VitorNoe/MovieSearchApp/pkg/search"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Controller is the presentation boundary of a search controller.
type Controller interface {
	State() se.State
	OnQueryChange(text string)
	TriggerSearch()
	ClearError()
	Subscribe() (<-chan se.State, func())
}

type Handler struct {
	controller Controller
	upgrader   websocket.Upgrader
	router     *mux.Router
}

type queryRequest struct {
	Query string `json:"query"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("could not encode response", slog.Any("error", errors.WithStack(err)))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) putQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	h.controller.OnQueryChange(req.Query)

	respondJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) postSearch(w http.ResponseWriter, r *http.Request) {
	h.controller.TriggerSearch()

	respondJSON(w, http.StatusAccepted, h.controller.State())
}

func (h *Handler) deleteError(w http.ResponseWriter, r *http.Request) {
	h.controller.ClearError()

	respondJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) streamState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "could not upgrade connection", slog.Any("error", errors.WithStack(err)))
		return
	}

	defer conn.Close()

	updates, unsubscribe := h.controller.Subscribe()
	defer unsubscribe()

	// Client messages are ignored, reading only detects disconnection.
	go func() {
		defer unsubscribe()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for state := range updates {
		if err := conn.WriteJSON(state); err != nil {
			slog.DebugContext(ctx, "state stream closed", slog.Any("error", errors.WithStack(err)))
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func NewHandler(controller Controller) *Handler {
	h := &Handler{
		controller: controller,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", h.getState).Methods(http.MethodGet)
	api.HandleFunc("/state/stream", h.streamState).Methods(http.MethodGet)
	api.HandleFunc("/query", h.putQuery).Methods(http.MethodPut)
	api.HandleFunc("/search", h.postSearch).Methods(http.MethodPost)
	api.HandleFunc("/error", h.deleteError).Methods(http.MethodDelete)

	h.router = router

	return h
}

var _ http.Handler = &Handler{}
