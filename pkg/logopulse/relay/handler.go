// Package relay implements the stateless proxy between label-detection
// clients and the upstream processing boundary.
//
// Each of the three routes forwards its request to the same upstream
// and mirrors the upstream response; the only transformation performed
// anywhere is attaching a derived display URL to history records. No
// operation depends on any prior operation, so the relay needs no
// synchronization and scales by replication.
package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/urlstrategy"
)

// Handler serves the relay API. It holds no mutable state: every
// field is set at construction and only read afterwards.
type Handler struct {
	upstreamBase   string
	httpClient     *http.Client
	urls           urlstrategy.DisplayURLStrategy
	maxUploadBytes int64
}

// NewHandler creates a relay handler. urls derives the display URL
// attached to history records.
func NewHandler(cfg Config, urls urlstrategy.DisplayURLStrategy) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if urls == nil {
		return nil, errURLStrategyRequired
	}

	timeout := cfg.UpstreamTimeout
	if timeout == 0 {
		timeout = DefaultUpstreamTimeout
	}
	maxUploadBytes := cfg.MaxUploadBytes
	if maxUploadBytes == 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}

	return &Handler{
		upstreamBase:   strings.TrimSuffix(cfg.UpstreamBaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		urls:           urls,
		maxUploadBytes: maxUploadBytes,
	}, nil
}

// Routes returns the router for the relay endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload/{key}", h.Upload)
	r.Get("/results/{imageId}", h.GetResult)
	r.Get("/history", h.ListHistory)
	return r
}

// Upload proxies a raw image body to the upstream boundary under the
// client-derived submission key. The content type is re-validated here
// so a client that bypassed its local check is still rejected before a
// wasted upstream round-trip.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	contentType := r.Header.Get("Content-Type")
	if !logopulse.ValidContentType(contentType) {
		slog.Error("Invalid Content-Type", "key", key, "content_type", contentType)
		writeError(w, r, http.StatusBadRequest, "unsupported_media_type",
			"Unsupported Content-Type. Only image/jpeg and image/png are supported.")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			slog.Error("Upload body too large", "key", key, "limit", maxBytesErr.Limit)
			writeError(w, r, http.StatusRequestEntityTooLarge, "payload_too_large",
				"upload body exceeds the configured size limit")
			return
		}
		slog.Error("Failed to read upload body", "key", key, "err", err)
		writeError(w, r, http.StatusBadRequest, "bad_request", "failed to read upload body")
		return
	}

	slog.Info("Upload request received", "key", key, "content_type", contentType, "size", len(body))

	h.forward(w, r, forwardSpec{
		method:      http.MethodPost,
		path:        "/upload/" + url.PathEscape(key),
		body:        bytes.NewReader(body),
		contentType: contentType,
	})
}

// GetResult proxies a result-by-identifier query. A 404 from upstream
// means the submission is still processing and passes through
// untouched; the poller treats it as retry, not failure.
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageId")
	slog.Info("Results request received", "image_id", imageID)

	h.forward(w, r, forwardSpec{
		method: http.MethodGet,
		path:   "/results/" + url.PathEscape(imageID),
	})
}

// ListHistory proxies the history query and attaches a derived display
// URL to every record. Order is whatever upstream returned; nothing is
// filtered or otherwise altered.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	slog.Info("History request received")

	h.forward(w, r, forwardSpec{
		method:    http.MethodGet,
		path:      "/history",
		transform: h.enrichHistory,
	})
}

// enrichHistory decodes the upstream history body, derives ImageUrl
// per record, and re-encodes. Applied to 2xx responses only.
func (h *Handler) enrichHistory(r *http.Request, body []byte) ([]byte, error) {
	var records []logopulse.HistoryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}

	for i := range records {
		u, err := h.urls.DisplayURL(r.Context(), records[i].ImageKey)
		if err != nil {
			return nil, err
		}
		records[i].ImageUrl = u
	}

	return json.Marshal(records)
}

// errorEnvelope is the structured body for every relay-originated
// error. Upstream-originated errors pass through verbatim instead.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
