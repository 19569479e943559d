package upstream

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// Handler exposes the Service over the upstream HTTP contract.
type Handler struct {
	service *Service
}

// NewHandler creates an HTTP handler for the given service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the upstream router: upload, results, history.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload/{key}", h.Upload)
	r.Get("/results/{imageId}", h.GetResult)
	r.Get("/history", h.ListHistory)
	return r
}

// Upload stores the submitted image and opens a detection job.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	result, err := h.service.Submit(r.Context(), key, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		if errors.Is(err, logopulse.ErrUnsupportedContentType) {
			writeError(w, r, http.StatusBadRequest, "unsupported_media_type",
				"content type must be image/jpeg or image/png")
			return
		}
		slog.Error("failed to accept upload", "key", key, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error",
			"failed to accept upload")
		return
	}

	slog.Info("accepted upload", "key", key, "imageId", result.ImageID)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// GetResult returns the detection result, or 404 while the job is
// pending or the identifier is unknown.
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageId")

	label, err := h.service.Result(r.Context(), imageID)
	if err != nil {
		if errors.Is(err, ErrNoSuchJob) || errors.Is(err, ErrJobPending) {
			writeError(w, r, http.StatusNotFound, "result_not_ready",
				"no result available for this work identifier")
			return
		}
		slog.Error("failed to read result", "imageId", imageID, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error",
			"failed to read result")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, label)
}

// ListHistory returns all submissions, oldest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context())
	if err != nil {
		slog.Error("failed to list history", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error",
			"failed to list history")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, records)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
