package relay

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
)

var errURLStrategyRequired = errors.New("display URL strategy is required")

// forwardSpec describes one proxied upstream call: the method and
// path-template plus an optional transform applied to successful
// response bodies. All three routes share this shape, so the
// try/forward/mirror sequence lives in exactly one place.
type forwardSpec struct {
	method      string
	path        string
	body        io.Reader
	contentType string

	// transform rewrites 2xx response bodies before they are written
	// to the caller. Nil forwards the body verbatim.
	transform func(r *http.Request, body []byte) ([]byte, error)
}

// forward proxies one request to the upstream boundary and mirrors the
// upstream status and body to the caller. Transport failures become a
// 502 with the relay's own error envelope, which no upstream response
// path produces, so callers can tell "upstream rejected this" from
// "could not reach upstream".
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, spec forwardSpec) {
	upstreamURL := h.upstreamBase + spec.path

	req, err := http.NewRequestWithContext(r.Context(), spec.method, upstreamURL, spec.body)
	if err != nil {
		slog.Error("Failed to build upstream request", "url", upstreamURL, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to build upstream request")
		return
	}
	if spec.contentType != "" {
		req.Header.Set("Content-Type", spec.contentType)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		slog.Error("Upstream unreachable", "method", spec.method, "url", upstreamURL, "err", err)
		writeError(w, r, http.StatusBadGateway, "upstream_unreachable", "could not reach upstream: "+err.Error())
		return
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Failed to read upstream response", "url", upstreamURL, "err", err)
		writeError(w, r, http.StatusBadGateway, "upstream_unreachable", "failed to read upstream response: "+err.Error())
		return
	}

	if spec.transform != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		payload, err = spec.transform(r, payload)
		if err != nil {
			slog.Error("Failed to reshape upstream response", "url", upstreamURL, "err", err)
			writeError(w, r, http.StatusBadGateway, "bad_upstream_response", "failed to reshape upstream response: "+err.Error())
			return
		}
	}

	slog.Info("Upstream response forwarded", "method", spec.method, "url", upstreamURL, "status", resp.StatusCode)

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(payload); err != nil {
		slog.Error("Failed to write response", "err", err)
	}
}
