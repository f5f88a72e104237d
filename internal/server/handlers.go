package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/matzehuels/stackorder/pkg/buildinfo"
	errs "github.com/matzehuels/stackorder/pkg/errors"
	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/manifest"
	"github.com/matzehuels/stackorder/pkg/resolve"
)

// =============================================================================
// Request/Response Types
// =============================================================================

// OrderRequest is the JSON body of POST /v1/order. Exactly one of Elements
// (a single manifest) or Manifests must be set.
type OrderRequest struct {
	Elements  []manifest.Entry    `json:"elements,omitempty"`
	Manifests []manifest.Manifest `json:"manifests,omitempty"`
}

// OrderResponse is the body of a successful POST /v1/order.
type OrderResponse struct {
	Order    []string         `json:"order"`
	Elements []manifest.Entry `json:"elements"`
	Edges    int              `json:"edges"`
	Strategy string           `json:"strategy"`
	Cached   bool             `json:"cached"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code  string   `json:"code"`
	Error string   `json:"error"`
	Cycle []string `json:"cycle,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	manifests, err := decodeManifests(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := resolve.Options{
		Strategy: r.URL.Query().Get("strategy"),
		Refresh:  r.URL.Query().Get("refresh") == "true",
	}
	res, err := s.runner.Resolve(r.Context(), manifests, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderResponse{
		Order:    res.IDs(),
		Elements: res.Order,
		Edges:    len(res.Edges),
		Strategy: res.Strategy,
		Cached:   res.CacheHit,
	})
}

// decodeManifests reads the request body as JSON, or as a single TOML or
// YAML manifest when the Content-Type says so.
func decodeManifests(r *http.Request) ([]*manifest.Manifest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize+1))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) > maxRequestBodySize {
		return nil, errs.New(errs.ErrCodeInvalidInput, "body exceeds %d bytes", maxRequestBodySize)
	}

	switch format := formatFromContentType(r.Header.Get("Content-Type")); format {
	case manifest.FormatTOML, manifest.FormatYAML:
		m, err := manifest.Parse(body, format)
		if err != nil {
			return nil, err
		}
		return []*manifest.Manifest{m}, nil
	}

	var req OrderRequest
	if err := manifest.DecodeJSON(body, &req); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode JSON body")
	}
	if len(req.Elements) > 0 && len(req.Manifests) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "body must set either elements or manifests, not both")
	}
	if len(req.Manifests) == 0 {
		req.Manifests = []manifest.Manifest{{Elements: req.Elements}}
	}

	out := make([]*manifest.Manifest, len(req.Manifests))
	for i := range req.Manifests {
		m := &req.Manifests[i]
		m.Source = "request"
		if err := m.Validate(); err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func formatFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return manifest.FormatJSON
	}
	switch mt {
	case "application/toml":
		return manifest.FormatTOML
	case "application/yaml", "application/x-yaml", "text/yaml":
		return manifest.FormatYAML
	}
	return manifest.FormatJSON
}

// =============================================================================
// Response Helpers
// =============================================================================

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidManifest,
		errs.ErrCodeInvalidElementID, errs.ErrCodeInvalidStrategy,
		errs.ErrCodeFocusUndefined, errs.ErrCodeUnknownElement:
		return http.StatusBadRequest
	case errs.ErrCodeCycleDetected:
		return http.StatusConflict
	case errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusFor(code)

	resp := ErrorResponse{Code: string(code), Error: errs.UserMessage(err)}
	var cycleErr *graph.CycleError
	if errors.As(err, &cycleErr) {
		resp.Cycle = cycleErr.Cycle
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
		resp.Error = "internal error"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
