package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/hazyhaar/yomikata/pkg/kit"
	"github.com/hazyhaar/yomikata/pkg/lookup"
)

// Options configures NewRouter.
type Options struct {
	Logger  *slog.Logger
	Catalog Catalog
	// Registry receives the HTTP and lookup metrics served on /metrics.
	// A fresh registry is used when nil.
	Registry *prometheus.Registry
	// AllowedOrigins for CORS; all origins when empty.
	AllowedOrigins []string
}

// NewRouter returns an http.Handler with all API routes.
func NewRouter(svc *lookup.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := newMetrics(reg, svc)

	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(logger, name), recoverPanics)(ep)
	}
	h := &handler{
		deinflect:      wrap("deinflect", deinflectEndpoint(svc)),
		process:        wrap("process", processEndpoint(svc)),
		listProcessors: wrap("processors", listProcessorsEndpoint(svc)),
		lookup:         wrap("lookup", lookupEndpoint(svc)),
		scan:           wrap("scan", scanEndpoint(svc)),
		listDicts:      wrap("dicts", listDictsEndpoint(opts.Catalog)),
		svc:            svc,
		catalog:        opts.Catalog,
	}

	mux := http.NewServeMux()
	route := func(pattern, name string, fn http.HandlerFunc) {
		mux.Handle(pattern, m.instrument(name, fn))
	}
	route("GET /v1/deinflect/{term}", "deinflect", h.handleDeinflect)
	route("GET /v1/process", "process", methodNotAllowed)
	route("POST /v1/process", "process", h.handleProcess)
	route("GET /v1/processors", "processors", h.handleListProcessors)
	route("GET /v1/lookup/{text}", "lookup", h.handleLookup)
	route("GET /v1/scan", "scan", methodNotAllowed)
	route("POST /v1/scan", "scan", h.handleScan)
	route("GET /v1/dicts", "dicts", h.handleListDicts)
	route("GET /v1/health", "health", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(requestID(mux))
}

type handler struct {
	deinflect      kit.Endpoint
	process        kit.Endpoint
	listProcessors kit.Endpoint
	lookup         kit.Endpoint
	scan           kit.Endpoint
	listDicts      kit.Endpoint
	svc            *lookup.Service
	catalog        Catalog
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request, ep kit.Endpoint, req any) {
	resp, err := ep(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleDeinflect(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.deinflect, &deinflectReq{
		Word:       r.PathValue("term"),
		Conditions: splitList(r.URL.Query().Get("conditions")),
	})
}

func (h *handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processReq
	if !decodeBody(w, r, &req) {
		return
	}
	h.serve(w, r, h.process, &req)
}

func (h *handler) handleListProcessors(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.listProcessors, nil)
}

func (h *handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.lookup, &lookupReq{Text: r.PathValue("text")})
}

func (h *handler) handleScan(w http.ResponseWriter, r *http.Request) {
	var req lookupReq
	if !decodeBody(w, r, &req) {
		return
	}
	h.serve(w, r, h.scan, &req)
}

func (h *handler) handleListDicts(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.listDicts, nil)
}

type healthResponse struct {
	Status     string `json:"status"`
	Language   string `json:"language"`
	Transforms int    `json:"transforms"`
	Rules      int    `json:"rules"`
	Terms      int    `json:"terms"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	t := h.svc.Table()
	resp := healthResponse{
		Status:     "ok",
		Language:   t.Language(),
		Transforms: len(t.Transforms()),
		Rules:      t.RuleCount(),
	}
	if h.catalog != nil {
		n, err := h.catalog.Count(r.Context())
		if err != nil {
			resp.Status = "degraded"
		}
		resp.Terms = n
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- helpers ---

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, lookup.ErrNoStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// recoverPanics turns a panicking endpoint into an error.
func recoverPanics(next kit.Endpoint) kit.Endpoint {
	return func(ctx context.Context, request any) (resp any, err error) {
		defer func() {
			if p := recover(); p != nil {
				resp, err = nil, fmt.Errorf("internal error: %v", p)
			}
		}()
		return next(ctx, request)
	}
}

// requestID tags each request with the caller's X-Request-ID or a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := kit.WithRequestID(kit.WithTransport(r.Context(), "http"), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
