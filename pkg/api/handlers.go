package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/variantdb/pkg/variant"
)

const (
	defaultMaxBodyBytes = 8 << 20
	defaultListLimit    = 100
)

// Server holds the API server state
type Server struct {
	store   VariantStore
	decoder *variant.Decoder
	config  ServerConfig
	metrics *Metrics
	logger  log.Logger
}

// NewServer creates a new API server. A nil decoder uses the default options.
func NewServer(store VariantStore, decoder *variant.Decoder, config ServerConfig, metrics *Metrics, logger log.Logger) *Server {
	if decoder == nil {
		decoder = variant.NewDecoder()
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Server{
		store:   store,
		decoder: decoder,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDecode godoc
//
//	@Summary		Decode a variant
//	@Description	Decode a base64 value/metadata pair to JSON text or a kind-tagged tree
//	@Tags			decode
//	@Accept			json
//	@Produce		json
//	@Param			body	body		VariantRequest	true	"Variant buffers"
//	@Success		200		{object}	APIResponse{data=DecodeResponse}
//	@Failure		400		{object}	APIResponse
//	@Failure		422		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/decode [post]
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	req, err := s.readVariantRequest(w, r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := req.Format
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatNative {
		sendError(w, fmt.Sprintf("Unsupported format %q", format), http.StatusBadRequest)
		return
	}

	result, err := s.render(format, req.Value, req.Metadata)
	if err != nil {
		sendError(w, err.Error(), statusForError(err))
		return
	}

	sendSuccess(w, DecodeResponse{Format: format, Result: result})
}

// handlePutVariant godoc
//
//	@Summary		Store a variant
//	@Description	Validate and store a base64 value/metadata pair under a new id
//	@Tags			variants
//	@Accept			json
//	@Produce		json
//	@Param			body	body		VariantRequest	true	"Variant buffers"
//	@Success		201		{object}	APIResponse{data=VariantResponse}
//	@Failure		400		{object}	APIResponse
//	@Failure		422		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/variants [post]
func (s *Server) handlePutVariant(w http.ResponseWriter, r *http.Request) {
	req, err := s.readVariantRequest(w, r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	id, err := s.store.Put(r.Context(), req.Metadata, req.Value)
	s.metrics.RecordStoreOperation("put", err == nil, time.Since(start))
	if err != nil {
		s.logError("put", err)
		sendError(w, fmt.Sprintf("Failed to store variant: %v", err), statusForError(err))
		return
	}

	sendJSON(w, http.StatusCreated, VariantResponse{ID: id.String(), CreatedAt: id.Time().UTC()})
}

// handleListVariants godoc
//
//	@Summary		List variants
//	@Description	List stored variant ids, oldest first
//	@Tags			variants
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of ids (default 100, 0 for all)"
//	@Success		200		{object}	APIResponse{data=[]VariantResponse}
//	@Failure		400		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/variants [get]
func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			sendError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	start := time.Now()
	entries, err := s.store.List(r.Context(), limit)
	s.metrics.RecordStoreOperation("list", err == nil, time.Since(start))
	if err != nil {
		s.logError("list", err)
		sendError(w, fmt.Sprintf("Failed to list variants: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]VariantResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, VariantResponse{ID: e.ID.String(), CreatedAt: e.CreatedAt.UTC()})
	}
	sendSuccess(w, out)
}

// handleGetVariant godoc
//
//	@Summary		Get a variant
//	@Description	Fetch a stored variant rendered as JSON text, a kind-tagged tree, or raw buffers
//	@Tags			variants
//	@Produce		json
//	@Param			id		path		string	true	"Variant id"
//	@Param			format	query		string	false	"json (default), native or raw"
//	@Success		200		{object}	APIResponse{data=VariantResponse}
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Failure		422		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/variants/{id} [get]
func (s *Server) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid variant id", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatNative && format != FormatRaw {
		sendError(w, fmt.Sprintf("Unsupported format %q", format), http.StatusBadRequest)
		return
	}

	start := time.Now()
	entry, err := s.store.Get(r.Context(), id)
	s.metrics.RecordStoreOperation("get", err == nil, time.Since(start))
	if err != nil {
		if statusForError(err) != http.StatusNotFound {
			s.logError("get", err)
		}
		sendError(w, err.Error(), statusForError(err))
		return
	}

	resp := VariantResponse{ID: entry.ID.String(), CreatedAt: entry.CreatedAt.UTC(), Format: format}
	if format == FormatRaw {
		resp.Value = entry.Value
		resp.Metadata = entry.Metadata
		sendSuccess(w, resp)
		return
	}

	resp.Result, err = s.render(format, entry.Value, entry.Metadata)
	if err != nil {
		sendError(w, err.Error(), statusForError(err))
		return
	}
	sendSuccess(w, resp)
}

// handleDeleteVariant godoc
//
//	@Summary		Delete a variant
//	@Tags			variants
//	@Produce		json
//	@Param			id	path		string	true	"Variant id"
//	@Success		200	{object}	APIResponse
//	@Failure		400	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/variants/{id} [delete]
func (s *Server) handleDeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid variant id", http.StatusBadRequest)
		return
	}

	start := time.Now()
	err = s.store.Delete(r.Context(), id)
	s.metrics.RecordStoreOperation("delete", err == nil, time.Since(start))
	if err != nil {
		if statusForError(err) != http.StatusNotFound {
			s.logError("delete", err)
		}
		sendError(w, err.Error(), statusForError(err))
		return
	}

	sendSuccess(w, map[string]string{"id": id.String(), "status": "deleted"})
}

func (s *Server) readVariantRequest(w http.ResponseWriter, r *http.Request) (*VariantRequest, error) {
	var req VariantRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(err, "invalid request body")
	}
	if len(req.Value) == 0 {
		return nil, errors.New("value is required")
	}
	return &req, nil
}

// render decodes a pair into the response shape of format.
func (s *Server) render(format string, value, metadata []byte) (interface{}, error) {
	var (
		result interface{}
		err    error
	)
	switch format {
	case FormatNative:
		var v variant.Value
		if v, err = s.decoder.ToNative(value, metadata); err == nil {
			result = NewNativeNode(v)
		}
	default:
		var text string
		if text, err = s.decoder.ToJSON(value, metadata); err == nil {
			result = json.RawMessage(text)
		}
	}
	s.metrics.RecordDecode(format, len(value), err)
	if err != nil {
		return nil, errors.Wrap(err, "decode variant")
	}
	return result, nil
}

func (s *Server) logError(op string, err error) {
	if statusForError(err) == http.StatusInternalServerError {
		level.Error(s.logger).Log("msg", "store operation failed", "op", op, "err", err)
		return
	}
	level.Debug(s.logger).Log("msg", "request rejected", "op", op, "err", err)
}
