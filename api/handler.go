package api

import (
	"context"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/input"
	"aws-cost-calc/core/output"
	"aws-cost-calc/core/projection"
	"aws-cost-calc/core/types"
	"aws-cost-calc/core/validation"
	"aws-cost-calc/internal/errors"
	"aws-cost-calc/internal/metrics"
)

const (
	requestIDHeader = "X-Request-Id"
	inputHashHeader = "X-Input-Hash"

	maxBodyBytes = 1 << 20
)

// requestID takes the caller's X-Request-Id or generates a UUID, and stores
// it where middleware.GetReqID finds it
func requestID(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

// handleArchive handles POST /v1/archive/projection
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format, err := requestedFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	base, err := input.ArchivePreset(r.URL.Query().Get("preset"), s.cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	params, err := decodeBody(w, r, func(data []byte, f input.Format) (projection.Params, error) {
		return input.DecodeArchive(data, f, base)
	})
	if err != nil {
		s.fail(w, r, types.CalculatorArchive, err)
		return
	}
	if err := validation.Archive(params); err != nil {
		s.fail(w, r, types.CalculatorArchive, err)
		return
	}

	env, err := s.envelope(r, types.CalculatorArchive, params)
	if err != nil {
		s.fail(w, r, types.CalculatorArchive, err)
		return
	}

	records := projection.Project(params)
	summary := projection.Summarize(records)

	s.metrics.ObserveCalculation(types.CalculatorArchive, metrics.OutcomeSuccess)
	s.metrics.ObservePeriods(params.Periods)
	s.logger.Debug("archive projection",
		zap.String("request_id", env.Metadata.RequestID),
		zap.Int("periods", params.Periods),
		zap.String("total", summary.TotalCost.String()),
	)

	w.Header().Set(inputHashHeader, env.Metadata.InputHash)
	if format != output.FormatJSON {
		s.writeReport(w, r, format, output.ArchiveReport(params, records, summary).WithEnvelope(env).WithVersion(s.version))
		return
	}
	s.writeJSON(w, ArchiveResponse{
		Params:   params,
		Records:  records,
		Summary:  summary,
		Metadata: s.metadata(env, start),
	}, http.StatusOK)
}

// handleEndpoint handles POST /v1/endpoint/estimate
func (s *Server) handleEndpoint(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format, err := requestedFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	base, err := input.Endpoint(s.cfg.Endpoint, s.cfg.Currency)
	if err != nil {
		s.fail(w, r, types.CalculatorEndpoint, err)
		return
	}
	params, err := decodeBody(w, r, func(data []byte, f input.Format) (calculators.EndpointParams, error) {
		return input.DecodeEndpoint(data, f, base)
	})
	if err != nil {
		s.fail(w, r, types.CalculatorEndpoint, err)
		return
	}
	if err := validation.Endpoint(params); err != nil {
		s.fail(w, r, types.CalculatorEndpoint, err)
		return
	}

	env, err := s.envelope(r, types.CalculatorEndpoint, params)
	if err != nil {
		s.fail(w, r, types.CalculatorEndpoint, err)
		return
	}

	est := calculators.EstimateEndpoint(params)
	s.metrics.ObserveCalculation(types.CalculatorEndpoint, metrics.OutcomeSuccess)

	w.Header().Set(inputHashHeader, env.Metadata.InputHash)
	if format != output.FormatJSON {
		s.writeReport(w, r, format, output.EndpointReport(params, est).WithEnvelope(env).WithVersion(s.version))
		return
	}
	s.writeJSON(w, EndpointResponse{
		Params:   params,
		Estimate: est,
		Metadata: s.metadata(env, start),
	}, http.StatusOK)
}

// handleDedicatedLine handles POST /v1/dedicated-line/estimate
func (s *Server) handleDedicatedLine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format, err := requestedFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	base, err := input.DedicatedLine(s.cfg.DedicatedLine, s.cfg.Currency)
	if err != nil {
		s.fail(w, r, types.CalculatorDedicatedLine, err)
		return
	}
	params, err := decodeBody(w, r, func(data []byte, f input.Format) (calculators.DedicatedLineParams, error) {
		return input.DecodeDedicatedLine(data, f, base)
	})
	if err != nil {
		s.fail(w, r, types.CalculatorDedicatedLine, err)
		return
	}
	if err := validation.DedicatedLine(params); err != nil {
		s.fail(w, r, types.CalculatorDedicatedLine, err)
		return
	}

	env, err := s.envelope(r, types.CalculatorDedicatedLine, params)
	if err != nil {
		s.fail(w, r, types.CalculatorDedicatedLine, err)
		return
	}

	est, err := calculators.EstimateDedicatedLine(params)
	if err != nil {
		s.fail(w, r, types.CalculatorDedicatedLine, err)
		return
	}
	s.metrics.ObserveCalculation(types.CalculatorDedicatedLine, metrics.OutcomeSuccess)

	w.Header().Set(inputHashHeader, env.Metadata.InputHash)
	if format != output.FormatJSON {
		s.writeReport(w, r, format, output.DedicatedLineReport(params, est).WithEnvelope(env).WithVersion(s.version))
		return
	}
	s.writeJSON(w, DedicatedLineResponse{
		Params:   params,
		Estimate: est,
		Metadata: s.metadata(env, start),
	}, http.StatusOK)
}

// handlePorts handles GET /v1/dedicated-line/ports
func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	resp := PortsResponse{}
	for _, pt := range calculators.PortTypes() {
		resp.PortTypes = append(resp.PortTypes, PortTypePrices{
			PortType:   pt,
			Capacities: calculators.Capacities(pt),
		})
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	formats := s.formatters.Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	s.writeJSON(w, VersionResponse{
		Version:    s.version,
		Engine:     "aws-cost-calc",
		APIVersion: "v1",
		Calculators: []string{
			types.CalculatorArchive.String(),
			types.CalculatorEndpoint.String(),
			types.CalculatorDedicatedLine.String(),
		},
		Formats: names,
	}, http.StatusOK)
}

func (s *Server) envelope(r *http.Request, calc types.Calculator, params interface{}) (*input.Envelope, error) {
	env, err := input.NewEnvelope(input.SourceInfo{Type: input.SourceAPI}, calc, params)
	if err != nil {
		return nil, err
	}
	return env.WithRequestID(middleware.GetReqID(r.Context())), nil
}

func (s *Server) metadata(env *input.Envelope, start time.Time) ResponseMetadata {
	return ResponseMetadata{
		RequestID:     env.Metadata.RequestID,
		InputHash:     env.Metadata.InputHash,
		EngineVersion: s.version,
		DurationMs:    time.Since(start).Milliseconds(),
	}
}

// fail counts a rejected calculation and writes the error
func (s *Server) fail(w http.ResponseWriter, r *http.Request, calc types.Calculator, err error) {
	outcome := metrics.OutcomeError
	if statusFor(err) < http.StatusInternalServerError {
		outcome = metrics.OutcomeInvalid
	}
	s.metrics.ObserveCalculation(calc, outcome)
	s.writeError(w, r, err)
}

// requestedFormat reads ?format=; the API defaults to JSON
func requestedFormat(r *http.Request) (output.Format, error) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return output.FormatJSON, nil
	}
	return output.ParseFormat(raw)
}

// decodeBody reads the request body and overlays it onto a preset.
// An empty body leaves the preset untouched.
func decodeBody[P any](w http.ResponseWriter, r *http.Request, overlay func([]byte, input.Format) (P, error)) (P, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var zero P
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return zero, errors.Newf(errors.TypeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return zero, errors.Parsing("failed to read request body", err)
	}
	return overlay(data, bodyFormat(r))
}

// bodyFormat picks the request syntax from Content-Type, defaulting to JSON
func bodyFormat(r *http.Request) input.Format {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return input.FormatYAML
	case "application/hcl", "text/hcl":
		return input.FormatHCL
	default:
		return input.FormatJSON
	}
}

func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, format output.Format, report *output.Report) {
	f, err := s.formatters.Get(format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	if format == output.FormatXLSX {
		w.Header().Set("Content-Disposition", `attachment; filename="`+string(report.Calculator)+`.xlsx"`)
	}
	if err := f.Render(w, report); err != nil {
		// headers are gone; all that is left is to log
		s.logger.Error("failed to render report",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("format", string(format)),
			zap.Error(err),
		)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := ErrorBody{
		Code:      string(errors.TypeInternal),
		Message:   err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	}
	if e, ok := errors.As(err); ok {
		body.Code = string(e.Type)
		body.Message = e.Message
		body.Fields = e.Fields
		if e.Cause != nil {
			body.Message += ": " + e.Cause.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("request_id", body.RequestID), zap.Error(err))
	}
	s.writeJSON(w, ErrorResponse{Error: body}, status)
}

// statusFor maps error types to HTTP status codes. Every lookup the API
// performs is keyed by request input, so NOT_FOUND is a client error here.
func statusFor(err error) int {
	e, ok := errors.As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Type {
	case errors.TypeInput, errors.TypeParsing, errors.TypeNotFound, errors.TypeNotSupported:
		return http.StatusBadRequest
	case errors.TypeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
