package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aws-cost-calc/internal/config"
)

func newTestServer() *Server {
	return NewServer(config.Default(), "test")
}

func do(t *testing.T, s *Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestArchiveProjection(t *testing.T) {
	s := newTestServer()
	rec := do(t, s, http.MethodPost, "/v1/archive/projection", "application/json",
		`{"periods": 3, "period_growth": 10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Records []struct {
			Period    int    `json:"period"`
			Storage   string `json:"storage"`
			TotalCost string `json:"total_cost"`
		} `json:"records"`
		Summary struct {
			TotalCost string `json:"total_cost"`
		} `json:"summary"`
		Metadata ResponseMetadata `json:"metadata"`
	}
	decodeJSON(t, rec, &resp)

	require.Len(t, resp.Records, 3)
	assert.Equal(t, 1, resp.Records[0].Period)
	assert.Equal(t, "21", resp.Records[2].Storage)
	assert.Equal(t, "22.55153", resp.Records[0].TotalCost)
	assert.Equal(t, "67.68429", resp.Summary.TotalCost)

	assert.Len(t, resp.Metadata.InputHash, 64)
	assert.Equal(t, resp.Metadata.InputHash, rec.Header().Get(inputHashHeader))
	assert.Equal(t, resp.Metadata.RequestID, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "test", resp.Metadata.EngineVersion)
}

func TestArchiveEmptyBodyUsesDefaults(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/archive/projection", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ArchiveResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "22.55153", resp.Records[0].TotalCost.String())
}

func TestArchiveSameInputSameHash(t *testing.T) {
	s := newTestServer()
	body := `{"periods": 12, "initial_storage": 100}`

	a := do(t, s, http.MethodPost, "/v1/archive/projection", "application/json", body)
	b := do(t, s, http.MethodPost, "/v1/archive/projection", "application/json", body)
	require.Equal(t, http.StatusOK, a.Code)
	require.Equal(t, http.StatusOK, b.Code)

	assert.Equal(t, a.Header().Get(inputHashHeader), b.Header().Get(inputHashHeader))
	assert.NotEqual(t, a.Header().Get(requestIDHeader), b.Header().Get(requestIDHeader))
}

func TestArchiveHonorsRequestIDHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/archive/projection", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ArchiveResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "abc-123", resp.Metadata.RequestID)
}

func TestArchiveYAMLBody(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/archive/projection", "application/yaml",
		"periods: 2\nrecovery:\n  standard: 0\n  bulk: 0\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ArchiveResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Records, 2)
	assert.True(t, resp.Records[0].RecoveryCost.IsZero())
}

func TestArchiveZeroPreset(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/archive/projection?preset=zero", "application/json",
		`{"periods": 2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ArchiveResponse
	decodeJSON(t, rec, &resp)
	assert.True(t, resp.Summary.OperationCost.IsZero())
	assert.True(t, resp.Summary.RecoveryCost.IsZero())
	assert.Equal(t, "0.00198", resp.Summary.TotalCost.String())
}

func TestArchiveValidationError(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/archive/projection", "application/json",
		`{"periods": 0, "rates": {"storage": -1}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "INPUT_ERROR", resp.Error.Code)
	require.Len(t, resp.Error.Fields, 2)
	assert.Equal(t, "periods", resp.Error.Fields[0].Field)
	assert.Equal(t, "rates.storage", resp.Error.Fields[1].Field)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestArchiveMalformedBody(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/archive/projection", "application/json", `{"periods": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/archive/projection", "application/json", `{"months": 3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "PARSING_ERROR", resp.Error.Code)
}

func TestArchiveReportFormats(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/archive/projection?format=csv", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "ARCHIVE STORAGE PROJECTION"))

	rec = do(t, s, http.MethodPost, "/v1/archive/projection?format=xlsx", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "archive.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	rec = do(t, s, http.MethodPost, "/v1/archive/projection?format=pdf", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndpointEstimate(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/endpoint/estimate", "application/json",
		`{"az_count": 3, "hours": 720, "hourly_rate_per_az": 0.013, "processed_gb": 2500}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp EndpointResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "0.039", resp.Estimate.HourlyCost.String())
	assert.Equal(t, "28.08", resp.Estimate.AZCost.String())
	assert.Equal(t, "25", resp.Estimate.DataCost.String())
	assert.Equal(t, "53.08", resp.Estimate.Total.String())
}

func TestEndpointRejectsZeroAZ(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/endpoint/estimate", "application/json", `{"az_count": 0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Error.Fields, 1)
	assert.Equal(t, "az_count", resp.Error.Fields[0].Field)
}

func TestDedicatedLineEstimate(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/dedicated-line/estimate", "application/json",
		`{"locations": 2, "ports_per_location": 2, "port_type": "dedicated", "capacity": "10 Gbps", "transfer_out_gb": 1000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DedicatedLineResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, int64(4), resp.Estimate.TotalPorts)
	assert.Equal(t, "6570", resp.Estimate.PortCharges.String())
	assert.Equal(t, "20", resp.Estimate.TransferCharges.String())
	assert.Equal(t, "6590", resp.Estimate.Total.String())
}

func TestDedicatedLineRejectsUnsoldCapacity(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/dedicated-line/estimate", "application/json",
		`{"port_type": "dedicated", "capacity": "50 Mbps"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Error.Fields, 1)
	assert.Equal(t, "capacity", resp.Error.Fields[0].Field)
}

func TestPorts(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/v1/dedicated-line/ports", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PortsResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.PortTypes, 2)
	assert.Equal(t, "dedicated", string(resp.PortTypes[0].PortType))
	assert.Len(t, resp.PortTypes[0].Capacities, 4)
	assert.Len(t, resp.PortTypes[1].Capacities, 11)
}

func TestHealthVersionMetrics(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	decodeJSON(t, rec, &health)
	assert.Equal(t, "healthy", health.Status)

	rec = do(t, s, http.MethodGet, "/version", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var version VersionResponse
	decodeJSON(t, rec, &version)
	assert.Equal(t, []string{"archive", "endpoint", "dedicated-line"}, version.Calculators)
	assert.Contains(t, version.Formats, "xlsx")

	do(t, s, http.MethodPost, "/v1/endpoint/estimate", "", "")
	rec = do(t, s, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `awscostcalc_calculations_total{calculator="endpoint",outcome="success",service="aws-cost-calc"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/v1/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/v1/archive/projection", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/archive/projection", nil)
	req.Header.Set("Origin", "https://calc.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestArchiveRejectsNonFiniteYAML(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/archive/projection", "application/yaml",
		"initial_storage: .inf\nrates:\n  storage: .nan\n")
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "INPUT_ERROR", resp.Error.Code)
	require.Len(t, resp.Error.Fields, 2)
	assert.Equal(t, "initial_storage", resp.Error.Fields[0].Field)
	assert.Equal(t, "rates.storage", resp.Error.Fields[1].Field)
	assert.Equal(t, "finite", resp.Error.Fields[1].Rule)
}

func TestDedicatedLineRejectsWrappingPortCount(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/dedicated-line/estimate", "application/json",
		`{"locations": 4611686018427387904, "ports_per_location": 4, "port_type": "dedicated", "capacity": "1 Gbps"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Error.Fields, 1)
	assert.Equal(t, "locations", resp.Error.Fields[0].Field)
	assert.Equal(t, "max", resp.Error.Fields[0].Rule)
}

func TestOversizedBody(t *testing.T) {
	body := `{"periods": 2}` + strings.Repeat(" ", maxBodyBytes)
	rec := do(t, newTestServer(), http.MethodPost, "/v1/archive/projection", "application/json", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", resp.Error.Code)
}
