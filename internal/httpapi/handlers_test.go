package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"worldforge/internal/cache"
	"worldforge/internal/mapgen"
)

func newTestServer() (*Server, *chi.Mux) {
	s := NewServer(cache.NewMapCache(), nil, nil, nil, nil)
	r := chi.NewRouter()
	s.Routes(r)
	return s, r
}

func smallGenerateRequest() generateRequest {
	p := mapgen.DefaultParams()
	p.NumMacroplates = 4
	p.NumMicroplates = 20
	return generateRequest{Seed: 7, Width: 48, Height: 24, Params: p}
}

func TestHandleGenerateAndRivers(t *testing.T) {
	_, r := newTestServer()

	body, _ := json.Marshal(smallGenerateRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("generate: status %d, body %s", rr.Code, rr.Body.String())
	}

	var genResp generateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &genResp); err != nil {
		t.Fatalf("decode generate response: %v", err)
	}
	if len(genResp.Timings) == 0 {
		t.Fatal("expected non-empty timings")
	}

	riversReq := httptest.NewRequest(http.MethodPost, "/api/rivers", nil)
	riversRR := httptest.NewRecorder()
	r.ServeHTTP(riversRR, riversReq)

	if riversRR.Code != http.StatusOK {
		t.Fatalf("rivers: status %d, body %s", riversRR.Code, riversRR.Body.String())
	}
}

func TestHandleRiversWithoutGenerateReturnsNotFound(t *testing.T) {
	_, r := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/rivers", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with no cached map, got %d", rr.Code)
	}
}

func TestHandleLayerUnknownNameRejected(t *testing.T) {
	_, r := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/layers/nonsense", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown layer, got %d", rr.Code)
	}
}

func TestHandleLayerReturnsPNG(t *testing.T) {
	_, r := newTestServer()

	body, _ := json.Marshal(smallGenerateRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("generate: status %d", rr.Code)
	}

	for _, layer := range layerNames {
		layerReq := httptest.NewRequest(http.MethodGet, "/api/layers/"+layer, nil)
		layerRR := httptest.NewRecorder()
		r.ServeHTTP(layerRR, layerReq)

		if layerRR.Code != http.StatusOK {
			t.Fatalf("layer %q: status %d", layer, layerRR.Code)
		}
		if ct := layerRR.Header().Get("Content-Type"); ct != "image/png" {
			t.Fatalf("layer %q: content-type %q, want image/png", layer, ct)
		}
		if layerRR.Body.Len() == 0 {
			t.Fatalf("layer %q: empty body", layer)
		}
	}
}

func TestHandleGenerateRejectsMalformedBody(t *testing.T) {
	_, r := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rr.Code)
	}
}

func TestHandleGenerateRejectsInvalidParams(t *testing.T) {
	_, r := newTestServer()

	req := smallGenerateRequest()
	req.Params.NumMacroplates = 0

	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httpReq)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid params, got %d, body %s", rr.Code, rr.Body.String())
	}
	var body2 struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body2); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body2.Error.Code == "" {
		t.Fatal("expected a machine-readable error code")
	}
}

func TestHandleGetJobWithoutJobStoreReturnsUnavailable(t *testing.T) {
	_, r := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+"00000000-0000-0000-0000-000000000000", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a job store, got %d", rr.Code)
	}
}
