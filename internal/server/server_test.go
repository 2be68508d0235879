package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agbru/harmcalc/internal/harmonic"
)

func newTestServer() *Server {
	return NewServer(":0", harmonic.NewDefaultFactory(), newTestLogger())
}

func TestServer_handleSum(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/api/v1/sum?terms=100", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleSum(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp sumResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Terms != 100 {
		t.Errorf("terms = %d, want 100", resp.Terms)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if math.Abs(resp.Reference-5.187377517639621) > 1e-15 {
		t.Errorf("reference = %v, want H(100)", resp.Reference)
	}

	for _, res := range resp.Results {
		switch res.Bits {
		case 32:
			if res.ForwardText != "5.187378" {
				t.Errorf("float32 forward_text = %q, want %q", res.ForwardText, "5.187378")
			}
			if res.Difference == 0 {
				t.Error("float32 difference should be non-zero at 100 terms")
			}
		case 64:
			if res.ForwardText != "5.187377517639621" {
				t.Errorf("float64 forward_text = %q, want %q", res.ForwardText, "5.187377517639621")
			}
		default:
			t.Errorf("unexpected bits %d", res.Bits)
		}
	}
}

func TestServer_handleSum_SingleEngine(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/api/v1/sum?terms=10&algo=single", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleSum(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp sumResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Bits != 32 {
		t.Errorf("results = %+v, want exactly the float32 engine", resp.Results)
	}
}

func TestServer_handleSum_Validation(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "default terms", url: "/api/v1/sum", want: http.StatusOK},
		{name: "terms not a number", url: "/api/v1/sum?terms=abc", want: http.StatusBadRequest},
		{name: "terms zero", url: "/api/v1/sum?terms=0", want: http.StatusBadRequest},
		{name: "terms over cap", url: "/api/v1/sum?terms=1000000001", want: http.StatusBadRequest},
		{name: "unknown algo", url: "/api/v1/sum?algo=quad", want: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer()
			req := httptest.NewRequest("GET", tc.url, http.NoBody)
			rec := httptest.NewRecorder()

			s.handleSum(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
			if tc.want != http.StatusOK {
				var resp errorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
					t.Errorf("error body = %q, want JSON error message", rec.Body.String())
				}
			}
		})
	}
}

func TestServer_handleSum_MethodNotAllowed(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("POST", "/api/v1/sum", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleSum(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodGet {
		t.Errorf("Allow = %q, want GET", allow)
	}
}

func TestServer_handleHealth(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q, want %q", resp["status"], "ok")
	}
}
