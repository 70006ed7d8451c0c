package endoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
)

func testVector() wizard.Vector {
	return wizard.Vector{"Pain": 1, "Severity": 0.7}
}

// TestPredict tests a successful prediction round trip
func TestPredict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json content type, got %s", ct)
		}

		var req struct {
			Features map[string]float64 `json:"features"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Decoding request body: %v", err)
		}
		if req.Features["Pain"] != 1 || req.Features["Severity"] != 0.7 {
			t.Errorf("Unexpected feature payload: %v", req.Features)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"pred": 1, "prob1": 0.82, "label": "Endometriosis",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, 5*time.Second)
	pred, err := client.Predict(context.Background(), testVector())
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.Pred != 1 || pred.Prob1 != 0.82 || pred.Label != "Endometriosis" {
		t.Errorf("Unexpected prediction: %+v", pred)
	}
}

// TestPredictServerError tests that a non-2xx status surfaces as a
// submission error
func TestPredictServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), testVector())
	if err == nil {
		t.Fatal("Expected error for 503 response")
	}
	if !core.IsSubmissionError(err) {
		t.Errorf("Expected submission error, got %v", err)
	}
}

// TestPredictUnreachable tests the connection-failure path
func TestPredictUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/predict", "", time.Second)
	_, err := client.Predict(context.Background(), testVector())
	if err == nil {
		t.Fatal("Expected error for unreachable service")
	}
	if !core.IsSubmissionError(err) {
		t.Errorf("Expected submission error, got %v", err)
	}
}

// TestExplainEncodings tests the contributor wire formats the client accepts
func TestExplainEncodings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			"pair array under top_contributors",
			`{"base_value": 0.2, "top_contributors": [["Pain", 0.31], ["Severity", -0.12]]}`,
		},
		{
			"object array under shap_values",
			`{"shap_values": [{"feature": "Pain", "shap": 0.31}, {"name": "Severity", "value": -0.12}]}`,
		},
		{
			"bare pair array body",
			`[["Pain", 0.31], ["Severity", -0.12]]`,
		},
	}

	for _, test := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(test.body))
		}))

		client := NewClient(server.URL, server.URL, 5*time.Second)
		contributors, err := client.Explain(context.Background(), testVector(), 10)
		server.Close()

		if err != nil {
			t.Errorf("%s: Explain failed: %v", test.name, err)
			continue
		}
		if len(contributors) != 2 {
			t.Errorf("%s: expected 2 contributors, got %d", test.name, len(contributors))
			continue
		}
		if contributors[0].Feature != core.FeatureKey("Pain") || contributors[0].Value != 0.31 {
			t.Errorf("%s: unexpected first contributor %+v", test.name, contributors[0])
		}
	}
}

// TestExplainKeyedObject tests the map-keyed contributor encoding
func TestExplainKeyedObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"contributions": {"Pain": 0.31}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, 5*time.Second)
	contributors, err := client.Explain(context.Background(), testVector(), 10)
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if len(contributors) != 1 || contributors[0].Feature != core.FeatureKey("Pain") {
		t.Errorf("Unexpected contributors: %+v", contributors)
	}
}

// TestExplainEmptyContributors tests that a legitimately empty contributor
// list decodes as empty rather than failing
func TestExplainEmptyContributors(t *testing.T) {
	bodies := []string{
		`{"top_contributors": []}`,
		`{"contributions": {}}`,
		`[]`,
	}

	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := NewClient(server.URL, server.URL, 5*time.Second)
		contributors, err := client.Explain(context.Background(), testVector(), 10)
		server.Close()

		if err != nil {
			t.Errorf("%q: Explain failed: %v", body, err)
			continue
		}
		if len(contributors) != 0 {
			t.Errorf("%q: expected no contributors, got %d", body, len(contributors))
		}
	}
}

// TestExplainUnrecognizedBody tests that an undecodable body is an error
func TestExplainUnrecognizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"nothing useful"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, 5*time.Second)
	if _, err := client.Explain(context.Background(), testVector(), 10); err == nil {
		t.Fatal("Expected error for unrecognized contributor encoding")
	}
}
