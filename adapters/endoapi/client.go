// Package endoapi is the HTTP client for the prediction and explanation
// service. It performs a single call per operation; failed calls surface as
// errors and are never retried here - the user may resubmit manually.
package endoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// Client calls the prediction service over HTTP
type Client struct {
	predictURL string
	explainURL string
	httpClient *http.Client
}

// NewClient creates a prediction service client
func NewClient(predictURL, explainURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		predictURL: predictURL,
		explainURL: explainURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type predictRequest struct {
	Features wizard.Vector `json:"features"`
}

type explainRequest struct {
	Features wizard.Vector `json:"features"`
	TopN     int           `json:"top_n"`
}

// Predict posts the feature vector and decodes the model's response. Any
// non-2xx status is an error.
func (c *Client) Predict(ctx context.Context, features wizard.Vector) (*ports.Prediction, error) {
	body, err := c.post(ctx, c.predictURL, predictRequest{Features: features})
	if err != nil {
		return nil, core.NewSubmissionError(err)
	}

	var pred ports.Prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return nil, core.NewSubmissionError(fmt.Errorf("decoding prediction response: %w", err))
	}
	return &pred, nil
}

// explainResponse tolerates the service formats in the wild: contributors
// under top_contributors, shap_values, or contributions
type explainResponse struct {
	TopContributors json.RawMessage `json:"top_contributors"`
	ShapValues      json.RawMessage `json:"shap_values"`
	Contributions   json.RawMessage `json:"contributions"`
}

// Explain requests per-feature contribution scores for the vector
func (c *Client) Explain(ctx context.Context, features wizard.Vector, topN int) ([]ports.Contributor, error) {
	body, err := c.post(ctx, c.explainURL, explainRequest{Features: features, TopN: topN})
	if err != nil {
		return nil, err
	}

	var resp explainResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		for _, raw := range []json.RawMessage{resp.TopContributors, resp.ShapValues, resp.Contributions} {
			if len(raw) > 0 && string(raw) != "null" {
				return decodeContributors(raw)
			}
		}
	}
	// Some services return the contributor list as the whole body
	return decodeContributors(body)
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API error %d from %s", resp.StatusCode, url)
	}
	return body, nil
}

// decodeContributors accepts the three contributor encodings used by
// explanation services: an array of [name, value] pairs, an array of
// {feature, shap} objects, or an object keyed by feature name. An empty list
// in any accepted shape decodes as empty, not as an error.
func decodeContributors(raw json.RawMessage) ([]ports.Contributor, error) {
	var pairs [][]json.RawMessage
	if err := json.Unmarshal(raw, &pairs); err == nil {
		out := make([]ports.Contributor, 0, len(pairs))
		for _, p := range pairs {
			if len(p) != 2 {
				continue
			}
			var name string
			var value float64
			if json.Unmarshal(p[0], &name) == nil && json.Unmarshal(p[1], &value) == nil {
				out = append(out, ports.Contributor{Feature: core.FeatureKey(name), Value: value})
			}
		}
		if len(out) > 0 || len(pairs) == 0 {
			return out, nil
		}
	}

	var objs []struct {
		Feature string   `json:"feature"`
		Name    string   `json:"name"`
		Shap    *float64 `json:"shap"`
		Value   *float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &objs); err == nil && len(objs) > 0 {
		out := make([]ports.Contributor, 0, len(objs))
		for _, o := range objs {
			name := o.Feature
			if name == "" {
				name = o.Name
			}
			value := 0.0
			if o.Shap != nil {
				value = *o.Shap
			} else if o.Value != nil {
				value = *o.Value
			}
			if name != "" {
				out = append(out, ports.Contributor{Feature: core.FeatureKey(name), Value: value})
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}

	var keyed map[string]float64
	if err := json.Unmarshal(raw, &keyed); err == nil {
		out := make([]ports.Contributor, 0, len(keyed))
		for name, value := range keyed {
			out = append(out, ports.Contributor{Feature: core.FeatureKey(name), Value: value})
		}
		return out, nil
	}

	return nil, fmt.Errorf("unrecognized contributor encoding")
}
