// Package api serves the prediction and explanation endpoints over the
// bundled logistic model, plus the static catalog documents. The wizard
// talks to it through the same HTTP contract it would use against any
// external model host.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jamiesoo123/ENG40011-EndoMML/adapters/endomodel"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// NewRouter builds the prediction API router
func NewRouter(model *endomodel.Model, dataDir string, logger *internal.Logger) *gin.Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if dataDir != "" {
		r.Static("/data", dataDir)
	}

	r.POST("/predict", handlePredict(model, logger))
	r.POST("/explain", handleExplain(model, logger))

	return r
}

type predictIn struct {
	Features map[string]float64 `json:"features" binding:"required"`
}

type explainIn struct {
	Features map[string]float64 `json:"features" binding:"required"`
	TopN     int                `json:"top_n"`
}

func toVector(features map[string]float64) wizard.Vector {
	v := make(wizard.Vector, len(features))
	for k, val := range features {
		v[core.FeatureKey(k)] = val
	}
	return v
}

// handlePredict returns prediction and probability for one sample
func handlePredict(model *endomodel.Model, logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in predictIn
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "features object is required"})
			return
		}

		pred, err := model.Predict(c.Request.Context(), toVector(in.Features))
		if err != nil {
			logger.Error("scoring failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "scoring failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"pred":  pred.Pred,
			"prob1": pred.Prob1,
			"label": pred.Label,
		})
	}
}

// handleExplain returns per-feature contribution scores, strongest first
func handleExplain(model *endomodel.Model, logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in explainIn
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "features object is required"})
			return
		}
		topN := in.TopN
		if topN < 1 {
			topN = 10
		}

		vector := toVector(in.Features)
		top, err := model.Explain(c.Request.Context(), vector, topN)
		if err != nil {
			logger.Error("explanation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "explanation failed"})
			return
		}

		// shap_values stays in model feature order; only top_contributors
		// is ranked by absolute contribution.
		c.JSON(http.StatusOK, gin.H{
			"base_value":       model.BaseValue(),
			"shap_values":      toPairs(model.Contributions(vector)),
			"top_contributors": toPairs(top),
		})
	}
}

// toPairs encodes contributors as [name, value] pairs, the wire format the
// report view's client understands alongside its other accepted shapes
func toPairs(contributors []ports.Contributor) [][]interface{} {
	pairs := make([][]interface{}, 0, len(contributors))
	for _, c := range contributors {
		pairs = append(pairs, []interface{}{c.Feature.String(), c.Value})
	}
	return pairs
}
