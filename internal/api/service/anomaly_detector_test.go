package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAnomaliesFlagsExtremeOutlierAsHigh(t *testing.T) {
	// Fourteen identical readings and a single extreme one. The outlier sits
	// more than 3.5 standard deviations from the mean.
	lines := make([]string, 0, 15)
	for i := 0; i < 14; i++ {
		lines = append(lines, "Revenue: 100")
	}
	lines = append(lines, "Revenue: 500")

	result := detectAnomalies(strings.Join(lines, "\n"))
	require.NotEmpty(t, result.Anomalies, "Extreme outlier should be flagged")

	foundOutlier := false
	for _, anomaly := range result.Anomalies {
		if anomaly.AnomalyType == "statistical_outlier" {
			foundOutlier = true
			assert.Equal(t, "high", anomaly.Severity, "An outlier above 3 standard deviations should be high severity")
			assert.Equal(t, "revenue", anomaly.Metric)
			assert.Equal(t, 500.0, anomaly.Value)
			assert.Greater(t, anomaly.ZScore, 3.0)
		}
	}
	assert.True(t, foundOutlier, "Expected a statistical_outlier anomaly")
	assert.Contains(t, result.AffectedMetrics, "revenue")
	assert.Greater(t, result.RiskScore, 0.0)
	assert.LessOrEqual(t, result.RiskScore, 1.0)
}

func TestDetectAnomaliesIgnoresValuesWithinOneSigma(t *testing.T) {
	text := strings.Join([]string{
		"Revenue: 100",
		"Revenue: 102",
		"Revenue: 98",
		"Revenue: 101",
		"Revenue: 99",
	}, "\n")

	result := detectAnomalies(text)
	assert.Empty(t, result.Anomalies, "Values within one standard deviation should never be flagged")
	assert.Equal(t, 0.0, result.RiskScore)
	assert.Empty(t, result.AffectedMetrics)
	assert.Contains(t, result.Recommendations, "Low risk profile - Continue regular monitoring")
}

func TestDetectAnomaliesSignificantChangeSeverity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		severity string
	}{
		{"moderate change", "Revenue: 100\nRevenue: 130", "medium"},
		{"large change", "Revenue: 100\nRevenue: 160", "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := detectAnomalies(tt.text)
			require.Len(t, result.Anomalies, 1)
			anomaly := result.Anomalies[0]
			assert.Equal(t, "significant_change", anomaly.AnomalyType)
			assert.Equal(t, tt.severity, anomaly.Severity)
			assert.Equal(t, 100.0, anomaly.PreviousValue)
		})
	}
}

func TestDetectAnomaliesSmallChangeNotFlagged(t *testing.T) {
	// 15% is below the 20% change threshold.
	result := detectAnomalies("Revenue: 100\nRevenue: 115")
	assert.Empty(t, result.Anomalies)
}

func TestDetectAnomaliesEmptyContent(t *testing.T) {
	result := detectAnomalies("")
	assert.Empty(t, result.Anomalies)
	assert.Equal(t, 0.0, result.RiskScore)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, []string{"No content available for analysis"}, result.Recommendations)
}

func TestDetectAnomaliesRiskScoreBounded(t *testing.T) {
	// Pile up large swings in several metrics, the score must stay capped.
	lines := []string{}
	metrics := []string{"Revenue", "Profit", "Expenses", "Debt", "Assets"}
	for _, metric := range metrics {
		for i := 0; i < 6; i++ {
			if i%2 == 0 {
				lines = append(lines, metric+": 100")
			} else {
				lines = append(lines, metric+": 400")
			}
		}
	}

	result := detectAnomalies(strings.Join(lines, "\n"))
	require.NotEmpty(t, result.Anomalies)
	assert.LessOrEqual(t, result.RiskScore, 1.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestDetectAnomaliesMetricSpecificRecommendations(t *testing.T) {
	result := detectAnomalies("Revenue: 100\nRevenue: 300")
	require.NotEmpty(t, result.Anomalies)
	assert.Contains(t, result.Recommendations, "Review revenue recognition policies and sales processes")
}
