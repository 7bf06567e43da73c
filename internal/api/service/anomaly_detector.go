package service

import (
	"fmt"
	"strings"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/pkg/utils"
)

const (
	zScoreThreshold           = 2.0
	percentageChangeThreshold = 0.2
)

// metricNames fixes the iteration order so repeated runs over the same
// document flag metrics in the same order.
var metricNames = []string{"revenue", "profit", "earnings", "expenses", "cash_flow", "debt", "assets", "liabilities"}

var metricKeywords = map[string][]string{
	"revenue":   {"revenue", "sales"},
	"profit":    {"profit", "earnings", "net income"},
	"expenses":  {"expense", "cost"},
	"cash_flow": {"cash flow"},
	"debt":      {"debt", "liability"},
	"assets":    {"asset"},
}

// detectAnomalies flags statistical outliers and significant period-over-period
// changes in the financial metric series extracted from document text.
func detectAnomalies(text string) *dto.AnomalyDetectionResult {
	if text == "" {
		return &dto.AnomalyDetectionResult{
			Anomalies:       []dto.Anomaly{},
			RiskScore:       0.0,
			Recommendations: []string{"No content available for analysis"},
			AffectedMetrics: []string{},
			Confidence:      0.0,
		}
	}

	metrics := extractMetricSeries(text)

	anomalies := []dto.Anomaly{}
	affectedMetrics := []string{}
	for _, name := range metricNames {
		values := metrics[name]
		if len(values) < 2 {
			continue
		}
		metricAnomalies := detectMetricAnomalies(name, values)
		if len(metricAnomalies) > 0 {
			anomalies = append(anomalies, metricAnomalies...)
			affectedMetrics = append(affectedMetrics, name)
		}
	}

	riskScore := calculateRiskScore(anomalies, len(metricNames))

	confidence := float64(len(anomalies)) / 5.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	return &dto.AnomalyDetectionResult{
		Anomalies:       anomalies,
		RiskScore:       riskScore,
		Recommendations: generateAnomalyRecommendations(anomalies, riskScore),
		AffectedMetrics: affectedMetrics,
		Confidence:      confidence,
	}
}

// extractMetricSeries collects, per metric, every number found on a line
// mentioning one of the metric's keywords, in line order.
func extractMetricSeries(text string) map[string][]float64 {
	metrics := make(map[string][]float64, len(metricNames))
	for _, name := range metricNames {
		metrics[name] = []float64{}
	}

	for _, line := range strings.Split(text, "\n") {
		lineLower := strings.ToLower(line)
		for name, keywords := range metricKeywords {
			for _, keyword := range keywords {
				if strings.Contains(lineLower, keyword) {
					if value, ok := utils.ExtractNumber(line); ok {
						metrics[name] = append(metrics[name], value)
					}
					break
				}
			}
		}
	}
	return metrics
}

func detectMetricAnomalies(metricName string, values []float64) []dto.Anomaly {
	anomalies := []dto.Anomaly{}
	if len(values) < 2 {
		return anomalies
	}

	meanVal := utils.Mean(values)
	stdVal := utils.StdDev(values)

	if stdVal > 0 {
		for _, value := range values {
			zScore := (value - meanVal) / stdVal
			if zScore < 0 {
				zScore = -zScore
			}
			if zScore > zScoreThreshold {
				severity := "medium"
				if zScore > 3 {
					severity = "high"
				}
				anomalies = append(anomalies, dto.Anomaly{
					Metric:        metricName,
					Value:         value,
					ExpectedRange: fmt.Sprintf("%.2f - %.2f", meanVal-2*stdVal, meanVal+2*stdVal),
					ZScore:        zScore,
					AnomalyType:   "statistical_outlier",
					Severity:      severity,
					Description:   fmt.Sprintf("%s value of %v is %.2f standard deviations from the mean", metricName, value, zScore),
				})
			}
		}
	}

	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		change := (values[i] - values[i-1]) / values[i-1]
		if change < 0 {
			change = -change
		}
		if change > percentageChangeThreshold {
			severity := "medium"
			if change > 0.5 {
				severity = "high"
			}
			anomalies = append(anomalies, dto.Anomaly{
				Metric:           metricName,
				Value:            values[i],
				PreviousValue:    values[i-1],
				PercentageChange: change * 100,
				AnomalyType:      "significant_change",
				Severity:         severity,
				Description:      fmt.Sprintf("%s changed by %.1f%% from %v to %v", metricName, change*100, values[i-1], values[i]),
			})
		}
	}

	return anomalies
}

// calculateRiskScore weights anomalies by severity and normalizes by the
// metric universe so a handful of medium findings stays below the alert bar.
func calculateRiskScore(anomalies []dto.Anomaly, totalMetrics int) float64 {
	if len(anomalies) == 0 {
		return 0.0
	}

	severityWeights := map[string]float64{"low": 0.3, "medium": 0.6, "high": 1.0}

	totalWeight := 0.0
	for _, anomaly := range anomalies {
		weight, ok := severityWeights[anomaly.Severity]
		if !ok {
			weight = 0.6
		}
		totalWeight += weight
	}

	riskScore := totalWeight / (float64(totalMetrics) * 2)
	if riskScore > 1.0 {
		riskScore = 1.0
	}
	return riskScore
}

func generateAnomalyRecommendations(anomalies []dto.Anomaly, riskScore float64) []string {
	recommendations := []string{}

	switch {
	case riskScore > 0.7:
		recommendations = append(recommendations,
			"High risk detected - Consider immediate review of financial statements",
			"Recommend consulting with financial advisors",
		)
	case riskScore > 0.4:
		recommendations = append(recommendations,
			"Medium risk detected - Monitor financial metrics closely",
			"Consider implementing additional controls",
		)
	default:
		recommendations = append(recommendations, "Low risk profile - Continue regular monitoring")
	}

	outliers := 0
	changes := 0
	affected := map[string]bool{}
	for _, anomaly := range anomalies {
		switch anomaly.AnomalyType {
		case "statistical_outlier":
			outliers++
		case "significant_change":
			changes++
		}
		affected[anomaly.Metric] = true
	}

	if outliers > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Investigate %d statistical outliers in financial data", outliers))
	}
	if changes > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Review %d significant changes in financial metrics", changes))
	}

	if affected["revenue"] {
		recommendations = append(recommendations, "Review revenue recognition policies and sales processes")
	}
	if affected["expenses"] {
		recommendations = append(recommendations, "Analyze expense patterns and cost control measures")
	}
	if affected["cash_flow"] {
		recommendations = append(recommendations, "Monitor cash flow management and liquidity")
	}

	return recommendations
}
