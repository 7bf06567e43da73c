package dto

import (
	"encoding/json"
	"time"
)

// AnalysisRequest asks a question about, or runs anomaly detection on, a document.
type AnalysisRequest struct {
	DocumentID uint   `json:"document_id" validate:"required"`
	Question   string `json:"question"`
}

// QAResult is the outcome of a question-answering run.
type QAResult struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	Reasoning  string   `json:"reasoning"`
}

// QAResponse is the HTTP payload for a Q&A analysis.
type QAResponse struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	Reasoning  string   `json:"reasoning,omitempty"`
}

// Anomaly describes a single flagged irregularity in a financial metric
// series.
type Anomaly struct {
	Metric           string  `json:"metric"`
	Value            float64 `json:"value"`
	PreviousValue    float64 `json:"previous_value,omitempty"`
	ExpectedRange    string  `json:"expected_range,omitempty"`
	ZScore           float64 `json:"z_score,omitempty"`
	PercentageChange float64 `json:"percentage_change,omitempty"`
	AnomalyType      string  `json:"anomaly_type"`
	Severity         string  `json:"severity"`
	Description      string  `json:"description"`
}

// AnomalyDetectionResult is the outcome of an anomaly detection run.
type AnomalyDetectionResult struct {
	Anomalies       []Anomaly `json:"anomalies"`
	RiskScore       float64   `json:"risk_score"`
	Recommendations []string  `json:"recommendations"`
	AffectedMetrics []string  `json:"affected_metrics"`
	Confidence      float64   `json:"confidence"`
}

// AnomalyDetectionResponse is the HTTP payload for an anomaly analysis.
type AnomalyDetectionResponse struct {
	Anomalies       []Anomaly `json:"anomalies"`
	RiskScore       float64   `json:"risk_score"`
	Recommendations []string  `json:"recommendations"`
	AffectedMetrics []string  `json:"affected_metrics"`
}

// AnalysisResponse represents a stored analysis result.
type AnalysisResponse struct {
	ID              uint            `json:"id"`
	DocumentID      uint            `json:"document_id"`
	AnalysisType    string          `json:"analysis_type"`
	Result          json.RawMessage `json:"result"`
	ConfidenceScore float64         `json:"confidence_score"`
	CreatedAt       time.Time       `json:"created_at"`
}
