package entity

import (
	"time"

	"gorm.io/datatypes"
)

type AnalysisResult struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	DocumentID      uint           `json:"document_id" gorm:"not null;index"`
	AnalysisType    string         `json:"analysis_type" gorm:"not null"`
	Result          datatypes.JSON `json:"result" gorm:"type:jsonb;not null"`
	ConfidenceScore float64        `json:"confidence_score"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (AnalysisResult) TableName() string {
	return "analysis_results"
}
