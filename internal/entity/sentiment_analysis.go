package entity

import (
	"time"

	"gorm.io/datatypes"
)

type SentimentAnalysis struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	DocumentID     uint           `json:"document_id" gorm:"not null;index"`
	SentimentScore float64        `json:"sentiment_score" gorm:"not null"`
	SentimentLabel string         `json:"sentiment_label" gorm:"not null"`
	Confidence     float64        `json:"confidence"`
	Keywords       datatypes.JSON `json:"keywords" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (SentimentAnalysis) TableName() string {
	return "sentiment_analysis"
}
