package entity

import (
	"time"

	"gorm.io/datatypes"
)

type Document struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Filename   string         `json:"filename" gorm:"not null"`
	FilePath   string         `json:"file_path" gorm:"not null"`
	FileType   string         `json:"file_type" gorm:"not null"`
	Content    string         `json:"content" gorm:"type:text"`
	Metadata   datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	UploadDate time.Time      `json:"upload_date" gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
