package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/entity"

	"gorm.io/gorm"
)

// MarketDataRepository defines the interface for stored market data rows.
type MarketDataRepository interface {
	Upsert(ctx context.Context, data *entity.MarketData) error
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.MarketData, error)
}

// NewMarketDataRepository creates a new GORM-based market data repository.
func NewMarketDataRepository(db *gorm.DB) MarketDataRepository {
	return &marketDataRepository{db: db}
}

type marketDataRepository struct {
	db *gorm.DB
}

// Upsert stores a daily snapshot, replacing any previous row for the same
// symbol and date so the snapshot job can run repeatedly within a day.
func (r *marketDataRepository) Upsert(ctx context.Context, data *entity.MarketData) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("symbol = ? AND date = ?", data.Symbol, data.Date).
			Delete(&entity.MarketData{}).Error; err != nil {
			return err
		}
		return tx.Create(data).Error
	})
}

func (r *marketDataRepository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.MarketData, error) {
	var rows []entity.MarketData
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
