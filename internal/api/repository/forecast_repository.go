package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/entity"

	"gorm.io/gorm"
)

// ForecastRepository defines the interface for forecast data operations.
type ForecastRepository interface {
	Create(ctx context.Context, forecast *entity.FinancialForecast) error
	FindBySymbol(ctx context.Context, symbol, forecastType string, limit int) ([]entity.FinancialForecast, error)
	FindLatest(ctx context.Context, symbol, forecastType string) (*entity.FinancialForecast, error)
}

// NewForecastRepository creates a new GORM-based forecast repository.
func NewForecastRepository(db *gorm.DB) ForecastRepository {
	return &forecastRepository{db: db}
}

type forecastRepository struct {
	db *gorm.DB
}

func (r *forecastRepository) Create(ctx context.Context, forecast *entity.FinancialForecast) error {
	return r.db.WithContext(ctx).Create(forecast).Error
}

func (r *forecastRepository) FindBySymbol(ctx context.Context, symbol, forecastType string, limit int) ([]entity.FinancialForecast, error) {
	query := r.db.WithContext(ctx).Where("symbol = ?", symbol)
	if forecastType != "" {
		query = query.Where("forecast_type = ?", forecastType)
	}

	var forecasts []entity.FinancialForecast
	if err := query.Order("forecast_date DESC").Limit(limit).Find(&forecasts).Error; err != nil {
		return nil, err
	}
	return forecasts, nil
}

func (r *forecastRepository) FindLatest(ctx context.Context, symbol, forecastType string) (*entity.FinancialForecast, error) {
	var forecast entity.FinancialForecast
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND forecast_type = ?", symbol, forecastType).
		Order("forecast_date DESC").
		First(&forecast).Error
	if err != nil {
		return nil, err
	}
	return &forecast, nil
}
