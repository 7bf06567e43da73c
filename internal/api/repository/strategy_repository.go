package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/entity"

	"gorm.io/gorm"
)

// StrategyRepository defines the interface for investment strategy data operations.
type StrategyRepository interface {
	Create(ctx context.Context, strategy *entity.InvestmentStrategy) error
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.InvestmentStrategy, error)
	FindLatest(ctx context.Context, symbol string) (*entity.InvestmentStrategy, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// NewStrategyRepository creates a new GORM-based strategy repository.
func NewStrategyRepository(db *gorm.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

type strategyRepository struct {
	db *gorm.DB
}

func (r *strategyRepository) Create(ctx context.Context, strategy *entity.InvestmentStrategy) error {
	return r.db.WithContext(ctx).Create(strategy).Error
}

func (r *strategyRepository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.InvestmentStrategy, error) {
	var strategies []entity.InvestmentStrategy
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		Limit(limit).
		Find(&strategies).Error
	if err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *strategyRepository) FindLatest(ctx context.Context, symbol string) (*entity.InvestmentStrategy, error) {
	var strategy entity.InvestmentStrategy
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		First(&strategy).Error
	if err != nil {
		return nil, err
	}
	return &strategy, nil
}

func (r *strategyRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&entity.InvestmentStrategy{}).
		Distinct("symbol").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
