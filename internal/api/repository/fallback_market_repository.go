package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/pkg/logger"
)

// NewFallbackFinanceRepository chains a primary market data source with a
// fallback, normally the deterministic mock generator. The fallback is used
// when the primary errors or returns no data.
func NewFallbackFinanceRepository(primary, fallback FinanceRepository, log *logger.Logger) FinanceRepository {
	return &fallbackFinanceRepository{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

type fallbackFinanceRepository struct {
	primary  FinanceRepository
	fallback FinanceRepository
	logger   *logger.Logger
}

func (r *fallbackFinanceRepository) GetBars(ctx context.Context, param dto.GetBarsParam) ([]dto.Bar, error) {
	if r.primary != nil {
		bars, err := r.primary.GetBars(ctx, param)
		if err == nil && len(bars) > 0 {
			return bars, nil
		}
		if err != nil {
			r.logger.Error("Primary market data source failed, using mock data",
				logger.ErrorField(err), logger.StringField("symbol", param.Symbol))
		}
	}
	return r.fallback.GetBars(ctx, param)
}

func (r *fallbackFinanceRepository) GetFundamentals(ctx context.Context, symbol string) (*dto.FundamentalMetrics, error) {
	if r.primary != nil {
		fundamentals, err := r.primary.GetFundamentals(ctx, symbol)
		if err == nil && fundamentals != nil {
			return fundamentals, nil
		}
		if err != nil {
			r.logger.Error("Primary fundamentals source failed, using mock data",
				logger.ErrorField(err), logger.StringField("symbol", symbol))
		}
	}
	return r.fallback.GetFundamentals(ctx, symbol)
}
