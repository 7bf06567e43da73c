package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kismat91/FinDocGPT/internal/api/config"
	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/logger"
)

type capturingFinanceRepository struct {
	stubFinanceRepository
	lastParam dto.GetBarsParam
}

func (c *capturingFinanceRepository) GetBars(ctx context.Context, param dto.GetBarsParam) ([]dto.Bar, error) {
	c.lastParam = param
	return c.stubFinanceRepository.GetBars(ctx, param)
}

type stubMarketDataRepository struct {
	upserted  []*entity.MarketData
	rows      []entity.MarketData
	lastLimit int
}

func (s *stubMarketDataRepository) Upsert(_ context.Context, data *entity.MarketData) error {
	s.upserted = append(s.upserted, data)
	return nil
}

func (s *stubMarketDataRepository) FindBySymbol(_ context.Context, _ string, limit int) ([]entity.MarketData, error) {
	s.lastLimit = limit
	return s.rows, nil
}

func marketTestConfig(symbols ...string) *config.Config {
	return &config.Config{
		MarketData: config.MarketData{
			CacheTTL:        "15m",
			SnapshotSymbols: symbols,
		},
	}
}

// TestGetBarsNormalizesSymbolAndTimeframe verifies lowercase symbols are
// uppercased and an empty timeframe falls back to the 30d default before the
// finance repository is queried.
func TestGetBarsNormalizesSymbolAndTimeframe(t *testing.T) {
	financeRepo := &capturingFinanceRepository{
		stubFinanceRepository: stubFinanceRepository{bars: uptrendBars(5, 100, 0.002)},
	}
	svc := NewMarketService(marketTestConfig(), financeRepo, &stubMarketDataRepository{}, nil, logger.NewNop())

	bars, err := svc.GetBars(context.Background(), "aapl", "")
	require.NoError(t, err)

	assert.Len(t, bars, 5, "expected the repository bars to be returned unchanged")
	assert.Equal(t, "AAPL", financeRepo.lastParam.Symbol, "symbol should be uppercased before lookup")
	assert.Equal(t, "30d", financeRepo.lastParam.Timeframe, "empty timeframe should default to 30d")
}

// TestGetBarsPropagatesRepositoryError verifies provider failures surface to
// the caller when no cached snapshot exists.
func TestGetBarsPropagatesRepositoryError(t *testing.T) {
	financeRepo := &capturingFinanceRepository{
		stubFinanceRepository: stubFinanceRepository{barsErr: errors.New("provider unavailable")},
	}
	svc := NewMarketService(marketTestConfig(), financeRepo, &stubMarketDataRepository{}, nil, logger.NewNop())

	bars, err := svc.GetBars(context.Background(), "AAPL", "7d")
	require.Error(t, err)
	assert.Nil(t, bars)
}

// TestSnapshotStoresLatestBarWithFundamentals verifies the scheduled snapshot
// persists the most recent bar for each configured symbol enriched with
// fundamentals when available.
func TestSnapshotStoresLatestBarWithFundamentals(t *testing.T) {
	pe := 24.5
	marketCap := 1.2e12
	bars := uptrendBars(7, 100, 0.002)
	financeRepo := &capturingFinanceRepository{
		stubFinanceRepository: stubFinanceRepository{
			bars: bars,
			fundamentals: &dto.FundamentalMetrics{
				PERatio:       &pe,
				MarketCap:     &marketCap,
				DividendYield: 1.8,
			},
		},
	}
	marketRepo := &stubMarketDataRepository{}
	svc := NewMarketService(marketTestConfig("aapl"), financeRepo, marketRepo, nil, logger.NewNop())

	require.NoError(t, svc.Snapshot(context.Background()))
	require.Len(t, marketRepo.upserted, 1, "expected one snapshot row per configured symbol")

	row := marketRepo.upserted[0]
	last := bars[len(bars)-1]
	assert.Equal(t, "AAPL", row.Symbol)
	assert.Equal(t, last.Date.Truncate(24*time.Hour), row.Date)
	assert.Equal(t, last.Close, row.ClosePrice)
	assert.Equal(t, last.Volume, row.Volume)
	assert.Equal(t, marketCap, row.MarketCap)
	assert.Equal(t, pe, row.PERatio)
	assert.Equal(t, 1.8, row.DividendYield)
}

// TestSnapshotSkipsFailingSymbols verifies one broken ticker does not abort
// the run or produce a partial row.
func TestSnapshotSkipsFailingSymbols(t *testing.T) {
	financeRepo := &capturingFinanceRepository{
		stubFinanceRepository: stubFinanceRepository{barsErr: errors.New("provider unavailable")},
	}
	marketRepo := &stubMarketDataRepository{}
	svc := NewMarketService(marketTestConfig("AAPL", "MSFT"), financeRepo, marketRepo, nil, logger.NewNop())

	require.NoError(t, svc.Snapshot(context.Background()))
	assert.Empty(t, marketRepo.upserted, "failed symbols should not be persisted")
}

// TestGetStoredMarketDataDefaultsLimit verifies the listing defaults to 30
// rows and maps entity rows onto the response shape.
func TestGetStoredMarketDataDefaultsLimit(t *testing.T) {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	marketRepo := &stubMarketDataRepository{
		rows: []entity.MarketData{{
			Symbol:     "AAPL",
			Date:       date,
			ClosePrice: 231.5,
			Volume:     52_000_000,
		}},
	}
	svc := NewMarketService(marketTestConfig(), &capturingFinanceRepository{}, marketRepo, nil, logger.NewNop())

	rows, err := svc.GetStoredMarketData(context.Background(), "aapl", 0)
	require.NoError(t, err)

	assert.Equal(t, 30, marketRepo.lastLimit, "limit should default to 30")
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, 231.5, rows[0].ClosePrice)
	assert.Equal(t, date, rows[0].Date)
}
