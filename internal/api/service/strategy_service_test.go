package service

import (
	"context"
	"testing"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFinanceRepository struct {
	bars         []dto.Bar
	barsErr      error
	fundamentals *dto.FundamentalMetrics
	fundErr      error
}

func (s *stubFinanceRepository) GetBars(_ context.Context, _ dto.GetBarsParam) ([]dto.Bar, error) {
	return s.bars, s.barsErr
}

func (s *stubFinanceRepository) GetFundamentals(_ context.Context, _ string) (*dto.FundamentalMetrics, error) {
	return s.fundamentals, s.fundErr
}

type stubStrategyRepository struct {
	created []*entity.InvestmentStrategy
	latest  *entity.InvestmentStrategy
	symbols []string
}

func (s *stubStrategyRepository) Create(_ context.Context, strategy *entity.InvestmentStrategy) error {
	strategy.ID = uint(len(s.created) + 1)
	s.created = append(s.created, strategy)
	return nil
}

func (s *stubStrategyRepository) FindBySymbol(_ context.Context, symbol string, limit int) ([]entity.InvestmentStrategy, error) {
	out := []entity.InvestmentStrategy{}
	for _, record := range s.created {
		if record.Symbol == symbol && len(out) < limit {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (s *stubStrategyRepository) FindLatest(_ context.Context, symbol string) (*entity.InvestmentStrategy, error) {
	return s.latest, nil
}

func (s *stubStrategyRepository) DistinctSymbols(_ context.Context) ([]string, error) {
	return s.symbols, nil
}

func TestRecommendationFromScoreThresholds(t *testing.T) {
	tests := []struct {
		name          string
		score         float64
		riskTolerance string
		action        string
		confidence    float64
	}{
		{"buy at exact low threshold", 0.7, common.RiskLow, common.ActionBuy, 0.0},
		{"buy above low threshold", 0.85, common.RiskLow, common.ActionBuy, 0.5},
		{"sell at exact low threshold", 0.3, common.RiskLow, common.ActionSell, 0.0},
		{"sell below low threshold", 0.15, common.RiskLow, common.ActionSell, 0.5},
		{"hold between low thresholds", 0.5, common.RiskLow, common.ActionHold, 0.5},
		{"buy at exact medium threshold", 0.65, common.RiskMedium, common.ActionBuy, 0.0},
		{"sell at exact medium threshold", 0.35, common.RiskMedium, common.ActionSell, 0.0},
		{"buy at exact high threshold", 0.6, common.RiskHigh, common.ActionBuy, 0.0},
		{"hold in the high band", 0.5, common.RiskHigh, common.ActionHold, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, confidence := recommendationFromScore(tt.score, tt.riskTolerance)
			assert.Equal(t, tt.action, action)
			assert.InDelta(t, tt.confidence, confidence, 1e-9, "Confidence should grow linearly from zero at the threshold")
		})
	}
}

func TestCalculateTechnicalScoreBullishCase(t *testing.T) {
	indicators := &dto.TechnicalIndicators{
		PriceVsMA20:  "above",
		PriceVsMA50:  "above",
		PriceVsMA200: "above",
		RSI:          50,
		MACD:         1.2,
		MACDSignal:   0.8,
		VolumeTrend:  "high",
		Volatility:   0.2,
	}

	score := calculateTechnicalScore(indicators)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCalculateTechnicalScoreBearishCase(t *testing.T) {
	indicators := &dto.TechnicalIndicators{
		PriceVsMA20:  "below",
		PriceVsMA50:  "below",
		PriceVsMA200: "below",
		RSI:          80,
		MACD:         -0.5,
		MACDSignal:   0.1,
		VolumeTrend:  "normal",
		Volatility:   0.6,
	}

	score := calculateTechnicalScore(indicators)
	assert.InDelta(t, 0.225, score, 1e-9)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestCalculateFundamentalScore(t *testing.T) {
	pe := 10.0
	pb := 1.0
	marketCap := 50e9
	strong := &dto.FundamentalMetrics{
		PERatio:       &pe,
		PBRatio:       &pb,
		DividendYield: 4,
		MarketCap:     &marketCap,
		Beta:          0.5,
	}
	assert.InDelta(t, 1.0, calculateFundamentalScore(strong), 1e-9)

	// Unavailable ratios contribute nothing.
	sparse := &dto.FundamentalMetrics{DividendYield: 0, Beta: 1.0}
	assert.InDelta(t, 0.2, calculateFundamentalScore(sparse), 1e-9)
}

func TestCalculateTargetPriceAndStopLoss(t *testing.T) {
	assert.InDelta(t, 123.0, calculateTargetPrice(100, common.ActionBuy, 0.8), 1e-9)
	assert.InDelta(t, 77.0, calculateTargetPrice(100, common.ActionSell, 0.2), 1e-9)
	assert.InDelta(t, 100.0, calculateTargetPrice(100, common.ActionHold, 0.5), 1e-9)

	assert.InDelta(t, 95.0, calculateStopLoss(100, common.RiskLow), 1e-9)
	assert.InDelta(t, 90.0, calculateStopLoss(100, common.RiskMedium), 1e-9)
	assert.InDelta(t, 85.0, calculateStopLoss(100, common.RiskHigh), 1e-9)
}

func TestGenerateRecommendationNoData(t *testing.T) {
	financeRepo := &stubFinanceRepository{bars: []dto.Bar{}}
	strategyRepo := &stubStrategyRepository{}
	svc := NewStrategyService(financeRepo, strategyRepo, logger.NewNop())

	resp, err := svc.GenerateRecommendation(context.Background(), &dto.StrategyRequest{Symbol: "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, common.ActionHold, resp.Recommendation)
	assert.Equal(t, 0.3, resp.ConfidenceScore)
	assert.Contains(t, resp.Reasoning, "Insufficient data for AAPL")
	assert.Nil(t, resp.TargetPrice)
	assert.Nil(t, resp.StopLoss)
	require.Len(t, strategyRepo.created, 1, "The default recommendation should still be persisted")
}

func TestGenerateRecommendationWithHistory(t *testing.T) {
	pe := 12.0
	pb := 1.2
	marketCap := 80e9
	financeRepo := &stubFinanceRepository{
		bars: uptrendBars(260, 100, 0.002),
		fundamentals: &dto.FundamentalMetrics{
			PERatio:       &pe,
			PBRatio:       &pb,
			DividendYield: 3.5,
			MarketCap:     &marketCap,
			Beta:          0.7,
			Sector:        "Technology",
		},
	}
	strategyRepo := &stubStrategyRepository{}
	svc := NewStrategyService(financeRepo, strategyRepo, logger.NewNop())

	resp, err := svc.GenerateRecommendation(context.Background(), &dto.StrategyRequest{Symbol: "MSFT"})
	require.NoError(t, err)

	assert.Contains(t, []string{common.ActionBuy, common.ActionSell, common.ActionHold}, resp.Recommendation)
	assert.GreaterOrEqual(t, resp.ConfidenceScore, 0.0)
	assert.LessOrEqual(t, resp.ConfidenceScore, 1.0)
	require.NotNil(t, resp.TargetPrice)
	require.NotNil(t, resp.StopLoss)
	assert.Contains(t, resp.Reasoning, "Overall confidence score:")
	assert.Contains(t, resp.FactorsConsidered, "RSI (Relative Strength Index)")
	assert.Contains(t, resp.FactorsConsidered, "P/E Ratio")
	require.Len(t, strategyRepo.created, 1)
}
