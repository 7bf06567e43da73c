package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uptrendBars builds a deterministic daily series drifting upward with a
// small oscillation so derived features are not collinear.
func uptrendBars(n int, start, drift float64) []dto.Bar {
	bars := make([]dto.Bar, 0, n)
	price := start
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		wiggle := 1 + 0.01*math.Sin(float64(i)/3)
		open := price
		price = price * (1 + drift) * wiggle
		high := math.Max(open, price) * 1.005
		low := math.Min(open, price) * 0.995
		bars = append(bars, dto.Bar{
			Date:   day.AddDate(0, 0, i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: 1_000_000 + int64(i%7)*50_000,
		})
	}
	return bars
}

type stubForecastRepository struct {
	created []*entity.FinancialForecast
	latest  *entity.FinancialForecast
}

func (s *stubForecastRepository) Create(_ context.Context, forecast *entity.FinancialForecast) error {
	forecast.ID = uint(len(s.created) + 1)
	forecast.ForecastDate = time.Now()
	s.created = append(s.created, forecast)
	return nil
}

func (s *stubForecastRepository) FindBySymbol(_ context.Context, symbol, forecastType string, limit int) ([]entity.FinancialForecast, error) {
	out := []entity.FinancialForecast{}
	for _, record := range s.created {
		if record.Symbol == symbol && len(out) < limit {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (s *stubForecastRepository) FindLatest(_ context.Context, symbol, forecastType string) (*entity.FinancialForecast, error) {
	return s.latest, nil
}

func TestForecastStockPriceInsufficientHistory(t *testing.T) {
	// 25 bars leave only 5 feature rows after the 20-day lookback, below the
	// 10-row minimum.
	result := forecastStockPrice(uptrendBars(25, 100, 0.001), "linear")

	assert.Equal(t, 0.0, result.PredictedValue)
	assert.Empty(t, result.PricePredictions)
	assert.Equal(t, "No data available", result.AccuracyMetrics["error"])
}

func TestForecastStockPriceNoHistory(t *testing.T) {
	result := forecastStockPrice(nil, "linear")

	assert.Equal(t, 0.0, result.PredictedValue)
	assert.Empty(t, result.PricePredictions)
	assert.Equal(t, "No data available", result.AccuracyMetrics["error"])
}

func TestForecastStockPriceProjection(t *testing.T) {
	bars := uptrendBars(80, 100, 0.001)
	result := forecastStockPrice(bars, "linear")

	require.Len(t, result.PricePredictions, 5, "Projection should cover five days")
	assert.Equal(t, result.PricePredictions[0].PredictedPrice, result.PredictedValue)
	assert.Len(t, result.ConfidenceInterval.Lower, 5)
	assert.Len(t, result.ConfidenceInterval.Upper, 5)

	for _, prediction := range result.PricePredictions {
		assert.Greater(t, prediction.PredictedPrice, 0.0)
		assert.InDelta(t, prediction.PredictedPrice*0.95, prediction.ConfidenceLower, 0.02, "Lower band should sit 5% under the prediction")
		assert.InDelta(t, prediction.PredictedPrice*1.05, prediction.ConfidenceUpper, 0.02, "Upper band should sit 5% over the prediction")
	}

	assert.Contains(t, result.AccuracyMetrics, "rmse")
	assert.Contains(t, result.AccuracyMetrics, "mae")
	assert.Contains(t, result.AccuracyMetrics, "r2_score")

	lastClose := bars[len(bars)-1].Close
	assert.InDelta(t, lastClose, result.HistoricalData["last_close"], 1e-9)
}

func TestForecastStockPriceRunsDiffer(t *testing.T) {
	// The projection step is stochastic on purpose, two runs over the same
	// history should not produce identical paths.
	bars := uptrendBars(80, 100, 0.001)
	first := forecastStockPrice(bars, "linear")
	second := forecastStockPrice(bars, "linear")

	same := true
	for i := range first.PricePredictions {
		if first.PricePredictions[i].PredictedPrice != second.PricePredictions[i].PredictedPrice {
			same = false
			break
		}
	}
	assert.False(t, same, "Repeated projections should diverge")
}

func TestForecastEarningsQuarters(t *testing.T) {
	result := forecastEarnings(uptrendBars(60, 100, 0.001), "linear")

	require.Len(t, result.QuarterlyPredictions, 4)
	for i, prediction := range result.QuarterlyPredictions {
		assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}[i], prediction.Quarter)
		assert.Equal(t, 0.7, prediction.ConfidenceScore)
	}
	assert.Equal(t, result.QuarterlyPredictions[0].PredictedValue, result.PredictedValue)
	assert.Equal(t, "simplified_earnings_estimation", result.AccuracyMetrics["model_type"])
}

func TestForecastRevenueQuarters(t *testing.T) {
	result := forecastRevenue(uptrendBars(60, 100, 0.001), "linear")

	require.Len(t, result.QuarterlyPredictions, 4)
	for _, prediction := range result.QuarterlyPredictions {
		assert.Equal(t, 0.6, prediction.ConfidenceScore)
	}
	assert.Equal(t, "simplified_revenue_estimation", result.AccuracyMetrics["model_type"])
}

func TestGenerateForecastDefaultsAndPersistence(t *testing.T) {
	financeRepo := &stubFinanceRepository{bars: uptrendBars(80, 100, 0.001)}
	forecastRepo := &stubForecastRepository{}
	svc := NewForecastService(financeRepo, forecastRepo, logger.NewNop())

	resp, err := svc.GenerateForecast(context.Background(), &dto.ForecastRequest{Symbol: "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Equal(t, common.ForecastTypeStockPrice, resp.ForecastType, "Forecast type should default to stock price")
	assert.Equal(t, "linear", resp.ModelUsed, "Model should default to linear")
	assert.Len(t, resp.PricePredictions, 5)

	require.Len(t, forecastRepo.created, 1)
	assert.Equal(t, "AAPL", forecastRepo.created[0].Symbol)
	assert.Equal(t, resp.PredictedValue, forecastRepo.created[0].PredictedValue)
}

func TestGenerateForecastUnavailableHistory(t *testing.T) {
	financeRepo := &stubFinanceRepository{barsErr: assert.AnError}
	forecastRepo := &stubForecastRepository{}
	svc := NewForecastService(financeRepo, forecastRepo, logger.NewNop())

	resp, err := svc.GenerateForecast(context.Background(), &dto.ForecastRequest{Symbol: "AAPL"})
	require.NoError(t, err, "A history fetch failure should degrade to the zero forecast, not error")

	assert.Equal(t, 0.0, resp.PredictedValue)
	assert.Empty(t, resp.PricePredictions)
	assert.Equal(t, "No data available", resp.AccuracyMetrics["error"])
}
