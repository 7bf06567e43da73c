package service

import (
	"testing"

	"github.com/kismat91/FinDocGPT/internal/api/dto"

	"github.com/stretchr/testify/assert"
)

func TestComputeTechnicalIndicatorsDefaultsForShortHistory(t *testing.T) {
	indicators := computeTechnicalIndicators(uptrendBars(5, 100, 0.001))

	assert.Equal(t, "below", indicators.PriceVsMA20)
	assert.Equal(t, "below", indicators.PriceVsMA50)
	assert.Equal(t, "below", indicators.PriceVsMA200)
	assert.Equal(t, 50.0, indicators.RSI)
	assert.Equal(t, "normal", indicators.VolumeTrend)
}

func TestComputeTechnicalIndicatorsEmptyHistory(t *testing.T) {
	indicators := computeTechnicalIndicators([]dto.Bar{})

	assert.Equal(t, "below", indicators.PriceVsMA20)
	assert.Equal(t, 50.0, indicators.RSI)
	assert.Equal(t, 0.0, indicators.Volatility)
}

func TestComputeTechnicalIndicatorsUptrend(t *testing.T) {
	// A steady uptrend keeps the last close above every moving average.
	bars := uptrendBars(260, 100, 0.005)
	indicators := computeTechnicalIndicators(bars)

	assert.Equal(t, "above", indicators.PriceVsMA20)
	assert.Equal(t, "above", indicators.PriceVsMA50)
	assert.Equal(t, "above", indicators.PriceVsMA200)
	assert.Greater(t, indicators.RSI, 50.0)
	assert.LessOrEqual(t, indicators.RSI, 100.0)
	assert.Greater(t, indicators.MACD, 0.0)
	assert.Greater(t, indicators.Volatility, 0.0)
}

func TestRelativeStrengthIndexAllGains(t *testing.T) {
	bars := []dto.Bar{}
	price := 100.0
	for i := 0; i < 20; i++ {
		price += 1
		bars = append(bars, dto.Bar{Close: price})
	}

	rsi, ok := relativeStrengthIndex(bars, 14)
	assert.True(t, ok)
	assert.Equal(t, 100.0, rsi, "A loss-free window pins RSI at 100")
}

func TestTrailingMeanRequiresFullWindow(t *testing.T) {
	bars := uptrendBars(10, 100, 0.001)

	_, ok := trailingMean(bars, 20)
	assert.False(t, ok)

	mean, ok := trailingMean(bars, 10)
	assert.True(t, ok)
	assert.Greater(t, mean, 0.0)
}
