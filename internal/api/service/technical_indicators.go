package service

import (
	"math"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/pkg/utils"
)

// computeTechnicalIndicators derives the indicator set used for technical
// scoring from daily bars. Indicators whose lookback exceeds the history are
// reported conservatively ("below", neutral RSI).
func computeTechnicalIndicators(bars []dto.Bar) *dto.TechnicalIndicators {
	indicators := &dto.TechnicalIndicators{
		PriceVsMA20:  "below",
		PriceVsMA50:  "below",
		PriceVsMA200: "below",
		RSI:          50,
		VolumeTrend:  "normal",
	}
	if len(bars) == 0 {
		return indicators
	}

	currentPrice := bars[len(bars)-1].Close

	if ma, ok := trailingMean(bars, 20); ok && currentPrice > ma {
		indicators.PriceVsMA20 = "above"
	}
	if ma, ok := trailingMean(bars, 50); ok && currentPrice > ma {
		indicators.PriceVsMA50 = "above"
	}
	if ma, ok := trailingMean(bars, 200); ok && currentPrice > ma {
		indicators.PriceVsMA200 = "above"
	}

	if rsi, ok := relativeStrengthIndex(bars, 14); ok {
		indicators.RSI = rsi
	}

	indicators.MACD, indicators.MACDSignal = macd(bars)

	if len(bars) >= 20 {
		avgVolume := 0.0
		for i := len(bars) - 20; i < len(bars); i++ {
			avgVolume += float64(bars[i].Volume)
		}
		avgVolume /= 20
		if float64(bars[len(bars)-1].Volume) > avgVolume*1.5 {
			indicators.VolumeTrend = "high"
		}
	}

	returns := []float64{}
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close != 0 {
			returns = append(returns, (bars[i].Close-bars[i-1].Close)/bars[i-1].Close)
		}
	}
	indicators.Volatility = utils.StdDev(returns) * math.Sqrt(252)

	return indicators
}

func trailingMean(bars []dto.Bar, window int) (float64, bool) {
	if len(bars) < window {
		return 0, false
	}
	sum := 0.0
	for i := len(bars) - window; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(window), true
}

// relativeStrengthIndex is the classic 14-period RSI over simple moving
// averages of gains and losses.
func relativeStrengthIndex(bars []dto.Bar, period int) (float64, bool) {
	if len(bars) < period+1 {
		return 0, false
	}
	gains := 0.0
	losses := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		delta := bars[i].Close - bars[i-1].Close
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// macd returns the 12/26 EMA difference and its 9-period signal line at the
// last bar.
func macd(bars []dto.Bar) (float64, float64) {
	if len(bars) == 0 {
		return 0, 0
	}
	closes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
	}

	fast := ema(closes, 12)
	slow := ema(closes, 26)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal := ema(line, 9)
	return line[len(line)-1], signal[len(signal)-1]
}

func ema(values []float64, span int) []float64 {
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(values))
	for i, value := range values {
		if i == 0 {
			out[i] = value
			continue
		}
		out[i] = alpha*value + (1-alpha)*out[i-1]
	}
	return out
}
