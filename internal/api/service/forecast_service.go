package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"
	"github.com/kismat91/FinDocGPT/pkg/utils"

	"gorm.io/datatypes"
)

// ErrForecastNotFound is returned when no stored forecast matches the query.
var ErrForecastNotFound = errors.New("no forecast found for this symbol")

// ForecastService defines the interface for financial forecasting.
type ForecastService interface {
	GenerateForecast(ctx context.Context, req *dto.ForecastRequest) (*dto.ForecastResponse, error)
	GetForecasts(ctx context.Context, symbol, forecastType string, limit int) ([]dto.ForecastResponse, error)
	GetLatestForecast(ctx context.Context, symbol, forecastType string) (*dto.ForecastResponse, error)
}

// NewForecastService creates a new forecast service.
func NewForecastService(financeRepo repository.FinanceRepository, forecastRepo repository.ForecastRepository, log *logger.Logger) ForecastService {
	return &forecastService{
		financeRepo:  financeRepo,
		forecastRepo: forecastRepo,
		logger:       log,
	}
}

type forecastService struct {
	financeRepo  repository.FinanceRepository
	forecastRepo repository.ForecastRepository
	logger       *logger.Logger
}

// GenerateForecast produces and persists a forecast for a symbol. Projection
// steps are intentionally stochastic, repeated calls over the same history
// give different paths.
func (s *forecastService) GenerateForecast(ctx context.Context, req *dto.ForecastRequest) (*dto.ForecastResponse, error) {
	forecastType := req.ForecastType
	if forecastType == "" {
		forecastType = common.ForecastTypeStockPrice
	}
	timeframe := req.Timeframe
	if timeframe == "" {
		timeframe = "30d"
	}
	modelType := req.ModelType
	if modelType == "" {
		modelType = "linear"
	}

	bars, err := s.financeRepo.GetBars(ctx, dto.GetBarsParam{Symbol: req.Symbol, Timeframe: timeframe})
	if err != nil {
		s.logger.Error("Failed to fetch history for forecast", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		bars = nil
	}

	var result *dto.ForecastResult
	switch forecastType {
	case common.ForecastTypeEarnings:
		result = forecastEarnings(bars, modelType)
	case common.ForecastTypeRevenue:
		result = forecastRevenue(bars, modelType)
	default:
		forecastType = common.ForecastTypeStockPrice
		result = forecastStockPrice(bars, modelType)
	}

	confidenceInterval, _ := json.Marshal(result.ConfidenceInterval)
	historicalData, _ := json.Marshal(result.HistoricalData)
	record := &entity.FinancialForecast{
		Symbol:             req.Symbol,
		ForecastType:       forecastType,
		PredictedValue:     result.PredictedValue,
		ConfidenceInterval: datatypes.JSON(confidenceInterval),
		ModelUsed:          result.ModelUsed,
		HistoricalData:     datatypes.JSON(historicalData),
	}
	if err := s.forecastRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.ForecastResponse{
		Symbol:               req.Symbol,
		ForecastType:         forecastType,
		PredictedValue:       result.PredictedValue,
		PricePredictions:     result.PricePredictions,
		QuarterlyPredictions: result.QuarterlyPredictions,
		ConfidenceInterval:   result.ConfidenceInterval,
		ModelUsed:            result.ModelUsed,
		AccuracyMetrics:      result.AccuracyMetrics,
		LastUpdated:          record.ForecastDate,
	}, nil
}

// GetForecasts lists stored forecasts for a symbol, newest first.
func (s *forecastService) GetForecasts(ctx context.Context, symbol, forecastType string, limit int) ([]dto.ForecastResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := s.forecastRepo.FindBySymbol(ctx, symbol, forecastType, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ForecastResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *mapToForecastResponse(&records[i]))
	}
	return responses, nil
}

// GetLatestForecast returns the most recent stored forecast for a symbol.
func (s *forecastService) GetLatestForecast(ctx context.Context, symbol, forecastType string) (*dto.ForecastResponse, error) {
	record, err := s.forecastRepo.FindLatest(ctx, symbol, forecastType)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrForecastNotFound
	}
	return mapToForecastResponse(record), nil
}

func mapToForecastResponse(record *entity.FinancialForecast) *dto.ForecastResponse {
	var interval dto.ConfidenceInterval
	_ = json.Unmarshal(record.ConfidenceInterval, &interval)
	return &dto.ForecastResponse{
		Symbol:             record.Symbol,
		ForecastType:       record.ForecastType,
		PredictedValue:     record.PredictedValue,
		PricePredictions:   []dto.PricePrediction{},
		ConfidenceInterval: interval,
		ModelUsed:          record.ModelUsed,
		LastUpdated:        record.ForecastDate,
	}
}

// forecastStockPrice fits a linear model over derived features to score
// in-sample accuracy, then projects five days ahead with a random walk.
func forecastStockPrice(bars []dto.Bar, modelType string) *dto.ForecastResult {
	if len(bars) == 0 {
		return emptyForecastResult(modelType, "No data available")
	}

	type featureRow struct {
		open, high, low, volume float64
		ma5, ma20, volatility   float64
		close                   float64
	}

	returns := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close != 0 {
			returns[i] = (bars[i].Close - bars[i-1].Close) / bars[i-1].Close
		}
	}

	rows := []featureRow{}
	for i := range bars {
		// Rolling windows need a full lookback, matching a dropna over
		// MA20 and the 20-day return deviation.
		if i < 20 {
			continue
		}
		ma5 := 0.0
		for j := i - 4; j <= i; j++ {
			ma5 += bars[j].Close
		}
		ma5 /= 5

		ma20 := 0.0
		for j := i - 19; j <= i; j++ {
			ma20 += bars[j].Close
		}
		ma20 /= 20

		window := returns[i-19 : i+1]
		volatility := utils.StdDev(window)

		rows = append(rows, featureRow{
			open:       bars[i].Open,
			high:       bars[i].High,
			low:        bars[i].Low,
			volume:     float64(bars[i].Volume),
			ma5:        ma5,
			ma20:       ma20,
			volatility: volatility,
			close:      bars[i].Close,
		})
	}

	if len(rows) < 10 {
		return emptyForecastResult(modelType, "No data available")
	}

	features := make([][]float64, len(rows))
	targets := make([]float64, len(rows))
	for i, row := range rows {
		features[i] = []float64{row.open, row.high, row.low, row.volume, row.ma5, row.ma20, row.volatility}
		targets[i] = row.close
	}

	splitIdx := int(float64(len(rows)) * 0.8)
	trainX, testX := features[:splitIdx], features[splitIdx:]
	trainY, testY := targets[:splitIdx], targets[splitIdx:]

	accuracyMetrics := map[string]any{}
	model, err := fitLinearModel(trainX, trainY)
	if err == nil && len(testX) > 0 {
		predicted := make([]float64, len(testX))
		sumSquares := 0.0
		sumAbs := 0.0
		for i := range testX {
			predicted[i] = model.predict(testX[i])
			diff := testY[i] - predicted[i]
			sumSquares += diff * diff
			sumAbs += math.Abs(diff)
		}
		accuracyMetrics["rmse"] = math.Sqrt(sumSquares / float64(len(testX)))
		accuracyMetrics["mae"] = sumAbs / float64(len(testX))
		accuracyMetrics["r2_score"] = rSquared(testY, predicted)
	} else if err != nil {
		accuracyMetrics["error"] = err.Error()
	}

	lastClose := bars[len(bars)-1].Close
	currentPrice := lastClose
	predictions := make([]dto.PricePrediction, 0, 5)
	lower := make([]float64, 0, 5)
	upper := make([]float64, 0, 5)
	for i := 0; i < 5; i++ {
		trendFactor := 1 + rand.NormFloat64()*0.02
		predictedPrice := currentPrice * trendFactor
		prediction := dto.PricePrediction{
			Date:            time.Now().AddDate(0, 0, i+1).Format("2006-01-02"),
			PredictedPrice:  utils.Round2(predictedPrice),
			ConfidenceLower: utils.Round2(predictedPrice * 0.95),
			ConfidenceUpper: utils.Round2(predictedPrice * 1.05),
		}
		predictions = append(predictions, prediction)
		lower = append(lower, prediction.ConfidenceLower)
		upper = append(upper, prediction.ConfidenceUpper)
		currentPrice = predictedPrice
	}

	sumVolume := int64(0)
	for i := range bars {
		sumVolume += bars[i].Volume
	}

	return &dto.ForecastResult{
		PredictedValue:     predictions[0].PredictedPrice,
		PricePredictions:   predictions,
		ConfidenceInterval: dto.ConfidenceInterval{Lower: lower, Upper: upper},
		ModelUsed:          modelType,
		HistoricalData: map[string]float64{
			"last_close":  lastClose,
			"last_volume": float64(bars[len(bars)-1].Volume),
			"avg_volume":  float64(sumVolume / int64(len(bars))),
		},
		AccuracyMetrics: accuracyMetrics,
	}
}

// forecastEarnings projects four quarters of earnings estimated from price
// level and volume trend.
func forecastEarnings(bars []dto.Bar, modelType string) *dto.ForecastResult {
	if len(bars) == 0 {
		return emptyForecastResult(modelType, "No data available")
	}

	closes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
	}
	avgPrice := utils.Mean(closes)
	priceVolatility := utils.StdDev(closes)
	volumeTrend := meanPctChangeVolume(bars)

	estimatedEarnings := avgPrice * 0.05
	earningsGrowth := volumeTrend * 0.1

	predictions := make([]dto.QuarterlyPrediction, 0, 4)
	current := estimatedEarnings
	for i := 0; i < 4; i++ {
		growthFactor := 1 + earningsGrowth + rand.NormFloat64()*0.02
		current *= growthFactor
		predictions = append(predictions, dto.QuarterlyPrediction{
			Quarter:         fmt.Sprintf("Q%d", i+1),
			PredictedValue:  utils.Round2(current),
			GrowthRate:      math.Round((growthFactor-1)*1000) / 10,
			ConfidenceScore: 0.7,
		})
	}

	return &dto.ForecastResult{
		PredictedValue:       predictions[0].PredictedValue,
		QuarterlyPredictions: predictions,
		ModelUsed:            modelType,
		HistoricalData: map[string]float64{
			"avg_price":    avgPrice,
			"volatility":   priceVolatility,
			"volume_trend": volumeTrend,
		},
		AccuracyMetrics: map[string]any{
			"confidence": 0.7,
			"model_type": "simplified_earnings_estimation",
		},
	}
}

// forecastRevenue projects four quarters of revenue proxied from traded
// value and price trend.
func forecastRevenue(bars []dto.Bar, modelType string) *dto.ForecastResult {
	if len(bars) == 0 {
		return emptyForecastResult(modelType, "No data available")
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
		volumes[i] = float64(bars[i].Volume)
	}
	avgPrice := utils.Mean(closes)
	avgVolume := utils.Mean(volumes)
	priceTrend := meanPctChangeClose(bars)

	estimatedRevenue := avgPrice * avgVolume * 0.01
	revenueGrowth := priceTrend * 0.5

	predictions := make([]dto.QuarterlyPrediction, 0, 4)
	current := estimatedRevenue
	for i := 0; i < 4; i++ {
		growthFactor := 1 + revenueGrowth + rand.NormFloat64()*0.03
		current *= growthFactor
		predictions = append(predictions, dto.QuarterlyPrediction{
			Quarter:         fmt.Sprintf("Q%d", i+1),
			PredictedValue:  utils.Round2(current),
			GrowthRate:      math.Round((growthFactor-1)*1000) / 10,
			ConfidenceScore: 0.6,
		})
	}

	return &dto.ForecastResult{
		PredictedValue:       predictions[0].PredictedValue,
		QuarterlyPredictions: predictions,
		ModelUsed:            modelType,
		HistoricalData: map[string]float64{
			"avg_price":   avgPrice,
			"avg_volume":  avgVolume,
			"price_trend": priceTrend,
		},
		AccuracyMetrics: map[string]any{
			"confidence": 0.6,
			"model_type": "simplified_revenue_estimation",
		},
	}
}

func emptyForecastResult(modelType, reason string) *dto.ForecastResult {
	return &dto.ForecastResult{
		PredictedValue:     0.0,
		PricePredictions:   []dto.PricePrediction{},
		ConfidenceInterval: dto.ConfidenceInterval{},
		ModelUsed:          modelType,
		HistoricalData:     map[string]float64{},
		AccuracyMetrics:    map[string]any{"error": reason},
	}
}

func meanPctChangeClose(bars []dto.Bar) float64 {
	changes := []float64{}
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close != 0 {
			changes = append(changes, (bars[i].Close-bars[i-1].Close)/bars[i-1].Close)
		}
	}
	if len(changes) == 0 {
		return 0
	}
	return utils.Mean(changes)
}

func meanPctChangeVolume(bars []dto.Bar) float64 {
	changes := []float64{}
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Volume != 0 {
			changes = append(changes, float64(bars[i].Volume-bars[i-1].Volume)/float64(bars[i-1].Volume))
		}
	}
	if len(changes) == 0 {
		return 0
	}
	return utils.Mean(changes)
}
