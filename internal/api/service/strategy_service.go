package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"gorm.io/datatypes"
)

// ErrStrategyNotFound is returned when no stored strategy matches the query.
var ErrStrategyNotFound = errors.New("no strategy found for this symbol")

// StrategyService defines the interface for investment recommendations.
type StrategyService interface {
	GenerateRecommendation(ctx context.Context, req *dto.StrategyRequest) (*dto.StrategyResponse, error)
	GetStrategyHistory(ctx context.Context, symbol string, limit int) ([]dto.StrategyResponse, error)
	GetLatestStrategy(ctx context.Context, symbol string) (*dto.StrategyResponse, error)
	GetPortfolioOverview(ctx context.Context) (*dto.PortfolioOverviewResponse, error)
}

// NewStrategyService creates a new strategy service.
func NewStrategyService(financeRepo repository.FinanceRepository, strategyRepo repository.StrategyRepository, log *logger.Logger) StrategyService {
	return &strategyService{
		financeRepo:  financeRepo,
		strategyRepo: strategyRepo,
		logger:       log,
	}
}

type strategyService struct {
	financeRepo  repository.FinanceRepository
	strategyRepo repository.StrategyRepository
	logger       *logger.Logger
}

// GenerateRecommendation scores a symbol on technical and fundamental
// factors and persists the resulting recommendation.
func (s *strategyService) GenerateRecommendation(ctx context.Context, req *dto.StrategyRequest) (*dto.StrategyResponse, error) {
	riskTolerance := req.RiskTolerance
	if riskTolerance == "" {
		riskTolerance = common.RiskMedium
	}
	timeHorizon := req.TimeHorizon
	if timeHorizon == "" {
		timeHorizon = "1y"
	}
	includeTechnical := req.IncludeTechnicalAnalysis == nil || *req.IncludeTechnicalAnalysis
	includeFundamental := req.IncludeFundamentalAnalysis == nil || *req.IncludeFundamentalAnalysis

	bars, err := s.financeRepo.GetBars(ctx, dto.GetBarsParam{Symbol: req.Symbol, Timeframe: "1y"})
	if err != nil || len(bars) == 0 {
		if err != nil {
			s.logger.Error("Failed to fetch history for strategy", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		}
		return s.persistRecommendation(ctx, req.Symbol, timeHorizon, defaultRecommendation(req.Symbol, "No data available"))
	}

	var technical *dto.TechnicalIndicators
	var fundamentals *dto.FundamentalMetrics
	technicalScore := 0.0
	fundamentalScore := 0.0

	if includeTechnical {
		technical = computeTechnicalIndicators(bars)
		technicalScore = calculateTechnicalScore(technical)
	}
	if includeFundamental {
		fundamentals, err = s.financeRepo.GetFundamentals(ctx, req.Symbol)
		if err != nil {
			s.logger.Error("Failed to fetch fundamentals", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
			fundamentals = &dto.FundamentalMetrics{DividendYield: 0, Beta: 1.0, Sector: "Unknown"}
		}
		fundamentalScore = calculateFundamentalScore(fundamentals)
	}

	var overallScore float64
	switch {
	case includeTechnical && includeFundamental:
		overallScore = technicalScore*0.6 + fundamentalScore*0.4
	case includeTechnical:
		overallScore = technicalScore
	case includeFundamental:
		overallScore = fundamentalScore
	}

	action, confidence := recommendationFromScore(overallScore, riskTolerance)
	currentPrice := bars[len(bars)-1].Close
	targetPrice := calculateTargetPrice(currentPrice, action, overallScore)
	stopLoss := calculateStopLoss(currentPrice, riskTolerance)

	result := &dto.RecommendationResult{
		Action:      action,
		Confidence:  confidence,
		Reasoning:   buildReasoning(action, technical, fundamentals, overallScore),
		RiskLevel:   determineRiskLevel(overallScore, riskTolerance),
		TargetPrice: &targetPrice,
		StopLoss:    &stopLoss,
		Factors: dto.StrategyFactors{
			TechnicalIndicators: technical,
			FundamentalMetrics:  fundamentals,
			OverallScore:        overallScore,
		},
		FactorsConsidered: factorsConsidered(includeTechnical, includeFundamental),
	}
	return s.persistRecommendation(ctx, req.Symbol, timeHorizon, result)
}

func (s *strategyService) persistRecommendation(ctx context.Context, symbol, timeHorizon string, result *dto.RecommendationResult) (*dto.StrategyResponse, error) {
	factors, _ := json.Marshal(result.Factors)
	record := &entity.InvestmentStrategy{
		Symbol:          symbol,
		Recommendation:  result.Action,
		ConfidenceScore: result.Confidence,
		Reasoning:       result.Reasoning,
		RiskLevel:       result.RiskLevel,
		TargetPrice:     result.TargetPrice,
		StopLoss:        result.StopLoss,
		StrategyFactors: datatypes.JSON(factors),
	}
	if err := s.strategyRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.StrategyResponse{
		Symbol:            symbol,
		Recommendation:    result.Action,
		ConfidenceScore:   result.Confidence,
		Reasoning:         result.Reasoning,
		RiskLevel:         result.RiskLevel,
		TargetPrice:       result.TargetPrice,
		StopLoss:          result.StopLoss,
		TimeHorizon:       timeHorizon,
		FactorsConsidered: result.FactorsConsidered,
		CreatedAt:         record.CreatedAt,
	}, nil
}

// GetStrategyHistory lists stored recommendations for a symbol, newest first.
func (s *strategyService) GetStrategyHistory(ctx context.Context, symbol string, limit int) ([]dto.StrategyResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := s.strategyRepo.FindBySymbol(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.StrategyResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *mapToStrategyResponse(&records[i]))
	}
	return responses, nil
}

// GetLatestStrategy returns the most recent stored recommendation.
func (s *strategyService) GetLatestStrategy(ctx context.Context, symbol string) (*dto.StrategyResponse, error) {
	record, err := s.strategyRepo.FindLatest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrStrategyNotFound
	}
	return mapToStrategyResponse(record), nil
}

// GetPortfolioOverview aggregates the latest recommendation per symbol.
func (s *strategyService) GetPortfolioOverview(ctx context.Context) (*dto.PortfolioOverviewResponse, error) {
	symbols, err := s.strategyRepo.DistinctSymbols(ctx)
	if err != nil {
		return nil, err
	}

	overview := &dto.PortfolioOverviewResponse{PortfolioOverview: []dto.PortfolioEntry{}}
	for _, symbol := range symbols {
		record, err := s.strategyRepo.FindLatest(ctx, symbol)
		if err != nil || record == nil {
			continue
		}
		overview.PortfolioOverview = append(overview.PortfolioOverview, dto.PortfolioEntry{
			Symbol:         symbol,
			Recommendation: record.Recommendation,
			Confidence:     record.ConfidenceScore,
			RiskLevel:      record.RiskLevel,
			LastUpdated:    record.CreatedAt.Format("2006-01-02T15:04:05"),
		})
		switch record.Recommendation {
		case common.ActionBuy:
			overview.BuyRecommendations++
		case common.ActionSell:
			overview.SellRecommendations++
		default:
			overview.HoldRecommendations++
		}
	}
	overview.TotalSymbols = len(overview.PortfolioOverview)
	return overview, nil
}

func mapToStrategyResponse(record *entity.InvestmentStrategy) *dto.StrategyResponse {
	var factors dto.StrategyFactors
	_ = json.Unmarshal(record.StrategyFactors, &factors)
	return &dto.StrategyResponse{
		Symbol:            record.Symbol,
		Recommendation:    record.Recommendation,
		ConfidenceScore:   record.ConfidenceScore,
		Reasoning:         record.Reasoning,
		RiskLevel:         record.RiskLevel,
		TargetPrice:       record.TargetPrice,
		StopLoss:          record.StopLoss,
		FactorsConsidered: factors.Factors,
		CreatedAt:         record.CreatedAt,
	}
}

// calculateTechnicalScore folds the indicators into a [0,1] score with fixed
// weights: moving averages 0.3, RSI 0.2, MACD 0.2, volume 0.15, volatility
// 0.15.
func calculateTechnicalScore(indicators *dto.TechnicalIndicators) float64 {
	score := 0.0

	maScore := 0.0
	if indicators.PriceVsMA20 == "above" {
		maScore += 0.33
	}
	if indicators.PriceVsMA50 == "above" {
		maScore += 0.33
	}
	if indicators.PriceVsMA200 == "above" {
		maScore += 0.34
	}
	score += maScore * 0.3

	switch {
	case indicators.RSI >= 30 && indicators.RSI <= 70:
		score += 0.2
	case indicators.RSI < 30:
		score += 0.3
	default:
		score += 0.1
	}

	if indicators.MACD > indicators.MACDSignal {
		score += 0.2
	}

	if indicators.VolumeTrend == "high" {
		score += 0.15
	} else {
		score += 0.075
	}

	switch {
	case indicators.Volatility < 0.3:
		score += 0.15
	case indicators.Volatility < 0.5:
		score += 0.1
	default:
		score += 0.05
	}

	return score
}

// calculateFundamentalScore folds the company ratios into a [0,1] score.
// Metrics reported as unavailable contribute nothing.
func calculateFundamentalScore(metrics *dto.FundamentalMetrics) float64 {
	score := 0.0
	factors := 0

	if metrics.PERatio != nil {
		switch {
		case *metrics.PERatio < 15:
			score += 0.3
		case *metrics.PERatio < 25:
			score += 0.2
		default:
			score += 0.1
		}
		factors++
	}

	if metrics.PBRatio != nil {
		switch {
		case *metrics.PBRatio < 1.5:
			score += 0.2
		case *metrics.PBRatio < 3:
			score += 0.15
		default:
			score += 0.1
		}
		factors++
	}

	switch {
	case metrics.DividendYield > 3:
		score += 0.2
	case metrics.DividendYield > 1:
		score += 0.15
	default:
		score += 0.1
	}
	factors++

	switch {
	case metrics.Beta < 0.8:
		score += 0.15
	case metrics.Beta < 1.2:
		score += 0.1
	default:
		score += 0.05
	}
	factors++

	if metrics.MarketCap != nil {
		switch {
		case *metrics.MarketCap > 10e9:
			score += 0.15
		case *metrics.MarketCap > 2e9:
			score += 0.1
		default:
			score += 0.05
		}
		factors++
	}

	if factors == 0 {
		return 0.5
	}
	return score
}

// recommendationFromScore maps a composite score to an action with
// tolerance-adjusted thresholds. Confidence is zero at the exact threshold
// and grows with distance from it.
func recommendationFromScore(score float64, riskTolerance string) (string, float64) {
	var buyThreshold, sellThreshold float64
	switch riskTolerance {
	case common.RiskLow:
		buyThreshold, sellThreshold = 0.7, 0.3
	case common.RiskHigh:
		buyThreshold, sellThreshold = 0.6, 0.4
	default:
		buyThreshold, sellThreshold = 0.65, 0.35
	}

	switch {
	case score >= buyThreshold:
		confidence := (score - buyThreshold) / (1 - buyThreshold)
		if confidence > 1.0 {
			confidence = 1.0
		}
		return common.ActionBuy, confidence
	case score <= sellThreshold:
		confidence := (sellThreshold - score) / sellThreshold
		if confidence > 1.0 {
			confidence = 1.0
		}
		return common.ActionSell, confidence
	default:
		return common.ActionHold, 0.5
	}
}

func calculateTargetPrice(currentPrice float64, action string, score float64) float64 {
	switch action {
	case common.ActionBuy:
		return currentPrice * (1 + 0.15 + score*0.1)
	case common.ActionSell:
		return currentPrice * (1 - (0.15 + (1-score)*0.1))
	default:
		return currentPrice
	}
}

func calculateStopLoss(currentPrice float64, riskTolerance string) float64 {
	switch riskTolerance {
	case common.RiskLow:
		return currentPrice * 0.95
	case common.RiskHigh:
		return currentPrice * 0.85
	default:
		return currentPrice * 0.90
	}
}

func determineRiskLevel(score float64, riskTolerance string) string {
	switch {
	case riskTolerance == common.RiskLow || score < 0.3:
		return common.RiskLow
	case riskTolerance == common.RiskHigh || score > 0.7:
		return common.RiskHigh
	default:
		return common.RiskMedium
	}
}

func buildReasoning(action string, technical *dto.TechnicalIndicators, fundamentals *dto.FundamentalMetrics, overallScore float64) string {
	parts := []string{}

	switch action {
	case common.ActionBuy:
		parts = append(parts, "Positive investment opportunity identified.")
	case common.ActionSell:
		parts = append(parts, "Consider reducing position or taking profits.")
	default:
		parts = append(parts, "Neutral position recommended.")
	}

	if technical != nil {
		maStatus := []string{}
		if technical.PriceVsMA20 == "above" {
			maStatus = append(maStatus, "above 20-day MA")
		}
		if technical.PriceVsMA50 == "above" {
			maStatus = append(maStatus, "above 50-day MA")
		}
		if len(maStatus) > 0 {
			parts = append(parts, fmt.Sprintf("Price is %s.", strings.Join(maStatus, " and ")))
		}
		if technical.RSI < 30 {
			parts = append(parts, "RSI indicates oversold conditions.")
		} else if technical.RSI > 70 {
			parts = append(parts, "RSI indicates overbought conditions.")
		}
	}

	if fundamentals != nil {
		if fundamentals.PERatio != nil {
			if *fundamentals.PERatio < 15 {
				parts = append(parts, "P/E ratio suggests undervaluation.")
			} else if *fundamentals.PERatio > 25 {
				parts = append(parts, "P/E ratio suggests overvaluation.")
			}
		}
		if fundamentals.DividendYield > 3 {
			parts = append(parts, "Attractive dividend yield.")
		}
	}

	parts = append(parts, fmt.Sprintf("Overall confidence score: %.2f", overallScore))
	return strings.Join(parts, " ")
}

func factorsConsidered(includeTechnical, includeFundamental bool) []string {
	factors := []string{}
	if includeTechnical {
		factors = append(factors,
			"Moving Averages",
			"RSI (Relative Strength Index)",
			"MACD",
			"Volume Analysis",
			"Volatility",
		)
	}
	if includeFundamental {
		factors = append(factors,
			"P/E Ratio",
			"P/B Ratio",
			"Dividend Yield",
			"Beta",
			"Market Capitalization",
		)
	}
	return factors
}

func defaultRecommendation(symbol, reason string) *dto.RecommendationResult {
	return &dto.RecommendationResult{
		Action:            common.ActionHold,
		Confidence:        0.3,
		Reasoning:         fmt.Sprintf("Insufficient data for %s. %s", symbol, reason),
		RiskLevel:         common.RiskMedium,
		TargetPrice:       nil,
		StopLoss:          nil,
		Factors:           dto.StrategyFactors{},
		FactorsConsidered: []string{},
	}
}
