package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/config"
	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"
	"github.com/kismat91/FinDocGPT/pkg/redis"
)

const defaultBarCacheTTL = 15 * time.Minute

// MarketService defines the interface for market data access and the daily
// snapshot job.
type MarketService interface {
	GetBars(ctx context.Context, symbol, timeframe string) ([]dto.Bar, error)
	GetStoredMarketData(ctx context.Context, symbol string, limit int) ([]dto.MarketDataResponse, error)
	Snapshot(ctx context.Context) error
}

// NewMarketService creates a new market service. redisClient may be nil, bar
// caching is then disabled.
func NewMarketService(
	cfg *config.Config,
	financeRepo repository.FinanceRepository,
	marketRepo repository.MarketDataRepository,
	redisClient *redis.Client,
	log *logger.Logger,
) MarketService {
	ttl := defaultBarCacheTTL
	if cfg.MarketData.CacheTTL != "" {
		if parsed, err := time.ParseDuration(cfg.MarketData.CacheTTL); err == nil {
			ttl = parsed
		}
	}
	return &marketService{
		cfg:         cfg,
		financeRepo: financeRepo,
		marketRepo:  marketRepo,
		redisClient: redisClient,
		cacheTTL:    ttl,
		logger:      log,
	}
}

type marketService struct {
	cfg         *config.Config
	financeRepo repository.FinanceRepository
	marketRepo  repository.MarketDataRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *logger.Logger
}

// GetBars returns daily bars for a symbol, served from Redis when a fresh
// snapshot exists.
func (s *marketService) GetBars(ctx context.Context, symbol, timeframe string) ([]dto.Bar, error) {
	symbol = strings.ToUpper(symbol)
	if timeframe == "" {
		timeframe = "30d"
	}
	cacheKey := fmt.Sprintf("%s:%s:%s", common.RedisKeyMarketBars, symbol, timeframe)

	if s.redisClient != nil {
		cached, err := s.redisClient.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var bars []dto.Bar
			if err := json.Unmarshal([]byte(cached), &bars); err == nil {
				return bars, nil
			}
		}
	}

	bars, err := s.financeRepo.GetBars(ctx, dto.GetBarsParam{Symbol: symbol, Timeframe: timeframe})
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && len(bars) > 0 {
		payload, err := json.Marshal(bars)
		if err == nil {
			if err := s.redisClient.Client.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Error("Failed to cache bars", logger.ErrorField(err), logger.StringField("symbol", symbol))
			}
		}
	}
	return bars, nil
}

// GetStoredMarketData lists persisted daily snapshots for a symbol, newest
// first.
func (s *marketService) GetStoredMarketData(ctx context.Context, symbol string, limit int) ([]dto.MarketDataResponse, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.marketRepo.FindBySymbol(ctx, strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.MarketDataResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.MarketDataResponse{
			Symbol:        row.Symbol,
			Date:          row.Date,
			OpenPrice:     row.OpenPrice,
			HighPrice:     row.HighPrice,
			LowPrice:      row.LowPrice,
			ClosePrice:    row.ClosePrice,
			Volume:        row.Volume,
			MarketCap:     row.MarketCap,
			PERatio:       row.PERatio,
			DividendYield: row.DividendYield,
		})
	}
	return responses, nil
}

// Snapshot persists the latest daily bar and fundamentals for every
// configured symbol. Run by the scheduler, symbols failing are skipped so
// one bad ticker does not break the run.
func (s *marketService) Snapshot(ctx context.Context) error {
	for _, symbol := range s.cfg.MarketData.SnapshotSymbols {
		symbol = strings.ToUpper(symbol)

		bars, err := s.financeRepo.GetBars(ctx, dto.GetBarsParam{Symbol: symbol, Timeframe: "7d"})
		if err != nil || len(bars) == 0 {
			s.logger.Error("Snapshot failed to fetch bars", logger.ErrorField(err), logger.StringField("symbol", symbol))
			continue
		}
		last := bars[len(bars)-1]

		row := &entity.MarketData{
			Symbol:     symbol,
			Date:       last.Date.Truncate(24 * time.Hour),
			OpenPrice:  last.Open,
			HighPrice:  last.High,
			LowPrice:   last.Low,
			ClosePrice: last.Close,
			Volume:     last.Volume,
		}

		fundamentals, err := s.financeRepo.GetFundamentals(ctx, symbol)
		if err != nil {
			s.logger.Error("Snapshot failed to fetch fundamentals", logger.ErrorField(err), logger.StringField("symbol", symbol))
		} else if fundamentals != nil {
			if fundamentals.MarketCap != nil {
				row.MarketCap = *fundamentals.MarketCap
			}
			if fundamentals.PERatio != nil {
				row.PERatio = *fundamentals.PERatio
			}
			row.DividendYield = fundamentals.DividendYield
		}

		if err := s.marketRepo.Upsert(ctx, row); err != nil {
			s.logger.Error("Snapshot failed to store market data", logger.ErrorField(err), logger.StringField("symbol", symbol))
			continue
		}
		s.logger.Info("Stored market data snapshot",
			logger.StringField("symbol", symbol),
			logger.Float64Field("close", last.Close),
		)
	}
	return nil
}
