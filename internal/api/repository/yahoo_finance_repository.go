package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/config"
	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// timeframeRanges maps request timeframes to Yahoo chart API range values.
var timeframeRanges = map[string]string{
	"7d":  "7d",
	"30d": "1mo",
	"90d": "3mo",
	"1y":  "1y",
	"5y":  "5y",
}

type yahooFinanceRepository struct {
	cfg               *config.Config
	log               *logger.Logger
	httpClient        *http.Client
	requestLimiter    *rate.Limiter
	fundamentalsCache *gocache.Cache
}

// NewYahooFinanceRepository creates a rate-limited Yahoo Finance client.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) FinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter:    requestLimiter,
		fundamentalsCache: gocache.New(15*time.Minute, 30*time.Minute),
	}
}

// GetBars fetches daily OHLCV bars for a symbol, earliest first.
func (r *yahooFinanceRepository) GetBars(ctx context.Context, param dto.GetBarsParam) ([]dto.Bar, error) {
	chartRange, ok := timeframeRanges[param.Timeframe]
	if !ok {
		chartRange = "1mo"
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", r.cfg.YahooFinance.BaseURL, param.Symbol, chartRange)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart response: %w", err)
	}

	if response.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s - %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", param.Symbol)
	}

	result := response.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var bars []dto.Bar
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		bars = append(bars, dto.Bar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: quote.Volume[i],
		})
	}

	r.log.DebugContext(ctx, "Yahoo Finance bars fetched",
		logger.StringField("symbol", param.Symbol),
		logger.IntField("bars", len(bars)),
	)

	return bars, nil
}

// yahooQuoteSummary mirrors the subset of the quoteSummary payload we read.
type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE    struct{ Raw *float64 } `json:"trailingPE"`
				DividendYield struct{ Raw *float64 } `json:"dividendYield"`
				Beta          struct{ Raw *float64 } `json:"beta"`
				MarketCap     struct{ Raw *float64 } `json:"marketCap"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook struct{ Raw *float64 } `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// GetFundamentals fetches company ratios, caching results in-process.
func (r *yahooFinanceRepository) GetFundamentals(ctx context.Context, symbol string) (*dto.FundamentalMetrics, error) {
	if cached, found := r.fundamentalsCache.Get(symbol); found {
		return cached.(*dto.FundamentalMetrics), nil
	}

	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail,defaultKeyStatistics,assetProfile", r.cfg.YahooFinance.BaseURL, symbol)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var summary yahooQuoteSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote summary: %w", err)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary returned for %s", symbol)
	}

	result := summary.QuoteSummary.Result[0]
	metrics := &dto.FundamentalMetrics{
		PERatio:   result.SummaryDetail.TrailingPE.Raw,
		PBRatio:   result.DefaultKeyStatistics.PriceToBook.Raw,
		MarketCap: result.SummaryDetail.MarketCap.Raw,
		Beta:      1.0,
		Sector:    result.AssetProfile.Sector,
	}
	if result.SummaryDetail.DividendYield.Raw != nil {
		metrics.DividendYield = *result.SummaryDetail.DividendYield.Raw * 100
	}
	if result.SummaryDetail.Beta.Raw != nil {
		metrics.Beta = *result.SummaryDetail.Beta.Raw
	}
	if metrics.Sector == "" {
		metrics.Sector = "Unknown"
	}

	r.fundamentalsCache.Set(symbol, metrics, gocache.DefaultExpiration)

	return metrics, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, url string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", url),
		zap.Int("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance API", fields...)
		return nil, fmt.Errorf("received non-OK response from Yahoo Finance API: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Yahoo Finance API", fields...)
		return nil, err
	}

	return body, nil
}
