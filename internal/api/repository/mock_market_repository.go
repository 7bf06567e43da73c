package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
)

// timeframeBarCounts maps request timeframes to the number of generated bars.
var timeframeBarCounts = map[string]int{
	"7d":  7,
	"30d": 22,
	"90d": 64,
	"1y":  252,
	"5y":  1260,
}

var mockSectors = []struct {
	Sector   string
	Industry string
}{
	{"Technology", "Software"},
	{"Healthcare", "Biotechnology"},
	{"Financials", "Banking"},
	{"Consumer Discretionary", "Retail"},
	{"Energy", "Oil & Gas"},
	{"Industrials", "Machinery"},
}

// mockMarketRepository generates deterministic pseudo-random market data.
// The random source is seeded from a hash of the uppercased symbol, so
// repeated calls for the same symbol return identical data. Tests and
// offline fallback paths rely on this determinism.
type mockMarketRepository struct{}

// NewMockMarketRepository creates the deterministic fallback data provider.
func NewMockMarketRepository() FinanceRepository {
	return &mockMarketRepository{}
}

// SymbolSeed derives the deterministic seed for a symbol: the first 8 hex
// digits of md5(upper(symbol)) interpreted as an integer.
func SymbolSeed(symbol string) int64 {
	sum := md5.Sum([]byte(strings.ToUpper(symbol)))
	hexDigest := hex.EncodeToString(sum[:])
	seed, _ := strconv.ParseInt(hexDigest[:8], 16, 64)
	return seed
}

// GetBars generates a deterministic random walk of daily bars, earliest first.
func (r *mockMarketRepository) GetBars(_ context.Context, param dto.GetBarsParam) ([]dto.Bar, error) {
	count, ok := timeframeBarCounts[param.Timeframe]
	if !ok {
		count = 22
	}

	rng := rand.New(rand.NewSource(SymbolSeed(param.Symbol)))

	price := 20 + rng.Float64()*480
	baseVolume := int64(500_000 + rng.Intn(5_000_000))

	// Anchor dates to midnight so repeated calls within a day line up.
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -count)

	bars := make([]dto.Bar, 0, count)
	for i := 0; i < count; i++ {
		drift := 1 + rng.NormFloat64()*0.02
		open := price
		price = price * drift
		high := open * (1 + rng.Float64()*0.015)
		low := open * (1 - rng.Float64()*0.015)
		if price > high {
			high = price
		}
		if price < low {
			low = price
		}
		volume := baseVolume + int64(rng.Intn(1_000_000))

		bars = append(bars, dto.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: volume,
		})
	}

	return bars, nil
}

// GetFundamentals generates deterministic company ratios for a symbol.
func (r *mockMarketRepository) GetFundamentals(_ context.Context, symbol string) (*dto.FundamentalMetrics, error) {
	seed := SymbolSeed(symbol)
	rng := rand.New(rand.NewSource(seed))

	pe := 8 + rng.Float64()*40
	pb := 0.8 + rng.Float64()*4
	marketCap := (10 + rng.Float64()*490) * 1e9
	sector := mockSectors[int(seed)%len(mockSectors)]

	return &dto.FundamentalMetrics{
		PERatio:       &pe,
		PBRatio:       &pb,
		DividendYield: rng.Float64() * 4,
		MarketCap:     &marketCap,
		Beta:          0.6 + rng.Float64()*1.2,
		Sector:        sector.Sector,
	}, nil
}
