package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/pkg/logger"
)

// SECService defines the interface for SEC-filing style company profiles.
type SECService interface {
	AnalyzeCompany(ctx context.Context, ticker string) (*dto.SECAnalysisResponse, error)
	Chat(ctx context.Context, req *dto.SECChatRequest) (*dto.SECChatResponse, error)
}

// NewSECService creates a new SEC analysis service.
func NewSECService(log *logger.Logger) SECService {
	return &secService{logger: log}
}

type secService struct {
	logger *logger.Logger
}

type companyProfile struct {
	name         string
	marketCap    string
	sector       string
	industry     string
	revenue      string
	netIncome    string
	peRatio      string
	roe          string
	debtToEquity string
	currentRatio string
	buyRated     bool
}

var knownCompanies = map[string]companyProfile{
	"AAPL": {
		name: "Apple Inc.", marketCap: "$3.2T", sector: "Technology", industry: "Consumer Electronics",
		revenue: "$383B", netIncome: "$99B", peRatio: "28.5", roe: "26.4%",
		debtToEquity: "1.73", currentRatio: "1.07", buyRated: true,
	},
	"MSFT": {
		name: "Microsoft Corporation", marketCap: "$2.8T", sector: "Technology", industry: "Software",
		revenue: "$211B", netIncome: "$72B", peRatio: "25.0", roe: "20.0%",
		debtToEquity: "0.65", currentRatio: "1.25", buyRated: true,
	},
	"GOOGL": {
		name: "Alphabet Inc.", marketCap: "$2.1T", sector: "Communication Services", industry: "Internet Services",
		revenue: "$307B", netIncome: "$76B", peRatio: "22.5", roe: "18.5%",
		debtToEquity: "0.65", currentRatio: "1.25", buyRated: true,
	},
	"TSLA": {
		name: "Tesla Inc.", marketCap: "$800B", sector: "Consumer Discretionary", industry: "Automotive",
		revenue: "$96B", netIncome: "$15B", peRatio: "45.0", roe: "15.2%",
		debtToEquity: "0.65", currentRatio: "1.25",
	},
	"AMZN": {
		name: "Amazon.com Inc.", marketCap: "$1.5T", sector: "Consumer Discretionary", industry: "E-commerce",
		revenue: "$574B", netIncome: "$33B", peRatio: "35.0", roe: "12.8%",
		debtToEquity: "0.65", currentRatio: "1.25",
	},
}

var mockSECSectors = []struct {
	sector   string
	industry string
}{
	{"Technology", "Software"},
	{"Healthcare", "Biotechnology"},
	{"Financial Services", "Banks"},
	{"Consumer Discretionary", "Retail"},
	{"Industrials", "Machinery"},
	{"Energy", "Oil & Gas"},
}

// AnalyzeCompany builds a company profile. For tickers outside the known-
// company table the figures are drawn from a source seeded by the ticker
// hash, so repeated calls return identical profiles.
func (s *secService) AnalyzeCompany(ctx context.Context, ticker string) (*dto.SECAnalysisResponse, error) {
	ticker = strings.ToUpper(ticker)
	profile, ok := knownCompanies[ticker]
	if !ok {
		profile = syntheticProfile(ticker)
	}

	now := time.Now()
	revenueB := parseBillions(profile.revenue)
	netIncomeB := parseBillions(profile.netIncome)
	peTarget := int(parseFloat(profile.peRatio)) * 10

	recommendation := "HOLD"
	if profile.buyRated {
		recommendation = "BUY"
	}

	return &dto.SECAnalysisResponse{
		Symbol:    ticker,
		Name:      profile.name,
		Sector:    profile.sector,
		Industry:  profile.industry,
		MarketCap: profile.marketCap,
		ExecutiveSummary: fmt.Sprintf(
			"%s is a leading company in the %s sector with strong market position and consistent financial performance. "+
				"The company demonstrates robust revenue growth and maintains competitive advantages through innovation and market leadership.",
			profile.name, profile.sector),
		FinancialSnapshot: dto.FinancialSnapshot{
			Revenue:         profile.revenue,
			NetIncome:       profile.netIncome,
			TotalAssets:     fmt.Sprintf("$%dB", revenueB*2),
			TotalDebt:       fmt.Sprintf("$%dB", revenueB/3),
			PERatio:         profile.peRatio,
			ROE:             profile.roe,
			DebtToEquity:    profile.debtToEquity,
			CurrentRatio:    profile.currentRatio,
			OperatingMargin: "25.0%",
			GrossMargin:     "42.0%",
			FreeCashFlow:    fmt.Sprintf("$%.0fB", float64(netIncomeB)*1.2),
		},
		BullCase: []string{
			"Strong brand loyalty and market position",
			"Consistent innovation and R&D investment",
			"Growing addressable market and expansion opportunities",
			"Strong cash generation and financial flexibility",
			"Proven management team and execution track record",
			"Diversified revenue streams and customer base",
		},
		BearCase: []string{
			"High market saturation in core products",
			"Increasing competitive pressure",
			"Regulatory and legal challenges",
			"Economic sensitivity and cyclical risks",
			"High valuation multiples limiting upside",
			"Execution risks from rapid growth",
		},
		KeyRisks: []string{
			"Competitive landscape intensification",
			"Regulatory and compliance challenges",
			"Economic downturn and recession risks",
			"Technology disruption and obsolescence",
			"Supply chain and operational dependencies",
			"Cybersecurity and data privacy concerns",
			"Key personnel and talent retention",
			"Currency and international market exposure",
		},
		SourceLinks: []string{
			fmt.Sprintf("https://www.sec.gov/edgar/browse/?CIK=%s", ticker),
			fmt.Sprintf("https://investor.%s.com/sec-filings/", strings.ToLower(ticker)),
			fmt.Sprintf("https://finance.yahoo.com/quote/%s/financials", ticker),
			fmt.Sprintf("https://www.marketwatch.com/investing/stock/%s", strings.ToLower(ticker)),
		},
		FilingDate: now.Format("2006-01-02"),
		Quarter:    fmt.Sprintf("Q%d %d", (int(now.Month())-1)/3+1, now.Year()),
		AnalystEstimates: dto.AnalystEstimates{
			PriceTarget:    fmt.Sprintf("$%d", peTarget),
			RevenueGrowth:  "8-12%",
			EarningsGrowth: "10-15%",
			Recommendation: recommendation,
		},
		Confidence:  0.85,
		DataSource:  "Mock Data for Development",
		LastUpdated: now.Format(time.RFC3339),
	}, nil
}

// Chat answers a natural language question with keyword routing over the
// company's profile.
func (s *secService) Chat(ctx context.Context, req *dto.SECChatRequest) (*dto.SECChatResponse, error) {
	profile, err := s.AnalyzeCompany(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(req.Query)
	var response string

	switch {
	case containsAny(queryLower, "p/e", "pe ratio", "price earnings", "valuation"):
		response = fmt.Sprintf(
			"The P/E ratio for %s is %s. This metric shows how much investors are willing to pay for each dollar of earnings. "+
				"A higher P/E might indicate growth expectations, while a lower P/E could suggest the stock is undervalued or facing challenges.",
			profile.Name, profile.FinancialSnapshot.PERatio)
	case containsAny(queryLower, "debt", "leverage", "debt to equity", "balance sheet"):
		response = fmt.Sprintf(
			"%s has a debt-to-equity ratio of %s with total debt of %s. This indicates the company's financial leverage "+
				"and how much debt is used to finance operations relative to shareholder equity.",
			profile.Name, profile.FinancialSnapshot.DebtToEquity, profile.FinancialSnapshot.TotalDebt)
	case containsAny(queryLower, "revenue", "sales", "income"):
		response = fmt.Sprintf(
			"%s reported revenue of %s and net income of %s. This shows the company's top-line growth and bottom-line profitability.",
			profile.Name, profile.FinancialSnapshot.Revenue, profile.FinancialSnapshot.NetIncome)
	case containsAny(queryLower, "risk", "risks", "concerns"):
		response = fmt.Sprintf(
			"Key risks for %s include: %s. These factors could impact future performance and should be monitored by investors.",
			profile.Name, strings.Join(profile.KeyRisks[:3], ". "))
	case containsAny(queryLower, "bull", "positive", "strengths"):
		response = fmt.Sprintf(
			"The bull case for %s includes: %s. These factors support a positive outlook for the company.",
			profile.Name, strings.Join(profile.BullCase[:3], ". "))
	case containsAny(queryLower, "bear", "negative", "challenges"):
		response = fmt.Sprintf(
			"The bear case for %s includes: %s. These are potential headwinds that could impact performance.",
			profile.Name, strings.Join(profile.BearCase[:3], ". "))
	default:
		response = fmt.Sprintf(
			"I have access to comprehensive SEC filing data for %s. You can ask me about financial metrics "+
				"(P/E ratio, debt levels, revenue), risk factors, bull/bear cases, or specific aspects of their business performance.",
			profile.Name)
	}

	return &dto.SECChatResponse{
		Ticker:   strings.ToUpper(req.Ticker),
		Response: response,
	}, nil
}

// syntheticProfile derives a stable profile for tickers outside the known
// table. The ticker hash seeds the generator, so the figures never change
// between calls.
func syntheticProfile(ticker string) companyProfile {
	rng := rand.New(rand.NewSource(repository.SymbolSeed(ticker)))

	sector := mockSECSectors[rng.Intn(len(mockSECSectors))]
	marketCapB := 20 + rng.Intn(480)
	revenueB := 5 + rng.Intn(95)
	netIncomeB := 1 + rng.Intn(revenueB/2+1)
	pe := 10 + rng.Float64()*30
	roe := 5 + rng.Float64()*20

	return companyProfile{
		name:         fmt.Sprintf("%s Corporation", ticker),
		marketCap:    fmt.Sprintf("$%dB", marketCapB),
		sector:       sector.sector,
		industry:     sector.industry,
		revenue:      fmt.Sprintf("$%dB", revenueB),
		netIncome:    fmt.Sprintf("$%dB", netIncomeB),
		peRatio:      fmt.Sprintf("%.1f", pe),
		roe:          fmt.Sprintf("%.1f%%", roe),
		debtToEquity: "0.65",
		currentRatio: "1.25",
	}
}

func parseBillions(s string) int {
	var value int
	fmt.Sscanf(strings.TrimSuffix(strings.TrimPrefix(s, "$"), "B"), "%d", &value)
	return value
}

func parseFloat(s string) float64 {
	var value float64
	fmt.Sscanf(s, "%f", &value)
	return value
}
