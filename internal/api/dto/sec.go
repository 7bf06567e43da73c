package dto

// SECAnalysisRequest asks for an SEC-filing style company profile.
type SECAnalysisRequest struct {
	Ticker string `json:"ticker" validate:"required"`
}

// SECChatRequest asks a question about a company's SEC profile.
type SECChatRequest struct {
	Ticker string `json:"ticker" validate:"required"`
	Query  string `json:"query" validate:"required"`
}

// FinancialSnapshot holds the headline figures of a company profile.
type FinancialSnapshot struct {
	Revenue         string `json:"revenue"`
	NetIncome       string `json:"netIncome"`
	TotalAssets     string `json:"totalAssets"`
	TotalDebt       string `json:"totalDebt"`
	PERatio         string `json:"peRatio"`
	ROE             string `json:"roe"`
	DebtToEquity    string `json:"debtToEquity"`
	CurrentRatio    string `json:"currentRatio"`
	OperatingMargin string `json:"operatingMargin"`
	GrossMargin     string `json:"grossMargin"`
	FreeCashFlow    string `json:"freeCashFlow"`
}

// AnalystEstimates holds forward-looking consensus style figures.
type AnalystEstimates struct {
	PriceTarget    string `json:"priceTarget"`
	RevenueGrowth  string `json:"revenueGrowth"`
	EarningsGrowth string `json:"earningsGrowth"`
	Recommendation string `json:"recommendation"`
}

// SECAnalysisResponse is a full company profile in SEC-analysis form.
type SECAnalysisResponse struct {
	Symbol            string            `json:"symbol"`
	Name              string            `json:"name"`
	Sector            string            `json:"sector"`
	Industry          string            `json:"industry"`
	MarketCap         string            `json:"marketCap"`
	ExecutiveSummary  string            `json:"executiveSummary"`
	FinancialSnapshot FinancialSnapshot `json:"financialSnapshot"`
	BullCase          []string          `json:"bullCase"`
	BearCase          []string          `json:"bearCase"`
	KeyRisks          []string          `json:"keyRisks"`
	SourceLinks       []string          `json:"sourceLinks"`
	FilingDate        string            `json:"filingDate"`
	Quarter           string            `json:"quarter"`
	AnalystEstimates  AnalystEstimates  `json:"analystEstimates"`
	Confidence        float64           `json:"confidence"`
	DataSource        string            `json:"dataSource"`
	LastUpdated       string            `json:"lastUpdated"`
}

// SECChatResponse is the canned answer to an SEC chat query.
type SECChatResponse struct {
	Ticker   string `json:"ticker"`
	Response string `json:"response"`
}
