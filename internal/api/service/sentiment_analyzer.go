package service

import (
	"regexp"
	"strings"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/pkg/common"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

var positiveFinancialWords = toSet([]string{
	"growth", "increase", "profit", "revenue", "positive", "strong", "improve",
	"gain", "rise", "up", "higher", "better", "success", "excellent", "outperform",
	"beat", "exceed", "surge", "jump", "climb", "soar", "rally", "bullish",
})

var negativeFinancialWords = toSet([]string{
	"loss", "decline", "decrease", "drop", "fall", "negative", "weak", "worse",
	"risk", "volatility", "uncertainty", "concern", "challenge", "pressure",
	"downturn", "recession", "bearish", "crash", "plunge", "tumble", "slump",
})

// General-purpose polarity words, a cheap stand-in for a full sentiment
// lexicon. Weighted lower than the finance-specific lists.
var positiveGeneralWords = toSet([]string{
	"good", "great", "best", "happy", "confident", "optimistic", "healthy",
	"robust", "solid", "favorable", "encouraging", "impressive",
})

var negativeGeneralWords = toSet([]string{
	"bad", "poor", "worst", "difficult", "pessimistic", "unfavorable",
	"disappointing", "trouble", "problem", "failure", "adverse", "severe",
})

var sentimentKeywords = []string{
	"revenue", "profit", "earnings", "growth", "sales", "income",
	"expenses", "costs", "margin", "cash flow", "debt", "assets",
	"liabilities", "equity", "market", "stock", "shares", "dividend",
	"investment", "portfolio", "trading", "volatility", "risk",
	"return", "performance", "quarter", "annual", "fiscal",
}

// analyzeSentiment scores text with a financial lexicon blended with a
// general polarity lexicon, the financial signal weighted more heavily.
func analyzeSentiment(text string) *dto.SentimentResult {
	if text == "" {
		return &dto.SentimentResult{
			Score:      0.0,
			Label:      common.SentimentNeutral,
			Confidence: 0.0,
			Keywords:   []string{},
		}
	}

	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	generalScore := lexiconScore(words, positiveGeneralWords, negativeGeneralWords)
	financialScore := lexiconScore(words, positiveFinancialWords, negativeFinancialWords)

	combined := generalScore*0.3 + financialScore*0.7

	label := common.SentimentNeutral
	if combined > 0.1 {
		label = common.SentimentPositive
	} else if combined < -0.1 {
		label = common.SentimentNegative
	}

	confidence := combined * 2
	if confidence < 0 {
		confidence = -confidence
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	return &dto.SentimentResult{
		Score:      combined,
		Label:      label,
		Confidence: confidence,
		Keywords:   extractSentimentKeywords(text),
	}
}

// lexiconScore returns (positive - negative) / (positive + negative) over
// the lexicon hits, or 0 when no word matches either list.
func lexiconScore(words []string, positive, negative map[string]struct{}) float64 {
	positiveCount := 0
	negativeCount := 0
	for _, word := range words {
		if _, ok := positive[word]; ok {
			positiveCount++
		} else if _, ok := negative[word]; ok {
			negativeCount++
		}
	}
	total := positiveCount + negativeCount
	if total == 0 {
		return 0.0
	}
	return float64(positiveCount-negativeCount) / float64(total)
}

func extractSentimentKeywords(text string) []string {
	textLower := strings.ToLower(text)
	found := []string{}
	for _, keyword := range sentimentKeywords {
		if strings.Contains(textLower, keyword) {
			found = append(found, keyword)
			if len(found) == 10 {
				break
			}
		}
	}
	return found
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
