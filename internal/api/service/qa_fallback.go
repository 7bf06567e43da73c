package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
)

var (
	revenuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`revenue[:\s]*\$?([\d,]+\.?\d*)`),
		regexp.MustCompile(`sales[:\s]*\$?([\d,]+\.?\d*)`),
		regexp.MustCompile(`income[:\s]*\$?([\d,]+\.?\d*)`),
	}
	profitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`profit[:\s]*\$?([\d,]+\.?\d*)`),
		regexp.MustCompile(`earnings[:\s]*\$?([\d,]+\.?\d*)`),
		regexp.MustCompile(`net income[:\s]*\$?([\d,]+\.?\d*)`),
	}

	riskKeywords   = []string{"risk", "challenge", "uncertainty", "volatility", "exposure"}
	growthKeywords = []string{"growth", "increase", "decrease", "change", "growth rate"}
)

// answerRuleBased answers a question with keyword routing and pattern
// matching. Used when no language model is configured or its call failed.
func answerRuleBased(content, question string) *dto.QAResult {
	questionLower := strings.ToLower(question)
	contentLower := strings.ToLower(content)

	switch {
	case containsAny(questionLower, "revenue", "sales", "income"):
		return extractFigureAnswer(contentLower, revenuePatterns,
			"The revenue is $%s.", "Revenue value found using pattern matching.", "Revenue data extraction",
			"Revenue information is not clearly stated in this document.", "No clear revenue figures found in document.")
	case containsAny(questionLower, "profit", "earnings", "net income"):
		return extractFigureAnswer(contentLower, profitPatterns,
			"The profit/earnings is $%s.", "Profit value found using pattern matching.", "Profit data extraction",
			"Profit/earnings information is not clearly stated in this document.", "No clear profit figures found in document.")
	case containsAny(questionLower, "risk", "risks", "challenge", "challenges"):
		return extractSentenceAnswer(content, riskKeywords,
			"Key risks identified: %s", "Risk analysis", "Risk-related sentences found in document.",
			"No specific risks are clearly identified in this document.", "No risk-related content found in document.")
	case containsAny(questionLower, "growth", "increase", "decrease", "change"):
		return extractSentenceAnswer(content, growthKeywords,
			"Growth information: %s", "Growth analysis", "Growth-related sentences found in document.",
			"No specific growth information is clearly stated in this document.", "No growth-related content found in document.")
	default:
		return &dto.QAResult{
			Answer:     "I can help you find information about revenue, profit, risks, and growth in this document. Please ask a specific question about these topics.",
			Confidence: 0.5,
			Sources:    []string{"Document content"},
			Reasoning:  "Question type not specifically handled by rule-based system.",
		}
	}
}

func extractFigureAnswer(contentLower string, patterns []*regexp.Regexp, answerFormat, reasoning, source, missingAnswer, missingReasoning string) *dto.QAResult {
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(contentLower); match != nil {
			value := strings.ReplaceAll(match[1], ",", "")
			return &dto.QAResult{
				Answer:     fmt.Sprintf(answerFormat, value),
				Confidence: 0.7,
				Sources:    []string{source},
				Reasoning:  reasoning,
			}
		}
	}
	return &dto.QAResult{
		Answer:     missingAnswer,
		Confidence: 0.3,
		Sources:    []string{"Document content"},
		Reasoning:  missingReasoning,
	}
}

func extractSentenceAnswer(content string, keywords []string, answerFormat, source, reasoning, missingAnswer, missingReasoning string) *dto.QAResult {
	matched := []string{}
	for _, sentence := range strings.Split(content, ".") {
		sentenceLower := strings.ToLower(sentence)
		for _, keyword := range keywords {
			if strings.Contains(sentenceLower, keyword) {
				matched = append(matched, strings.TrimSpace(sentence))
				break
			}
		}
		if len(matched) >= 3 {
			break
		}
	}

	if len(matched) > 0 {
		return &dto.QAResult{
			Answer:     fmt.Sprintf(answerFormat, strings.Join(matched, " ")),
			Confidence: 0.6,
			Sources:    []string{source},
			Reasoning:  reasoning,
		}
	}
	return &dto.QAResult{
		Answer:     missingAnswer,
		Confidence: 0.4,
		Sources:    []string{"Document content"},
		Reasoning:  missingReasoning,
	}
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
