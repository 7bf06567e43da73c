package telegram

import (
	"fmt"
	"strings"
	"time"
)

// FormatAnomalyAlertMessage builds the Markdown alert sent when a document
// analysis reports a high risk score.
func FormatAnomalyAlertMessage(at time.Time, filename string, riskScore float64, affectedMetrics []string) string {
	var b strings.Builder
	b.WriteString("🚨 *High Risk Anomaly Detected* 🚨\n\n")
	b.WriteString(fmt.Sprintf("📄 *Document:* %s\n", filename))
	b.WriteString(fmt.Sprintf("⚠️ *Risk Score:* %.2f\n", riskScore))
	if len(affectedMetrics) > 0 {
		b.WriteString(fmt.Sprintf("📊 *Affected Metrics:* %s\n", strings.Join(affectedMetrics, ", ")))
	}
	b.WriteString(fmt.Sprintf("\n🕒 %s", at.Format("2006-01-02 15:04:05")))
	return b.String()
}

// FormatErrorAlertMessage builds a generic error alert message.
func FormatErrorAlertMessage(at time.Time, message string) string {
	return fmt.Sprintf("❌ *Error Alert* ❌\n\n%s\n\n🕒 %s", message, at.Format("2006-01-02 15:04:05"))
}
