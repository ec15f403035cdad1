// Package report renders the analysis reply sent back to the user.
package report

import (
	"fmt"

	"github.com/edgard/halalbot/internal/i18n"
)

const layout = "🔍 <b>%s:</b>\n\n✨ <b>%s:</b>\n%s\n\n⚠️ <b>%s:</b>\n%s"

// Format wraps the raw analysis text and the disclaimer into one HTML message
// with section labels in lang. Unknown languages use the default catalog.
func Format(lang i18n.Language, analysis string) string {
	c := i18n.Lookup(lang)
	return fmt.Sprintf(layout, c.ReportTitle, c.AnalysisLabel, analysis, c.DisclaimerLabel, c.Disclaimer)
}
