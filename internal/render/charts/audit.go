package charts

import (
	"math"
	"strconv"

	"github.com/okian/zoneprofile/internal/domain/format"
	"github.com/okian/zoneprofile/internal/domain/tier"
	"github.com/okian/zoneprofile/internal/render/svg"
)

// Audit chart geometry.
const (
	AuditWidth     = 360.0
	AuditHeight    = 220.0
	AuditBarWidth  = 220.0
	AuditBarHeight = 15.0
	AuditStartX    = 80.0
	AuditDoneY     = 50.0
	AuditReceivedY = 100.0

	auditTitleY      = 25.0
	auditRatioY      = 150.0
	auditSummaryY    = 180.0
	auditMessageY    = 205.0
	auditCorner      = 3.0
	auditLabelGap    = 5.0
	auditTrackColor  = "#333"
	auditTextColor   = "white"
	auditTitleSize   = 18.0
	auditLabelSize   = 14.0
	auditRatioSize   = 32.0
	auditSummarySize = 13.0

	doneColor         = "#1a54ff"
	doneGlowColor     = "#6f8dff"
	receivedColor     = "#b87800"
	receivedGlowColor = "#ffb940"
)

// Gradient ids used by the enhanced audit bars.
const (
	DoneGradientID     = "audit-done-gradient"
	ReceivedGradientID = "audit-received-gradient"
)

// Summary messages keyed on whether the ratio is at least 1.
const (
	MessageBalanced   = "Great job! You give more than you receive."
	MessageUnbalanced = "Keep auditing to balance your ratio."
)

// BarWidths scales both totals against the larger one. When both are zero
// the widths are zero.
func BarWidths(totalUp, totalDown int64, barWidth float64) (done, received float64) {
	total := max(totalUp, totalDown)
	if total <= 0 {
		return 0, 0
	}
	return float64(totalUp) / float64(total) * barWidth, float64(totalDown) / float64(total) * barWidth
}

// RatioLabel rounds the ratio to one decimal place, halves away from zero.
func RatioLabel(ratio float64) string {
	return strconv.FormatFloat(math.Round(ratio*10)/10, 'f', 1, 64)
}

// SummaryMessage returns the qualitative message for ratio.
func SummaryMessage(ratio float64) string {
	if ratio >= tier.RatioPositive {
		return MessageBalanced
	}
	return MessageUnbalanced
}

// RenderAuditRatio draws the Done/Received comparison bars, the ratio and a
// short summary.
func RenderAuditRatio(totalDown, totalUp int64, auditRatio float64, target svg.Target, opts ...Option) {
	o := buildOptions(opts)
	target.Resize(AuditWidth, AuditHeight)

	doneWidth, receivedWidth := BarWidths(totalUp, totalDown, AuditBarWidth)

	doneFill, receivedFill := doneColor, receivedColor
	if o.enhanced {
		target.Define(
			svg.LinearGradient{ID: DoneGradientID, From: doneColor, To: doneGlowColor},
			svg.LinearGradient{ID: ReceivedGradientID, From: receivedColor, To: receivedGlowColor},
		)
		doneFill, receivedFill = svg.URL(DoneGradientID), svg.URL(ReceivedGradientID)
	}

	target.Add(svg.Text{
		X: AuditWidth / 2, Y: auditTitleY, Content: "Audit Ratio",
		FontSize: auditTitleSize, Anchor: svg.AnchorMiddle, Fill: auditTextColor,
	})
	target.Add(bar("Done", AuditDoneY, doneWidth, doneFill, totalUp)...)
	target.Add(bar("Received", AuditReceivedY, receivedWidth, receivedFill, totalDown)...)

	target.Add(
		svg.Text{
			X: AuditWidth / 2, Y: auditRatioY, Content: RatioLabel(auditRatio),
			FontSize: auditRatioSize, FontWeight: "bold",
			Anchor: svg.AnchorMiddle, Fill: tier.ClassifyRatio(auditRatio).Color(),
		},
		svg.Text{
			X: AuditWidth / 2, Y: auditSummaryY,
			Content:  "Total audits: " + format.SizeInt(totalUp+totalDown),
			FontSize: auditSummarySize, Anchor: svg.AnchorMiddle, Fill: auditTextColor,
		},
		svg.Text{
			X: AuditWidth / 2, Y: auditMessageY, Content: SummaryMessage(auditRatio),
			FontSize: auditSummarySize, Anchor: svg.AnchorMiddle, Fill: auditTextColor,
		},
	)
}

// bar returns the label, track, fill and value label of one horizontal bar.
func bar(label string, y, width float64, fill string, value int64) []svg.Shape {
	mid := y + AuditBarHeight/2
	return []svg.Shape{
		svg.Text{
			X: AuditStartX - auditLabelGap, Y: mid, Content: label,
			FontSize: auditLabelSize, Anchor: svg.AnchorEnd, Baseline: "middle", Fill: auditTextColor,
		},
		svg.Rect{
			X: AuditStartX, Y: y, Width: AuditBarWidth, Height: AuditBarHeight,
			Radius: auditCorner, Style: svg.Style{Fill: auditTrackColor},
		},
		svg.Rect{
			X: AuditStartX, Y: y, Width: width, Height: AuditBarHeight,
			Radius: auditCorner, Style: svg.Style{Fill: fill},
		},
		svg.Text{
			X: AuditStartX + width + auditLabelGap, Y: mid, Content: format.SizeInt(value),
			FontSize: auditLabelSize, Baseline: "middle", Fill: auditTextColor,
		},
	}
}
