package charts

import (
	"math"
	"strconv"

	"github.com/okian/zoneprofile/internal/domain/model"
	"github.com/okian/zoneprofile/internal/domain/tier"
	"github.com/okian/zoneprofile/internal/render/svg"
)

// Skill chart geometry.
const (
	SkillColumns     = 3
	SkillPitch       = 140.0
	SkillRadius      = 50.0
	SkillStrokeWidth = 8.0
	SkillOriginX     = 60.0
	SkillOriginY     = 60.0
	SkillMargin      = 20.0
	SkillWidth       = SkillOriginX*2 + SkillPitch*(SkillColumns-1)

	skillTrackColor   = "#ddd"
	skillLabelColor   = "white"
	skillValueSize    = 18.0
	skillNameSize     = 14.0
	skillValueDY      = 6.0
	skillNameOffset   = 20.0
	skillGlowStdDev   = 3.0
	skillRotationDeg  = -90.0
	percentMultiplier = 100.0
)

// SkillCell returns the centre of the i-th indicator in the grid.
func SkillCell(i int) (x, y float64) {
	col := i % SkillColumns
	row := i / SkillColumns
	return SkillOriginX + float64(col)*SkillPitch, SkillOriginY + float64(row)*SkillPitch
}

// SkillHeight is the canvas height needed for n indicators.
func SkillHeight(n int) float64 {
	rows := (n + SkillColumns - 1) / SkillColumns
	return float64(rows)*SkillPitch + SkillMargin
}

// SkillCircumference is the length of a full progress ring.
func SkillCircumference() float64 {
	return 2 * math.Pi * SkillRadius
}

// GlowID is the filter id for the i-th indicator.
func GlowID(i int) string {
	return "skill-glow-" + strconv.Itoa(i)
}

// RenderSkills draws one circular progress indicator per entry, three per row.
// The target is resized first so no indicator is clipped.
func RenderSkills(entries []model.SkillEntry, target svg.Target, opts ...Option) {
	o := buildOptions(opts)
	target.Resize(SkillWidth, SkillHeight(len(entries)))

	circumference := SkillCircumference()
	for i, e := range entries {
		x, y := SkillCell(i)
		t := tier.Classify(e.Percentage)

		progress := svg.Style{
			Fill:            "none",
			Stroke:          t.Color(),
			StrokeWidth:     SkillStrokeWidth,
			StrokeDasharray: svg.Num(circumference*e.Percentage/percentMultiplier) + " " + svg.Num(circumference),
			Transform:       svg.Rotate(skillRotationDeg, x, y),
		}
		if o.enhanced {
			target.Define(svg.GlowFilter{ID: GlowID(i), Color: t.Glow(), StdDev: skillGlowStdDev})
			progress.Filter = svg.URL(GlowID(i))
			progress.StrokeLinecap = "round"
		}

		target.Add(
			svg.Circle{CX: x, CY: y, R: SkillRadius, Style: svg.Style{
				Fill: "none", Stroke: skillTrackColor, StrokeWidth: SkillStrokeWidth,
			}},
			svg.Circle{CX: x, CY: y, R: SkillRadius, Style: progress},
			svg.Text{
				X: x, Y: y, DY: skillValueDY,
				Content:  PercentLabel(e.Percentage),
				FontSize: skillValueSize, FontWeight: "bold",
				Anchor: svg.AnchorMiddle, Fill: skillLabelColor,
			},
			svg.Text{
				X: x, Y: y + SkillRadius + skillNameOffset,
				Content:  e.Name,
				FontSize: skillNameSize,
				Anchor:   svg.AnchorMiddle, Fill: skillLabelColor,
			},
		)
	}
}

// PercentLabel prints a percentage as given with a trailing "%".
func PercentLabel(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
