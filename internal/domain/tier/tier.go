// Package tier classifies percentages and ratios into qualitative colour tiers.
package tier

// Tier is a qualitative classification used to pick display colours.
type Tier int

// Tiers ordered from worst to best.
const (
	Low Tier = iota
	Medium
	High
)

// Percentage thresholds (inclusive lower bounds).
const (
	HighThreshold   = 80.0
	MediumThreshold = 50.0
)

// Audit ratio thresholds (inclusive lower bounds).
const (
	RatioPositive = 1.0
	RatioWarning  = 0.8
)

// Palette pairs a solid colour with the glow/gradient colour used by the
// enhanced charts.
type Palette struct {
	Color string
	Glow  string
}

var palettes = map[Tier]Palette{
	High:   {Color: "#4caf50", Glow: "#a5d6a7"},
	Medium: {Color: "#ffeb3b", Glow: "#fff59d"},
	Low:    {Color: "#f44336", Glow: "#ef9a9a"},
}

// Classify maps a percentage to a tier: >= 80 High, >= 50 Medium, else Low.
func Classify(percentage float64) Tier {
	switch {
	case percentage >= HighThreshold:
		return High
	case percentage >= MediumThreshold:
		return Medium
	default:
		return Low
	}
}

// ClassifyRatio maps an audit ratio to a tier: >= 1 High, >= 0.8 Medium,
// else Low.
func ClassifyRatio(ratio float64) Tier {
	switch {
	case ratio >= RatioPositive:
		return High
	case ratio >= RatioWarning:
		return Medium
	default:
		return Low
	}
}

// Palette returns the colour pair for t.
func (t Tier) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[Low]
}

// Color returns the solid display colour for t.
func (t Tier) Color() string { return t.Palette().Color }

// Glow returns the paired glow colour for t.
func (t Tier) Glow() string { return t.Palette().Glow }

func (t Tier) String() string {
	switch t {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	default:
		return "unknown"
	}
}
