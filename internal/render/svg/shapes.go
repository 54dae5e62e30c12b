package svg

// Style holds the presentation attributes shared by shapes. Empty fields are
// omitted from the output.
type Style struct {
	Fill            string
	Stroke          string
	StrokeWidth     float64
	StrokeDasharray string
	StrokeLinecap   string
	Transform       string
	Filter          string
	Class           string
}

func (s Style) attrs() []Attr {
	var out []Attr
	add := func(name, value string) {
		if value != "" {
			out = append(out, Attr{name, value})
		}
	}
	add("class", s.Class)
	add("fill", s.Fill)
	add("stroke", s.Stroke)
	if s.StrokeWidth > 0 {
		add("stroke-width", Num(s.StrokeWidth))
	}
	add("stroke-dasharray", s.StrokeDasharray)
	add("stroke-linecap", s.StrokeLinecap)
	add("transform", s.Transform)
	add("filter", s.Filter)
	return out
}

// Circle is a circle centred on (CX, CY).
type Circle struct {
	CX, CY, R float64
	Style
}

func (c Circle) Element() Element {
	attrs := []Attr{{"cx", Num(c.CX)}, {"cy", Num(c.CY)}, {"r", Num(c.R)}}
	return Element{Name: "circle", Attrs: append(attrs, c.Style.attrs()...)}
}

// Rect is an axis-aligned rectangle with optional rounded corners.
type Rect struct {
	X, Y, Width, Height float64
	Radius              float64
	Style
}

func (r Rect) Element() Element {
	attrs := []Attr{
		{"x", Num(r.X)}, {"y", Num(r.Y)},
		{"width", Num(r.Width)}, {"height", Num(r.Height)},
	}
	if r.Radius > 0 {
		attrs = append(attrs, Attr{"rx", Num(r.Radius)}, Attr{"ry", Num(r.Radius)})
	}
	return Element{Name: "rect", Attrs: append(attrs, r.Style.attrs()...)}
}

// Anchor values for Text.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Text is a single line of text.
type Text struct {
	X, Y       float64
	Content    string
	FontSize   float64
	FontWeight string
	Anchor     string
	Baseline   string
	DY         float64
	Fill       string
}

func (t Text) Element() Element {
	attrs := []Attr{{"x", Num(t.X)}, {"y", Num(t.Y)}}
	if t.FontSize > 0 {
		attrs = append(attrs, Attr{"font-size", Num(t.FontSize)})
	}
	if t.FontWeight != "" {
		attrs = append(attrs, Attr{"font-weight", t.FontWeight})
	}
	if t.Anchor != "" {
		attrs = append(attrs, Attr{"text-anchor", t.Anchor})
	}
	if t.Baseline != "" {
		attrs = append(attrs, Attr{"dominant-baseline", t.Baseline})
	}
	if t.DY != 0 {
		attrs = append(attrs, Attr{"dy", Num(t.DY)})
	}
	if t.Fill != "" {
		attrs = append(attrs, Attr{"fill", t.Fill})
	}
	return Element{Name: "text", Attrs: attrs, Text: t.Content}
}

// LinearGradient is a left-to-right two-stop gradient definition.
type LinearGradient struct {
	ID       string
	From, To string
}

func (g LinearGradient) Element() Element {
	return Element{
		Name:  "linearGradient",
		Attrs: []Attr{{"id", g.ID}, {"x1", "0%"}, {"y1", "0%"}, {"x2", "100%"}, {"y2", "0%"}},
		Children: []Element{
			{Name: "stop", Attrs: []Attr{{"offset", "0%"}, {"stop-color", g.From}}},
			{Name: "stop", Attrs: []Attr{{"offset", "100%"}, {"stop-color", g.To}}},
		},
	}
}

// GlowFilter is a blurred drop-shadow filter definition.
type GlowFilter struct {
	ID     string
	Color  string
	StdDev float64
}

func (f GlowFilter) Element() Element {
	return Element{
		Name:  "filter",
		Attrs: []Attr{{"id", f.ID}, {"x", "-50%"}, {"y", "-50%"}, {"width", "200%"}, {"height", "200%"}},
		Children: []Element{
			{Name: "feDropShadow", Attrs: []Attr{
				{"dx", "0"}, {"dy", "0"},
				{"stdDeviation", Num(f.StdDev)},
				{"flood-color", f.Color},
			}},
		},
	}
}

// URL formats a reference to a definition id for fill/filter attributes.
func URL(id string) string { return "url(#" + id + ")" }

// Rotate formats a rotation transform around (cx, cy).
func Rotate(deg, cx, cy float64) string {
	return "rotate(" + Num(deg) + " " + Num(cx) + " " + Num(cy) + ")"
}
