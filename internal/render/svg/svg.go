// Package svg provides an in-memory drawing surface. Renderers add shape
// descriptors to a Canvas; the canvas is serialized to SVG markup in one
// pass, so callers never observe a half-drawn document.
package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"strconv"
)

const namespace = "http://www.w3.org/2000/svg"

// Target is the drawing surface renderers write to.
type Target interface {
	// Resize declares the viewable area. Renderers call it before drawing.
	Resize(width, height float64)
	Size() (width, height float64)
	// Define registers reusable definitions (gradients, filters).
	Define(defs ...Shape)
	Add(shapes ...Shape)
}

// Shape is anything that can describe itself as an SVG element.
type Shape interface {
	Element() Element
}

// Attr is a single attribute. Order is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// Element is a generic SVG node.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []Element
}

// Element lets a raw Element be used as a Shape.
func (e Element) Element() Element { return e }

// Attr returns the value of the named attribute, or "" when absent.
func (e Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Canvas is the default Target.
type Canvas struct {
	width  float64
	height float64
	defs   []Element
	shapes []Element
}

// NewCanvas returns an empty canvas with the given initial size.
func NewCanvas(width, height float64) *Canvas {
	return &Canvas{width: width, height: height}
}

func (c *Canvas) Resize(width, height float64) {
	c.width, c.height = width, height
}

func (c *Canvas) Size() (float64, float64) { return c.width, c.height }

func (c *Canvas) Define(defs ...Shape) {
	for _, d := range defs {
		c.defs = append(c.defs, d.Element())
	}
}

func (c *Canvas) Add(shapes ...Shape) {
	for _, s := range shapes {
		c.shapes = append(c.shapes, s.Element())
	}
}

// Elements returns a copy of the drawn shapes in insertion order.
func (c *Canvas) Elements() []Element {
	out := make([]Element, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Defs returns a copy of the registered definitions.
func (c *Canvas) Defs() []Element {
	out := make([]Element, len(c.defs))
	copy(out, c.defs)
	return out
}

// WriteTo serializes the canvas as a standalone <svg> document fragment.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	root := Element{
		Name: "svg",
		Attrs: []Attr{
			{"xmlns", namespace},
			{"width", Num(c.width)},
			{"height", Num(c.height)},
			{"viewBox", "0 0 " + Num(c.width) + " " + Num(c.height)},
		},
	}
	if len(c.defs) > 0 {
		root.Children = append(root.Children, Element{Name: "defs", Children: c.defs})
	}
	root.Children = append(root.Children, c.shapes...)
	writeElement(&buf, root)
	return buf.WriteTo(w)
}

// Bytes returns the serialized canvas.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = c.WriteTo(&buf)
	return buf.Bytes()
}

func (c *Canvas) String() string { return string(c.Bytes()) }

func writeElement(buf *bytes.Buffer, e Element) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		_ = xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if e.Text == "" && len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if e.Text != "" {
		_ = xml.EscapeText(buf, []byte(e.Text))
	}
	for _, child := range e.Children {
		writeElement(buf, child)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}

// Num formats a coordinate with at most two decimals and no trailing zeros.
func Num(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // normalizes -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
