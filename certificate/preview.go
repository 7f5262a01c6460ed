package certificate

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Portrait page sizes in points, width then height. One point maps to one
// preview pixel.
var pageSizes = map[string][2]float64{
	"A4":     {595.28, 841.89},
	"Letter": {612, 792},
}

// Preview draws a low fidelity PNG of the certificate layout. It uses the
// same text blocks as Render but a fixed bitmap font, so sizes are only
// reflected in vertical spacing.
func (r *Renderer) Preview(w io.Writer, f Facts) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("preview certificate: %w", err)
	}
	t := r.tmpl
	size, ok := pageSizes[t.PageSize]
	if !ok {
		return fmt.Errorf("preview certificate: unsupported page size %q", t.PageSize)
	}
	pw, ph := size[0], size[1]
	if t.Orientation == "L" {
		pw, ph = ph, pw
	}
	width, height := int(pw), int(ph)

	dc := gg.NewContext(width, height)
	dc.SetHexColor(t.Background)
	dc.Clear()

	inset := t.Border.Inset
	dc.SetHexColor(t.Border.Color)
	dc.SetLineWidth(t.Border.Width)
	dc.DrawRectangle(inset, inset, float64(width)-2*inset, float64(height)-2*inset)
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	margin := t.Margin
	y := margin
	for _, ln := range t.layout(f) {
		h := ln.Style.FontSize * t.LineHeight
		dc.SetHexColor(ln.Style.Color)
		for _, text := range dc.WordWrap(ln.Text, float64(width)-2*margin) {
			switch ln.Style.Align {
			case "L":
				dc.DrawStringAnchored(text, margin, y+h/2, 0, 0.5)
			case "R":
				dc.DrawStringAnchored(text, float64(width)-margin, y+h/2, 1, 0.5)
			default:
				dc.DrawStringAnchored(text, float64(width)/2, y+h/2, 0.5, 0.5)
			}
			y += h
		}
		y += ln.Style.SpaceAfter
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("preview certificate %s: %w", f.Number, err)
	}
	return nil
}
