package certificate

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Renderer draws certificates from a fixed Template.
type Renderer struct {
	tmpl Template
}

func NewRenderer(tmpl Template) *Renderer {
	return &Renderer{tmpl: tmpl}
}

func (r *Renderer) Template() Template {
	return r.tmpl
}

// Render writes a single page PDF for f to w.
func (r *Renderer) Render(w io.Writer, f Facts) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}
	t := r.tmpl

	pdf := fpdf.New(t.Orientation, "pt", t.PageSize, "")
	pdf.SetCompression(t.Compress)
	pdf.SetCreationDate(f.RenderedAt)
	pdf.SetModificationDate(f.RenderedAt)
	pdf.SetTitle("Certificate "+f.Number, true)
	pdf.SetAuthor(t.IssuerName, true)
	pdf.SetCreator(t.IssuerName, true)
	pdf.SetMargins(t.Margin, t.Margin, t.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	if err := setFill(pdf, t.Background); err != nil {
		return err
	}
	pdf.Rect(0, 0, pageW, pageH, "F")

	br, bg, bb, err := parseHexColor(t.Border.Color)
	if err != nil {
		return err
	}
	pdf.SetDrawColor(br, bg, bb)
	pdf.SetLineWidth(t.Border.Width)
	inset := t.Border.Inset
	pdf.Rect(inset, inset, pageW-2*inset, pageH-2*inset, "D")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetXY(t.Margin, t.Margin)
	for _, ln := range r.fitted(pdf, tr, f) {
		cr, cg, cb, err := parseHexColor(ln.Style.Color)
		if err != nil {
			return err
		}
		pdf.SetFont(t.FontFamily, fontStyle(ln.Style), ln.Style.FontSize)
		pdf.SetTextColor(cr, cg, cb)
		pdf.SetX(t.Margin)
		pdf.CellFormat(0, ln.Style.FontSize*t.LineHeight, tr(ln.Text), "", 1, ln.Style.Align, false, 0, "")
		if ln.Style.SpaceAfter > 0 {
			pdf.Ln(ln.Style.SpaceAfter)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render certificate %s: %w", f.Number, err)
	}
	return nil
}

// fitted lays out f and shrinks or wraps every block to the text width of
// the page, measured with the document's own font metrics.
func (r *Renderer) fitted(pdf *fpdf.Fpdf, tr func(string) string, f Facts) []line {
	t := r.tmpl
	pageW, _ := pdf.GetPageSize()
	width := pageW - 2*t.Margin - 2*pdf.GetCellMargin()
	measure := func(ln line) measureFunc {
		return func(text string, size float64) float64 {
			pdf.SetFont(t.FontFamily, fontStyle(ln.Style), size)
			return pdf.GetStringWidth(tr(text))
		}
	}
	return fit(measure, t.layout(f), width)
}

// LossyFields names the facts that hold characters the PDF core fonts
// cannot encode. Those characters are drawn as placeholders.
func (r *Renderer) LossyFields(f Facts) []string {
	var fields []string
	check := func(name, text string) {
		if _, err := charmap.Windows1252.NewEncoder().String(text); err != nil {
			fields = append(fields, name)
		}
	}
	check("learner_name", f.Learner.FullName())
	check("learner_email", f.Learner.Email)
	check("course_name", f.Course.Name)
	check("instructor_name", f.Course.InstructorName)
	return fields
}

func fontStyle(s TextStyle) string {
	if s.Bold {
		return "B"
	}
	return ""
}

func setFill(pdf *fpdf.Fpdf, hex string) error {
	r, g, b, err := parseHexColor(hex)
	if err != nil {
		return err
	}
	pdf.SetFillColor(r, g, b)
	return nil
}
