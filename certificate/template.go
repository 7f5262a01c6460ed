package certificate

import (
	"fmt"
	"strconv"
	"strings"
)

// TextStyle describes one text block of the certificate layout. Sizes and
// spacing are in points.
type TextStyle struct {
	FontSize   float64
	Color      string
	Align      string // "L", "C" or "R"
	Bold       bool
	SpaceAfter float64
}

type Border struct {
	Width float64
	Color string
	Inset float64
}

type Styles struct {
	Issuer       TextStyle
	Title        TextStyle
	Statement    TextStyle
	LearnerName  TextStyle
	LearnerEmail TextStyle
	CourseName   TextStyle
	Details      TextStyle
	Signature    TextStyle
	IssueDate    TextStyle
	Footer       TextStyle
}

type Content struct {
	Title          string
	Subtitle       string
	CompletionText string
	SignatureText  string
	SignatureRule  string
	MissingDate    string
}

// Template is the fixed certificate layout. It is a plain value: callers
// get a copy from DefaultTemplate and may adjust fields before handing it
// to NewRenderer, which keeps its own copy.
type Template struct {
	PageSize     string // fpdf size name, e.g. "A4"
	Orientation  string // "L" or "P"
	Margin       float64
	Background   string
	FontFamily   string
	Border       Border
	Styles       Styles
	Content      Content
	SignatureGap float64 // extra space above the signature rule
	LineHeight   float64 // multiple of font size per text line
	DateLayout   string
	IssuerName   string
	SupportEmail string
	Compress     bool
}

func DefaultTemplate() Template {
	return Template{
		PageSize:    "A4",
		Orientation: "L",
		Margin:      50,
		Background:  "#ffffff",
		FontFamily:  "Helvetica",
		Border:      Border{Width: 3, Color: "#000000", Inset: 20},
		Styles: Styles{
			Issuer:       TextStyle{FontSize: 18, Color: "#22223b", Align: "L", SpaceAfter: 10},
			Title:        TextStyle{FontSize: 50, Color: "#000000", Align: "C", SpaceAfter: 10},
			Statement:    TextStyle{FontSize: 20, Color: "#000000", Align: "C", SpaceAfter: 8},
			LearnerName:  TextStyle{FontSize: 36, Color: "#000000", Align: "C", SpaceAfter: 4},
			LearnerEmail: TextStyle{FontSize: 16, Color: "#444444", Align: "C", SpaceAfter: 10},
			CourseName:   TextStyle{FontSize: 30, Color: "#000000", Align: "C", SpaceAfter: 12},
			Details:      TextStyle{FontSize: 14, Color: "#000000", Align: "C", SpaceAfter: 2},
			Signature:    TextStyle{FontSize: 16, Color: "#000000", Align: "C", SpaceAfter: 0},
			IssueDate:    TextStyle{FontSize: 12, Color: "#000000", Align: "C", SpaceAfter: 10},
			Footer:       TextStyle{FontSize: 10, Color: "#888888", Align: "C"},
		},
		Content: Content{
			Title:          "Certificate of Completion",
			Subtitle:       "This is to certify that",
			CompletionText: "has successfully completed the course",
			SignatureText:  "Course Instructor",
			SignatureRule:  "_____________________________",
			MissingDate:    "N/A",
		},
		SignatureGap: 22,
		LineHeight:   1.15,
		DateLayout:   "01/02/2006",
		IssuerName:   "Study Byte",
		SupportEmail: "support@studybyte.com",
		Compress:     true,
	}
}

// line is one laid out text block.
type line struct {
	Text  string
	Style TextStyle
}

// layout returns the certificate text blocks in drawing order. Both the PDF
// and the PNG preview are drawn from it.
func (t Template) layout(f Facts) []line {
	rendered := f.RenderedAt.Format(t.DateLayout)
	started := t.Content.MissingDate
	if !f.Course.CreatedAt.IsZero() {
		started = f.Course.CreatedAt.Format(t.DateLayout)
	}
	instructor := strings.TrimSpace(f.Course.InstructorName)
	if instructor == "" {
		instructor = t.Content.SignatureText
	}

	s := t.Styles
	numberStyle := s.Details
	numberStyle.SpaceAfter = t.SignatureGap
	statementTight := s.Statement
	statementTight.SpaceAfter = s.LearnerName.SpaceAfter

	return []line{
		{t.IssuerName, s.Issuer},
		{t.Content.Title, s.Title},
		{t.Content.Subtitle, s.Statement},
		{f.Learner.FullName(), s.LearnerName},
		{f.Learner.Email, s.LearnerEmail},
		{t.Content.CompletionText, statementTight},
		{f.Course.Name, s.CourseName},
		{fmt.Sprintf("Course Duration: %s - %s", started, rendered), s.Details},
		{fmt.Sprintf("Completion Date: %s", rendered), s.Details},
		{fmt.Sprintf("Certificate Number: %s", f.Number), numberStyle},
		{t.Content.SignatureRule, s.Signature},
		{instructor, withSpace(s.Signature, s.IssueDate.SpaceAfter)},
		{fmt.Sprintf("Date of Issue: %s", rendered), s.IssueDate},
		{fmt.Sprintf("This certificate is issued by %s. For verification, contact %s", t.IssuerName, t.SupportEmail), s.Footer},
	}
}

func withSpace(s TextStyle, after float64) TextStyle {
	s.SpaceAfter = after
	return s
}

// parseHexColor turns "#rrggbb" or "#rgb" into components.
func parseHexColor(s string) (r, g, b int, err error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}
