package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// FPDFBackend renders onto an fpdf document using the core Helvetica fonts.
// fpdf measures y from the top, so y is flipped on the way in.
type FPDFBackend struct {
	pdf *fpdf.Fpdf
}

func NewFPDFBackend() *FPDFBackend {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("AI Fitness Plan", false)
	pdf.SetCreator("AI Fitness Coach", false)
	return &FPDFBackend{pdf: pdf}
}

func (b *FPDFBackend) AddPage() {
	b.pdf.AddPage()
}

func (b *FPDFBackend) PageCount() int {
	return b.pdf.PageCount()
}

func (b *FPDFBackend) SetPage(n int) {
	b.pdf.SetPage(n)
}

func (b *FPDFBackend) Text(x, y float64, s string, style Style) {
	b.setFont(style)
	r, g, bl := rgb255(style.Color)
	b.pdf.SetTextColor(r, g, bl)
	b.pdf.Text(x, PageHeight-y, s)
}

func (b *FPDFBackend) Line(x1, y1, x2, y2, thickness float64, color Color) {
	r, g, bl := rgb255(color)
	b.pdf.SetDrawColor(r, g, bl)
	b.pdf.SetLineWidth(thickness)
	b.pdf.Line(x1, PageHeight-y1, x2, PageHeight-y2)
}

func (b *FPDFBackend) TextWidth(s string, style Style) float64 {
	b.setFont(style)
	return b.pdf.GetStringWidth(s)
}

// Bytes closes the document and returns the encoded PDF.
func (b *FPDFBackend) Bytes() ([]byte, error) {
	if err := b.pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("output pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *FPDFBackend) setFont(style Style) {
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	b.pdf.SetFont(fontFamily, fontStyle, style.Size)
}

func rgb255(c Color) (int, int, int) {
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}
