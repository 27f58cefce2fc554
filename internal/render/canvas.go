package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/bingomancer/internal/layout"
)

const fontFamily = "Helvetica"

// canvas is the drawing surface used by the renderer. Coordinates are in
// points with the origin at the top-left corner of the page.
type canvas interface {
	layout.Measurer
	AddPage(size layout.PageSize)
	FillRect(r layout.Rect, c colorful.Color)
	StrokeRect(r layout.Rect, c colorful.Color, width float64)
	// Text draws a single line centred in r.
	Text(r layout.Rect, text string, size float64, c colorful.Color)
	// RegisterImage adds PNG data under name, once per document.
	RegisterImage(name string, png []byte) error
	DrawImage(name string, r layout.Rect)
	Output(w io.Writer) error
}

// pdfCanvas draws with fpdf using the core Helvetica font, so no font files
// are needed. Text is translated to cp1252, which covers the ellipsis.
type pdfCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFCanvas(page layout.PageSize) *pdfCanvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "B", 11)

	return &pdfCanvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *pdfCanvas) StringWidth(text string, size float64) float64 {
	c.pdf.SetFontSize(size)
	return c.pdf.GetStringWidth(c.tr(text))
}

func (c *pdfCanvas) AddPage(size layout.PageSize) {
	// fpdf swaps the dimensions itself for landscape pages.
	if size.IsLandscape() {
		c.pdf.AddPageFormat("L", fpdf.SizeType{Wd: size.Height, Ht: size.Width})
		return
	}
	c.pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})
}

func (c *pdfCanvas) FillRect(r layout.Rect, col colorful.Color) {
	red, green, blue := col.RGB255()
	c.pdf.SetFillColor(int(red), int(green), int(blue))
	c.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

func (c *pdfCanvas) StrokeRect(r layout.Rect, col colorful.Color, width float64) {
	red, green, blue := col.RGB255()
	c.pdf.SetDrawColor(int(red), int(green), int(blue))
	c.pdf.SetLineWidth(width)
	c.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
}

func (c *pdfCanvas) Text(r layout.Rect, text string, size float64, col colorful.Color) {
	red, green, blue := col.RGB255()
	c.pdf.SetTextColor(int(red), int(green), int(blue))
	c.pdf.SetFont(fontFamily, "B", size)
	c.pdf.SetXY(r.X, r.Y)
	c.pdf.CellFormat(r.W, r.H, c.tr(text), "", 0, "CM", false, 0, "")
}

func (c *pdfCanvas) RegisterImage(name string, png []byte) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if err := c.pdf.Error(); err != nil {
		// A bad image must not poison the rest of the document.
		c.pdf.ClearError()
		return fmt.Errorf("register image: %w", err)
	}
	return nil
}

func (c *pdfCanvas) DrawImage(name string, r layout.Rect) {
	c.pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (c *pdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
