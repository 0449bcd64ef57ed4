package resume2pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Header and footer typography. Core fonts only: text is WinAnsi-encoded.
const (
	decorationFont       = "Helvetica"
	headerFontSize       = 9.0
	footerFontSize       = 8.0
	decorationGray       = 75
	pageImageType        = "PNG"
	producerName         = "resume2pdf"
	pageImageNamePattern = "page-%d"
)

// candidatePage is a slice that survived blank filtering, PNG-encoded.
// A zero height marks the empty page of a degenerate document.
type candidatePage struct {
	slice  Slice
	png    []byte
	width  int
	height int
}

// documentInfo is written into the PDF information dictionary.
type documentInfo struct {
	title   string
	author  string
	created time.Time
}

// composer lays out output pages with go-pdf/fpdf.
type composer struct {
	geom   PageGeometry
	deco   Decoration
	logger *slog.Logger
}

// compose emits one page per candidate, substituting {page}/{pages} with the
// final count. Decoration failures are recovered per page and counted.
func (c *composer) compose(pages []candidatePage, tokens Tokens, info documentInfo) ([]byte, int, error) {
	if len(pages) == 0 {
		pages = []candidatePage{{}}
	}

	pdf := c.newDocument(info)
	tokens.Pages = len(pages)
	failures := 0

	for i, p := range pages {
		pdf.AddPage()
		if p.height > 0 && p.width > 0 {
			c.placeImage(pdf, i, p)
		}

		tokens.Page = i + 1
		header := RenderTemplate(c.deco.Header, tokens)
		footer := RenderTemplate(c.deco.Footer, tokens)
		if err := c.decorate(pdf, header, footer); err != nil {
			failures++
			c.logger.Warn("page decoration skipped", "page", i+1, "error", err)
		} else {
			c.logger.Debug("page composed", "page", i+1, "header", header, "footer", footer)
		}

		if pdf.Err() {
			return nil, failures, fmt.Errorf("%w: page %d: %v", ErrComposition, i+1, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, failures, fmt.Errorf("%w: %v", ErrComposition, err)
	}
	return buf.Bytes(), failures, nil
}

// newDocument creates an fpdf document sized to the page geometry in points.
func (c *composer) newDocument(info documentInfo) *fpdf.Fpdf {
	g := c.geom
	orientation := "P"
	size := fpdf.SizeType{Wd: g.Width, Ht: g.Height}
	if g.Width > g.Height {
		orientation = "L"
		size = fpdf.SizeType{Wd: g.Height, Ht: g.Width}
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(g.Margin, g.Margin, g.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(producerName, false)
	pdf.SetProducer(producerName, false)
	if info.title != "" {
		pdf.SetTitle(info.title, true)
	}
	if info.author != "" {
		pdf.SetAuthor(info.author, true)
	}
	if !info.created.IsZero() {
		pdf.SetCreationDate(info.created)
		pdf.SetModificationDate(info.created)
	}
	pdf.SetTextColor(decorationGray, decorationGray, decorationGray)
	return pdf
}

// placeImage scales the slice to the printable width below the header band.
func (c *composer) placeImage(pdf *fpdf.Fpdf, index int, p candidatePage) {
	g := c.geom
	name := fmt.Sprintf(pageImageNamePattern, index+1)
	opts := fpdf.ImageOptions{ImageType: pageImageType}

	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(p.png))
	w := g.PrintableWidth()
	h := w * float64(p.height) / float64(p.width)
	pdf.ImageOptions(name, g.Margin, g.ImageTop(), w, h, false, opts, 0, "")
}

// decorate draws the header centered in the printable width and the footer
// against the right margin. Text is encoded before anything is drawn, so a
// failure leaves the page undecorated rather than half-decorated.
func (c *composer) decorate(pdf *fpdf.Fpdf, header, footer string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrComposition, r)
		}
	}()

	g := c.geom
	drawHeader := header != "" && g.HeaderHeight > 0
	drawFooter := footer != "" && g.FooterHeight > 0

	var encHeader, encFooter string
	if drawHeader {
		if encHeader, err = encodeWinAnsi(header); err != nil {
			return err
		}
	}
	if drawFooter {
		if encFooter, err = encodeWinAnsi(footer); err != nil {
			return err
		}
	}

	if drawHeader {
		pdf.SetFont(decorationFont, "", headerFontSize)
		pdf.SetXY(g.Margin, g.Margin)
		pdf.CellFormat(g.PrintableWidth(), g.HeaderHeight, encHeader, "", 0, "CM", false, 0, "")
	}
	if drawFooter {
		pdf.SetFont(decorationFont, "", footerFontSize)
		pdf.SetXY(g.Margin, g.Height-g.Margin-g.FooterHeight)
		pdf.CellFormat(g.PrintableWidth(), g.FooterHeight, encFooter, "", 0, "RM", false, 0, "")
	}
	return nil
}

// encodeWinAnsi converts UTF-8 text to the code page of the PDF core fonts.
func encodeWinAnsi(s string) (string, error) {
	out, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("%w: text %q is not representable in core fonts: %v", ErrComposition, s, err)
	}
	return out, nil
}
