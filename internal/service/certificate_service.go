package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// CertificateService renders the completion certificate as a one-page PDF.
type CertificateService struct{}

func NewCertificateService() *CertificateService {
	return &CertificateService{}
}

const defaultCertName = "Účastník/Účastnice kurzu"

// CertificateFilename is the download name offered to the browser.
const CertificateFilename = "jysk-cybersafe-certifikat.pdf"

// Render produces the certificate PDF. The name is optional and capped at
// 40 runes; the participant stays anonymous server-side, the name exists
// only inside the generated file.
func (s *CertificateService) Render(name string) ([]byte, error) {
	runes := []rune(name)
	if len(runes) == 0 {
		name = defaultCertName
	} else if len(runes) > 40 {
		name = string(runes[:40])
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts with the cp1250 code page cover Czech diacritics.
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.AddPage()

	line := func(size float64, style, text string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.CellFormat(0, size*0.6, tr(text), "", 1, "C", false, 0, "")
	}

	pdf.Ln(30)
	line(28, "B", "Certifikát o absolvování")
	pdf.Ln(8)
	line(18, "", "JYSK CyberSafe")
	pdf.Ln(14)
	line(14, "", "Tento certifikát potvrzuje, že")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 24)
	nameWidth := pdf.GetStringWidth(tr(name))
	pageW, _ := pdf.GetPageSize()
	pdf.CellFormat(0, 14, tr(name), "", 1, "C", false, 0, "")
	x := (pageW - nameWidth) / 2
	y := pdf.GetY() - 2
	pdf.Line(x, y, x+nameWidth, y)

	pdf.Ln(8)
	line(14, "", "úspěšně dokončil/a mikro-kurz kybernetické bezpečnosti pro prodejnu.")
	pdf.Ln(18)
	line(12, "", fmt.Sprintf("Datum: %s", time.Now().Format("02.01.2006")))
	pdf.Ln(6)
	line(12, "", "Obsah: phishing, vishing, USB, sdílený počítač, ochrana zákaznických údajů.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
