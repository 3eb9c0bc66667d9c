package invoice

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// Renderer turns checkout data into a PDF invoice with an EPC payment QR.
// It drives a headless Chrome, so rendering is comparatively slow and is
// expected to run outside request-critical paths.
type Renderer struct {
	company string
	iban    string
	bic     string
}

func NewRenderer(company, iban, bic string) *Renderer {
	return &Renderer{company: company, iban: iban, bic: bic}
}

// Line is one billed position on the invoice.
type Line struct {
	Description string
	Quantity    int
	Amount      float64
}

type Data struct {
	Number         string
	IssuedAt       time.Time
	CustomerName   string
	Lines          []Line
	Subtotal       float64
	ManagementFee  float64
	CouponDiscount float64
	Total          float64
}

// epcQR builds an EPC069-12 credit transfer payload and encodes it as a PNG
// data URI usable in an <img> tag.
func epcQR(iban, bic, name, ref string, amount float64) (string, error) {
	payload := fmt.Sprintf("BCD\n001\n1\nSCT\n%s\n%s\n%s\nEUR%.2f\n\n%s", bic, name, iban, amount, ref)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderHTML fills the invoice template. Split from RenderPDF so tests can
// check the document without a browser.
func (r *Renderer) RenderHTML(data Data) ([]byte, error) {
	qr, err := epcQR(r.iban, r.bic, r.company, data.Number, data.Total)
	if err != nil {
		return nil, fmt.Errorf("payment qr: %w", err)
	}
	var buf bytes.Buffer
	err = invoiceTmpl.Execute(&buf, struct {
		Data
		Company string
		IBAN    string
		BIC     string
		QR      template.URL
	}{Data: data, Company: r.company, IBAN: r.iban, BIC: r.bic, QR: template.URL(qr)})
	if err != nil {
		return nil, fmt.Errorf("invoice template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) RenderPDF(ctx context.Context, data Data) ([]byte, error) {
	html, err := r.RenderHTML(data)
	if err != nil {
		return nil, err
	}

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return pdf, nil
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 22px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; }
  td.num, th.num { text-align: right; }
  .totals td { border: none; padding: 3px 8px; }
  .totals tr.grand td { font-weight: bold; border-top: 2px solid #222; }
  .qr { margin-top: 32px; }
  .meta { color: #666; font-size: 13px; }
</style>
</head>
<body>
  <h1>{{.Company}}</h1>
  <p class="meta">Invoice {{.Number}}<br>{{.IssuedAt.Format "2 January 2006"}}</p>
  {{if .CustomerName}}<p>Billed to: {{.CustomerName}}</p>{{end}}
  <table>
    <tr><th>Description</th><th class="num">Qty</th><th class="num">Amount</th></tr>
    {{range .Lines}}
    <tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{printf "%.2f" .Amount}} &euro;</td></tr>
    {{end}}
  </table>
  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{printf "%.2f" .Subtotal}} &euro;</td></tr>
    <tr><td>Management fee</td><td class="num">{{printf "%.2f" .ManagementFee}} &euro;</td></tr>
    {{if gt .CouponDiscount 0.0}}<tr><td>Coupon discount</td><td class="num">-{{printf "%.2f" .CouponDiscount}} &euro;</td></tr>{{end}}
    <tr class="grand"><td>Total</td><td class="num">{{printf "%.2f" .Total}} &euro;</td></tr>
  </table>
  <div class="qr">
    <img src="{{.QR}}" width="128" height="128" alt="payment qr">
    <p class="meta">Pay by SEPA transfer<br>IBAN {{.IBAN}} &middot; BIC {{.BIC}}</p>
  </div>
</body>
</html>`))
