package invoice

import (
	"strings"
	"testing"
	"time"
)

func TestRenderHTML(t *testing.T) {
	r := NewRenderer("KOL Marketplace", "BE71096123456769", "GKCCBEBB")
	html, err := r.RenderHTML(Data{
		Number:        "INV-2026-0001",
		IssuedAt:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Acme Media",
		Lines:         []Line{{Description: "Sponsored post bundle", Quantity: 1, Amount: 30000}},
		Subtotal:      30000,
		ManagementFee: 3562.50,
		Total:         33562.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(html)
	for _, want := range []string{
		"INV-2026-0001",
		"Sponsored post bundle",
		"33562.50",
		"BE71096123456769",
		"data:image/png;base64,",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(doc, "Coupon discount") {
		t.Errorf("discount row should be omitted when zero")
	}
}

func TestRenderHTMLCouponRow(t *testing.T) {
	r := NewRenderer("KOL Marketplace", "BE71096123456769", "GKCCBEBB")
	html, err := r.RenderHTML(Data{
		Number:         "INV-2026-0002",
		IssuedAt:       time.Now(),
		Subtotal:       1000,
		CouponDiscount: 100,
		Total:          900,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(html), "Coupon discount") {
		t.Errorf("discount row expected")
	}
}

func TestEPCQRPayload(t *testing.T) {
	uri, err := epcQR("BE71096123456769", "GKCCBEBB", "KOL Marketplace", "INV-1", 42.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("expected png data uri, got %q", uri[:30])
	}
}
