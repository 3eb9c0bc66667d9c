package domain

import "time"

// PackageHeader groups the line items sold under one catalog offering. The
// importer never updates a header in place: any drift in cost or the text
// columns inserts a fresh row, so several headers may share the same Header
// text across import generations.
type PackageHeader struct {
	ID        string        `json:"id"`
	Header    string        `json:"header"`
	Cost      float64       `json:"cost"`
	Text1     string        `json:"text1,omitempty"`
	Text2     string        `json:"text2,omitempty"`
	Text3     string        `json:"text3,omitempty"`
	Text4     string        `json:"text4,omitempty"`
	Text5     string        `json:"text5,omitempty"`
	Text6     string        `json:"text6,omitempty"`
	Text7     string        `json:"text7,omitempty"`
	Items     []PackageItem `json:"items,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PackageItem struct {
	ID             string    `json:"id"`
	HeaderID       string    `json:"headerId"`
	Media          string    `json:"media"`
	Link           string    `json:"link"`
	Format         string    `json:"format"`
	MonthlyTraffic string    `json:"monthlyTraffic"`
	TurnaroundTime string    `json:"turnaroundTime"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Matches reports whether an imported row describes the same header version:
// the header text plus cost and all seven text columns must match exactly.
func (h PackageHeader) Matches(other PackageHeader) bool {
	return h.Header == other.Header &&
		h.Cost == other.Cost &&
		h.Text1 == other.Text1 &&
		h.Text2 == other.Text2 &&
		h.Text3 == other.Text3 &&
		h.Text4 == other.Text4 &&
		h.Text5 == other.Text5 &&
		h.Text6 == other.Text6 &&
		h.Text7 == other.Text7
}
