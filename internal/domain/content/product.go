package content

import "strings"

// Product is the derived view of one Products record.
type Product struct {
	ID          string
	Name        string
	Brand       string
	Category    string
	Image       string
	Link        string
	Description string

	// PriceText is what the card shows: the bucket label, or the price.
	PriceText string
	Price     float64
	HasPrice  bool

	Size        string
	RMS         string
	Impedance   string
	Sensitivity string
	Pros        string
	Cons        string
}

// Specs is the short spec line of a product card.
func (p Product) Specs() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Brand, p.Size, rmsLabel(p.RMS), p.Impedance} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " • ")
}

func rmsLabel(rms string) string {
	rms = strings.TrimSpace(rms)
	if rms == "" {
		return ""
	}
	return rms + "W RMS"
}

// Keyword is one row of the Keywords backlog.
type Keyword struct {
	ID    string
	Title string
	Used  bool
}
