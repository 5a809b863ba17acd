package render

import (
	"encoding/json"
	"strings"
	"time"
)

const schemaContext = "https://schema.org"

type ldOrg struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ldArticle struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description,omitempty"`
	Image            string   `json:"image,omitempty"`
	DatePublished    string   `json:"datePublished,omitempty"`
	DateModified     string   `json:"dateModified,omitempty"`
	MainEntityOfPage string   `json:"mainEntityOfPage,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Author           ldOrg    `json:"author"`
	Publisher        ldOrg    `json:"publisher"`
}

type ldAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type ldQuestion struct {
	Type           string   `json:"@type"`
	Name           string   `json:"name"`
	AcceptedAnswer ldAnswer `json:"acceptedAnswer"`
}

type ldFAQPage struct {
	Context    string       `json:"@context"`
	Type       string       `json:"@type"`
	MainEntity []ldQuestion `json:"mainEntity"`
}

type ldStep struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Text     string `json:"text"`
}

type ldHowTo struct {
	Context string   `json:"@context"`
	Type    string   `json:"@type"`
	Name    string   `json:"name"`
	Step    []ldStep `json:"step"`
}

type ldWebSite struct {
	Context string `json:"@context"`
	Type    string `json:"@type"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}

// ArticleJSONLD returns the Article, FAQPage and HowTo script blocks for an
// article page. FAQPage and HowTo are omitted when the preset has no entries.
func ArticleJSONLD(site Site, page ArticlePage, description string) (string, error) {
	m := page.Meta
	blocks := []any{ldArticle{
		Context:          schemaContext,
		Type:             "Article",
		Headline:         m.Title,
		Description:      description,
		Image:            m.Cover,
		DatePublished:    isoDate(m.Date),
		DateModified:     isoDate(m.Updated),
		MainEntityOfPage: page.Canonical,
		Keywords:         m.Tags,
		Author:           ldOrg{Type: "Organization", Name: site.Name},
		Publisher:        ldOrg{Type: "Organization", Name: site.Name},
	}}

	if faq := page.Preset.FAQ; len(faq) > 0 {
		qs := make([]ldQuestion, 0, len(faq))
		for _, f := range faq {
			qs = append(qs, ldQuestion{
				Type:           "Question",
				Name:           f.Question,
				AcceptedAnswer: ldAnswer{Type: "Answer", Text: f.Answer},
			})
		}
		blocks = append(blocks, ldFAQPage{Context: schemaContext, Type: "FAQPage", MainEntity: qs})
	}

	if steps := page.Preset.Steps; len(steps) > 0 {
		out := make([]ldStep, 0, len(steps))
		for i, s := range steps {
			out = append(out, ldStep{Type: "HowToStep", Position: i + 1, Name: s.Name, Text: s.Text})
		}
		blocks = append(blocks, ldHowTo{Context: schemaContext, Type: "HowTo", Name: m.Title, Step: out})
	}

	return scripts(blocks...)
}

func WebsiteJSONLD(site Site) (string, error) {
	return scripts(ldWebSite{Context: schemaContext, Type: "WebSite", Name: site.Name, URL: site.URL + "/"})
}

// scripts marshals each block into its own ld+json script tag. The default
// HTML escaping of encoding/json keeps "</script>" out of the payload.
func scripts(blocks ...any) (string, error) {
	var b strings.Builder
	for _, v := range blocks {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		b.WriteString(`    <script type="application/ld+json">`)
		b.Write(raw)
		b.WriteString("</script>\n")
	}
	return b.String(), nil
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
