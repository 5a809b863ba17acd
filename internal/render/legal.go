package render

import (
	"embed"
	"fmt"
	"strings"

	"notionsite/internal/domain/site"
)

//go:embed legal/*.md
var legalFS embed.FS

var legalTitles = map[string]string{
	"about":      "About",
	"contact":    "Contact",
	"disclosure": "Affiliate Disclosure",
	"privacy":    "Privacy Policy",
	"terms":      "Terms of Use",
}

// LegalPages renders the static pages from their embedded markdown, in
// site.LegalSlugs order. Canonical is left for the caller.
func (r *ShellRenderer) LegalPages() ([]LegalPage, error) {
	vars := strings.NewReplacer(
		"{{SITE_NAME}}", r.site.Name,
		"{{CONTACT_EMAIL}}", r.site.ContactEmail,
	)
	out := make([]LegalPage, 0, len(site.LegalSlugs))
	for _, slug := range site.LegalSlugs {
		src, err := legalFS.ReadFile("legal/" + slug + ".md")
		if err != nil {
			return nil, fmt.Errorf("legal page %s: %w", slug, err)
		}
		res, err := r.md.Render([]byte(vars.Replace(string(src))))
		if err != nil {
			return nil, fmt.Errorf("legal page %s: %w", slug, err)
		}
		out = append(out, LegalPage{
			Slug:  slug,
			Title: legalTitles[slug],
			HTML:  string(res.HTML),
		})
	}
	return out, nil
}
