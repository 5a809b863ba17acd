// Package related ranks articles by title similarity.
package related

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"notionsite/internal/domain/content"
)

// DefaultLimit is how many related articles a page lists.
const DefaultLimit = 3

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"best": {}, "by": {}, "can": {}, "do": {}, "for": {}, "from": {},
	"guide": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "my": {},
	"of": {}, "on": {}, "or": {}, "the": {}, "this": {}, "to": {}, "vs": {},
	"what": {}, "when": {}, "which": {}, "why": {}, "with": {}, "you": {},
	"your": {},
}

type tokenSet map[string]struct{}

// Tokens folds diacritics, lower-cases, splits on anything that is not a
// letter or digit and drops stopwords.
func Tokens(title string) []string {
	set := tokenize(title)
	out := make([]string, 0, len(set))
	for tok := range set {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

func tokenize(title string) tokenSet {
	fields := strings.FieldsFunc(strings.ToLower(fold(title)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(tokenSet, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Score is |A∩B| / max(1, |A|+|B|-|A∩B|).
func Score(a, b string) float64 {
	return score(tokenize(a), tokenize(b))
}

func score(a, b tokenSet) float64 {
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	return float64(inter) / float64(max(1, len(a)+len(b)-inter))
}

// Rank returns up to n articles from candidates that are most similar to
// target, never target itself. Ties go to the newer article, then to the
// slug. When nothing overlaps it falls back to the n most recent articles.
func Rank(target content.ArticleMeta, candidates []content.ArticleMeta, n int) []content.ArticleMeta {
	if n <= 0 {
		return nil
	}
	type scored struct {
		meta  content.ArticleMeta
		score float64
	}

	want := tokenize(target.Title)
	others := make([]content.ArticleMeta, 0, len(candidates))
	var hits []scored
	for _, c := range candidates {
		if c.Slug == target.Slug {
			continue
		}
		others = append(others, c)
		if s := score(want, tokenize(c.Title)); s > 0 {
			hits = append(hits, scored{meta: c, score: s})
		}
	}

	if len(hits) == 0 {
		sort.SliceStable(others, func(i, j int) bool { return content.Newer(others[i], others[j]) })
		return others[:min(n, len(others))]
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return content.Newer(hits[i].meta, hits[j].meta)
	})
	out := make([]content.ArticleMeta, 0, min(n, len(hits)))
	for _, h := range hits[:min(n, len(hits))] {
		out = append(out, h.meta)
	}
	return out
}
