package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"notionsite/internal/notion"
	"notionsite/internal/notion/notiontest"
)

var today = time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)

func keyword(id, title string, used bool) notion.Record {
	return notion.Record{ID: id, Properties: map[string]notion.Property{
		"Keyword": notiontest.Title(title),
		"Used":    notiontest.Checkbox(used),
	}}
}

func withOptions(db *notion.Database, col string, typ notion.PropertyType, names ...string) *notion.Database {
	s := db.Properties[col]
	opts := &notion.OptionSchema{}
	for _, n := range names {
		opts.Options = append(opts.Options, notion.Option{Name: n})
	}
	if typ == notion.TypeStatus {
		s.Status = opts
	} else {
		s.Select = opts
	}
	db.Properties[col] = s
	return db
}

func newSource(articles *notion.Database) *notiontest.Source {
	src := notiontest.NewSource()
	src.Schemas["kw"] = notiontest.Schema("kw", map[string]notion.PropertyType{
		"Keyword": notion.TypeTitle,
		"Used":    notion.TypeCheckbox,
	})
	src.Schemas["articles"] = articles
	src.Records["kw"] = []notion.Record{
		keyword("k1", "amp install", true),
		keyword("k2", "sub box", false),
		keyword("k3", "door speakers", false),
	}
	return src
}

func seeder(src notion.Source) *Seeder {
	return &Seeder{Source: src, KeywordsDB: "kw", ArticlesDB: "articles", Now: func() time.Time { return today }}
}

func plainText(v notion.PropertyValue) string {
	switch {
	case len(v.Title) > 0:
		return v.Title[0].Text.Content
	case len(v.RichText) > 0:
		return v.RichText[0].Text.Content
	}
	return ""
}

func TestSeedCreatesPublishedArticle(t *testing.T) {
	src := newSource(notiontest.Schema("articles", map[string]notion.PropertyType{
		"Name":         notion.TypeTitle,
		"Description":  notion.TypeRichText,
		"Published":    notion.TypeCheckbox,
		"Status":       notion.TypeSelect,
		"Published At": notion.TypeDate,
	}))

	res, err := seeder(src).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Seeded || res.Keyword != "sub box" || res.KeywordID != "k2" || res.PageID != "page-1" {
		t.Fatalf("result = %+v", res)
	}

	q := src.Queries[0]
	if q.PageSize != 10 || q.Filter == nil || q.Filter.Property != "Used" || q.Filter.Checkbox.Equals {
		t.Fatalf("keyword query = %+v", q)
	}

	if len(src.Created) != 1 || src.Created[0].Target != "articles" {
		t.Fatalf("created = %+v", src.Created)
	}
	props := src.Created[0].Props
	if got := plainText(props["Name"]); got != "sub box" {
		t.Errorf("title = %q", got)
	}
	if got := props["Description"]; len(got.RichText) != 1 || got.RichText[0].Text.Content != "Getting started with sub box." {
		t.Errorf("description = %+v", got)
	}
	if c := props["Published"].Checkbox; c == nil || !*c {
		t.Errorf("published = %v", c)
	}
	if _, ok := props["Status"]; ok {
		t.Error("status set although a published checkbox exists")
	}
	if d := props["Published At"].Date; d == nil || d.Start != "2024-03-05" {
		t.Errorf("date = %+v", d)
	}

	if len(src.Updated) != 1 || src.Updated[0].Target != "k2" {
		t.Fatalf("updated = %+v", src.Updated)
	}
	if c := src.Updated[0].Props["Used"].Checkbox; c == nil || !*c {
		t.Fatal("keyword not marked used")
	}
}

func TestSeedStatusColumn(t *testing.T) {
	tests := []struct {
		name    string
		typ     notion.PropertyType
		options []string
		want    string
	}{
		{"select with published option", notion.TypeSelect, []string{"Draft", "Published"}, "Published"},
		{"select falls back to first", notion.TypeSelect, []string{"Draft", "Review"}, "Draft"},
		{"status column", notion.TypeStatus, []string{"Not started", "Is Published"}, "Is Published"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := notiontest.Schema("articles", map[string]notion.PropertyType{
				"Title":       notion.TypeTitle,
				"Short Desc":  notion.TypeRichText,
				"Post Status": tt.typ,
			})
			src := newSource(withOptions(db, "Post Status", tt.typ, tt.options...))
			if _, err := seeder(src).Run(context.Background()); err != nil {
				t.Fatal(err)
			}
			props := src.Created[0].Props
			var got string
			switch tt.typ {
			case notion.TypeStatus:
				if props["Post Status"].Status != nil {
					got = props["Post Status"].Status.Name
				}
			default:
				if props["Post Status"].Select != nil {
					got = props["Post Status"].Select.Name
				}
			}
			if got != tt.want {
				t.Fatalf("status = %q, want %q", got, tt.want)
			}
			if plainText(props["Short Desc"]) == "" {
				t.Fatal("loose description column not filled")
			}
		})
	}
}

func TestSeedNothingToDo(t *testing.T) {
	src := newSource(notiontest.Schema("articles", map[string]notion.PropertyType{"Title": notion.TypeTitle}))
	src.Records["kw"] = []notion.Record{keyword("k1", "amp install", true)}

	res, err := seeder(src).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Seeded || len(src.Created) != 0 || len(src.Updated) != 0 {
		t.Fatalf("seeded without keywords: %+v", res)
	}
}

func TestSeedWithoutUsedColumn(t *testing.T) {
	src := newSource(notiontest.Schema("articles", map[string]notion.PropertyType{"Title": notion.TypeTitle}))
	src.Schemas["kw"] = notiontest.Schema("kw", map[string]notion.PropertyType{"Keyword": notion.TypeTitle})

	res, err := seeder(src).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if src.Queries[0].Filter != nil {
		t.Fatal("filtered without a used column")
	}
	if res.Keyword != "amp install" || len(src.Updated) != 0 {
		t.Fatalf("result = %+v, updates %d", res, len(src.Updated))
	}
}

func TestSeedLooseUsedColumn(t *testing.T) {
	src := newSource(notiontest.Schema("articles", map[string]notion.PropertyType{"Title": notion.TypeTitle}))
	src.Schemas["kw"] = notiontest.Schema("kw", map[string]notion.PropertyType{
		"Keyword":      notion.TypeTitle,
		"Already Used": notion.TypeCheckbox,
	})
	if _, err := seeder(src).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f := src.Queries[0].Filter; f == nil || f.Property != "Already Used" {
		t.Fatalf("filter = %+v", f)
	}
}

func TestSeedMissingTitle(t *testing.T) {
	src := newSource(notiontest.Schema("articles", map[string]notion.PropertyType{"Title": notion.TypeTitle}))
	src.Schemas["kw"] = notiontest.Schema("kw", map[string]notion.PropertyType{"Used": notion.TypeCheckbox})
	if _, err := seeder(src).Run(context.Background()); !errors.Is(err, ErrNoTitleProperty) {
		t.Fatalf("keywords err = %v", err)
	}

	src = newSource(notiontest.Schema("articles", map[string]notion.PropertyType{"Body": notion.TypeRichText}))
	if _, err := seeder(src).Run(context.Background()); !errors.Is(err, ErrNoTitleProperty) {
		t.Fatalf("articles err = %v", err)
	}
	if len(src.Created) != 0 {
		t.Fatal("created an article without a title column")
	}
}

func TestSeedMarkFailureIsNotFatal(t *testing.T) {
	src := newSource(notiontest.Schema("articles", map[string]notion.PropertyType{"Title": notion.TypeTitle}))
	src.UpdateErr = &notion.APIError{Status: 409, Code: "conflict_error", Message: "conflict"}

	res, err := seeder(src).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(src.Created) != 1 || !errors.Is(res.MarkErr, notion.ErrUnexpectedStatus) {
		t.Fatalf("created %d, mark err %v", len(src.Created), res.MarkErr)
	}
}

func TestSeedRemoteErrors(t *testing.T) {
	src := newSource(nil)
	delete(src.Schemas, "articles")
	if _, err := seeder(src).Run(context.Background()); !errors.Is(err, notion.ErrUnexpectedStatus) {
		t.Fatalf("err = %v", err)
	}
}
