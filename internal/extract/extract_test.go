package extract

import (
	"reflect"
	"testing"
	"time"

	"notionsite/internal/notion"
	"notionsite/internal/notion/notiontest"
)

func TestFindCaseInsensitiveAndOrdered(t *testing.T) {
	props := map[string]notion.Property{
		"SUMMARY":     notiontest.RichText("from summary"),
		"intro":       notiontest.RichText("from intro"),
		"Description": notiontest.Select("wrong type"),
	}

	name, p, ok := Find(props, ArticleFields.Description)
	if !ok {
		t.Fatal("expected a match")
	}
	// "description" is first but has the wrong type; "intro" precedes "summary".
	if name != "intro" || Text(p) != "from intro" {
		t.Fatalf("got %q = %q", name, Text(p))
	}
}

func TestFindTypeFilter(t *testing.T) {
	props := map[string]notion.Property{
		"Published": notiontest.RichText("yes"),
	}
	if _, _, ok := Find(props, ArticleFields.Published); ok {
		t.Fatal("rich_text must not satisfy a checkbox field")
	}

	untyped := Field{Candidates: []string{"published"}}
	if _, _, ok := Find(props, untyped); !ok {
		t.Fatal("empty Types should accept any type")
	}
}

func TestFindTiesAreDeterministic(t *testing.T) {
	props := map[string]notion.Property{
		"status": notiontest.Select("b"),
		"Status": notiontest.Select("a"),
	}
	for i := 0; i < 20; i++ {
		name, _, _ := Find(props, ArticleFields.Status)
		if name != "Status" {
			t.Fatalf("iteration %d: got %q, want sorted-first %q", i, name, "Status")
		}
	}
}

func TestFindLoose(t *testing.T) {
	props := map[string]notion.Property{
		"Keyword Used?": notiontest.Checkbox(false),
		"Name":          notiontest.Title("x"),
	}
	if _, _, ok := Find(props, KeywordFields.Used); ok {
		t.Fatal("exact lookup should miss")
	}
	name, _, ok := FindLoose(props, Field{Candidates: []string{"used"}, Types: []notion.PropertyType{notion.TypeCheckbox}})
	if !ok || name != "Keyword Used?" {
		t.Fatalf("loose lookup = %q, %v", name, ok)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		prop notion.Property
		want string
	}{
		{"title", notion.Property{Type: notion.TypeTitle, Title: []notion.RichText{{PlainText: "Hello "}, {PlainText: "World"}}}, "Hello World"},
		{"rich text content fallback", notion.Property{Type: notion.TypeRichText, RichText: []notion.RichText{{Text: &notion.TextPart{Content: "raw"}}}}, "raw"},
		{"select", notiontest.Select("Published"), "Published"},
		{"nil select", notion.Property{Type: notion.TypeSelect}, ""},
		{"status", notiontest.Status("Draft"), "Draft"},
		{"multi select", notiontest.MultiSelect("amps", "subs"), "amps, subs"},
		{"url", notiontest.URL("https://example.com"), "https://example.com"},
		{"number", notiontest.Number(129.5), "129.5"},
		{"date", notiontest.Date("2024-03-01"), "2024-03-01"},
		{"checkbox", notiontest.Checkbox(true), "true"},
		{"relation", notiontest.Relation("a", "b"), "a,b"},
		{"unknown kind", notion.Property{Type: "formula"}, ""},
		{"zero", notion.Property{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.prop); got != tt.want {
				t.Fatalf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypedAccessors(t *testing.T) {
	if got := IDs(notiontest.Relation("a", "", "b")); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("IDs = %v", got)
	}
	if IDs(notiontest.RichText("a")) != nil {
		t.Fatal("IDs of non-relation should be nil")
	}
	if !Bool(notiontest.Checkbox(true)) || Bool(notiontest.RichText("true")) {
		t.Fatal("Bool must only read checkboxes")
	}
	if n, ok := Number(notiontest.RichText("$1,299.99")); !ok || n != 1299.99 {
		t.Fatalf("Number(rich text) = %v, %v", n, ok)
	}
	if _, ok := Number(notiontest.RichText("n/a")); ok {
		t.Fatal("Number of non-numeric text should fail")
	}
	if _, ok := Number(notion.Property{Type: notion.TypeNumber}); ok {
		t.Fatal("empty number should be absent")
	}
	got, ok := Time(notiontest.Date("2024-03-01"))
	if !ok || !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Time = %v, %v", got, ok)
	}
	if _, ok := Time(notiontest.Date("soon")); ok {
		t.Fatal("unparseable date should be absent")
	}
}

func TestTitleTextWithoutTitle(t *testing.T) {
	props := map[string]notion.Property{"Body": notiontest.RichText("text")}
	if got := TitleText(props); got != "" {
		t.Fatalf("TitleText = %q", got)
	}
	if got := TitleText(nil); got != "" {
		t.Fatalf("TitleText(nil) = %q", got)
	}
}

func TestSchemaLookup(t *testing.T) {
	db := notiontest.Schema("db", map[string]notion.PropertyType{
		"Name":           notion.TypeTitle,
		"Publish Status": notion.TypeSelect,
		"Published At":   notion.TypeDate,
	})
	if got := SchemaTitleKey(db.Properties); got != "Name" {
		t.Fatalf("SchemaTitleKey = %q", got)
	}
	if got, ok := FindSchema(db.Properties, SeedFields.Date); !ok || got != "Published At" {
		t.Fatalf("FindSchema date = %q, %v", got, ok)
	}
	if _, ok := FindSchema(db.Properties, SeedFields.Status); ok {
		t.Fatal("exact status lookup should miss")
	}
	if got, ok := FindSchemaLoose(db.Properties, SeedFields.StatusLoose); !ok || got != "Publish Status" {
		t.Fatalf("FindSchemaLoose status = %q, %v", got, ok)
	}
}

func TestArticleFieldOrder(t *testing.T) {
	want := []string{"description", "intro", "summary", "desc", "blurb"}
	if !reflect.DeepEqual(ArticleFields.Description.Candidates, want) {
		t.Fatalf("description candidates = %v", ArticleFields.Description.Candidates)
	}
	want = []string{"published", "is published", "is_published"}
	if !reflect.DeepEqual(ArticleFields.Published.Candidates, want) {
		t.Fatalf("published candidates = %v", ArticleFields.Published.Candidates)
	}
}

func TestArticleColumns(t *testing.T) {
	db := notiontest.Schema("articles", map[string]notion.PropertyType{
		"Name":             notion.TypeTitle,
		"Short Desc":       notion.TypeRichText,
		"Post Status":      notion.TypeStatus,
		"Go Live Date":     notion.TypeDate,
		"Related Products": notion.TypeRelation,
	})
	st := db.Properties["Post Status"]
	st.Status = &notion.OptionSchema{Options: []notion.Option{{Name: "Draft"}, {Name: "Published"}}}
	db.Properties["Post Status"] = st

	c, ok := ArticleColumns(db.Properties)
	if !ok {
		t.Fatal("title column not detected")
	}
	want := Columns{
		Title:           "Name",
		Description:     "Short Desc",
		DescriptionType: notion.TypeRichText,
		Status:          "Post Status",
		StatusType:      notion.TypeStatus,
		StatusOptions:   []notion.Option{{Name: "Draft"}, {Name: "Published"}},
		Date:            "Go Live Date",
		Products:        "Related Products",
	}
	if !reflect.DeepEqual(c, want) {
		t.Fatalf("columns = %+v\nwant %+v", c, want)
	}
	if name, ok := c.PublishedOption(); !ok || name != "Published" {
		t.Fatalf("PublishedOption = %q, %v", name, ok)
	}
	if v := c.StatusValue("Published"); v.Status == nil || v.Select != nil {
		t.Fatalf("status column written as %+v", v)
	}

	if _, ok := ArticleColumns(map[string]notion.PropertySchema{
		"Body": {Name: "Body", Type: notion.TypeRichText},
	}); ok {
		t.Fatal("schema without a title column accepted")
	}
}
