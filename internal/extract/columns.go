package extract

import (
	"regexp"

	"notionsite/internal/notion"
)

var publishedOption = regexp.MustCompile(`(?i)published`)

// Columns are the Articles columns detected from the database schema for
// writing a new article. Empty names mean the column does not exist.
type Columns struct {
	Title string

	Description     string
	DescriptionType notion.PropertyType

	Published string

	Status        string
	StatusType    notion.PropertyType
	StatusOptions []notion.Option

	Date     string
	Products string
}

// ArticleColumns maps an Articles schema onto Columns: exact names first,
// then substring matches. ok is false when the schema has no title column.
func ArticleColumns(schema map[string]notion.PropertySchema) (c Columns, ok bool) {
	c.Title = SchemaTitleKey(schema)
	if c.Title == "" {
		return c, false
	}
	f := SeedFields

	c.Description = schemaName(schema, f.Description, f.DescriptionLoose)
	if c.Description != "" {
		c.DescriptionType = schema[c.Description].Type
	}
	c.Published = schemaName(schema, f.Published, f.PublishedLoose)
	if c.Status = schemaName(schema, f.Status, f.StatusLoose); c.Status != "" {
		c.StatusType = schema[c.Status].Type
		c.StatusOptions = schema[c.Status].Options()
	}
	c.Date = schemaName(schema, f.Date, f.DateLoose)
	c.Products, _ = FindSchema(schema, f.Products)
	return c, true
}

// TextValue writes s in the form the description column expects.
func (c Columns) TextValue(s string) notion.PropertyValue {
	if c.DescriptionType == notion.TypeTitle {
		return notion.TitleValue(s)
	}
	return notion.RichTextValue(s)
}

// StatusValue writes option to the status column as a select or a status.
func (c Columns) StatusValue(option string) notion.PropertyValue {
	if c.StatusType == notion.TypeStatus {
		return notion.StatusValue(option)
	}
	return notion.SelectValue(option)
}

// PublishedOption returns the first status option whose name contains
// "published".
func (c Columns) PublishedOption() (string, bool) {
	for _, o := range c.StatusOptions {
		if publishedOption.MatchString(o.Name) {
			return o.Name, true
		}
	}
	return "", false
}

func schemaName(schema map[string]notion.PropertySchema, exact, loose Field) string {
	if name, ok := FindSchema(schema, exact); ok {
		return name
	}
	name, _ := FindSchemaLoose(schema, loose)
	return name
}
