// Package notion is a small client for the Notion REST API: database queries
// with cursor pagination, schema retrieval, and page create/update.
package notion

import (
	"time"
)

// PropertyType is the discriminator of Property.
type PropertyType string

const (
	TypeTitle       PropertyType = "title"
	TypeRichText    PropertyType = "rich_text"
	TypeSelect      PropertyType = "select"
	TypeStatus      PropertyType = "status"
	TypeMultiSelect PropertyType = "multi_select"
	TypeURL         PropertyType = "url"
	TypeNumber      PropertyType = "number"
	TypeDate        PropertyType = "date"
	TypeCheckbox    PropertyType = "checkbox"
	TypeRelation    PropertyType = "relation"
)

// Record is one page of a database.
type Record struct {
	ID             string              `json:"id"`
	CreatedTime    time.Time           `json:"created_time"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Archived       bool                `json:"archived"`
	Properties     map[string]Property `json:"properties"`
}

// Property is a tagged union: Type says which of the value fields is set.
// Kinds this package does not model (formula, people, ...) keep only Type.
type Property struct {
	ID          string       `json:"id,omitempty"`
	Type        PropertyType `json:"type"`
	Title       []RichText   `json:"title,omitempty"`
	RichText    []RichText   `json:"rich_text,omitempty"`
	Select      *Option      `json:"select,omitempty"`
	Status      *Option      `json:"status,omitempty"`
	MultiSelect []Option     `json:"multi_select,omitempty"`
	URL         *string      `json:"url,omitempty"`
	Number      *float64     `json:"number,omitempty"`
	Date        *DateValue   `json:"date,omitempty"`
	Checkbox    *bool        `json:"checkbox,omitempty"`
	Relation    []Reference  `json:"relation,omitempty"`
}

type RichText struct {
	PlainText string    `json:"plain_text"`
	Text      *TextPart `json:"text,omitempty"`
}

type TextPart struct {
	Content string `json:"content"`
}

type Option struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

type Reference struct {
	ID string `json:"id"`
}

// Database is the schema of a collection.
type Database struct {
	ID         string                    `json:"id"`
	Properties map[string]PropertySchema `json:"properties"`
}

// PropertySchema describes one column of a database.
type PropertySchema struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        PropertyType  `json:"type"`
	Select      *OptionSchema `json:"select,omitempty"`
	Status      *OptionSchema `json:"status,omitempty"`
	MultiSelect *OptionSchema `json:"multi_select,omitempty"`
}

type OptionSchema struct {
	Options []Option `json:"options"`
}

// Options returns the choices of a select, status or multi_select column.
func (s PropertySchema) Options() []Option {
	switch {
	case s.Select != nil:
		return s.Select.Options
	case s.Status != nil:
		return s.Status.Options
	case s.MultiSelect != nil:
		return s.MultiSelect.Options
	}
	return nil
}

// Query is the body of POST /databases/{id}/query.
type Query struct {
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
	Filter      *Filter `json:"filter,omitempty"`
}

type Filter struct {
	Property string          `json:"property"`
	Checkbox *CheckboxFilter `json:"checkbox,omitempty"`
}

type CheckboxFilter struct {
	Equals bool `json:"equals"`
}

// QueryResult is one page of query results.
type QueryResult struct {
	Results    []Record `json:"results"`
	NextCursor string   `json:"next_cursor"`
	HasMore    bool     `json:"has_more"`
}

// PropertyValue is the write-side form of a property, used by CreatePage and
// UpdatePage. Build them with the helpers below.
type PropertyValue struct {
	Title    []TextInput  `json:"title,omitempty"`
	RichText []TextInput  `json:"rich_text,omitempty"`
	Select   *Option      `json:"select,omitempty"`
	Status   *Option      `json:"status,omitempty"`
	Checkbox *bool        `json:"checkbox,omitempty"`
	Date     *DateValue   `json:"date,omitempty"`
	Relation *[]Reference `json:"relation,omitempty"`
}

type TextInput struct {
	Text TextPart `json:"text"`
}

func TitleValue(s string) PropertyValue {
	return PropertyValue{Title: []TextInput{{Text: TextPart{Content: s}}}}
}

func RichTextValue(s string) PropertyValue {
	return PropertyValue{RichText: []TextInput{{Text: TextPart{Content: s}}}}
}

func SelectValue(name string) PropertyValue {
	return PropertyValue{Select: &Option{Name: name}}
}

func StatusValue(name string) PropertyValue {
	return PropertyValue{Status: &Option{Name: name}}
}

func CheckboxValue(b bool) PropertyValue {
	return PropertyValue{Checkbox: &b}
}

// DateOnlyValue writes t as a calendar date (YYYY-MM-DD).
func DateOnlyValue(t time.Time) PropertyValue {
	return PropertyValue{Date: &DateValue{Start: t.Format(time.DateOnly)}}
}

func RelationValue(ids []string) PropertyValue {
	refs := make([]Reference, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, Reference{ID: id})
	}
	return PropertyValue{Relation: &refs}
}
