// Package extract turns loosely-typed Notion properties into plain values.
//
// Lookups never fail: a property that is missing, renamed past every
// candidate, or of the wrong type reads as the zero value. The remote schema
// is edited by hand and is not checked ahead of time.
package extract

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"notionsite/internal/notion"
)

// Field is an ordered list of acceptable property names plus the types that
// may back them. An empty Types accepts any type.
type Field struct {
	Candidates []string
	Types      []notion.PropertyType
}

func (f Field) accepts(t notion.PropertyType) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, want := range f.Types {
		if want == t {
			return true
		}
	}
	return false
}

// Find returns the first property matching f. Candidates are tried in order;
// names are compared case-insensitively and then type-checked.
func Find(props map[string]notion.Property, f Field) (string, notion.Property, bool) {
	name, ok := find(sortedNames(props), func(n string) notion.PropertyType { return props[n].Type }, f, strings.EqualFold)
	if !ok {
		return "", notion.Property{}, false
	}
	return name, props[name], true
}

// FindLoose matches property names that contain any of f.Candidates.
func FindLoose(props map[string]notion.Property, f Field) (string, notion.Property, bool) {
	name, ok := find(sortedNames(props), func(n string) notion.PropertyType { return props[n].Type }, f, containsFold)
	if !ok {
		return "", notion.Property{}, false
	}
	return name, props[name], true
}

// FindSchema is Find over a database schema. It returns the column name.
func FindSchema(props map[string]notion.PropertySchema, f Field) (string, bool) {
	return find(sortedNames(props), func(n string) notion.PropertyType { return props[n].Type }, f, strings.EqualFold)
}

// FindSchemaLoose is FindLoose over a database schema.
func FindSchemaLoose(props map[string]notion.PropertySchema, f Field) (string, bool) {
	return find(sortedNames(props), func(n string) notion.PropertyType { return props[n].Type }, f, containsFold)
}

func find(names []string, typeOf func(string) notion.PropertyType, f Field, match func(name, candidate string) bool) (string, bool) {
	for _, c := range f.Candidates {
		for _, name := range names {
			if match(name, c) && f.accepts(typeOf(name)) {
				return name, true
			}
		}
	}
	return "", false
}

func containsFold(name, needle string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(needle))
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Text converts p to a plain string according to its type. Relations become
// a comma-joined id list; use IDs to get them as a slice.
func Text(p notion.Property) string {
	switch p.Type {
	case notion.TypeTitle:
		return plain(p.Title)
	case notion.TypeRichText:
		return plain(p.RichText)
	case notion.TypeSelect:
		if p.Select != nil {
			return p.Select.Name
		}
	case notion.TypeStatus:
		if p.Status != nil {
			return p.Status.Name
		}
	case notion.TypeMultiSelect:
		names := make([]string, 0, len(p.MultiSelect))
		for _, o := range p.MultiSelect {
			names = append(names, o.Name)
		}
		return strings.Join(names, ", ")
	case notion.TypeURL:
		if p.URL != nil {
			return *p.URL
		}
	case notion.TypeNumber:
		if p.Number != nil {
			return strconv.FormatFloat(*p.Number, 'f', -1, 64)
		}
	case notion.TypeDate:
		if p.Date != nil {
			return p.Date.Start
		}
	case notion.TypeCheckbox:
		if p.Checkbox != nil {
			return strconv.FormatBool(*p.Checkbox)
		}
	case notion.TypeRelation:
		return strings.Join(IDs(p), ",")
	}
	return ""
}

func plain(runs []notion.RichText) string {
	var b strings.Builder
	for _, r := range runs {
		if r.PlainText != "" {
			b.WriteString(r.PlainText)
		} else if r.Text != nil {
			b.WriteString(r.Text.Content)
		}
	}
	return b.String()
}

// IDs returns the referenced record ids of a relation property.
func IDs(p notion.Property) []string {
	if p.Type != notion.TypeRelation {
		return nil
	}
	out := make([]string, 0, len(p.Relation))
	for _, r := range p.Relation {
		if r.ID != "" {
			out = append(out, r.ID)
		}
	}
	return out
}

// Names returns the option names of a multi_select (or a single select).
func Names(p notion.Property) []string {
	switch p.Type {
	case notion.TypeMultiSelect:
		out := make([]string, 0, len(p.MultiSelect))
		for _, o := range p.MultiSelect {
			out = append(out, o.Name)
		}
		return out
	case notion.TypeSelect, notion.TypeStatus:
		if s := Text(p); s != "" {
			return []string{s}
		}
	}
	return nil
}

// Bool reads a checkbox. Anything else is false.
func Bool(p notion.Property) bool {
	return p.Type == notion.TypeCheckbox && p.Checkbox != nil && *p.Checkbox
}

// Number reads a number property, or digits embedded in text ("$129.99").
func Number(p notion.Property) (float64, bool) {
	if p.Type == notion.TypeNumber {
		if p.Number == nil {
			return 0, false
		}
		return *p.Number, true
	}
	return ParseNumber(Text(p))
}

// ParseNumber keeps digits and dots and parses what is left.
func ParseNumber(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Time parses a date property (or a date-looking text) into a time.
func Time(p notion.Property) (time.Time, bool) {
	return ParseTime(Text(p))
}

func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		time.DateOnly,
		"2006-01-02T15:04:05.000",
		time.DateTime,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TitleText returns the text of the first title-typed property, or "".
func TitleText(props map[string]notion.Property) string {
	if name := TitleKey(props); name != "" {
		return Text(props[name])
	}
	return ""
}

// TitleKey returns the name of the title-typed property, or "".
func TitleKey(props map[string]notion.Property) string {
	for _, name := range sortedNames(props) {
		if props[name].Type == notion.TypeTitle {
			return name
		}
	}
	return ""
}

// Lookup is Find followed by Text.
func Lookup(props map[string]notion.Property, f Field) string {
	if _, p, ok := Find(props, f); ok {
		return Text(p)
	}
	return ""
}

// SchemaTitleKey returns the title column of a database, or "".
func SchemaTitleKey(props map[string]notion.PropertySchema) string {
	for _, name := range sortedNames(props) {
		if props[name].Type == notion.TypeTitle {
			return name
		}
	}
	return ""
}
