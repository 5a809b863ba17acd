// Package notiontest provides an in-memory notion.Source and property
// builders for tests.
package notiontest

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"notionsite/internal/notion"
)

func Title(s string) notion.Property {
	return notion.Property{Type: notion.TypeTitle, Title: []notion.RichText{{PlainText: s}}}
}

func RichText(s string) notion.Property {
	return notion.Property{Type: notion.TypeRichText, RichText: []notion.RichText{{PlainText: s}}}
}

func Select(name string) notion.Property {
	return notion.Property{Type: notion.TypeSelect, Select: &notion.Option{Name: name}}
}

func Status(name string) notion.Property {
	return notion.Property{Type: notion.TypeStatus, Status: &notion.Option{Name: name}}
}

func MultiSelect(names ...string) notion.Property {
	p := notion.Property{Type: notion.TypeMultiSelect}
	for _, n := range names {
		p.MultiSelect = append(p.MultiSelect, notion.Option{Name: n})
	}
	return p
}

func URL(s string) notion.Property {
	return notion.Property{Type: notion.TypeURL, URL: &s}
}

func Number(f float64) notion.Property {
	return notion.Property{Type: notion.TypeNumber, Number: &f}
}

func Date(start string) notion.Property {
	return notion.Property{Type: notion.TypeDate, Date: &notion.DateValue{Start: start}}
}

func Checkbox(b bool) notion.Property {
	return notion.Property{Type: notion.TypeCheckbox, Checkbox: &b}
}

func Relation(ids ...string) notion.Property {
	p := notion.Property{Type: notion.TypeRelation}
	for _, id := range ids {
		p.Relation = append(p.Relation, notion.Reference{ID: id})
	}
	return p
}

// Schema builds a database schema from column name to type.
func Schema(id string, cols map[string]notion.PropertyType) *notion.Database {
	db := &notion.Database{ID: id, Properties: make(map[string]notion.PropertySchema, len(cols))}
	for name, typ := range cols {
		db.Properties[name] = notion.PropertySchema{ID: name, Name: name, Type: typ}
	}
	return db
}

// Write is one recorded CreatePage or UpdatePage call.
type Write struct {
	Target string
	Props  map[string]notion.PropertyValue
}

// Source is an in-memory notion.Source. Queries are served PageSize records
// at a time so callers exercise the cursor.
type Source struct {
	mu sync.Mutex

	Records  map[string][]notion.Record
	Schemas  map[string]*notion.Database
	PageSize int

	// Err, when set, is returned by every call.
	Err error
	// UpdateErr is returned by UpdatePage only.
	UpdateErr error

	Queries []notion.Query
	Created []Write
	Updated []Write
}

var _ notion.Source = (*Source)(nil)

func NewSource() *Source {
	return &Source{
		Records:  make(map[string][]notion.Record),
		Schemas:  make(map[string]*notion.Database),
		PageSize: 2,
	}
}

func (s *Source) Query(ctx context.Context, databaseID string, q notion.Query) (*notion.QueryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Queries = append(s.Queries, q)

	var rows []notion.Record
	for _, rec := range s.Records[databaseID] {
		if q.Filter != nil && !matches(rec, q.Filter) {
			continue
		}
		rows = append(rows, rec)
	}

	start := 0
	if q.StartCursor != "" {
		n, err := strconv.Atoi(q.StartCursor)
		if err != nil {
			return nil, fmt.Errorf("bad cursor %q", q.StartCursor)
		}
		start = n
	}
	size := s.PageSize
	if q.PageSize > 0 && (size <= 0 || q.PageSize < size) {
		size = q.PageSize
	}
	if size <= 0 {
		size = len(rows)
	}
	end := min(start+size, len(rows))
	if start > end {
		start = end
	}

	res := &notion.QueryResult{Results: append([]notion.Record(nil), rows[start:end]...)}
	if end < len(rows) && q.PageSize == 0 {
		res.HasMore = true
		res.NextCursor = strconv.Itoa(end)
	}
	return res, nil
}

func matches(rec notion.Record, f *notion.Filter) bool {
	p, ok := rec.Properties[f.Property]
	if !ok || f.Checkbox == nil {
		return ok
	}
	got := p.Checkbox != nil && *p.Checkbox
	return got == f.Checkbox.Equals
}

func (s *Source) RetrieveDatabase(ctx context.Context, databaseID string) (*notion.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	db, ok := s.Schemas[databaseID]
	if !ok {
		return nil, &notion.APIError{Status: 404, Code: "object_not_found", Message: "no database " + databaseID}
	}
	return db, nil
}

func (s *Source) CreatePage(ctx context.Context, databaseID string, props map[string]notion.PropertyValue) (*notion.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Created = append(s.Created, Write{Target: databaseID, Props: props})
	return &notion.Record{ID: fmt.Sprintf("page-%d", len(s.Created))}, nil
}

func (s *Source) UpdatePage(ctx context.Context, pageID string, props map[string]notion.PropertyValue) (*notion.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	s.Updated = append(s.Updated, Write{Target: pageID, Props: props})
	return &notion.Record{ID: pageID}, nil
}
