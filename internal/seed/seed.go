// Package seed turns the next unused keyword into a new published article.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notionsite/internal/extract"
	"notionsite/internal/ingest"
	"notionsite/internal/logger"
	"notionsite/internal/notion"
)

var ErrNoTitleProperty = errors.New("no title property")

// keywordPageSize matches the batch the seeder looks at; only the first row
// is used.
const keywordPageSize = 10

type Seeder struct {
	Source     notion.Source
	KeywordsDB string
	ArticlesDB string
	Log        *logger.Logger
	// Now stamps the article date. Defaults to time.Now.
	Now func() time.Time
}

type Result struct {
	// Seeded is false when there was no keyword to use.
	Seeded    bool
	Keyword   string
	KeywordID string
	PageID    string
	Columns   extract.Columns
	// MarkErr is set when the keyword could not be marked used.
	MarkErr error
}

func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	log := s.Log
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "seed")

	kwDB, err := s.Source.RetrieveDatabase(ctx, s.KeywordsDB)
	if err != nil {
		return nil, fmt.Errorf("retrieve keywords schema: %w", err)
	}
	kwTitle := extract.SchemaTitleKey(kwDB.Properties)
	if kwTitle == "" {
		return nil, fmt.Errorf("keywords database: %w", ErrNoTitleProperty)
	}
	usedKey, ok := extract.FindSchema(kwDB.Properties, extract.KeywordFields.Used)
	if !ok {
		usedKey, _ = extract.FindSchemaLoose(kwDB.Properties, extract.SeedFields.UsedLoose)
	}

	q := notion.Query{PageSize: keywordPageSize}
	if usedKey != "" {
		q.Filter = &notion.Filter{Property: usedKey, Checkbox: &notion.CheckboxFilter{Equals: false}}
	}
	res, err := s.Source.Query(ctx, s.KeywordsDB, q)
	if err != nil {
		return nil, fmt.Errorf("query keywords: %w", err)
	}
	if len(res.Results) == 0 {
		log.Info("no unused keywords, nothing to seed")
		return &Result{}, nil
	}
	row := res.Results[0]
	keyword := ingest.MapKeyword(row).Title
	if keyword == "" {
		keyword = "New Article"
	}
	log.Info("seeding article", "keyword", keyword)

	artDB, err := s.Source.RetrieveDatabase(ctx, s.ArticlesDB)
	if err != nil {
		return nil, fmt.Errorf("retrieve articles schema: %w", err)
	}
	cols, ok := extract.ArticleColumns(artDB.Properties)
	if !ok {
		return nil, fmt.Errorf("articles database: %w", ErrNoTitleProperty)
	}
	log.Debug("articles mapping",
		"title", cols.Title,
		"description", cols.Description,
		"published", cols.Published,
		"status", cols.Status,
		"date", cols.Date,
	)

	page, err := s.Source.CreatePage(ctx, s.ArticlesDB, s.properties(cols, keyword))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	log.Info("created article page", "id", page.ID)

	out := &Result{
		Seeded:    true,
		Keyword:   keyword,
		KeywordID: row.ID,
		PageID:    page.ID,
		Columns:   cols,
	}
	if usedKey != "" {
		_, err := s.Source.UpdatePage(ctx, row.ID, map[string]notion.PropertyValue{
			usedKey: notion.CheckboxValue(true),
		})
		if err != nil {
			// not retried; the next run may seed this keyword again
			log.Warn("could not mark keyword as used", "keyword", row.ID, "err", err)
			out.MarkErr = err
		}
	}
	return out, nil
}

func (s *Seeder) properties(cols extract.Columns, keyword string) map[string]notion.PropertyValue {
	props := map[string]notion.PropertyValue{
		cols.Title: notion.TitleValue(keyword),
	}
	if cols.Description != "" {
		props[cols.Description] = cols.TextValue(fmt.Sprintf("Getting started with %s.", keyword))
	}
	switch {
	case cols.Published != "":
		props[cols.Published] = notion.CheckboxValue(true)
	case cols.Status != "":
		if opt, ok := pickPublished(cols); ok {
			props[cols.Status] = cols.StatusValue(opt)
		}
	}
	if cols.Date != "" {
		props[cols.Date] = notion.DateOnlyValue(s.now())
	}
	return props
}

// pickPublished returns the first option whose name contains "published",
// else the first option.
func pickPublished(cols extract.Columns) (string, bool) {
	if name, ok := cols.PublishedOption(); ok {
		return name, true
	}
	if len(cols.StatusOptions) > 0 {
		return cols.StatusOptions[0].Name, true
	}
	return "", false
}

func (s *Seeder) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
