package extract

import "notionsite/internal/notion"

var (
	textTypes  = []notion.PropertyType{notion.TypeRichText, notion.TypeTitle}
	labelTypes = []notion.PropertyType{notion.TypeSelect, notion.TypeStatus, notion.TypeRichText}
)

// ArticleFields lists the lookups for the Articles collection, in fallback
// order.
var ArticleFields = struct {
	Title       Field
	Slug        Field
	Description Field
	Published   Field
	Status      Field
	Date        Field
	Products    Field
	Cover       Field
	Tags        Field
	Body        Field
}{
	Title:       Field{Candidates: []string{"title", "name"}, Types: []notion.PropertyType{notion.TypeTitle}},
	Slug:        Field{Candidates: []string{"slug", "url_slug", "permalink"}, Types: []notion.PropertyType{notion.TypeRichText, notion.TypeTitle, notion.TypeURL}},
	Description: Field{Candidates: []string{"description", "intro", "summary", "desc", "blurb"}, Types: textTypes},
	Published:   Field{Candidates: []string{"published", "is published", "is_published"}, Types: []notion.PropertyType{notion.TypeCheckbox}},
	Status:      Field{Candidates: []string{"status", "state"}, Types: labelTypes},
	Date:        Field{Candidates: []string{"published at", "publish date", "published date", "publish_date", "date"}, Types: []notion.PropertyType{notion.TypeDate}},
	Products:    Field{Candidates: []string{"products", "related products", "product"}, Types: []notion.PropertyType{notion.TypeRelation}},
	Cover:       Field{Candidates: []string{"cover", "cover image", "image", "og_image", "image_url"}, Types: []notion.PropertyType{notion.TypeURL, notion.TypeRichText}},
	Tags:        Field{Candidates: []string{"tags", "keywords", "category"}, Types: []notion.PropertyType{notion.TypeMultiSelect, notion.TypeSelect}},
	Body:        Field{Candidates: []string{"body", "content", "markdown"}, Types: []notion.PropertyType{notion.TypeRichText}},
}

// ProductFields lists the lookups for the Products collection.
var ProductFields = struct {
	Name        Field
	Brand       Field
	Category    Field
	Image       Field
	Link        Field
	Price       Field
	PriceBucket Field
	Description Field
	Size        Field
	RMS         Field
	Impedance   Field
	Sensitivity Field
	Pros        Field
	Cons        Field
}{
	Name:        Field{Candidates: []string{"name", "title", "product"}, Types: textTypes},
	Brand:       Field{Candidates: []string{"brand", "manufacturer"}, Types: []notion.PropertyType{notion.TypeSelect, notion.TypeRichText, notion.TypeTitle}},
	Category:    Field{Candidates: []string{"category", "type"}, Types: []notion.PropertyType{notion.TypeSelect, notion.TypeMultiSelect, notion.TypeRichText}},
	Image:       Field{Candidates: []string{"image_url", "image", "image url", "photo"}, Types: []notion.PropertyType{notion.TypeURL, notion.TypeRichText}},
	Link:        Field{Candidates: []string{"url", "link", "affiliate_url", "buy_url"}, Types: []notion.PropertyType{notion.TypeURL, notion.TypeRichText}},
	Price:       Field{Candidates: []string{"price", "msrp"}, Types: []notion.PropertyType{notion.TypeNumber, notion.TypeRichText}},
	PriceBucket: Field{Candidates: []string{"price_bucket", "price bucket", "price range"}, Types: []notion.PropertyType{notion.TypeSelect, notion.TypeRichText}},
	Description: Field{Candidates: []string{"description", "summary", "notes"}, Types: textTypes},
	Size:        Field{Candidates: []string{"size"}, Types: []notion.PropertyType{notion.TypeSelect, notion.TypeRichText, notion.TypeNumber}},
	RMS:         Field{Candidates: []string{"rms_power", "rms", "rms power"}, Types: []notion.PropertyType{notion.TypeNumber, notion.TypeRichText}},
	Impedance:   Field{Candidates: []string{"impedance"}, Types: []notion.PropertyType{notion.TypeSelect, notion.TypeRichText, notion.TypeNumber}},
	Sensitivity: Field{Candidates: []string{"sensitivity_db", "sensitivity"}, Types: []notion.PropertyType{notion.TypeNumber, notion.TypeRichText}},
	Pros:        Field{Candidates: []string{"pros"}, Types: []notion.PropertyType{notion.TypeRichText, notion.TypeMultiSelect}},
	Cons:        Field{Candidates: []string{"cons"}, Types: []notion.PropertyType{notion.TypeRichText, notion.TypeMultiSelect}},
}

// KeywordFields lists the lookups for the Keywords collection.
var KeywordFields = struct {
	Used Field
}{
	Used: Field{Candidates: []string{"used", "is used", "is_used"}, Types: []notion.PropertyType{notion.TypeCheckbox}},
}

// SeedFields are the Articles columns the seeder and the weekly digest write.
// Loose variants match by substring when no exact name exists.
var SeedFields = struct {
	Description      Field
	DescriptionLoose Field
	Published        Field
	PublishedLoose   Field
	Status           Field
	StatusLoose      Field
	Date             Field
	DateLoose        Field
	Products         Field
	UsedLoose        Field
}{
	Description:      Field{Candidates: []string{"Description", "Intro", "Summary", "Desc", "Blurb"}, Types: textTypes},
	DescriptionLoose: Field{Candidates: []string{"desc", "intro", "summary", "blurb"}, Types: textTypes},
	Published:        Field{Candidates: []string{"Published", "Is Published", "is_published"}, Types: []notion.PropertyType{notion.TypeCheckbox}},
	PublishedLoose:   Field{Candidates: []string{"published"}, Types: []notion.PropertyType{notion.TypeCheckbox}},
	Status:           Field{Candidates: []string{"Status"}, Types: []notion.PropertyType{notion.TypeSelect, notion.TypeStatus}},
	StatusLoose:      Field{Candidates: []string{"status"}, Types: []notion.PropertyType{notion.TypeSelect, notion.TypeStatus}},
	Date:             Field{Candidates: []string{"Published At", "Date", "Published Date"}, Types: []notion.PropertyType{notion.TypeDate}},
	DateLoose:        Field{Candidates: []string{"date", "published"}, Types: []notion.PropertyType{notion.TypeDate}},
	Products:         Field{Candidates: []string{"Products", "Related Products"}, Types: []notion.PropertyType{notion.TypeRelation}},
	UsedLoose:        Field{Candidates: []string{"used"}, Types: []notion.PropertyType{notion.TypeCheckbox}},
}
