package config

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domainerr "notionsite/internal/domain/errors"
)

type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Notion    NotionConfig    `yaml:"notion"`
	Affiliate AffiliateConfig `yaml:"affiliate"`
	Build     BuildConfig     `yaml:"build"`
	Log       LogConfig       `yaml:"log"`
}

type SiteConfig struct {
	Name            string `yaml:"name"`
	SiteURL         string `yaml:"site_url"`
	Language        string `yaml:"language"`
	Tagline         string `yaml:"tagline"`
	ContactEmail    string `yaml:"contact_email"`
	AnalyticsID     string `yaml:"analytics_id"`
	NewsletterURL   string `yaml:"newsletter_url"`
	VerificationKey string `yaml:"verification_key"`
}

type NotionConfig struct {
	Token      string        `yaml:"token"`
	APIURL     string        `yaml:"api_url"`
	Version    string        `yaml:"version"`
	ArticlesDB string        `yaml:"articles_db"`
	ProductsDB string        `yaml:"products_db"`
	KeywordsDB string        `yaml:"keywords_db"`
	Timeout    time.Duration `yaml:"timeout"`
}

type AffiliateConfig struct {
	AmazonTag   string `yaml:"amazon_tag"`
	SkimlinksID string `yaml:"skimlinks_id"`
}

type BuildConfig struct {
	PublicDir   string    `yaml:"public_dir"`
	TemplateDir string    `yaml:"template_dir"`
	AssetsDir   string    `yaml:"assets_dir"`
	IndexPath   string    `yaml:"index_path"`
	HomeSize    int       `yaml:"home_size"`
	RelatedSize int       `yaml:"related_size"`
	MaxProducts int       `yaml:"max_products"`
	Now         time.Time `yaml:"-"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Command names a CLI entry point for ValidateFor.
type Command string

const (
	CmdBuild  Command = "build"
	CmdSeed   Command = "seed"
	CmdWeekly Command = "weekly"
	CmdServe  Command = "serve"
)

func Default() Config {
	return Config{
		Site: SiteConfig{
			Name:         "AutoSoundHQ",
			SiteURL:      "https://autosoundhq.vercel.app",
			Language:     "en",
			Tagline:      "The Easiest Way to Choose Car Audio",
			ContactEmail: "carsoundhq@gmail.com",
		},
		Notion: NotionConfig{
			APIURL:  "https://api.notion.com/v1",
			Version: "2022-06-28",
			Timeout: 30 * time.Second,
		},
		Build: BuildConfig{
			PublicDir:   "public",
			TemplateDir: "templates",
			AssetsDir:   ".",
			IndexPath:   ".notionsite/index.db",
			HomeSize:    6,
			RelatedSize: 3,
			MaxProducts: 8,
			Now:         time.Now(),
		},
		Log: LogConfig{Level: "info"},
	}
}

// envBindings maps environment keys onto config fields. Non-empty values win
// over site.yaml.
func envBindings(c *Config) map[string]*string {
	return map[string]*string{
		"SITE_NAME":             &c.Site.Name,
		"SITE_URL":              &c.Site.SiteURL,
		"GA4_MEASUREMENT_ID":    &c.Site.AnalyticsID,
		"NEWSLETTER_EMBED_URL":  &c.Site.NewsletterURL,
		"SITE_VERIFICATION_KEY": &c.Site.VerificationKey,
		"SKIMLINKS_PUB_ID":      &c.Affiliate.SkimlinksID,
		"AMAZON_TRACKING_ID":    &c.Affiliate.AmazonTag,
		"NOTION_TOKEN":          &c.Notion.Token,
		"NOTION_API_URL":        &c.Notion.APIURL,
		"NOTION_DB_ARTICLES":    &c.Notion.ArticlesDB,
		"NOTION_DB_PRODUCTS":    &c.Notion.ProductsDB,
		"NOTION_DB_KEYWORDS":    &c.Notion.KeywordsDB,
		"LOG_LEVEL":             &c.Log.Level,
	}
}

// ApplyEnv overlays non-empty values returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for key, dst := range envBindings(c) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	c.Site.SiteURL = strings.TrimRight(c.Site.SiteURL, "/")
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError
	c.validateInto(&ve)
	return ve.Err()
}

func (c Config) validateInto(ve *domainerr.ValidationError) {
	if strings.TrimSpace(c.Site.Name) == "" {
		ve.Missing("site.name")
	}
	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Missing("site.site_url")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}
	if strings.TrimSpace(c.Notion.APIURL) != "" && !isValidAbsURL(c.Notion.APIURL) {
		ve.Add("notion.api_url", "must be a valid absolute URL")
	}
	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Missing("build.public_dir")
	}
	if strings.TrimSpace(c.Build.IndexPath) == "" {
		ve.Missing("build.index_path")
	}
	if c.Build.HomeSize < 0 {
		ve.Add("build.home_size", "must not be negative")
	}
	if c.Build.RelatedSize < 0 {
		ve.Add("build.related_size", "must not be negative")
	}
}

// ValidateFor runs Validate plus the required-identifier checks of one command.
func (c Config) ValidateFor(cmd Command) error {
	ve := domainerr.ValidationError{Scope: string(cmd)}
	c.validateInto(&ve)

	if strings.TrimSpace(c.Notion.Token) == "" {
		ve.Missing("NOTION_TOKEN")
	}
	if strings.TrimSpace(c.Notion.ArticlesDB) == "" {
		ve.Missing("NOTION_DB_ARTICLES")
	}
	switch cmd {
	case CmdSeed:
		if strings.TrimSpace(c.Notion.KeywordsDB) == "" {
			ve.Missing("NOTION_DB_KEYWORDS")
		}
	case CmdWeekly:
		if strings.TrimSpace(c.Notion.ProductsDB) == "" {
			ve.Missing("NOTION_DB_PRODUCTS")
		}
	}
	return ve.Err()
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Load reads site.yaml (a missing file is fine), then applies the process
// environment. Validation is left to the caller, which knows the command.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			// fields present in the file override Default, the rest stay
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, err
		}
	}

	cfg.ApplyEnv(lookup)

	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	return cfg, nil
}
