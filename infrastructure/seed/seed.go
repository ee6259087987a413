// Package seed loads YAML seed files and applies them through the
// migration ledger.
package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/domain/migration"
	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/domain/slide"
)

// ErrInvalid indicates a seed file failed validation.
var ErrInvalid = errors.New("invalid seed")

// Slide modes.
const (
	ModeUpsert  = "upsert"
	ModeReplace = "replace"
)

// Text is a bilingual string as written in seed files.
type Text struct {
	ID string `yaml:"id"`
	EN string `yaml:"en"`
}

// Bilingual converts t to the domain value.
func (t Text) Bilingual() bilingual.Text {
	return bilingual.New(t.ID, t.EN)
}

// Seed is one parsed seed file.
type Seed struct {
	Version       string         `yaml:"version"`
	Description   string         `yaml:"description"`
	Menus         []MenuGroup    `yaml:"menus"`
	Slides        []PageSlides   `yaml:"slides"`
	Documents     []Document     `yaml:"documents"`
	BusinessLines []BusinessLine `yaml:"business_lines"`

	path     string
	checksum string
}

// Anchor names an existing menu item to insert under.
type Anchor struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// MenuGroup is a list of items placed under one parent in one location.
type MenuGroup struct {
	Location string     `yaml:"location"`
	Under    *Anchor    `yaml:"under"`
	Items    []MenuItem `yaml:"items"`
}

// MenuItem is a menu entry with nested children. A nil SortOrder appends.
type MenuItem struct {
	Label     Text       `yaml:"label"`
	Path      string     `yaml:"path"`
	SortOrder *int       `yaml:"sort_order"`
	Children  []MenuItem `yaml:"children"`
}

// PageSlides is the slide set for one page.
type PageSlides struct {
	Page       string  `yaml:"page"`
	Mode       string  `yaml:"mode"`
	MatchTitle bool    `yaml:"match_title"`
	Items      []Slide `yaml:"items"`
}

// CTA is a call-to-action button.
type CTA struct {
	Text Text   `yaml:"text"`
	Link string `yaml:"link"`
}

// Slide is one slide entry.
type Slide struct {
	Title        Text   `yaml:"title"`
	Subtitle     Text   `yaml:"subtitle"`
	MediaURL     string `yaml:"media_url"`
	MediaType    string `yaml:"media_type"`
	PrimaryCTA   *CTA   `yaml:"primary_cta"`
	SecondaryCTA *CTA   `yaml:"secondary_cta"`
}

// Document is an investor document entry, matched by FileURL.
type Document struct {
	Title       Text   `yaml:"title"`
	Type        string `yaml:"type"`
	Year        int    `yaml:"year"`
	Quarter     *int   `yaml:"quarter"`
	PublishedAt string `yaml:"published_at"`
	FileURL     string `yaml:"file_url"`
}

// Detail is one entry of a business line detail collection.
type Detail struct {
	Title    Text   `yaml:"title"`
	Body     Text   `yaml:"body"`
	Value    string `yaml:"value"`
	ImageURL string `yaml:"image_url"`
}

// BusinessLine is a business line with its detail collections. A nil
// collection is left untouched; an empty one is cleared.
type BusinessLine struct {
	Slug        string    `yaml:"slug"`
	Name        Text      `yaml:"name"`
	Description Text      `yaml:"description"`
	PagePath    string    `yaml:"page_path"`
	SortOrder   int       `yaml:"sort_order"`
	Features    *[]Detail `yaml:"features"`
	Stats       *[]Detail `yaml:"stats"`
	Images      *[]Detail `yaml:"images"`
	Advantages  *[]Detail `yaml:"advantages"`
}

// Load reads and parses the seed file at path.
func Load(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Seed{}, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Parse parses and validates seed data. The checksum covers the raw bytes.
func Parse(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	if err := s.validate(); err != nil {
		return Seed{}, err
	}
	s.checksum = migration.Checksum(data)
	return s, nil
}

// Path returns the file the seed was loaded from, if any.
func (s Seed) Path() string { return s.path }

// Checksum returns the hex sha256 of the seed's source.
func (s Seed) Checksum() string { return s.checksum }

func (s Seed) validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Version) == "" {
		add("version is required")
	}
	for i, g := range s.Menus {
		if _, err := navigation.ParseLocation(g.Location); err != nil {
			add("menus[%d]: %v", i, err)
		}
		if g.Under != nil && g.Under.Label == "" && g.Under.Path == "" {
			add("menus[%d].under: label or path is required", i)
		}
		validateMenuItems(fmt.Sprintf("menus[%d]", i), g.Items, add)
	}
	for i, p := range s.Slides {
		if !slide.IsPagePath(p.Page) {
			add("slides[%d]: invalid page %q", i, p.Page)
		}
		switch p.Mode {
		case "", ModeUpsert, ModeReplace:
		default:
			add("slides[%d]: unknown mode %q", i, p.Mode)
		}
		for j, item := range p.Items {
			if item.Title.ID == "" {
				add("slides[%d].items[%d]: title.id is required", i, j)
			}
		}
	}
	for i, d := range s.Documents {
		if d.FileURL == "" {
			add("documents[%d]: file_url is required", i)
		}
		if d.Type == "" {
			add("documents[%d]: type is required, use other when unsure", i)
		}
		if d.PublishedAt != "" {
			if _, err := parseDate(d.PublishedAt); err != nil {
				add("documents[%d]: %v", i, err)
			}
		}
		if d.Quarter != nil && (*d.Quarter < 1 || *d.Quarter > 4) {
			add("documents[%d]: quarter %d out of range", i, *d.Quarter)
		}
	}
	seen := map[string]bool{}
	for i, l := range s.BusinessLines {
		if l.Slug == "" {
			add("business_lines[%d]: slug is required", i)
		}
		if seen[l.Slug] {
			add("business_lines[%d]: duplicate slug %q", i, l.Slug)
		}
		seen[l.Slug] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func validateMenuItems(prefix string, items []MenuItem, add func(string, ...any)) {
	for i, item := range items {
		at := fmt.Sprintf("%s.items[%d]", prefix, i)
		if item.Label.ID == "" {
			add("%s: label.id is required", at)
		}
		if item.SortOrder != nil && *item.SortOrder < 0 {
			add("%s: negative sort_order", at)
		}
		validateMenuItems(at, item.Children, add)
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func (m MenuItem) toDomain(location navigation.Location) navigation.MenuItem {
	return navigation.NewMenuItem(m.Label.Bilingual(), m.Path, location)
}

func (c *CTA) toDomain() slide.CTA {
	if c == nil {
		return slide.CTA{}
	}
	return slide.NewCTA(c.Text.Bilingual(), c.Link)
}

func (s Slide) toDomain() slide.Slide {
	return slide.NewSlide(slide.Content{
		Title:        s.Title.Bilingual(),
		Subtitle:     s.Subtitle.Bilingual(),
		MediaURL:     s.MediaURL,
		MediaType:    slide.MediaType(s.MediaType),
		PrimaryCTA:   s.PrimaryCTA.toDomain(),
		SecondaryCTA: s.SecondaryCTA.toDomain(),
	})
}

func (d Document) toDomain() document.Document {
	published := time.Time{}
	if d.PublishedAt != "" {
		published, _ = parseDate(d.PublishedAt)
	}
	return document.NewDocument(document.Params{
		Title:        d.Title.Bilingual(),
		DocumentType: d.Type,
		Year:         d.Year,
		Quarter:      d.Quarter,
		PublishedAt:  published,
		FileURL:      d.FileURL,
	})
}

func (l BusinessLine) params() business.LineParams {
	return business.LineParams{
		Slug:        l.Slug,
		Name:        l.Name.Bilingual(),
		Description: l.Description.Bilingual(),
		PagePath:    l.PagePath,
		SortOrder:   l.SortOrder,
	}
}

func (l BusinessLine) collections() map[business.Kind]*[]Detail {
	return map[business.Kind]*[]Detail{
		business.KindFeatures:   l.Features,
		business.KindStats:      l.Stats,
		business.KindImages:     l.Images,
		business.KindAdvantages: l.Advantages,
	}
}

func (d Detail) content() business.DetailContent {
	return business.DetailContent{
		Title:    d.Title.Bilingual(),
		Body:     d.Body.Bilingual(),
		Value:    d.Value,
		ImageURL: d.ImageURL,
	}
}
