package trending

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors names the markup contract for each extracted field. Every
// selector except EntryBlock is evaluated inside a single entry block.
type Selectors struct {
	EntryBlock  string
	NameLink    string
	Description string
	TotalStars  string
	PeriodStars string
	Language    string
}

// DefaultSelectors matches the current github.com/trending layout.
func DefaultSelectors() Selectors {
	return Selectors{
		EntryBlock:  "article.Box-row",
		NameLink:    "h2 a",
		Description: "p",
		TotalStars:  `a[href$="/stargazers"]`,
		PeriodStars: "span.d-inline-block.float-sm-right",
		Language:    `span[itemprop="programmingLanguage"]`,
	}
}

// Extractor turns trending markup into entries. It holds no mutable state
// and performs no I/O.
type Extractor struct {
	selectors Selectors
	origin    string
}

// ExtractorConfig holds configuration for the extractor.
type ExtractorConfig struct {
	// Origin is joined with each entry name to build its URL.
	Origin    string
	Selectors *Selectors
}

// NewExtractor creates an extractor, defaulting to github.com and the
// built-in selectors.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	origin := strings.TrimRight(cfg.Origin, "/")
	if origin == "" {
		origin = DefaultBaseURL
	}

	selectors := DefaultSelectors()
	if cfg.Selectors != nil {
		selectors = *cfg.Selectors
	}

	return &Extractor{
		selectors: selectors,
		origin:    origin,
	}
}

// ExtractAll parses markup and extracts every entry block in document
// order. Rejected blocks leave a nil slot. Markup without any entry block
// yields ErrNoEntries.
func (e *Extractor) ExtractAll(markup string) ([]*Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: parse markup: %v", ErrNoEntries, err)
	}

	blocks := e.Blocks(doc.Selection)
	if blocks.Length() == 0 {
		return nil, ErrNoEntries
	}

	entries := make([]*Entry, blocks.Length())
	blocks.Each(func(i int, block *goquery.Selection) {
		entries[i] = e.ExtractOne(block)
	})
	return entries, nil
}

// Blocks locates the entry blocks under root.
func (e *Extractor) Blocks(root *goquery.Selection) *goquery.Selection {
	return root.Find(e.selectors.EntryBlock)
}

// ExtractOne extracts a single block. It returns nil when the block has no
// usable name link, or when anything inside the block blows up.
func (e *Extractor) ExtractOne(block *goquery.Selection) (entry *Entry) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("skipping malformed entry block", "panic", r)
			entry = nil
		}
	}()

	name, ok := e.Name(block)
	if !ok {
		return nil
	}

	// Optional fields fall back to "" when absent.
	description, _ := e.Description(block)
	totalStars, _ := e.TotalStars(block)
	periodStars, _ := e.PeriodStars(block)
	language, _ := e.Language(block)

	return &Entry{
		Name:        name,
		URL:         EntryURL(e.origin, name),
		Description: description,
		TotalStars:  totalStars,
		PeriodStars: periodStars,
		Language:    language,
	}
}

// Name reads the owner/project identifier from the heading link.
func (e *Extractor) Name(block *goquery.Selection) (string, bool) {
	href, ok := block.Find(e.selectors.NameLink).First().Attr("href")
	if !ok {
		return "", false
	}
	return NameFromHref(href)
}

// Description reads the first paragraph of the block.
func (e *Extractor) Description(block *goquery.Selection) (string, bool) {
	return firstText(block, e.selectors.Description)
}

// TotalStars reads the stargazers link text.
func (e *Extractor) TotalStars(block *goquery.Selection) (string, bool) {
	return firstText(block, e.selectors.TotalStars)
}

// PeriodStars reads the right-aligned badge, unit phrase included.
func (e *Extractor) PeriodStars(block *goquery.Selection) (string, bool) {
	return firstText(block, e.selectors.PeriodStars)
}

// Language reads the programming language marker.
func (e *Extractor) Language(block *goquery.Selection) (string, bool) {
	return firstText(block, e.selectors.Language)
}

// NameFromHref strips query, fragment and surrounding slashes from a
// repository link. Absolute links contribute only their path.
func NameFromHref(href string) (string, bool) {
	p := strings.TrimSpace(href)
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		p = u.Path
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	name := strings.Trim(p, "/")
	if name == "" {
		return "", false
	}
	return name, true
}

// EntryURL joins origin and name with exactly one slash.
func EntryURL(origin, name string) string {
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(name, "/")
}

func firstText(block *goquery.Selection, selector string) (string, bool) {
	sel := block.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return normalizeSpace(sel.Text()), true
}

// normalizeSpace trims s and collapses internal whitespace runs, which the
// page markup is full of.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
