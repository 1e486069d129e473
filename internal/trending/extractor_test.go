package trending

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockParts describes a fixture block. Empty fields are left out of the
// markup entirely.
type blockParts struct {
	href        string
	description string
	stars       string
	period      string
	language    string
}

func entryBlock(p blockParts) string {
	var b strings.Builder
	b.WriteString(`<article class="Box-row">`)
	b.WriteString(`<div class="float-right d-flex"><a class="btn-sm btn" href="/login">Star</a></div>`)
	if p.href != "" {
		fmt.Fprintf(&b, `<h2 class="h3 lh-condensed">
  <a data-view-component="true" href="%s" class="Link">
    <svg aria-hidden="true" class="octicon octicon-repo"></svg>
    <span class="text-normal">owner /</span>
    project
  </a>
</h2>`, p.href)
	} else {
		b.WriteString(`<h2 class="h3 lh-condensed"><span>heading without link</span></h2>`)
	}
	if p.description != "" {
		fmt.Fprintf(&b, `<p class="col-9 color-fg-muted my-1 pr-4">%s</p>`, p.description)
	}
	b.WriteString(`<div class="f6 color-fg-muted mt-2">`)
	if p.language != "" {
		fmt.Fprintf(&b, `<span class="d-inline-block ml-0 mr-3">
  <span class="repo-language-color" style="background-color: #3572A5"></span>
  <span itemprop="programmingLanguage">%s</span>
</span>`, p.language)
	}
	if p.stars != "" {
		fmt.Fprintf(&b, `<a href="%s/stargazers" class="Link Link--muted d-inline-block mr-3">
  <svg aria-label="star" class="octicon octicon-star"></svg>
  %s
</a>`, p.href, p.stars)
	}
	b.WriteString(`<a href="/owner/project/forks" class="Link Link--muted d-inline-block mr-3"><svg aria-label="fork"></svg> 12</a>`)
	b.WriteString(`<span class="d-inline-block mr-3">Built by <a href="/someone"><img alt="@someone"></a></span>`)
	if p.period != "" {
		fmt.Fprintf(&b, `<span class="d-inline-block float-sm-right">
  <svg aria-hidden="true" class="octicon octicon-star"></svg>
  %s
</span>`, p.period)
	}
	b.WriteString(`</div></article>`)
	return b.String()
}

func page(blocks ...string) string {
	return `<!DOCTYPE html><html><head><title>Trending</title></head><body>
<div class="Box"><div class="Box-header">Trending</div><div>` +
		strings.Join(blocks, "\n") +
		`</div></div></body></html>`
}

func sampleParts() blockParts {
	return blockParts{
		href:        "/octocat/Hello-World",
		description: " sample repo ",
		stars:       "1,234",
		period:      "56 stars today",
		language:    "Python",
	}
}

func TestExtractor_ExtractAll(t *testing.T) {
	ex := NewExtractor(ExtractorConfig{})

	t.Run("full block", func(t *testing.T) {
		entries, err := ex.ExtractAll(page(entryBlock(sampleParts())))
		require.NoError(t, err)
		require.Len(t, entries, 1)

		assert.Equal(t, &Entry{
			Name:        "octocat/Hello-World",
			URL:         "https://github.com/octocat/Hello-World",
			Description: "sample repo",
			TotalStars:  "1,234",
			PeriodStars: "56 stars today",
			Language:    "Python",
		}, entries[0])
	})

	t.Run("missing description and language", func(t *testing.T) {
		parts := sampleParts()
		parts.description = ""
		parts.language = ""

		entries, err := ex.ExtractAll(page(entryBlock(parts)))
		require.NoError(t, err)
		require.Len(t, entries, 1)

		entry := entries[0]
		require.NotNil(t, entry)
		assert.Equal(t, "octocat/Hello-World", entry.Name)
		assert.Equal(t, "https://github.com/octocat/Hello-World", entry.URL)
		assert.Equal(t, "", entry.Description)
		assert.Equal(t, "", entry.Language)
		assert.Equal(t, "1,234", entry.TotalStars)
		assert.Equal(t, "56 stars today", entry.PeriodStars)
	})

	t.Run("only the name link", func(t *testing.T) {
		entries, err := ex.ExtractAll(page(entryBlock(blockParts{href: "/a/b"})))
		require.NoError(t, err)
		require.Len(t, entries, 1)

		assert.Equal(t, &Entry{Name: "a/b", URL: "https://github.com/a/b"}, entries[0])
	})

	t.Run("block without name link leaves nil slot", func(t *testing.T) {
		noLink := sampleParts()
		noLink.href = ""

		second := sampleParts()
		second.href = "/second/repo"

		entries, err := ex.ExtractAll(page(
			entryBlock(sampleParts()),
			entryBlock(noLink),
			entryBlock(second),
		))
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "octocat/Hello-World", entries[0].Name)
		assert.Nil(t, entries[1])
		assert.Equal(t, "second/repo", entries[2].Name)
	})

	t.Run("no entry blocks", func(t *testing.T) {
		_, err := ex.ExtractAll(page(`<div class="blankslate">It looks like we don't have any trending repositories.</div>`))
		assert.ErrorIs(t, err, ErrNoEntries)
	})

	t.Run("empty markup", func(t *testing.T) {
		_, err := ex.ExtractAll("")
		assert.ErrorIs(t, err, ErrNoEntries)
	})

	t.Run("preserves document order", func(t *testing.T) {
		var blocks []string
		for i := 0; i < 5; i++ {
			parts := sampleParts()
			parts.href = fmt.Sprintf("/owner/repo-%d", i)
			blocks = append(blocks, entryBlock(parts))
		}

		entries, err := ex.ExtractAll(page(blocks...))
		require.NoError(t, err)
		require.Len(t, entries, 5)
		for i, entry := range entries {
			assert.Equal(t, fmt.Sprintf("owner/repo-%d", i), entry.Name)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		markup := page(entryBlock(sampleParts()), entryBlock(blockParts{href: "/x/y"}))

		first, err := ex.ExtractAll(markup)
		require.NoError(t, err)
		second, err := ex.ExtractAll(markup)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestExtractor_ExtractOne(t *testing.T) {
	ex := NewExtractor(ExtractorConfig{})

	t.Run("nil selection is skipped", func(t *testing.T) {
		assert.Nil(t, ex.ExtractOne(nil))
	})

	t.Run("empty selection is skipped", func(t *testing.T) {
		assert.Nil(t, ex.ExtractOne(&goquery.Selection{}))
	})

	t.Run("link without href is skipped", func(t *testing.T) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(
			`<article class="Box-row"><h2><a class="Link">nothing</a></h2><p>desc</p></article>`))
		require.NoError(t, err)

		assert.Nil(t, ex.ExtractOne(doc.Find("article").First()))
	})

	t.Run("custom origin", func(t *testing.T) {
		custom := NewExtractor(ExtractorConfig{Origin: "http://mirror.local/"})
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page(entryBlock(sampleParts()))))
		require.NoError(t, err)

		entry := custom.ExtractOne(doc.Find("article.Box-row").First())
		require.NotNil(t, entry)
		assert.Equal(t, "http://mirror.local/octocat/Hello-World", entry.URL)
	})

	t.Run("custom selectors", func(t *testing.T) {
		sel := DefaultSelectors()
		sel.EntryBlock = "li.repo"
		sel.Description = "div.about"
		custom := NewExtractor(ExtractorConfig{Selectors: &sel})

		entries, err := custom.ExtractAll(`<ul><li class="repo"><h2><a href="/u/p">p</a></h2><div class="about">hello</div></li></ul>`)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "hello", entries[0].Description)
	})
}

func TestExtractor_Fields(t *testing.T) {
	ex := NewExtractor(ExtractorConfig{})

	parse := func(t *testing.T, markup string) *goquery.Selection {
		t.Helper()
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
		require.NoError(t, err)
		return doc.Selection
	}

	t.Run("description takes first paragraph", func(t *testing.T) {
		block := parse(t, `<article><p>
			first
			line </p><p>second</p></article>`)
		got, ok := ex.Description(block)
		assert.True(t, ok)
		assert.Equal(t, "first line", got)
	})

	t.Run("description absent", func(t *testing.T) {
		got, ok := ex.Description(parse(t, `<article><span>x</span></article>`))
		assert.False(t, ok)
		assert.Equal(t, "", got)
	})

	t.Run("total stars ignores other links", func(t *testing.T) {
		block := parse(t, `<article><a href="/a/b/forks">7</a><a href="/a/b/stargazers"> 3.4k </a></article>`)
		got, ok := ex.TotalStars(block)
		assert.True(t, ok)
		assert.Equal(t, "3.4k", got)
	})

	t.Run("period stars requires both classes", func(t *testing.T) {
		block := parse(t, `<article><span class="d-inline-block">Built by</span></article>`)
		_, ok := ex.PeriodStars(block)
		assert.False(t, ok)

		block = parse(t, `<article><span class="d-inline-block float-sm-right">1,024 stars this week</span></article>`)
		got, ok := ex.PeriodStars(block)
		assert.True(t, ok)
		assert.Equal(t, "1,024 stars this week", got)
	})

	t.Run("language marker", func(t *testing.T) {
		got, ok := ex.Language(parse(t, `<article><span itemprop="programmingLanguage">Go</span></article>`))
		assert.True(t, ok)
		assert.Equal(t, "Go", got)
	})

	t.Run("name takes the heading link only", func(t *testing.T) {
		block := parse(t, `<article><a href="/not/this">x</a><h2><a href=" /right/one ">y</a></h2></article>`)
		got, ok := ex.Name(block)
		assert.True(t, ok)
		assert.Equal(t, "right/one", got)
	})
}

func TestNameFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
		ok   bool
	}{
		{"/octocat/Hello-World", "octocat/Hello-World", true},
		{"octocat/Hello-World", "octocat/Hello-World", true},
		{"//octocat/Hello-World", "octocat/Hello-World", true},
		{"/octocat/Hello-World/", "octocat/Hello-World", true},
		{"  /octocat/Hello-World\n", "octocat/Hello-World", true},
		{"https://github.com/octocat/Hello-World", "octocat/Hello-World", true},
		{"/octocat/Hello-World?tab=readme#top", "octocat/Hello-World", true},
		{"/", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, ok := NameFromHref(tt.href)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryURL(t *testing.T) {
	tests := []struct {
		origin string
		name   string
		want   string
	}{
		{"https://github.com", "octocat/Hello-World", "https://github.com/octocat/Hello-World"},
		{"https://github.com/", "octocat/Hello-World", "https://github.com/octocat/Hello-World"},
		{"https://github.com", "/octocat/Hello-World", "https://github.com/octocat/Hello-World"},
		{"https://github.com//", "//a/b", "https://github.com/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.origin+" "+tt.name, func(t *testing.T) {
			got := EntryURL(tt.origin, tt.name)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, strings.TrimPrefix(got, "https://"), "//")
		})
	}
}

func BenchmarkExtractAll(b *testing.B) {
	var blocks []string
	for i := 0; i < 25; i++ {
		parts := sampleParts()
		parts.href = fmt.Sprintf("/owner/repo-%d", i)
		blocks = append(blocks, entryBlock(parts))
	}
	markup := page(blocks...)
	ex := NewExtractor(ExtractorConfig{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ex.ExtractAll(markup)
	}
}
