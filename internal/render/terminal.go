// Package render presents trending results on a terminal or as JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abdulachik/ghtrending/internal/trending"
	"github.com/mattn/go-runewidth"
)

const (
	// HeaderWidth is the inner width of the title box.
	HeaderWidth = 66

	// RuleWidth is the width of the footer rule.
	RuleWidth = 68

	// DescriptionWidth is the display width descriptions are cut to.
	DescriptionWidth = 80

	indent = "     "

	// Moves the cursor up two lines and clears the line, erasing the
	// progress message.
	clearProgress = "\033[2A\033[K"
)

// periodSuffixes are the unit phrases the trending page appends to the
// period star count.
var periodSuffixes = []string{
	" stars today",
	" stars this week",
	" stars this month",
	" star today",
	" star this week",
	" star this month",
}

// Renderer writes the terminal report.
type Renderer struct {
	w     io.Writer
	style Style
	now   func() time.Time
}

// NewRenderer creates a renderer writing to w with the given style.
func NewRenderer(w io.Writer, style Style) *Renderer {
	return &Renderer{
		w:     w,
		style: style,
		now:   time.Now,
	}
}

// Header prints the boxed title for the range.
func (r *Renderer) Header(since trending.TimeRange) {
	s := r.style
	title := fmt.Sprintf("🔥 GitHub Trending - %s | %s", since.Label(), r.now().Format("2006-01-02"))
	border := strings.Repeat("═", HeaderWidth)

	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s╔%s╗%s\n", s.BoldCyan, border, s.Reset)
	fmt.Fprintf(r.w, "%s║%s%s%s║%s\n", s.BoldCyan, s.BoldYellow, Center(title, HeaderWidth), s.BoldCyan, s.Reset)
	fmt.Fprintf(r.w, "%s╚%s╝%s\n", s.BoldCyan, border, s.Reset)
	fmt.Fprintln(r.w)
}

// Progress prints the fetching notice.
func (r *Renderer) Progress() {
	fmt.Fprintf(r.w, "%sFetching data...%s\n\n", r.style.Cyan, r.style.Reset)
}

// ClearProgress erases the fetching notice. Plain output keeps it.
func (r *Renderer) ClearProgress() {
	if r.style.Colored() {
		fmt.Fprint(r.w, clearProgress)
	}
}

// Entry prints one repository, numbered from 1.
func (r *Renderer) Entry(index int, e *trending.Entry) {
	s := r.style

	fmt.Fprintf(r.w, " %s%2d.%s %s%s%s\n", s.Bold, index, s.Reset, s.BoldBlue, e.Name, s.Reset)

	desc := e.Description
	if desc == "" {
		desc = "No description"
	}
	fmt.Fprintf(r.w, "%s%s%s%s\n", indent, s.White, Truncate(desc, DescriptionWidth), s.Reset)

	var lang, stars, period string
	if e.Language != "" {
		lang = fmt.Sprintf("%s[%s]%s ", s.Cyan, e.Language, s.Reset)
	}
	if e.TotalStars != "" {
		stars = "⭐ " + e.TotalStars
	}
	if e.PeriodStars != "" {
		period = fmt.Sprintf(" %s(+%s)%s", s.BoldGreen, StripPeriodSuffix(e.PeriodStars), s.Reset)
	}
	fmt.Fprintf(r.w, "%s%s%s%s%s%s\n", indent, lang, s.Yellow, stars, s.Reset, period)

	fmt.Fprintf(r.w, "%s%s🔗 %s%s\n", indent, s.BoldRed, e.URL, s.Reset)
	fmt.Fprintln(r.w)
}

// Footer prints the closing rule and the entry count.
func (r *Renderer) Footer(count int) {
	s := r.style
	fmt.Fprintf(r.w, "%s%s%s\n", s.BoldCyan, strings.Repeat("─", RuleWidth), s.Reset)
	fmt.Fprintf(r.w, "%sTotal: %d trending repositories%s\n", s.Bold, count, s.Reset)
	fmt.Fprintln(r.w)
}

// Failure prints an error line.
func (r *Renderer) Failure(msg string) {
	fmt.Fprintf(r.w, "%s✗ %s%s\n", r.style.BoldRed, msg, r.style.Reset)
}

// Empty prints the notice for a successful fetch with no entries.
func (r *Renderer) Empty() {
	fmt.Fprintf(r.w, "%sNo repositories found%s\n", r.style.BoldYellow, r.style.Reset)
}

// InvalidOption prints the rejection for an unknown selector.
func (r *Renderer) InvalidOption(arg string) {
	r.Failure("Invalid option: " + arg)
	fmt.Fprintf(r.w, "  Valid options: %s\n", trending.ValidTimeRanges())
}

// Entries prints every entry followed by the footer.
func (r *Renderer) Entries(entries []*trending.Entry) {
	for i, e := range entries {
		r.Entry(i+1, e)
	}
	r.Footer(len(entries))
}

// WriteJSON writes the envelope as indented JSON.
func WriteJSON(w io.Writer, result trending.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// StripPeriodSuffix removes the unit phrase from a period star count,
// turning "56 stars today" into "56".
func StripPeriodSuffix(s string) string {
	for _, suffix := range periodSuffixes {
		s = strings.TrimSuffix(s, suffix)
	}
	return s
}

// Truncate shortens s to width display columns, ending in "..." when cut.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// Center pads s on both sides to width display columns. Odd padding goes
// to the right.
func Center(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
