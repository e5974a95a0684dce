package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/danwu/photo-search-go/internal/models"
)

// TagVocabulary is the closed set of tag words the parser recognizes.
// Matched tags are reported in this order, not in input order.
var TagVocabulary = []string{
	"beach", "mountain", "city", "restaurant", "museum", "park",
	"sunset", "sunrise", "nature", "urban", "food", "selfie",
	"group", "landscape", "architecture", "ocean", "forest",
}

// LocationPrepositions are the intent words that introduce a location
// phrase, in priority order. The first one that yields a capture wins.
var LocationPrepositions = []string{
	"in", "at", "from", "to", "visit", "trip to", "vacation in",
}

// Stopwords are stripped as whole words from the residual description.
var Stopwords = []string{
	"in", "at", "from", "to", "with", "my", "the", "and", "or", "but",
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var (
	yearPattern     = regexp.MustCompile(`\b(20\d{2})\b`)
	personPattern   = regexp.MustCompile(`\bwith my ([a-z]+)`)
	stopwordPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(Stopwords, "|") + `)\b`)
)

// Parser converts a free-text search phrase into a models.SearchFilter.
// It is rule-based and total: any input yields a filter, possibly empty.
type Parser struct {
	vocabulary   []string
	prepositions []*regexp.Regexp
}

// NewParser returns a parser with the default vocabulary and preposition
// priority list.
func NewParser() *Parser {
	p := &Parser{vocabulary: TagVocabulary}
	for _, prep := range LocationPrepositions {
		// Capture the run of letters/spaces after the preposition, up to
		// a connector word or end of string.
		p.prepositions = append(p.prepositions, regexp.MustCompile(
			`\b`+regexp.QuoteMeta(prep)+`\s+([a-z][a-z ]*?)(?:\s+(?:with|in|on|during)\b|$)`))
	}
	return p
}

// Parse builds a filter from the query, anchoring relative phrases like
// "this year" to the current time.
func (p *Parser) Parse(query string) models.SearchFilter {
	return p.ParseAt(query, time.Now())
}

// ParseAt is Parse with an explicit reference time. The passes run in a
// fixed order over the lower-cased query; later passes may override the
// date window set by earlier ones.
func (p *Parser) ParseAt(query string, now time.Time) models.SearchFilter {
	var f models.SearchFilter
	lower := strings.ToLower(query)

	p.applyYear(&f, lower)
	p.applyMonth(&f, lower, now)
	p.applyRelativePhrase(&f, lower, now)
	p.applyLocation(&f, lower)
	p.applyPerson(&f, lower)
	p.applyTags(&f, lower)
	p.applyDescription(&f, query)

	return f
}

// applyYear sets a whole-year window from the first 4-digit token that
// starts with "20".
func (p *Parser) applyYear(f *models.SearchFilter, lower string) {
	m := yearPattern.FindStringSubmatch(lower)
	if m == nil {
		return
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return
	}
	setWindow(f, startOfYear(year), startOfYear(year+1))
}

// applyMonth narrows the window to one month when a full English month
// name appears. The year comes from the year pass, or the current year.
func (p *Parser) applyMonth(f *models.SearchFilter, lower string, now time.Time) {
	month := 0
	best := len(lower) + 1
	for i, name := range monthNames {
		if idx := strings.Index(lower, name); idx >= 0 && idx < best {
			best = idx
			month = i + 1
		}
	}
	if month == 0 {
		return
	}
	year := now.Year()
	if f.DateFrom != nil {
		year = f.DateFrom.Year()
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	setWindow(f, from, from.AddDate(0, 1, 0))
}

// applyRelativePhrase handles "last year" and "this year", which override
// any window produced by the earlier passes.
func (p *Parser) applyRelativePhrase(f *models.SearchFilter, lower string, now time.Time) {
	year := 0
	switch {
	case strings.Contains(lower, "last year"):
		year = now.Year() - 1
	case strings.Contains(lower, "this year"):
		year = now.Year()
	default:
		return
	}
	setWindow(f, startOfYear(year), startOfYear(year+1))
}

// applyLocation captures the phrase after the highest-priority preposition
// that is followed by a run of letters/spaces.
func (p *Parser) applyLocation(f *models.SearchFilter, lower string) {
	for _, re := range p.prepositions {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if loc := strings.TrimSpace(m[1]); loc != "" {
			f.LocationSubstring = loc
			return
		}
	}
}

// applyPerson captures the word after "with my". The token is kept raw;
// resolving it to a face group is the orchestrator's job.
func (p *Parser) applyPerson(f *models.SearchFilter, lower string) {
	if m := personPattern.FindStringSubmatch(lower); m != nil {
		f.PersonReference = m[1]
	}
}

// applyTags collects every vocabulary word present in the query, in
// vocabulary order.
func (p *Parser) applyTags(f *models.SearchFilter, lower string) {
	for _, tag := range p.vocabulary {
		if strings.Contains(lower, tag) {
			f.Tags = append(f.Tags, tag)
		}
	}
}

// applyDescription keeps whatever free text remains after removing the
// captured location phrase, the matched tags and the stopwords. Remainders
// of two characters or fewer are treated as noise.
func (p *Parser) applyDescription(f *models.SearchFilter, query string) {
	rest := query
	if f.LocationSubstring != "" {
		rest = removeAll(rest, f.LocationSubstring)
	}
	for _, tag := range f.Tags {
		rest = removeAll(rest, tag)
	}
	rest = stopwordPattern.ReplaceAllString(rest, " ")
	rest = strings.Join(strings.Fields(rest), " ")
	if len(rest) > 2 {
		f.DescriptionSubstring = rest
	}
}

// removeAll deletes every case-insensitive occurrence of sub from s.
func removeAll(s, sub string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(sub))
	return re.ReplaceAllString(s, " ")
}

func startOfYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func setWindow(f *models.SearchFilter, from, to time.Time) {
	f.DateFrom = &from
	f.DateTo = &to
}
