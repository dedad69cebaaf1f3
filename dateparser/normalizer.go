// Package dateparser normalizes free-form French publication dates into
// the canonical YYYYMMDD form.
package dateparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/gazette"
	dps "github.com/markusmobius/go-dateparser"
	"golang.org/x/text/unicode/norm"
)

// Ensure Normalizer implements gazette.DateNormalizer at compile time.
var _ gazette.DateNormalizer = (*Normalizer)(nil)

// frenchMonths maps lowercase French month names, with and without
// accents, to their month number.
var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"février":   time.February,
	"fevrier":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"août":      time.August,
	"aout":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December,
	"decembre":  time.December,
}

var (
	spelledDate = regexp.MustCompile(`(?i)(\d{1,2})\s+([^\s,]+)\s+(\d{4})`)
	isoDate     = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

// absoluteParsers leaves out relative expressions such as "hier" or
// "il y a 3 jours", which only make sense against the scrape time.
var absoluteParsers = []dps.ParserType{dps.CustomFormat, dps.AbsoluteTime, dps.NoSpacesTime}

// referenceTimes anchor the generic parser. A result that moves with the
// reference time was computed from it and is rejected.
var referenceTimes = [2]time.Time{
	time.Date(2001, time.March, 14, 12, 0, 0, 0, time.UTC),
	time.Date(2013, time.September, 2, 12, 0, 0, 0, time.UTC),
}

// Normalizer converts date text to YYYYMMDD. It tries a spelled French
// date first, then an ISO fragment, then a generic multilingual parser.
type Normalizer struct {
	configs [2]*dps.Configuration
}

// NewNormalizer creates a Normalizer whose generic fallback understands
// absolute French and English dates with day-first ordering.
func NewNormalizer() *Normalizer {
	n := &Normalizer{}
	for i, ref := range referenceTimes {
		n.configs[i] = &dps.Configuration{
			Languages:   []string{"fr", "en"},
			DateOrder:   dps.DMY,
			CurrentTime: ref,
			ParserTypes: absoluteParsers,
		}
	}
	return n
}

// NormalizeDate returns the date contained in text as YYYYMMDD, or an
// empty string when no date can be found. A spelled date naming a day the
// month does not have yields no date unless an ISO fragment follows.
func (n *Normalizer) NormalizeDate(text string) string {
	text = gazette.CleanText(norm.NFC.String(text))
	if text == "" {
		return ""
	}
	d, impossible := spelled(text)
	if d != "" {
		return d
	}
	if m := isoDate.FindStringSubmatch(text); m != nil {
		return m[1] + m[2] + m[3]
	}
	if impossible {
		return ""
	}
	return n.fallback(text)
}

// spelled handles "28 août 2025". Only the first candidate is considered.
// impossible is set when the month is known but the day does not exist.
func spelled(text string) (date string, impossible bool) {
	m := spelledDate.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	month, ok := frenchMonths[strings.ToLower(m[2])]
	if !ok {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "", true
	}
	return t.Format("20060102"), false
}

func (n *Normalizer) fallback(text string) string {
	first := parse(n.configs[0], text)
	if first == "" || parse(n.configs[1], text) != first {
		return ""
	}
	return first
}

func parse(cfg *dps.Configuration, text string) (out string) {
	// Never panic on garbage input.
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	if dt, err := dps.Parse(cfg, text); err == nil && !dt.Time.IsZero() {
		return dt.Time.Format("20060102")
	}
	_, results, err := dps.Search(cfg, text)
	if err != nil {
		return ""
	}
	for _, r := range results {
		if !r.Date.Time.IsZero() {
			return r.Date.Time.Format("20060102")
		}
	}
	return ""
}
