package classify

import (
	"fmt"
	"regexp"
	"strconv"
)

// Hour mentions are matched loosely: optional colon, optional minutes,
// optional space before the meridiem. Dashes cover hyphen, en and em dash.
// Spacing includes Unicode space separators; Places weekday_text puts
// U+202F before AM/PM and U+2009 around the dash.
var (
	openingRe = regexp.MustCompile(`(open|opens?|from)` + sp + `+(\d{1,2}):?(\d{2})?` + sp + `*([ap]m)`)
	rangeRe   = regexp.MustCompile(`(\d{1,2}):?(\d{2})?` + sp + `*([ap]m)` + sp + `*[-–—]` + sp + `*(\d{1,2}):?(\d{2})?` + sp + `*([ap]m)`)
	closingRe = regexp.MustCompile(`close(?:s|d)?` + sp + `+(?:at|by)?` + sp + `+(\d{1,2}):?(\d{2})?` + sp + `*([ap]m)`)
)

// sp is one whitespace character, ASCII or Unicode Zs.
const sp = `[\s\p{Zs}]`

// ClockTime is a 12-hour clock reading lifted from free text.
type ClockTime struct {
	Hour     int    // 1-12
	Minute   int    // 0-59
	Meridiem string // "am" or "pm"
}

// String renders the time the way reasons print it, e.g. "5pm".
func (t ClockTime) String() string {
	return fmt.Sprintf("%d%s", t.Hour, t.Meridiem)
}

// Daytime reports whether an opening at t counts as daytime availability.
// Only am readings qualify; a 12pm opening does not.
func (t ClockTime) Daytime() bool {
	return t.Meridiem == "am"
}

// Evening reports whether t is 5pm or later on the pm side.
func (t ClockTime) Evening() bool {
	return t.Meridiem == "pm" && t.Hour >= 5
}

// TimeRange is a "<start> - <end>" mention.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// HoursSignal is what one hours string says about availability. It lives
// for a single classification.
type HoursSignal struct {
	Openings []ClockTime
	Ranges   []TimeRange
	Closings []ClockTime

	HasDaytimeHours   bool
	HasNightOnlyHours bool

	// EarlyClose is set when the text has exactly one closing mention and it
	// is at or before 6pm.
	EarlyClose *ClockTime

	// NightPhrases holds the night-only phrases found, in catalog order.
	NightPhrases []string
}

// Parsed reports whether any opening, range or closing mention was found.
// Hours text that fails this is treated as giving no evidence either way.
func (s HoursSignal) Parsed() bool {
	return len(s.Openings) > 0 || len(s.Ranges) > 0 || len(s.Closings) > 0
}

// ParseHours extracts opening, range and closing mentions from lowercased
// hours text and derives the general daytime/night-only signals from them.
// Night phrases are filled in by the Classifier, which owns the catalog.
func ParseHours(lower string) HoursSignal {
	sig := HoursSignal{
		Ranges:   findRanges(lower),
		Openings: findOpenings(lower),
		Closings: findClosings(lower),
	}

	for _, r := range sig.Ranges {
		if r.Start.Daytime() {
			sig.HasDaytimeHours = true
		}
		if r.Start.Evening() {
			sig.HasNightOnlyHours = true
		}
	}

	for _, o := range sig.Openings {
		if o.Daytime() {
			sig.HasDaytimeHours = true
		} else if o.Evening() {
			sig.HasNightOnlyHours = true
		}
	}

	if len(sig.Closings) == 1 {
		c := sig.Closings[0]
		if c.Meridiem == "pm" && c.Hour <= 6 {
			sig.EarlyClose = &c
		}
	}

	return sig
}

// barHasDaytime is the bar/pub availability check. It only looks at
// openings and range starts, and stops at the first daytime hit. Closing
// times and night phrases play no part for bars.
func barHasDaytime(lower string) bool {
	for _, o := range findOpenings(lower) {
		if o.Daytime() {
			return true
		}
	}
	for _, r := range findRanges(lower) {
		if r.Start.Daytime() {
			return true
		}
	}
	return false
}

func findOpenings(lower string) []ClockTime {
	var out []ClockTime
	for _, m := range openingRe.FindAllStringSubmatch(lower, -1) {
		if t, ok := clock(m[2], m[3], m[4]); ok {
			out = append(out, t)
		}
	}
	return out
}

func findRanges(lower string) []TimeRange {
	var out []TimeRange
	for _, m := range rangeRe.FindAllStringSubmatch(lower, -1) {
		start, ok := clock(m[1], m[2], m[3])
		if !ok {
			continue
		}
		end, ok := clock(m[4], m[5], m[6])
		if !ok {
			continue
		}
		out = append(out, TimeRange{Start: start, End: end})
	}
	return out
}

func findClosings(lower string) []ClockTime {
	var out []ClockTime
	for _, m := range closingRe.FindAllStringSubmatch(lower, -1) {
		if t, ok := clock(m[1], m[2], m[3]); ok {
			out = append(out, t)
		}
	}
	return out
}

// clock builds a ClockTime from regex captures. Readings outside the
// 12-hour clock are dropped rather than treated as errors.
func clock(hour, minute, meridiem string) (ClockTime, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 1 || h > 12 {
		return ClockTime{}, false
	}
	m := 0
	if minute != "" {
		m, err = strconv.Atoi(minute)
		if err != nil || m > 59 {
			return ClockTime{}, false
		}
	}
	return ClockTime{Hour: h, Minute: m, Meridiem: meridiem}, true
}
