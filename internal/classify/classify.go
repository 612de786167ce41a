// Package classify decides whether a location is suitable for remote work.
//
// Matching is plain case-insensitive substring containment over the
// catalog. There are no word boundaries, so "game" also hits "Gamestop" and
// "bar" hits "barista"; those false positives are accepted behaviour of the
// rule set.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/location-screen/internal/model"
	"github.com/sells-group/location-screen/internal/rules"
)

// Reason texts and prefixes emitted by Classify.
const (
	ReasonBusinessType   = "Business type: "
	ReasonBarNoDaytime   = "Bar/pub with no daytime hours"
	ReasonClosesEarly    = "Closes early at "
	ReasonNightIndicator = "Night-only indicators: "
	ReasonNightOnlyHours = "Night-only hours detected"
)

// Classifier applies a rule catalog to locations. It holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	catalog *rules.Catalog
}

// New creates a Classifier over catalog. A nil catalog uses rules.Default().
func New(catalog *rules.Catalog) *Classifier {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &Classifier{catalog: catalog}
}

// Catalog returns the rule catalog in use.
func (c *Classifier) Catalog() *rules.Catalog {
	return c.catalog
}

// Verdict classifies loc and carries its identity fields through.
func (c *Classifier) Verdict(loc model.Location) model.Verdict {
	return model.Verdict{
		ID:      loc.ID,
		Name:    loc.Name,
		Address: loc.Address,
		Reasons: c.Classify(loc),
	}
}

// Classify returns the reasons loc is unsuitable, in rule order: business
// type or bar hours, early closing, night phrases, night-only hours. An
// empty result means suitable. Night phrases are reported for non-bar
// locations even when the hours text holds no recognisable time.
func (c *Classifier) Classify(loc model.Location) []string {
	lower := cases.Lower(language.Und)
	name := lower.String(loc.Name)
	desc := lower.String(loc.DescriptionText())
	hours := loc.HoursText()
	hoursLower := lower.String(hours)

	var reasons []string

	if c.IsBarOrPub(name, desc) {
		if hours != "" && !barHasDaytime(hoursLower) {
			reasons = append(reasons, ReasonBarNoDaytime)
		}
		return reasons
	}

	if kw, ok := c.MatchKeyword(name, desc); ok {
		reasons = append(reasons, ReasonBusinessType+kw)
	}

	var sig HoursSignal
	if hours != "" {
		sig = ParseHours(hoursLower)
	}
	sig.NightPhrases = c.nightPhrases(hoursLower, desc)

	if sig.EarlyClose != nil {
		reasons = append(reasons, ReasonClosesEarly+sig.EarlyClose.String())
	}
	if len(sig.NightPhrases) > 0 {
		reasons = append(reasons, ReasonNightIndicator+strings.Join(sig.NightPhrases, ", "))
	}
	if sig.Parsed() && !sig.HasDaytimeHours && sig.HasNightOnlyHours {
		reasons = append(reasons, ReasonNightOnlyHours)
	}

	return reasons
}

// IsBarOrPub reports whether either lowercased field mentions a bar keyword.
func (c *Classifier) IsBarOrPub(name, desc string) bool {
	for _, kw := range c.catalog.BarKeywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// MatchKeyword returns the first unsuitable keyword, in catalog order,
// found in either lowercased field.
func (c *Classifier) MatchKeyword(name, desc string) (string, bool) {
	for _, kw := range c.catalog.UnsuitableKeywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return kw, true
		}
	}
	return "", false
}

// nightPhrases lists catalog phrases present in the hours text or the
// description. Each phrase appears once.
func (c *Classifier) nightPhrases(hours, desc string) []string {
	var found []string
	for _, p := range c.catalog.NightPhrases {
		if strings.Contains(hours, p) || strings.Contains(desc, p) {
			found = append(found, p)
		}
	}
	return found
}

// RuleOf maps a reason string back to a short rule name.
func RuleOf(reason string) string {
	switch {
	case strings.HasPrefix(reason, ReasonBusinessType):
		return "business_type"
	case reason == ReasonBarNoDaytime:
		return "bar_no_daytime"
	case strings.HasPrefix(reason, ReasonClosesEarly):
		return "closes_early"
	case strings.HasPrefix(reason, ReasonNightIndicator):
		return "night_indicators"
	case reason == ReasonNightOnlyHours:
		return "night_only_hours"
	default:
		return "other"
	}
}
