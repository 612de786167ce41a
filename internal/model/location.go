// Package model defines the records screened for remote-work suitability.
package model

// Location is one business listing as read from a record source.
// Description and Hours are nullable in the store.
type Location struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Hours       *string `json:"hours,omitempty"`
	Address     string  `json:"address"`
	CityID      string  `json:"city_id,omitempty"`
}

// DescriptionText returns the description, or "" when absent.
func (l Location) DescriptionText() string {
	if l.Description == nil {
		return ""
	}
	return *l.Description
}

// HoursText returns the hours string, or "" when absent.
func (l Location) HoursText() string {
	if l.Hours == nil {
		return ""
	}
	return *l.Hours
}

// Verdict is the screening outcome for one location. An empty Reasons
// slice means the location is suitable.
type Verdict struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Reasons []string `json:"reasons"`
}

// Flagged reports whether any rule fired for the location.
func (v Verdict) Flagged() bool {
	return len(v.Reasons) > 0
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
