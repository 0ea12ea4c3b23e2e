// Package refdata provides the controlled value registry: coded enumerations
// (countries, dialing codes, industries, titles) resolved to display labels,
// filtered to active entries and returned in a pinned-first ordering.
package refdata

import "fmt"

// Entry is one row of a controlled-list source. The shape matches the upstream
// list feed and the controlled_list_entries table.
type Entry struct {
	Code      string `json:"code" yaml:"code" db:"code"`
	Label     string `json:"label" yaml:"label" db:"label"`
	IsActive  bool   `json:"is_active" yaml:"is_active" db:"is_active"`
	SortOrder int    `json:"sort_order" yaml:"sort_order" db:"sort_order"`
}

// Option is one selectable entry as presented to a caller.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// UnknownListError indicates a list name that was never registered. This is a
// configuration fault, not a user error.
type UnknownListError struct {
	List string
}

func (e *UnknownListError) Error() string {
	return fmt.Sprintf("unknown controlled list: %s", e.List)
}

// UnknownCodeError indicates a code absent from a registered list. Callers
// must treat this as data corruption rather than user input.
type UnknownCodeError struct {
	List string
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown code %q in controlled list %s", e.Code, e.List)
}

// Well-known list names.
const (
	ListCountries     = "countries"
	ListDialingCodes  = "dialing_codes"
	ListTitles        = "titles"
	ListIndustries    = "industries"
	ListSourceOfFunds = "source_of_funds"
)
