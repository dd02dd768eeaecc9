package offer

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"appprove-backend/domain/keyword"
)

// DefaultMaxBudget is the budget ceiling applied when no runtime limit is
// configured.
const DefaultMaxBudget = 20000

// DateRange is the requested audit period. To may be absent while the
// seller is still editing; Normalize fills it at submit time.
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Draft is a seller's in-progress offer. It mirrors the publish form
// field-for-field and lives in the durable draft store until the offer is
// accepted by the remote store. RecordID is zero while no remote row
// exists; once a create round-trip succeeds the returned id makes the
// draft an update of that row on every later submit.
type Draft struct {
	URL         string            `json:"url"`
	Description string            `json:"description"`
	Budget      string            `json:"budget"`
	Date        DateRange         `json:"date"`
	Keywords    []keyword.Keyword `json:"keywords"`
	RecordID    int64             `json:"id"`
}

// IsNew reports whether the draft has no remote row yet.
func (d *Draft) IsNew() bool {
	return d.RecordID == 0
}

// Normalize fills defaults the form leaves open: a missing To bound
// becomes the submit time.
func (d *Draft) Normalize(now time.Time) {
	if d.Date.To == nil {
		to := now
		d.Date.To = &to
	}
}

// FieldErrors maps form field names to user-facing validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Validate checks every form rule and returns the per-field messages for
// the ones that fail. maxBudget <= 0 falls back to DefaultMaxBudget. A nil
// return means the draft is submittable.
func (d *Draft) Validate(now time.Time, maxBudget float64) FieldErrors {
	if maxBudget <= 0 {
		maxBudget = DefaultMaxBudget
	}
	errs := FieldErrors{}

	if d.URL == "" {
		errs["url"] = "You forgot to add a repo"
	}
	if d.Description == "" {
		errs["description"] = "Please add a description"
	}
	if msg := validateBudget(d.Budget, maxBudget); msg != "" {
		errs["budget"] = msg
	}
	if msg := validateDate(d.Date, now); msg != "" {
		errs["date"] = msg
	}
	if len(d.Keywords) == 0 {
		errs["keywords"] = "Please select at least one keyword."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateBudget(budget string, maxBudget float64) string {
	if budget == "" {
		return "Please add a budget"
	}
	amount, err := strconv.ParseFloat(budget, 64)
	if err != nil {
		return "Please add a budget"
	}
	if amount < 0 || amount > maxBudget {
		return "Please choose a reasonable budget"
	}
	return ""
}

func validateDate(date DateRange, now time.Time) string {
	earliest := now.Add(-24 * time.Hour)
	if date.From == nil {
		return "Please select a valid date."
	}
	if date.From.Before(earliest) {
		return "Please select a valid date."
	}
	if date.To != nil && date.To.Before(earliest) {
		return "Please select a valid date."
	}
	return ""
}
