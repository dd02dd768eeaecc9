package offer

import (
	"errors"
	"strings"
	"time"

	"appprove-backend/domain/keyword"
)

// Payment status values mirrored from the remote store. Only offers whose
// payment completed are visible on the marketplace.
const (
	PaymentPending  = "pending"
	PaymentComplete = "complete"
)

// Offer is a published audit request.
type Offer struct {
	ID            int64             `json:"id"`
	URL           string            `json:"url"`
	Description   string            `json:"description"`
	Budget        string            `json:"budget"`
	Date          DateRange         `json:"date"`
	Keywords      []keyword.Keyword `json:"keywords"`
	Participants  []string          `json:"participants"`
	PaymentStatus string            `json:"payment_status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// FromDraft builds the offer payload a validated draft submits. The
// caller is responsible for having run Validate and Normalize first.
func FromDraft(d *Draft) *Offer {
	return &Offer{
		ID:            d.RecordID,
		URL:           d.URL,
		Description:   d.Description,
		Budget:        d.Budget,
		Date:          d.Date,
		Keywords:      keyword.Dedupe(d.Keywords),
		PaymentStatus: PaymentPending,
	}
}

// Owner returns the organisation half of the repository path, used for
// avatars and grouping on the marketplace.
func (o *Offer) Owner() string {
	if i := strings.Index(o.URL, "/"); i > 0 {
		return o.URL[:i]
	}
	return o.URL
}

// IsPublished reports whether the offer is visible to buyers.
func (o *Offer) IsPublished() bool {
	return o.PaymentStatus == PaymentComplete
}

// HasParticipant reports whether name already joined the offer.
func (o *Offer) HasParticipant(name string) bool {
	for _, p := range o.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// Join adds a participant by display name. Joining twice is rejected so
// the remote list never carries duplicates.
func (o *Offer) Join(name string) error {
	if name == "" {
		return errors.New("participant name cannot be empty")
	}
	if o.HasParticipant(name) {
		return errors.New("already participating in this offer")
	}
	o.Participants = append(o.Participants, name)
	return nil
}

// Leave removes a participant by display name.
func (o *Offer) Leave(name string) error {
	for i, p := range o.Participants {
		if p == name {
			o.Participants = append(o.Participants[:i], o.Participants[i+1:]...)
			return nil
		}
	}
	return errors.New("not participating in this offer")
}

// MatchesKeyword reports whether the offer carries the given keyword
// value, for marketplace search.
func (o *Offer) MatchesKeyword(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return true
	}
	for _, k := range o.Keywords {
		if strings.Contains(k.Value, value) {
			return true
		}
	}
	return false
}
