package events

import (
	"strconv"
	"time"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// OfferPublished is raised when a new offer row is created in the remote
// store.
type OfferPublished struct {
	BaseEvent
	OfferID int64  `json:"offer_id"`
	UserID  string `json:"user_id"`
	URL     string `json:"url"`
	Budget  string `json:"budget"`
}

// NewOfferPublished creates an OfferPublished event
func NewOfferPublished(offerID int64, userID, url, budget string, timestamp time.Time) OfferPublished {
	return OfferPublished{
		BaseEvent: BaseEvent{
			AggregateID: strconv.FormatInt(offerID, 10),
			EventType:   "offer.published",
			Timestamp:   timestamp,
			Version:     1,
		},
		OfferID: offerID,
		UserID:  userID,
		URL:     url,
		Budget:  budget,
	}
}

// OfferUpdated is raised when an existing offer row is overwritten by a
// re-submitted draft.
type OfferUpdated struct {
	BaseEvent
	OfferID int64  `json:"offer_id"`
	UserID  string `json:"user_id"`
}

// NewOfferUpdated creates an OfferUpdated event
func NewOfferUpdated(offerID int64, userID string, timestamp time.Time) OfferUpdated {
	return OfferUpdated{
		BaseEvent: BaseEvent{
			AggregateID: strconv.FormatInt(offerID, 10),
			EventType:   "offer.updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		OfferID: offerID,
		UserID:  userID,
	}
}

// KeywordRegistered is raised when a brand-new keyword is accepted by the
// catalog.
type KeywordRegistered struct {
	BaseEvent
	Value string `json:"value"`
	Label string `json:"label"`
}

// NewKeywordRegistered creates a KeywordRegistered event
func NewKeywordRegistered(value, label string, timestamp time.Time) KeywordRegistered {
	return KeywordRegistered{
		BaseEvent: BaseEvent{
			AggregateID: value,
			EventType:   "keyword.registered",
			Timestamp:   timestamp,
			Version:     1,
		},
		Value: value,
		Label: label,
	}
}

// ParticipantJoined is raised when a buyer joins an offer.
type ParticipantJoined struct {
	BaseEvent
	OfferID int64  `json:"offer_id"`
	Name    string `json:"name"`
}

// NewParticipantJoined creates a ParticipantJoined event
func NewParticipantJoined(offerID int64, name string, timestamp time.Time) ParticipantJoined {
	return ParticipantJoined{
		BaseEvent: BaseEvent{
			AggregateID: strconv.FormatInt(offerID, 10),
			EventType:   "offer.participant_joined",
			Timestamp:   timestamp,
			Version:     1,
		},
		OfferID: offerID,
		Name:    name,
	}
}
