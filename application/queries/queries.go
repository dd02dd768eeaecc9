// Package queries defines the read-side operations of the marketplace.
package queries

import (
	"errors"

	"appprove-backend/domain/keyword"
	"appprove-backend/domain/offer"
)

// ListOffersQuery lists published offers, optionally filtered by a
// keyword search term.
type ListOffersQuery struct {
	Keyword string
	Limit   int
	Offset  int
}

// Validate validates the query
func (q ListOffersQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if q.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	return nil
}

// ListOffersResult is the marketplace listing page.
type ListOffersResult struct {
	Offers     []*offer.Offer `json:"offers"`
	TotalCount int            `json:"totalCount"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}

// GetOfferQuery fetches a single offer by id.
type GetOfferQuery struct {
	OfferID int64
}

// Validate validates the query
func (q GetOfferQuery) Validate() error {
	if q.OfferID <= 0 {
		return errors.New("offer id is required")
	}
	return nil
}

// ListKeywordsQuery lists the full keyword catalog.
type ListKeywordsQuery struct{}

// Validate validates the query
func (q ListKeywordsQuery) Validate() error { return nil }

// ListKeywordsResult carries the catalog.
type ListKeywordsResult struct {
	Keywords []keyword.Keyword `json:"keywords"`
}

// ListRepositoriesQuery lists the repositories the seller can publish an
// offer for, by code-host username.
type ListRepositoriesQuery struct {
	Username string
}

// Validate validates the query
func (q ListRepositoriesQuery) Validate() error {
	if q.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

// GetDraftQuery loads a seller's stored draft. Absence yields an empty
// draft, never an error.
type GetDraftQuery struct {
	Owner string
}

// Validate validates the query
func (q GetDraftQuery) Validate() error {
	if q.Owner == "" {
		return errors.New("draft owner is required")
	}
	return nil
}
