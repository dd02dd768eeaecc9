// Package commands defines the write-side operations of the marketplace.
package commands

import (
	"errors"
	"strings"

	"appprove-backend/domain/offer"
	"appprove-backend/domain/survey"
)

// RegisterKeywordCommand registers a brand-new keyword with the shared
// catalog. The remote side rejects duplicate values.
type RegisterKeywordCommand struct {
	Label string `json:"label"`
}

// Validate validates the command
func (cmd RegisterKeywordCommand) Validate() error {
	if strings.TrimSpace(cmd.Label) == "" {
		return errors.New("keyword label is required")
	}
	return nil
}

// JoinOfferCommand adds the signed-in user to an offer's participants.
type JoinOfferCommand struct {
	OfferID  int64
	UserName string
}

// Validate validates the command
func (cmd JoinOfferCommand) Validate() error {
	if cmd.OfferID <= 0 {
		return errors.New("offer id is required")
	}
	if cmd.UserName == "" {
		return errors.New("user name is required")
	}
	return nil
}

// LeaveOfferCommand removes the signed-in user from an offer's
// participants.
type LeaveOfferCommand struct {
	OfferID  int64
	UserName string
}

// Validate validates the command
func (cmd LeaveOfferCommand) Validate() error {
	if cmd.OfferID <= 0 {
		return errors.New("offer id is required")
	}
	if cmd.UserName == "" {
		return errors.New("user name is required")
	}
	return nil
}

// SaveDraftCommand persists the current form state to the durable draft
// store. Drafts may be partial; field validation only happens at submit.
type SaveDraftCommand struct {
	Owner string
	Draft *offer.Draft
}

// Validate validates the command
func (cmd SaveDraftCommand) Validate() error {
	if cmd.Owner == "" {
		return errors.New("draft owner is required")
	}
	if cmd.Draft == nil {
		return errors.New("draft is required")
	}
	return nil
}

// ClearDraftCommand discards a seller's stored draft.
type ClearDraftCommand struct {
	Owner string
}

// Validate validates the command
func (cmd ClearDraftCommand) Validate() error {
	if cmd.Owner == "" {
		return errors.New("draft owner is required")
	}
	return nil
}

// SubmitOfferCommand runs the full submit flow: validate, snapshot the
// draft, create or update the remote offer, start payment, clear the
// draft.
type SubmitOfferCommand struct {
	Owner  string
	UserID string
	Draft  *offer.Draft
}

// Validate validates the command
func (cmd SubmitOfferCommand) Validate() error {
	if cmd.Owner == "" {
		return errors.New("draft owner is required")
	}
	if cmd.UserID == "" {
		return errors.New("user id is required")
	}
	if cmd.Draft == nil {
		return errors.New("draft is required")
	}
	return nil
}

// SubmitSurveyCommand stores a completed onboarding survey response.
type SubmitSurveyCommand struct {
	UserID   string
	Response *survey.Response
}

// Validate validates the command
func (cmd SubmitSurveyCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user id is required")
	}
	if cmd.Response == nil {
		return errors.New("survey response is required")
	}
	return nil
}
