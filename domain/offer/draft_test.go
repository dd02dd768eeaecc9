package offer

import (
	"testing"
	"time"

	"appprove-backend/domain/keyword"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft(now time.Time) *Draft {
	from := now.Add(24 * time.Hour)
	to := now.Add(7 * 24 * time.Hour)
	return &Draft{
		URL:         "steinprograms/trading-algorithm",
		Description: "Verify the order execution path.",
		Budget:      "1000",
		Date:        DateRange{From: &from, To: &to},
		Keywords:    []keyword.Keyword{{Value: "trading", Label: "Trading"}},
	}
}

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	now := time.Now()
	assert.Nil(t, validDraft(now).Validate(now, 0))
}

func TestValidateBudgetBoundaries(t *testing.T) {
	now := time.Now()

	tests := []struct {
		budget  string
		message string
	}{
		{"20000", ""},
		{"20000.01", "Please choose a reasonable budget"},
		{"-1", "Please choose a reasonable budget"},
		{"", "Please add a budget"},
		{"not-a-number", "Please add a budget"},
	}
	for _, tt := range tests {
		d := validDraft(now)
		d.Budget = tt.budget
		errs := d.Validate(now, 0)
		if tt.message == "" {
			assert.Nil(t, errs, "budget %q should pass", tt.budget)
			continue
		}
		require.NotNil(t, errs, "budget %q should fail", tt.budget)
		assert.Equal(t, tt.message, errs["budget"])
	}
}

func TestValidateBudgetHonoursRuntimeLimit(t *testing.T) {
	now := time.Now()
	d := validDraft(now)
	d.Budget = "6000"

	errs := d.Validate(now, 5000)

	require.NotNil(t, errs)
	assert.Equal(t, "Please choose a reasonable budget", errs["budget"])
}

func TestValidateRejectsPastDateRange(t *testing.T) {
	now := time.Now()
	d := validDraft(now)
	from := now.Add(-48 * time.Hour)
	d.Date.From = &from

	errs := d.Validate(now, 0)

	require.NotNil(t, errs)
	assert.Equal(t, "Please select a valid date.", errs["date"])
}

func TestValidateAllowsYesterdayStart(t *testing.T) {
	now := time.Now()
	d := validDraft(now)
	from := now.Add(-23 * time.Hour)
	d.Date.From = &from

	assert.Nil(t, d.Validate(now, 0))
}

func TestValidateRequiredFields(t *testing.T) {
	now := time.Now()
	d := &Draft{}

	errs := d.Validate(now, 0)

	require.NotNil(t, errs)
	assert.Equal(t, "You forgot to add a repo", errs["url"])
	assert.Equal(t, "Please add a description", errs["description"])
	assert.Equal(t, "Please add a budget", errs["budget"])
	assert.Equal(t, "Please select a valid date.", errs["date"])
	assert.Equal(t, "Please select at least one keyword.", errs["keywords"])
}

func TestNormalizeDefaultsOpenEndToNow(t *testing.T) {
	now := time.Now()
	d := validDraft(now)
	d.Date.To = nil

	d.Normalize(now)

	require.NotNil(t, d.Date.To)
	assert.Equal(t, now, *d.Date.To)

	// An explicit bound is left alone.
	explicit := now.Add(48 * time.Hour)
	d.Date.To = &explicit
	d.Normalize(now.Add(time.Hour))
	assert.Equal(t, explicit, *d.Date.To)
}

func TestJoinAndLeaveParticipants(t *testing.T) {
	o := &Offer{ID: 7}

	require.NoError(t, o.Join("Ada Lovelace"))
	assert.True(t, o.HasParticipant("Ada Lovelace"))
	assert.Error(t, o.Join("Ada Lovelace"), "double join is rejected")

	require.NoError(t, o.Leave("Ada Lovelace"))
	assert.False(t, o.HasParticipant("Ada Lovelace"))
	assert.Error(t, o.Leave("Ada Lovelace"))
}

func TestMatchesKeyword(t *testing.T) {
	o := &Offer{Keywords: []keyword.Keyword{{Value: "trading", Label: "Trading"}}}

	assert.True(t, o.MatchesKeyword(""))
	assert.True(t, o.MatchesKeyword(" Trad "))
	assert.False(t, o.MatchesKeyword("python"))
}
