package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []Keyword {
	return []Keyword{
		{Value: "security", Label: "Security"},
		{Value: "golang", Label: "Golang"},
		{Value: "api", Label: "API"},
	}
}

func TestSelectMovesCandidateIntoSelection(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	s.SetBuffer("sec")

	ok := s.Select("security")

	require.True(t, ok)
	assert.Equal(t, []Keyword{{Value: "security", Label: "Security"}}, s.Selected())
	assert.Len(t, s.Candidates(), 2)
	assert.Empty(t, s.Buffer(), "selecting clears the search buffer")
}

func TestSelectAlreadySelectedIsNoop(t *testing.T) {
	s := NewSelector(catalogFixture(), []Keyword{{Value: "api", Label: "API"}})

	ok := s.Select("api")

	assert.False(t, ok)
	assert.Len(t, s.Selected(), 1)
}

func TestDeselectReturnsKeywordToCandidates(t *testing.T) {
	s := NewSelector(catalogFixture(), []Keyword{{Value: "api", Label: "API"}})

	ok := s.Deselect("api")

	require.True(t, ok)
	assert.Empty(t, s.Selected())
	assert.Len(t, s.Candidates(), 3)
}

func TestPopLastRemovesMostRecentSelection(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	require.True(t, s.Select("security"))
	require.True(t, s.Select("golang"))
	require.True(t, s.Select("api"))

	// Popping n times on a selection of length n empties it, last first.
	require.True(t, s.PopLast())
	assert.Equal(t, []string{"security", "golang"}, Values(s.Selected()))
	require.True(t, s.PopLast())
	require.True(t, s.PopLast())
	assert.Empty(t, s.Selected())
	assert.False(t, s.PopLast(), "popping an empty selection is a no-op")
}

func TestPopLastIgnoredWhileBufferHasText(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	require.True(t, s.Select("security"))
	s.SetBuffer("go")

	assert.False(t, s.PopLast())
	assert.Len(t, s.Selected(), 1)
}

func TestCommitBufferWhitespaceIsNoop(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	s.SetBuffer("   ")

	commit := s.CommitBuffer()

	assert.Nil(t, commit.Selected)
	assert.Nil(t, commit.Pending)
	assert.Empty(t, s.Selected())
}

func TestCommitBufferMatchingCandidateSelectsIt(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	s.SetBuffer("  Golang ")

	commit := s.CommitBuffer()

	require.NotNil(t, commit.Selected)
	assert.Equal(t, "golang", commit.Selected.Value)
	assert.Empty(t, s.Buffer())
}

func TestCommitBufferUnknownKeywordYieldsPendingRegistration(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	s.SetBuffer("  Rust ")

	commit := s.CommitBuffer()

	require.NotNil(t, commit.Pending)
	assert.Equal(t, "rust", commit.Pending.Value)
	assert.Equal(t, "Rust", commit.Pending.Label)
	// Registration has not happened yet: state unchanged, buffer kept so a
	// failed remote call loses nothing.
	assert.Empty(t, s.Selected())
	assert.Equal(t, "  Rust ", s.Buffer())
}

func TestApplyRegisteredAppendsToCatalogAndSelectionOnce(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	s.SetBuffer("Rust")
	commit := s.CommitBuffer()
	require.NotNil(t, commit.Pending)

	s.ApplyRegistered(*commit.Pending)

	assert.Empty(t, s.Buffer())
	catalogCount := 0
	for _, k := range s.Catalog() {
		if k.Value == "rust" {
			catalogCount++
		}
	}
	selectedCount := 0
	for _, k := range s.Selected() {
		if k.Value == "rust" {
			selectedCount++
		}
	}
	assert.Equal(t, 1, catalogCount, "registered keyword appears in catalog exactly once")
	assert.Equal(t, 1, selectedCount, "registered keyword appears in selection exactly once")

	// Re-applying must not duplicate either list.
	s.ApplyRegistered(*commit.Pending)
	assert.Len(t, s.Selected(), 1)
}

func TestCloseKeepsSelection(t *testing.T) {
	s := NewSelector(catalogFixture(), nil)
	require.True(t, s.Select("api"))
	s.SetBuffer("x")
	require.True(t, s.IsOpen())

	s.Close()

	assert.False(t, s.IsOpen())
	assert.Len(t, s.Selected(), 1)
	assert.Equal(t, "x", s.Buffer())
}

func TestNewLowercasesTrimmedLabel(t *testing.T) {
	k, err := New("  Smart Contracts ")

	require.NoError(t, err)
	assert.Equal(t, "smart contracts", k.Value)
	assert.Equal(t, "Smart Contracts", k.Label)

	_, err = New("   ")
	assert.Error(t, err)
}
