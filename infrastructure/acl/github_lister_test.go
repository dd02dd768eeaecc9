package acl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListForUserTranslatesAndSkipsForks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"full_name":"octocat/widget","description":"A widget","html_url":"https://github.com/octocat/widget","private":false,"fork":false},
			{"full_name":"octocat/forked","html_url":"https://github.com/octocat/forked","fork":true}
		]`))
	}))
	defer server.Close()

	lister := NewGitHubLister(server.URL, zap.NewNop())
	repos, err := lister.ListForUser(context.Background(), "octocat")
	require.NoError(t, err)

	require.Len(t, repos, 1)
	assert.Equal(t, "octocat/widget", repos[0].FullName)
	assert.Equal(t, "A widget", repos[0].Description)
	assert.False(t, repos[0].Private)
}

func TestListForUserUnknownUserYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	lister := NewGitHubLister(server.URL, zap.NewNop())
	repos, err := lister.ListForUser(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestListForUserServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	lister := NewGitHubLister(server.URL, zap.NewNop())
	_, err := lister.ListForUser(context.Background(), "octocat")
	assert.Error(t, err)
}
