package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*GitHubClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGitHubClient(config.TrackerConfig{
		BaseURL:        server.URL,
		Token:          "test-token",
		Repo:           "acme/helpdesk",
		TimeoutSeconds: 2,
	}, zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func TestNewGitHubClientRejectsBadRepoSlug(t *testing.T) {
	for _, slug := range []string{"", "acme", "/helpdesk", "acme/"} {
		_, err := NewGitHubClient(config.TrackerConfig{Repo: slug}, zap.NewNop())
		assert.Error(t, err, "slug %q", slug)
	}
}

func TestCreateIssue(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody createIssueRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"html_url": "https://github.com/acme/helpdesk/issues/7",
			"number":   7,
			"state":    "open",
		})
	}))

	issue, err := client.CreateIssue(context.Background(), "Printer down", "details")
	require.NoError(t, err)
	assert.Equal(t, "/repos/acme/helpdesk/issues", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "Printer down", gotBody.Title)
	assert.Equal(t, 7, issue.Number)
	assert.Equal(t, "https://github.com/acme/helpdesk/issues/7", issue.URL)
}

func TestCreateIssueInvalidResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"state": "open"})
	}))

	_, err := client.CreateIssue(context.Background(), "t", "b")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCreateIssueServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.CreateIssue(context.Background(), "t", "b")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateIssueUnreachableHost(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.CreateIssue(context.Background(), "t", "b")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCloseIssue(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody patchIssueRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"number": 7, "state": "closed"})
	}))

	require.NoError(t, client.CloseIssue(context.Background(), 7))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/repos/acme/helpdesk/issues/7", gotPath)
	assert.Equal(t, "closed", gotBody.State)
}

func TestCloseIssueUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	assert.ErrorIs(t, client.CloseIssue(context.Background(), 7), ErrUnavailable)
}

func TestGetIssue(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/helpdesk/issues/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"html_url": "https://github.com/acme/helpdesk/issues/3",
			"number":   3,
			"state":    "open",
			"title":    "VPN flaky",
		})
	}))

	issue, err := client.GetIssue(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, issue.Number)
	assert.Equal(t, "open", issue.State)
	assert.Equal(t, "VPN flaky", issue.Title)
}

func TestGetIssueNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetIssue(context.Background(), 99)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}
