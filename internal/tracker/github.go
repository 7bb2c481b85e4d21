package tracker

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/config"
)

// GitHubClient implements IssueTracker against the GitHub issues REST API.
type GitHubClient struct {
	client *resty.Client
	owner  string
	repo   string
	logger *zap.Logger
}

type githubIssue struct {
	HTMLURL string `json:"html_url"`
	Number  int    `json:"number"`
	State   string `json:"state"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

type createIssueRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type patchIssueRequest struct {
	State string `json:"state"`
}

// NewGitHubClient builds a client from configuration. cfg.Repo is the
// "owner/name" slug.
func NewGitHubClient(cfg config.TrackerConfig, logger *zap.Logger) (*GitHubClient, error) {
	owner, repo, ok := strings.Cut(cfg.Repo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid GITHUB_REPO %q: expected owner/name", cfg.Repo)
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.Token).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/vnd.github.v3+json").
		SetHeader("Content-Type", "application/json")

	return &GitHubClient{client: client, owner: owner, repo: repo, logger: logger}, nil
}

// CreateIssue opens a new issue and returns its URL and number.
func (g *GitHubClient) CreateIssue(ctx context.Context, title, body string) (*Issue, error) {
	var issue githubIssue
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(createIssueRequest{Title: title, Body: body}).
		SetResult(&issue).
		Post(fmt.Sprintf("/repos/%s/%s/issues", g.owner, g.repo))
	if err != nil {
		g.logger.Error("tracker create issue failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		g.logger.Error("tracker create issue rejected",
			zap.Int("status", resp.StatusCode()), zap.String("body", resp.String()))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	if issue.HTMLURL == "" || issue.Number == 0 {
		return nil, fmt.Errorf("%w: missing url or number", ErrInvalidResponse)
	}
	g.logger.Info("tracker issue created",
		zap.Int("number", issue.Number), zap.String("url", issue.HTMLURL))
	return issue.toDomain(), nil
}

// CloseIssue transitions the issue to the closed state.
func (g *GitHubClient) CloseIssue(ctx context.Context, number int) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(patchIssueRequest{State: "closed"}).
		Patch(fmt.Sprintf("/repos/%s/%s/issues/%d", g.owner, g.repo, number))
	if err != nil {
		g.logger.Error("tracker close issue failed", zap.Int("number", number), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		g.logger.Error("tracker close issue rejected",
			zap.Int("number", number), zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	g.logger.Info("tracker issue closed", zap.Int("number", number))
	return nil
}

// GetIssue fetches a read-only snapshot of the issue.
func (g *GitHubClient) GetIssue(ctx context.Context, number int) (*Issue, error) {
	var issue githubIssue
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&issue).
		Get(fmt.Sprintf("/repos/%s/%s/issues/%d", g.owner, g.repo, number))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: issue %d", ErrIssueNotFound, number)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	return issue.toDomain(), nil
}

func (i githubIssue) toDomain() *Issue {
	return &Issue{
		URL:    i.HTMLURL,
		Number: i.Number,
		State:  i.State,
		Title:  i.Title,
		Body:   i.Body,
	}
}
