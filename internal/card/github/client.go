// Package github fetches the raw profile of a single account through the
// GitHub GraphQL API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v63/github"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	defaultRepositoryLimit = 100
	defaultLanguageLimit   = 10
)

var ErrUserNotFound = errors.New("github user not found")

// QueryError carries the errors array of a GraphQL response.
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type Client struct {
	gh        *gogithub.Client
	repoLimit int
	langLimit int
}

type Option func(*options)

type options struct {
	baseURL    *url.URL
	httpClient *http.Client
	repoLimit  int
	langLimit  int
}

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise instance. The URL must end with a slash.
func WithBaseURL(u *url.URL) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient sets the transport the oauth2 client wraps.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithRepositoryLimit(n int) Option {
	return func(o *options) { o.repoLimit = n }
}

func WithLanguageLimit(n int) Option {
	return func(o *options) { o.langLimit = n }
}

func New(token string, opts ...Option) *Client {
	o := options{
		repoLimit: defaultRepositoryLimit,
		langLimit: defaultLanguageLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx := context.Background()
	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	gh := gogithub.NewClient(oauth2.NewClient(ctx, ts))
	if o.baseURL != nil {
		gh.BaseURL = o.baseURL
	}

	return &Client{
		gh:        gh,
		repoLimit: o.repoLimit,
		langLimit: o.langLimit,
	}
}

// FetchProfile runs the profile query for login and flattens the result.
func (c *Client) FetchProfile(ctx context.Context, login string) (*models.RawProfile, error) {
	req, err := c.gh.NewRequest(http.MethodPost, "graphql", graphQLRequest{
		Query: profileQuery,
		Variables: map[string]any{
			"login": login,
			"repos": c.repoLimit,
			"langs": c.langLimit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("github: new request: %w", err)
	}

	log.Debug().Str("login", login).Msg("querying github profile")

	var out profileResponse
	resp, err := c.gh.Do(ctx, req, &out)
	if err != nil {
		return nil, fmt.Errorf("github: query profile: %w", err)
	}
	log.Debug().Str("login", login).Str("status", resp.Status).Msg("github profile response")

	if len(out.Errors) > 0 {
		qe := &QueryError{}
		for _, e := range out.Errors {
			if e.Type == "NOT_FOUND" {
				return nil, fmt.Errorf("github: %q: %w", login, ErrUserNotFound)
			}
			qe.Messages = append(qe.Messages, e.Message)
		}
		return nil, qe
	}

	if out.Data.User == nil {
		return nil, fmt.Errorf("github: %q: %w", login, ErrUserNotFound)
	}

	return toRawProfile(out.Data.User), nil
}

func toRawProfile(u *userNode) *models.RawProfile {
	repos := make([]models.RawRepo, 0, len(u.Repositories.Nodes))
	for _, n := range u.Repositories.Nodes {
		langs := make([]models.RawLanguage, 0, len(n.Languages.Edges))
		for _, e := range n.Languages.Edges {
			var color string
			if e.Node.Color != nil {
				color = *e.Node.Color
			}
			langs = append(langs, models.RawLanguage{
				Name:  e.Node.Name,
				Size:  e.Size,
				Color: color,
			})
		}
		repos = append(repos, models.RawRepo{
			StargazerCount: n.StargazerCount,
			Languages:      langs,
		})
	}

	return &models.RawProfile{
		Name:                          u.Name,
		Login:                         u.Login,
		CreatedAt:                     u.CreatedAt,
		TotalRepositories:             u.Repositories.TotalCount,
		Repositories:                  repos,
		Followers:                     u.Followers.TotalCount,
		Following:                     u.Following.TotalCount,
		PullRequests:                  u.PullRequests.TotalCount,
		Issues:                        u.Issues.TotalCount,
		Gists:                         u.Gists.TotalCount,
		CommitContributions:           u.ContributionsCollection.TotalCommitContributions,
		RestrictedCommitContributions: u.ContributionsCollection.RestrictedContributionsCount,
	}
}
