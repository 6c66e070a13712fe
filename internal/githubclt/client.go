// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/go-github/v43/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/labelbot/internal/goorderr"
	"github.com/simplesurance/labelbot/internal/logfields"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

const listLabelsPerPage = 100

// Label is a label of an issue or pull request.
// Its identity is the name, names are case-sensitive.
type Label struct {
	Name string
}

// New returns a new github api client.
func New(oauthAPItoken string) *Client {
	return &Client{
		restClt: github.NewClient(newHTTPClient(oauthAPItoken)),
		logger:  zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is an github API client.
// All methods return a goorderr.RemoteError when an API call failed.
// The RemoteError wraps a goorderr.RetryableError when the operation can be
// retried. This can be e.g. the case when the API ratelimit is exceeded.
type Client struct {
	restClt *github.Client
	logger  *zap.Logger
}

// ListLabels returns all labels of an issue or pull-request.
func (clt *Client) ListLabels(ctx context.Context, owner, repo string, issueOrPRNr int) ([]Label, error) {
	var result []Label

	opts := github.ListOptions{PerPage: listLabelsPerPage}

	for {
		labels, resp, err := clt.restClt.Issues.ListLabelsByIssue(ctx, owner, repo, issueOrPRNr, &opts)
		if err != nil {
			return nil, goorderr.NewRemoteError("list labels", clt.wrapRetryableErrors(err))
		}

		for _, l := range labels {
			result = append(result, Label{Name: l.GetName()})
		}

		if resp.NextPage == 0 || len(labels) == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// AddLabel adds a label to Pull-Request or Issue.
func (clt *Client) AddLabel(ctx context.Context, owner, repo string, issueOrPRNr int, label string) error {
	if label == "" {
		// by default github removes all labels when none is provided,
		// we do not need this functionality, as safe guard fail if
		// because of a bug an empty label value is passed:
		return goorderr.NewRemoteError("add label", errors.New("provided label is empty"))
	}

	_, _, err := clt.restClt.Issues.AddLabelsToIssue(ctx, owner, repo, issueOrPRNr, []string{label})
	if err != nil {
		return goorderr.NewRemoteError("add label", clt.wrapRetryableErrors(err))
	}

	clt.logger.Debug("label added",
		logfields.Event("github_label_added"),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Issue(issueOrPRNr),
		logfields.Label(label),
	)

	return nil
}

// RemoveLabel removes a label from a Pull-Request or issue.
func (clt *Client) RemoveLabel(ctx context.Context, owner, repo string, issueOrPRNr int, label string) error {
	_, err := clt.restClt.Issues.RemoveLabelForIssue(ctx, owner, repo, issueOrPRNr, label)
	if err != nil {
		return goorderr.NewRemoteError("remove label", clt.wrapRetryableErrors(err))
	}

	clt.logger.Debug("label removed",
		logfields.Event("github_label_removed"),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Issue(issueOrPRNr),
		logfields.Label(label),
	)

	return nil
}

func (clt *Client) wrapRetryableErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return goorderr.NewRetryableError(err, v.Rate.Reset.Time)

	case *github.AbuseRateLimitError:
		if v.RetryAfter != nil {
			clt.logger.Info(
				"secondary rate limit exceeded",
				logfields.Event("github_api_secondary_rate_limit_exceeded"),
				zap.Duration("github_api_retry_after", *v.RetryAfter),
			)

			return goorderr.NewRetryableError(err, time.Now().Add(*v.RetryAfter))
		}

		clt.logger.Info(
			"secondary rate limit exceeded",
			logfields.Event("github_api_secondary_rate_limit_exceeded"),
		)

		return goorderr.NewRetryableAnytimeError(err)

	case *github.ErrorResponse:
		if v.Response != nil && v.Response.StatusCode >= 500 && v.Response.StatusCode < 600 {
			return goorderr.NewRetryableAnytimeError(err)
		}
	}

	return err
}
