package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v43/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/labelbot/internal/goorderr"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	restClt := github.NewClient(srv.Client())
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	restClt.BaseURL = baseURL

	return &Client{
		restClt: restClt,
		logger:  zap.L(),
	}
}

func TestListLabelsFollowsPagination(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	var reqCnt int
	var clt *Client

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/issues/42/labels", func(w http.ResponseWriter, r *http.Request) {
		reqCnt++
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name":"RTM"}]`)
			return
		}

		next := *clt.restClt.BaseURL
		next.Path = "/repos/org/repo/issues/42/labels"
		next.RawQuery = "page=2&per_page=100"
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next.String()))
		fmt.Fprint(w, `[{"name":"pending author"},{"name":"review required"}]`)
	})

	clt = newTestClient(t, mux)

	labels, err := clt.ListLabels(context.Background(), "org", "repo", 42)
	require.NoError(t, err)
	assert.Equal(t, []Label{{Name: "pending author"}, {Name: "review required"}, {Name: "RTM"}}, labels)
	assert.Equal(t, 2, reqCnt)
}

func TestRemoveLabelSendsEscapedLabel(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	var gotMethod, gotPath string
	clt := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))

	err := clt.RemoveLabel(context.Background(), "org", "repo", 42, "pending author")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/repos/org/repo/issues/42/labels/pending author", gotPath)
}

func TestAddLabelRejectsEmptyLabel(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("unexpected api request")
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := clt.AddLabel(context.Background(), "org", "repo", 42, "")
	require.Error(t, err)

	var remoteErr *goorderr.RemoteError
	assert.ErrorAs(t, err, &remoteErr)
}

func TestServerErrorsAreRetryable(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	err := clt.AddLabel(context.Background(), "org", "repo", 42, "review required")
	require.Error(t, err)

	var remoteErr *goorderr.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "add label", remoteErr.Op)

	var retryableErr *goorderr.RetryableError
	assert.ErrorAs(t, err, &retryableErr)
}

func TestNotFoundIsNotRetryable(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))

	_, err := clt.ListLabels(context.Background(), "org", "repo", 42)
	require.Error(t, err)

	var remoteErr *goorderr.RemoteError
	require.ErrorAs(t, err, &remoteErr)

	var retryableErr *goorderr.RetryableError
	assert.False(t, errors.As(err, &retryableErr))
}
