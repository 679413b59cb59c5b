package redgifs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrazzz/redgifs-go/tags"
)

// registerTemporaryAuth installs the anonymous-session endpoint on a test mux.
func registerTemporaryAuth(mux *http.ServeMux) {
	mux.HandleFunc("/v2/auth/temporary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"token":   "temp-token",
			"addr":    "203.0.113.7",
			"agent":   "test-agent",
			"session": "session-1",
		})
	})
}

// newLoggedInClient builds a client against the test mux and logs in
// anonymously.
func newLoggedInClient(t *testing.T, mux *http.ServeMux) (*Client, *httptest.Server) {
	t.Helper()

	registerTemporaryAuth(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "", ""))

	return client, server
}

func TestLoginAnonymous(t *testing.T) {
	mux := http.NewServeMux()
	client, _ := newLoggedInClient(t, mux)

	cred := client.Credential()
	require.NotNil(t, cred)
	assert.Equal(t, "temp-token", cred.Token)
	assert.Equal(t, "203.0.113.7", cred.Addr)
	assert.Equal(t, "test-agent", cred.Agent)
	assert.Equal(t, "session-1", cred.Session)
	assert.False(t, cred.IssuedAt.IsZero())
}

func TestLoginUpgradesToUserToken(t *testing.T) {
	mux := http.NewServeMux()
	registerTemporaryAuth(mux)
	mux.HandleFunc("/v2/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer temp-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "hunter2", body["password"])

		json.NewEncoder(w).Encode(map[string]string{"token": "user-token"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "alice", "hunter2"))

	cred := client.Credential()
	require.NotNil(t, cred)
	assert.Equal(t, "user-token", cred.Token)
	// Identity fields from the anonymous step are kept.
	assert.Equal(t, "test-agent", cred.Agent)
}

func TestLoginRejectedCredentials(t *testing.T) {
	mux := http.NewServeMux()
	registerTemporaryAuth(mux)
	mux.HandleFunc("/v2/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "wrong password"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	err = client.Login(context.Background(), "alice", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, "wrong password", authErr.Message)

	// The failed upgrade must not leave a half-installed credential.
	assert.Nil(t, client.Credential())
}

func TestLoginNetworkFailure(t *testing.T) {
	client, err := NewClient(zerolog.Nop(), WithBaseURL("http://127.0.0.1:1"))
	require.NoError(t, err)

	err = client.Login(context.Background(), "", "")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestOperationsRequireLogin(t *testing.T) {
	client, err := NewClient(zerolog.Nop(), WithBaseURL("http://127.0.0.1:1"))
	require.NoError(t, err)

	_, err = client.GetGIF(context.Background(), "abc123")
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestGetGIF(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/gifs/abc123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer temp-token", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "session-1", r.Header.Get("X-Session"))
		w.Write([]byte(`{"gif": ` + gifJSON + `}`))
	})

	client, _ := newLoggedInClient(t, mux)

	gif, err := client.GetGIF(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", gif.ID)
	assert.Equal(t, "https://www.redgifs.com/watch/abc123", gif.URLs.Web)
}

func TestGetGIFNotFoundNoRetry(t *testing.T) {
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/gifs/missing", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	client, _ := newLoggedInClient(t, mux)

	_, err := client.GetGIF(context.Background(), "missing")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "/v2/gifs/missing", httpErr.Path)
	assert.True(t, httpErr.IsNotFound())

	assert.Equal(t, int32(1), calls.Load(), "a non-2xx response must not be retried")
}

func TestUndecodableBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/gifs/broken", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	client, _ := newLoggedInClient(t, mux)

	_, err := client.GetGIF(context.Background(), "broken")
	var formatErr *ResponseFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, http.StatusOK, formatErr.StatusCode)
	assert.Contains(t, formatErr.Snippet, "not json")
}

func TestSearchResolvesFreeText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/gifs/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Sunset", q.Get("search_text"))
		assert.Equal(t, "recent", q.Get("order"))
		assert.Equal(t, "80", q.Get("count"))
		assert.Equal(t, "1", q.Get("page"))
		w.Write([]byte(`{"page": 1, "pages": 1, "total": 1, "gifs": [` + gifJSON + `]}`))
	})

	client, _ := newLoggedInClient(t, mux)

	result, err := client.Search(context.Background(), tags.Raw("sunsett"), SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, tags.Tag("Sunset"), result.Searched)
	require.Len(t, result.GIFs, 1)
}

func TestSearchUsesEnumeratedTagVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/gifs/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Snowboarding", r.URL.Query().Get("search_text"))
		assert.Equal(t, "trending", r.URL.Query().Get("order"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page": 2, "pages": 9, "total": 700, "gifs": []}`))
	})

	client, _ := newLoggedInClient(t, mux)

	result, err := client.Search(context.Background(), tags.Tag("Snowboarding"), SearchOptions{
		Order: tags.OrderTrending,
		Page:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 9, result.Pages)
	assert.Empty(t, result.GIFs)
}

func TestSearchImageSendsFreeTextVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/search/image", func(w http.ResponseWriter, r *http.Request) {
		// The image endpoint accepts arbitrary text: no vocabulary
		// resolution may happen.
		assert.Equal(t, "sunsett over the bay", r.URL.Query().Get("query"))
		assert.Equal(t, "trending", r.URL.Query().Get("order"))
		w.Write([]byte(`{"page": 1, "pages": 1, "total": 0, "images": []}`))
	})

	client, _ := newLoggedInClient(t, mux)

	_, err := client.SearchImage(context.Background(), tags.Raw("sunsett over the bay"), SearchOptions{})
	require.NoError(t, err)
}

func TestSearchAliases(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/gifs/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page": 1, "pages": 1, "total": 1, "gifs": [` + gifJSON + `]}`))
	})
	mux.HandleFunc("/v2/users/someuser/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"creator": ` + creatorJSON + `, "page": 1, "pages": 1, "total": 1, "gifs": []}`))
	})

	client, _ := newLoggedInClient(t, mux)
	ctx := context.Background()

	viaSearch, err := client.Search(ctx, tags.Tag("Sunset"), SearchOptions{})
	require.NoError(t, err)
	viaAlias, err := client.SearchGIFs(ctx, tags.Tag("Sunset"), SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, viaSearch, viaAlias)

	viaCreator, err := client.SearchCreator(ctx, "someuser", SearchOptions{})
	require.NoError(t, err)
	viaUser, err := client.SearchUser(ctx, "someuser", SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, viaCreator, viaUser)
}

func TestSearchCreators(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/creators/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "y", q.Get("verified"))
		assert.Equal(t, "Sunset,Nature", q.Get("tags"))
		w.Write([]byte(`{"items": [` + creatorJSON + `], "page": 1, "pages": 1, "total": 1}`))
	})

	client, _ := newLoggedInClient(t, mux)

	result, err := client.SearchCreators(context.Background(), CreatorSearchOptions{
		Verified: true,
		Tags:     []tags.Tag{"Sunset", "Nature"},
	})
	require.NoError(t, err)
	require.Len(t, result.Creators, 1)
	assert.Equal(t, "someuser", result.Creators[0].Username)
}

func TestGetTagsAndSuggestions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tags": [{"name": "Sunset", "count": 12}]}`))
	})
	mux.HandleFunc("/v2/tags/trending", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tags": [{"name": "Nature", "count": 99}]}`))
	})
	mux.HandleFunc("/v2/search/suggest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sun", r.URL.Query().Get("query"))
		w.Write([]byte(`[{"text": "Sunset"}, {"text": "Sunrise"}]`))
	})

	client, _ := newLoggedInClient(t, mux)
	ctx := context.Background()

	all, err := client.GetTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TagInfo{{Name: "Sunset", Count: 12}}, all)

	trending, err := client.GetTrendingTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TagInfo{{Name: "Nature", Count: 99}}, trending)

	suggestions, err := client.FetchTagSuggestions(ctx, "sun")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunset", "Sunrise"}, suggestions)
}

func TestCloseIsIdempotent(t *testing.T) {
	mux := http.NewServeMux()
	client, _ := newLoggedInClient(t, mux)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	// The closed state is terminal: further calls fail the same way.
	_, err := client.GetGIF(context.Background(), "abc123")
	require.ErrorIs(t, err, ErrClosed)
	_, err = client.GetGIF(context.Background(), "abc123")
	require.ErrorIs(t, err, ErrClosed)
}

func TestCloseWithoutUse(t *testing.T) {
	client, err := NewClient(zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestCloseLeavesCallerSessionOpen(t *testing.T) {
	mux := http.NewServeMux()
	registerTemporaryAuth(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	session := &http.Client{}
	client, err := NewClient(zerolog.Nop(), WithBaseURL(server.URL), WithHTTPClient(session))
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "", ""))
	require.NoError(t, client.Close())

	// The caller-supplied session is still usable after Close.
	resp, err := session.Get(server.URL + "/v2/auth/temporary")
	require.NoError(t, err)
	resp.Body.Close()
}

// newProxyStub starts an HTTP proxy that answers every absolute-form request
// with a temporary-auth payload and counts what passed through it.
func newProxyStub(t *testing.T, seen *atomic.Int32, proxyAuth *atomic.Value) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, r.URL.IsAbs(), "proxied requests must use the absolute form")
		if proxyAuth != nil {
			proxyAuth.Store(r.Header.Get("Proxy-Authorization"))
		}
		seen.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"token": "temp-token"})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProxyRoutesOwnedSession(t *testing.T) {
	var seen atomic.Int32
	var proxyAuth atomic.Value
	proxy := newProxyStub(t, &seen, &proxyAuth)

	client, err := NewClient(zerolog.Nop(),
		WithBaseURL("http://api.example.invalid"),
		WithProxy(proxy.URL, "proxyuser", "proxypass"),
	)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Login(context.Background(), "", ""))

	assert.Greater(t, seen.Load(), int32(0), "no request reached the proxy")
	assert.NotEmpty(t, proxyAuth.Load(), "proxy credentials were not forwarded")
}

func TestProxyRoutesCallerSession(t *testing.T) {
	var seen atomic.Int32
	proxy := newProxyStub(t, &seen, nil)

	session := &http.Client{}
	client, err := NewClient(zerolog.Nop(),
		WithBaseURL("http://api.example.invalid"),
		WithHTTPClient(session),
		WithProxy(proxy.URL, "", ""),
	)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Login(context.Background(), "", ""))
	assert.Greater(t, seen.Load(), int32(0), "no request reached the proxy")

	// The caller's own client is left untouched.
	assert.Nil(t, session.Transport)
}

type staticRoundTripper struct{}

func (staticRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, http.ErrNotSupported
}

func TestProxyRejectsOpaqueTransport(t *testing.T) {
	session := &http.Client{Transport: staticRoundTripper{}}
	_, err := NewClient(zerolog.Nop(),
		WithHTTPClient(session),
		WithProxy("http://127.0.0.1:3128", "", ""),
	)
	require.Error(t, err)
}

func TestSnippetKeepsRuneBoundaries(t *testing.T) {
	body := []byte(strings.Repeat("世", 120))
	require.Greater(t, len(body), snippetLimit)

	s := snippet(body)
	assert.True(t, utf8.ValidString(s))
	assert.LessOrEqual(t, len(s), snippetLimit)
	assert.NotEmpty(t, s)
}
