package redgifs

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/scrazzz/redgifs-go/tags"
)

// Future is the pending result of a non-blocking call. Wait may be called
// any number of times; once the call completes every Wait returns the same
// value.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Wait blocks until the result is available or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AsyncClient exposes the same operations as Client without blocking the
// caller: each call starts immediately and returns a Future. Given identical
// server responses both surfaces produce identical result models, because
// AsyncClient delegates to the same request, parse and model code.
//
// Do not share one AsyncClient across goroutines that race Close against
// in-flight calls started elsewhere.
type AsyncClient struct {
	client *Client
	wg     sync.WaitGroup
}

// NewAsyncClient creates the non-blocking variant of the client. It accepts
// the same options as NewClient.
func NewAsyncClient(logger zerolog.Logger, opts ...Option) (*AsyncClient, error) {
	client, err := NewClient(logger, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{client: client}, nil
}

// run dispatches fn on its own goroutine and exposes it as a Future.
func run[T any](a *AsyncClient, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		f.val, f.err = fn()
		close(f.done)
	}()
	return f
}

// Login acquires the session credential. See Client.Login.
func (a *AsyncClient) Login(ctx context.Context, username, password string) *Future[struct{}] {
	return run(a, func() (struct{}, error) {
		return struct{}{}, a.client.Login(ctx, username, password)
	})
}

// GetGIF fetches details of a single media item by its ID.
func (a *AsyncClient) GetGIF(ctx context.Context, id string) *Future[*GIF] {
	return run(a, func() (*GIF, error) { return a.client.GetGIF(ctx, id) })
}

// Search looks up media matching the query. See Client.Search.
func (a *AsyncClient) Search(ctx context.Context, query tags.Query, opts SearchOptions) *Future[*SearchResult] {
	return run(a, func() (*SearchResult, error) { return a.client.Search(ctx, query, opts) })
}

// SearchGIFs is an alias for Search, kept for compatibility.
func (a *AsyncClient) SearchGIFs(ctx context.Context, query tags.Query, opts SearchOptions) *Future[*SearchResult] {
	return a.Search(ctx, query, opts)
}

// SearchImage looks up still images. See Client.SearchImage.
func (a *AsyncClient) SearchImage(ctx context.Context, query tags.Query, opts SearchOptions) *Future[*SearchResult] {
	return run(a, func() (*SearchResult, error) { return a.client.SearchImage(ctx, query, opts) })
}

// SearchCreator fetches one creator's profile and a page of their media.
func (a *AsyncClient) SearchCreator(ctx context.Context, username string, opts SearchOptions) *Future[*CreatorResult] {
	return run(a, func() (*CreatorResult, error) { return a.client.SearchCreator(ctx, username, opts) })
}

// SearchUser is an alias for SearchCreator, kept for compatibility.
func (a *AsyncClient) SearchUser(ctx context.Context, username string, opts SearchOptions) *Future[*CreatorResult] {
	return a.SearchCreator(ctx, username, opts)
}

// SearchCreators searches content creators.
func (a *AsyncClient) SearchCreators(ctx context.Context, opts CreatorSearchOptions) *Future[*CreatorsResult] {
	return run(a, func() (*CreatorsResult, error) { return a.client.SearchCreators(ctx, opts) })
}

// GetTags lists every tag known to the remote API.
func (a *AsyncClient) GetTags(ctx context.Context) *Future[[]TagInfo] {
	return run(a, func() ([]TagInfo, error) { return a.client.GetTags(ctx) })
}

// GetTrendingTags lists the currently trending tags.
func (a *AsyncClient) GetTrendingTags(ctx context.Context) *Future[[]TagInfo] {
	return run(a, func() ([]TagInfo, error) { return a.client.GetTrendingTags(ctx) })
}

// FetchTagSuggestions returns tag completions for a partial query.
func (a *AsyncClient) FetchTagSuggestions(ctx context.Context, query string) *Future[[]string] {
	return run(a, func() ([]string, error) { return a.client.FetchTagSuggestions(ctx, query) })
}

// Download streams a media file into w. See Client.Download.
func (a *AsyncClient) Download(ctx context.Context, rawURL string, w io.Writer) *Future[int64] {
	return run(a, func() (int64, error) { return a.client.Download(ctx, rawURL, w) })
}

// DownloadToFile streams a media file to the given path, overwriting it.
func (a *AsyncClient) DownloadToFile(ctx context.Context, rawURL, path string) *Future[int64] {
	return run(a, func() (int64, error) { return a.client.DownloadToFile(ctx, rawURL, path) })
}

// Close waits for in-flight calls and releases the network session. Like
// Client.Close it is idempotent.
func (a *AsyncClient) Close() error {
	a.wg.Wait()
	return a.client.Close()
}
