package redgifs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// downloadChunkSize is the buffer used for streamed media transfers.
const downloadChunkSize = 1 << 20 // 1 MiB

// Download streams the media file at rawURL into w in 1 MiB chunks and
// returns the total number of bytes written. The URL must point at a redgifs
// host. If the surrounding context is cancelled mid-transfer the destination
// is left partially written; transfers are not atomic or resumable.
func (c *Client) Download(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	if c.isClosed() {
		return 0, ErrClosed
	}
	if c.Credential() == nil {
		return 0, ErrNotLoggedIn
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("invalid download URL %q: %w", rawURL, err)
	}
	if !isRedgifsHost(u.Host) && !c.isAPIHost(u.Host) {
		return 0, fmt.Errorf("%q: %w", rawURL, ErrInvalidHost)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.attachHeaders(req)

	c.logger.Debug().Str("url", rawURL).Msg("Starting media download")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &RequestError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &HTTPError{StatusCode: resp.StatusCode, Path: u.Path}
	}

	written, err := io.CopyBuffer(w, resp.Body, make([]byte, downloadChunkSize))
	if err != nil {
		return written, &RequestError{URL: rawURL, Err: err}
	}

	c.logger.Debug().Int64("bytes", written).Str("url", rawURL).Msg("Download complete")

	return written, nil
}

// DownloadToFile streams the media file at rawURL to the given path,
// overwriting any existing file, and returns the byte count written.
func (c *Client) DownloadToFile(ctx context.Context, rawURL, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	written, err := c.Download(ctx, rawURL, f)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	return written, err
}

// isAPIHost reports whether host matches the configured API base URL. This
// keeps downloads working against a non-production base URL.
func (c *Client) isAPIHost(host string) bool {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return base.Host != "" && strings.EqualFold(base.Host, host)
}

func isRedgifsHost(host string) bool {
	host = strings.ToLower(host)
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host == "redgifs.com" || strings.HasSuffix(host, ".redgifs.com")
}
