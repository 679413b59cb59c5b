package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// downloadOne resolves a redgifs URL to its HD media file and streams it to
// the current directory. Watch-page URLs ("/watch/<id>") are looked up via
// the API first; direct media links are fetched as-is.
func downloadOne(ctx context.Context, rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if !strings.Contains(strings.ToLower(u.Host), "redgifs") {
		return fmt.Errorf("%q is not a redgifs URL", rawURL)
	}

	mediaURL := rawURL
	if id, ok := watchID(u); ok {
		logger.Info().Str("id", id).Msg("Resolving watch page")
		gif, err := client.GetGIF(ctx, id)
		if err != nil {
			return err
		}
		mediaURL = gif.URLs.HD
	}

	fileName, err := fileNameFromURL(mediaURL)
	if err != nil {
		return err
	}

	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", fileName, err)
	}
	defer f.Close()

	bar := progressbar.DefaultBytes(-1, fileName)
	defer bar.Close()

	written, err := client.Download(ctx, mediaURL, io.MultiWriter(f, bar))
	if err != nil {
		return err
	}

	logger.Info().Str("file", fileName).Int64("bytes", written).Msg("Downloaded")
	fmt.Printf("\nDownloaded: %s\n", fileName)
	return nil
}

// downloadList downloads every URL in the file, one per line. A failing line
// is reported and skipped; it does not abort the remaining lines.
func downloadList(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := downloadOne(ctx, line); err != nil {
			logger.Error().Err(err).Str("url", line).Msg("Download failed, continuing")
		}
	}

	return scanner.Err()
}

// watchID extracts the media ID from a watch-page URL.
func watchID(u *url.URL) (string, bool) {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "watch" && parts[len(parts)-1] != "" {
		return parts[len(parts)-1], true
	}
	return "", false
}

// fileNameFromURL derives the output filename from the media URL path.
func fileNameFromURL(mediaURL string) (string, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return "", fmt.Errorf("invalid media URL %q: %w", mediaURL, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	name := parts[len(parts)-1]
	if name == "" {
		return "", fmt.Errorf("cannot derive a filename from %q", mediaURL)
	}
	return name, nil
}
