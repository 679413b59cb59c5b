package redgifs

import (
	"fmt"
	"time"

	"github.com/scrazzz/redgifs-go/tags"
)

// watchURLTemplate derives the canonical watch-page URL for a media item.
// The remote does not transmit it; it is synthesized from the item ID.
const watchURLTemplate = "https://www.redgifs.com/watch/%s"

func webURL(id string) string {
	return fmt.Sprintf(watchURLTemplate, id)
}

type fieldCheck struct {
	name    string
	present bool
}

// requireFields reports the first missing required key as a *ParseError.
// Missing keys are never silently defaulted; a hole here means the remote
// schema changed and must surface.
func requireFields(checks []fieldCheck) error {
	for _, c := range checks {
		if !c.present {
			return &ParseError{Field: c.name}
		}
	}
	return nil
}

// parseGIF converts one wire gif object into a GIF model.
func parseGIF(p *gifPayload) (*GIF, error) {
	if p == nil {
		return nil, &ParseError{Field: "gif"}
	}

	if err := requireFields([]fieldCheck{
		{"id", p.ID != nil},
		{"createDate", p.CreateDate != nil},
		{"hasAudio", p.HasAudio != nil},
		{"width", p.Width != nil},
		{"height", p.Height != nil},
		{"likes", p.Likes != nil},
		{"tags", p.Tags != nil},
		{"verified", p.Verified != nil},
		{"views", p.Views != nil},
		{"duration", p.Duration != nil},
		{"published", p.Published != nil},
		{"urls", p.URLs != nil},
		{"userName", p.UserName != nil},
		{"type", p.Type != nil},
		{"avgColor", p.AvgColor != nil},
	}); err != nil {
		return nil, err
	}

	urls, err := parseURLs(p.URLs, *p.ID)
	if err != nil {
		return nil, err
	}

	return &GIF{
		ID:         *p.ID,
		CreateDate: time.Unix(*p.CreateDate, 0).UTC(),
		HasAudio:   *p.HasAudio,
		Verified:   *p.Verified,
		Width:      *p.Width,
		Height:     *p.Height,
		Likes:      *p.Likes,
		Views:      *p.Views,
		Duration:   *p.Duration,
		Published:  *p.Published,
		Tags:       p.Tags,
		Username:   *p.UserName,
		Type:       *p.Type,
		AvgColor:   *p.AvgColor,
		URLs:       *urls,
	}, nil
}

func parseURLs(p *urlsPayload, id string) (*URLSet, error) {
	if err := requireFields([]fieldCheck{
		{"urls.sd", p.SD != nil},
		{"urls.hd", p.HD != nil},
		{"urls.poster", p.Poster != nil},
		{"urls.thumbnail", p.Thumbnail != nil},
		{"urls.vthumbnail", p.VThumbnail != nil},
	}); err != nil {
		return nil, err
	}

	return &URLSet{
		SD:         *p.SD,
		HD:         *p.HD,
		Poster:     *p.Poster,
		Thumbnail:  *p.Thumbnail,
		VThumbnail: *p.VThumbnail,
		Web:        webURL(id),
	}, nil
}

func parseGIFList(payloads []gifPayload) ([]GIF, error) {
	gifs := make([]GIF, 0, len(payloads))
	for i := range payloads {
		g, err := parseGIF(&payloads[i])
		if err != nil {
			return nil, err
		}
		gifs = append(gifs, *g)
	}
	return gifs, nil
}

// parseSearch converts a search page, keeping the resolved query token and
// the pagination metadata verbatim and the items in original order.
func parseSearch(searched tags.Tag, resp *searchResponse) (*SearchResult, error) {
	if err := requireFields([]fieldCheck{
		{"page", resp.Page != nil},
		{"pages", resp.Pages != nil},
		{"total", resp.Total != nil},
		{"gifs", resp.GIFs != nil},
	}); err != nil {
		return nil, err
	}

	gifs, err := parseGIFList(resp.GIFs)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Searched: searched,
		GIFs:     gifs,
		Page:     *resp.Page,
		Pages:    *resp.Pages,
		Total:    *resp.Total,
	}, nil
}

func parseImageSearch(searched tags.Tag, resp *imageSearchResponse) (*SearchResult, error) {
	if err := requireFields([]fieldCheck{
		{"page", resp.Page != nil},
		{"pages", resp.Pages != nil},
		{"total", resp.Total != nil},
		{"images", resp.Images != nil},
	}); err != nil {
		return nil, err
	}

	gifs, err := parseGIFList(resp.Images)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Searched: searched,
		GIFs:     gifs,
		Page:     *resp.Page,
		Pages:    *resp.Pages,
		Total:    *resp.Total,
	}, nil
}

func parseCreatorProfile(p *creatorPayload) (*CreatorProfile, error) {
	if err := requireFields([]fieldCheck{
		{"username", p.Username != nil},
		{"name", p.Name != nil},
		{"verified", p.Verified != nil},
		{"followers", p.Followers != nil},
		{"following", p.Following != nil},
		{"gifs", p.Gifs != nil},
		{"profileImageUrl", p.ProfileImageURL != nil},
		{"profileUrl", p.ProfileURL != nil},
	}); err != nil {
		return nil, err
	}

	return &CreatorProfile{
		Username:        *p.Username,
		Name:            *p.Name,
		Verified:        *p.Verified,
		Followers:       *p.Followers,
		Following:       *p.Following,
		GIFCount:        *p.Gifs,
		ProfileImageURL: *p.ProfileImageURL,
		ProfileURL:      *p.ProfileURL,
	}, nil
}

func parseCreator(resp *creatorSearchResponse) (*CreatorResult, error) {
	if err := requireFields([]fieldCheck{
		{"creator", resp.Creator != nil},
		{"page", resp.Page != nil},
		{"pages", resp.Pages != nil},
		{"total", resp.Total != nil},
		{"gifs", resp.GIFs != nil},
	}); err != nil {
		return nil, err
	}

	creator, err := parseCreatorProfile(resp.Creator)
	if err != nil {
		return nil, err
	}

	gifs, err := parseGIFList(resp.GIFs)
	if err != nil {
		return nil, err
	}

	return &CreatorResult{
		Creator: *creator,
		GIFs:    gifs,
		Page:    *resp.Page,
		Pages:   *resp.Pages,
		Total:   *resp.Total,
	}, nil
}

func parseCreators(resp *creatorsSearchResponse) (*CreatorsResult, error) {
	if err := requireFields([]fieldCheck{
		{"items", resp.Items != nil},
		{"page", resp.Page != nil},
		{"pages", resp.Pages != nil},
		{"total", resp.Total != nil},
	}); err != nil {
		return nil, err
	}

	creators := make([]CreatorProfile, 0, len(resp.Items))
	for i := range resp.Items {
		c, err := parseCreatorProfile(&resp.Items[i])
		if err != nil {
			return nil, err
		}
		creators = append(creators, *c)
	}

	return &CreatorsResult{
		Creators: creators,
		Page:     *resp.Page,
		Pages:    *resp.Pages,
		Total:    *resp.Total,
	}, nil
}

func parseTags(resp *tagsResponse) ([]TagInfo, error) {
	if resp.Tags == nil {
		return nil, &ParseError{Field: "tags"}
	}

	out := make([]TagInfo, 0, len(resp.Tags))
	for _, t := range resp.Tags {
		if t.Name == nil {
			return nil, &ParseError{Field: "tags.name"}
		}
		info := TagInfo{Name: *t.Name}
		if t.Count != nil {
			info.Count = *t.Count
		}
		out = append(out, info)
	}
	return out, nil
}
