package redgifs

import (
	"time"

	"github.com/scrazzz/redgifs-go/tags"
)

// URLSet holds every quality variant of one media item. A URLSet is either
// fully populated or the parse fails; Web is derived from the item ID, not
// transmitted by the remote.
type URLSet struct {
	SD         string
	HD         string
	Poster     string
	Thumbnail  string
	VThumbnail string
	Web        string
}

// GIF is one media item as returned by the remote API. Values are built only
// by the response parser and are never mutated afterwards.
type GIF struct {
	ID         string
	CreateDate time.Time
	HasAudio   bool
	Verified   bool
	Width      int
	Height     int
	Likes      int
	Views      int
	Duration   float64
	Published  bool
	Tags       []string
	Username   string
	Type       int
	AvgColor   string
	URLs       URLSet
}

// SearchResult is one page of a media search.
type SearchResult struct {
	Searched tags.Tag
	GIFs     []GIF
	Page     int
	Pages    int
	Total    int
}

// CreatorProfile describes one content creator.
type CreatorProfile struct {
	Username        string
	Name            string
	Verified        bool
	Followers       int
	Following       int
	GIFCount        int
	ProfileImageURL string
	ProfileURL      string
}

// CreatorResult is one page of a single creator's media.
type CreatorResult struct {
	Creator CreatorProfile
	GIFs    []GIF
	Page    int
	Pages   int
	Total   int
}

// CreatorsResult is one page of a creator search.
type CreatorsResult struct {
	Creators []CreatorProfile
	Page     int
	Pages    int
	Total    int
}

// TagInfo is one vocabulary entry as reported by the tag-listing endpoints.
type TagInfo struct {
	Name  string
	Count int
}
