package redgifs

// Wire payloads for the v2 API. Remote keys are camelCase and differ from
// the in-memory model names; this file is the mapping table and must track
// the remote schema. Required fields are pointers so the parser can tell a
// missing key apart from a zero value.

type gifPayload struct {
	ID         *string      `json:"id"`
	CreateDate *int64       `json:"createDate"`
	HasAudio   *bool        `json:"hasAudio"`
	Width      *int         `json:"width"`
	Height     *int         `json:"height"`
	Likes      *int         `json:"likes"`
	Tags       []string     `json:"tags"`
	Verified   *bool        `json:"verified"`
	Views      *int         `json:"views"`
	Duration   *float64     `json:"duration"`
	Published  *bool        `json:"published"`
	URLs       *urlsPayload `json:"urls"`
	UserName   *string      `json:"userName"`
	Type       *int         `json:"type"`
	AvgColor   *string      `json:"avgColor"`
}

type urlsPayload struct {
	SD         *string `json:"sd"`
	HD         *string `json:"hd"`
	Poster     *string `json:"poster"`
	Thumbnail  *string `json:"thumbnail"`
	VThumbnail *string `json:"vthumbnail"`
}

type getGIFResponse struct {
	GIF *gifPayload `json:"gif"`
}

type searchResponse struct {
	Page  *int         `json:"page"`
	Pages *int         `json:"pages"`
	Total *int         `json:"total"`
	GIFs  []gifPayload `json:"gifs"`
}

type imageSearchResponse struct {
	Page   *int         `json:"page"`
	Pages  *int         `json:"pages"`
	Total  *int         `json:"total"`
	Images []gifPayload `json:"images"`
}

type creatorPayload struct {
	Username        *string `json:"username"`
	Name            *string `json:"name"`
	Verified        *bool   `json:"verified"`
	Followers       *int    `json:"followers"`
	Following       *int    `json:"following"`
	Gifs            *int    `json:"gifs"`
	ProfileImageURL *string `json:"profileImageUrl"`
	ProfileURL      *string `json:"profileUrl"`
}

type creatorSearchResponse struct {
	Creator *creatorPayload `json:"creator"`
	Page    *int            `json:"page"`
	Pages   *int            `json:"pages"`
	Total   *int            `json:"total"`
	GIFs    []gifPayload    `json:"gifs"`
}

type creatorsSearchResponse struct {
	Items []creatorPayload `json:"items"`
	Page  *int             `json:"page"`
	Pages *int             `json:"pages"`
	Total *int             `json:"total"`
}

type tagsResponse struct {
	Tags []tagPayload `json:"tags"`
}

type tagPayload struct {
	Name  *string `json:"name"`
	Count *int    `json:"count"`
}

type tagSuggestionsResponse []struct {
	Text *string `json:"text"`
}

type temporaryAuthResponse struct {
	Token   *string `json:"token"`
	Addr    *string `json:"addr"`
	Agent   *string `json:"agent"`
	Session *string `json:"session"`
}

type loginResponse struct {
	Token *string `json:"token"`
}

type authErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
