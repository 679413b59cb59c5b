// Package tags holds the fixed vocabulary of searchable RedGifs tags and
// resolves free-text queries to the closest known tag.
package tags

// Tag is one entry of the fixed search vocabulary. A Tag value is always
// used verbatim as the query token; only free text goes through Resolve.
type Tag string

// Query is the search-text input accepted by the client facade. It is a
// closed union: Raw free text which is fuzzy-resolved against the
// vocabulary, or an already-known Tag which is passed through unchanged.
type Query interface {
	// Token returns the query token to send to the remote API.
	Token() (Tag, error)
}

// Raw is caller-supplied free text. Token resolves it to the closest
// vocabulary entry.
type Raw string

// Token implements Query.
func (r Raw) Token() (Tag, error) {
	return Resolve(string(r))
}

// Token implements Query. An enumerated tag is used verbatim; no fuzzy
// matching occurs on already-validated tokens.
func (t Tag) Token() (Tag, error) {
	return t, nil
}

func (t Tag) String() string { return string(t) }

// Search-order selectors accepted by the remote API.
const (
	OrderRecent   = "recent"
	OrderTrending = "trending"
	OrderTop      = "top"
	OrderLatest   = "latest"
)

// vocabulary is the full static tag set, declaration order is significant:
// Resolve breaks score ties in favor of the earliest entry.
var vocabulary = []Tag{
	"Animals",
	"Animation",
	"Art",
	"Beach",
	"Cars",
	"Cats",
	"City",
	"Comedy",
	"Cooking",
	"Cosplay",
	"Dance",
	"Dogs",
	"Drawing",
	"Fashion",
	"Fitness",
	"Food",
	"Football",
	"Funny",
	"Gaming",
	"Gymnastics",
	"Hiking",
	"Makeup",
	"Movies",
	"Music",
	"Nature",
	"Ocean",
	"Outdoors",
	"Painting",
	"Pets",
	"Photography",
	"Running",
	"Science",
	"Skateboarding",
	"Snowboarding",
	"Space",
	"Sports",
	"Sunset",
	"Surfing",
	"Swimming",
	"Technology",
	"Travel",
	"Weather",
	"Wildlife",
	"Workout",
	"Yoga",
}

// All returns the vocabulary in declaration order. The returned slice is a
// copy; the vocabulary itself is never mutated.
func All() []Tag {
	out := make([]Tag, len(vocabulary))
	copy(out, vocabulary)
	return out
}
