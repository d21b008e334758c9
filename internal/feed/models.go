package feed

import (
	"time"

	"github.com/google/uuid"
)

// User is the author projection embedded in every feed post
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

// Post is a feed entry as seen by one viewer. LikeCount is a live
// aggregate over the likes relation and LikedByMe is computed per
// request; neither is stored on the post row.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int64     `json:"like_count"`
	LikedByMe bool      `json:"liked_by_me"`
	User      User      `json:"user"`
}

// Page is one fetch result. NextCursor is nil on the terminal page.
type Page struct {
	Posts      []Post  `json:"posts"`
	NextCursor *Cursor `json:"next_cursor,omitempty"`
}

// FilterKind selects the feed variant
type FilterKind int

const (
	// FilterAll is the unfiltered global feed
	FilterAll FilterKind = iota
	// FilterFollowing restricts the feed to authors the viewer follows
	FilterFollowing
	// FilterByAuthor restricts the feed to a single author (profile feed)
	FilterByAuthor
)

// Filter identifies a feed variant. It is a comparable value type so it
// doubles as the cache partition key: two logically equal filters always
// compare equal.
type Filter struct {
	Kind     FilterKind
	AuthorID uuid.UUID
}

// AllPosts returns the unfiltered feed filter
func AllPosts() Filter {
	return Filter{Kind: FilterAll}
}

// FollowingOnly returns the following-only feed filter
func FollowingOnly() Filter {
	return Filter{Kind: FilterFollowing}
}

// ByAuthor returns the profile feed filter for a single author
func ByAuthor(authorID uuid.UUID) Filter {
	return Filter{Kind: FilterByAuthor, AuthorID: authorID}
}
