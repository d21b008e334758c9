// Package feedcache keeps previously fetched feed pages addressable by
// filter so local mutations (likes, new posts) can be reflected in every
// open feed without a network round trip.
//
// The store is mutated only from discrete UI-driven events which the
// host serializes, so it carries no locking; correctness comes from
// rebuild-and-replace semantics instead. A snapshot handed out before a
// mutation is never modified afterwards.
package feedcache

import (
	"github.com/google/uuid"

	"chirp/internal/feed"
)

// Store maps each feed filter to the ordered list of pages fetched for
// it. Pages keep fetch order; posts keep the order the query engine
// returned them in.
type Store struct {
	partitions map[feed.Filter][]feed.Page
}

// New creates an empty store
func New() *Store {
	return &Store{partitions: make(map[feed.Filter][]feed.Page)}
}

// AppendPage appends a fetched page to the filter's partition. The store
// does not deduplicate pages; avoiding re-appends is the caller's cursor
// discipline.
func (s *Store) AppendPage(filter feed.Filter, page feed.Page) {
	s.partitions[filter] = append(s.partitions[filter], page)
}

// PatchPost applies updater to every occurrence of postID across every
// partition's every page. Partitions and pages are rebuilt, never edited
// in place; orderings are preserved exactly. A post absent from all
// partitions makes this a no-op.
func (s *Store) PatchPost(postID uuid.UUID, updater func(feed.Post) feed.Post) {
	for filter, pages := range s.partitions {
		touched := false
		for _, page := range pages {
			for _, post := range page.Posts {
				if post.ID == postID {
					touched = true
				}
			}
		}
		if !touched {
			continue
		}

		rebuilt := make([]feed.Page, len(pages))
		for i, page := range pages {
			posts := make([]feed.Post, len(page.Posts))
			for j, post := range page.Posts {
				if post.ID == postID {
					posts[j] = updater(post)
				} else {
					posts[j] = post
				}
			}
			rebuilt[i] = feed.Page{Posts: posts, NextCursor: page.NextCursor}
		}
		s.partitions[filter] = rebuilt
	}
}

// PrependToDefault inserts a post at the head of the first page of the
// unfiltered partition only. Other partitions cannot know, without a
// round trip, whether their filter would admit the post; they pick it up
// on their next fetch. A partition with no pages yet is left alone.
func (s *Store) PrependToDefault(post feed.Post) {
	key := feed.AllPosts()
	pages := s.partitions[key]
	if len(pages) == 0 {
		return
	}

	first := pages[0]
	posts := make([]feed.Post, 0, len(first.Posts)+1)
	posts = append(posts, post)
	posts = append(posts, first.Posts...)

	rebuilt := make([]feed.Page, len(pages))
	rebuilt[0] = feed.Page{Posts: posts, NextCursor: first.NextCursor}
	copy(rebuilt[1:], pages[1:])
	s.partitions[key] = rebuilt
}

// Posts returns the flattened, ordered view of a partition: pages in
// fetch order, posts in query order. The returned slice is a fresh copy.
func (s *Store) Posts(filter feed.Filter) []feed.Post {
	pages := s.partitions[filter]
	var out []feed.Post
	for _, page := range pages {
		out = append(out, page.Posts...)
	}
	return out
}

// Pages returns how many pages a partition holds
func (s *Store) Pages(filter feed.Filter) int {
	return len(s.partitions[filter])
}

// Reset drops a partition entirely, forcing the next fetch to start
// from the top. Used when the viewing identity changes.
func (s *Store) Reset(filter feed.Filter) {
	delete(s.partitions, filter)
}
