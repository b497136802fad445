package model

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultSearchEngine is the web search template for new profiles.
const DefaultSearchEngine = "https://www.google.com/search?q={}"

// DefaultProfileName names the profile created for an empty store.
const DefaultProfileName = "Default"

// Profile is a named, independently versioned bookmark collection.
type Profile struct {
	Name             string     `json:"name"`
	Bookmarks        []Bookmark `json:"bookmarks"`
	Tags             []string   `json:"tags"`
	SearchEngine     string     `json:"search_engine"`
	IntranetCheckURL string     `json:"intranet_check_url,omitempty"`
	// Version changes on every modification so stale writers can be detected.
	Version string `json:"version,omitempty"`
}

// NewProfile creates an empty profile with the default search engine.
func NewProfile(name string) Profile {
	return Profile{
		Name:         name,
		Bookmarks:    []Bookmark{},
		Tags:         []string{},
		SearchEngine: DefaultSearchEngine,
		Version:      GenerateUUID(),
	}
}

// EnsureVersion assigns a version to profiles saved without one.
func (p *Profile) EnsureVersion() {
	if p.Version == "" {
		p.Version = GenerateUUID()
	}
}

// RegenerateVersion marks the profile as modified.
func (p *Profile) RegenerateVersion() {
	p.Version = GenerateUUID()
}

// SearchURL fills the profile's search engine template with query.
func (p *Profile) SearchURL(query string) string {
	return FillTemplate(p.SearchEngine, query)
}

// FillTemplate replaces the first "{}" in template with the escaped query.
func FillTemplate(template, query string) string {
	return strings.Replace(template, "{}", url.QueryEscape(query), 1)
}

// BookmarkByID finds a bookmark by ID, returns nil if not found.
func (p *Profile) BookmarkByID(id string) *Bookmark {
	for i := range p.Bookmarks {
		if p.Bookmarks[i].ID == id {
			return &p.Bookmarks[i]
		}
	}
	return nil
}

// AddBookmark appends b to the profile.
func (p *Profile) AddBookmark(b Bookmark) {
	if b.Tags == nil {
		b.Tags = []string{}
	}
	p.Bookmarks = append(p.Bookmarks, b)
	p.touch()
}

// UpdateBookmark replaces the bookmark with the same ID.
func (p *Profile) UpdateBookmark(b Bookmark) error {
	existing := p.BookmarkByID(b.ID)
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, b.ID)
	}
	b.Tags = CleanTags(b.Tags)
	*existing = b
	p.touch()
	return nil
}

// DeleteBookmark removes the bookmark with the given ID.
func (p *Profile) DeleteBookmark(id string) error {
	for i := range p.Bookmarks {
		if p.Bookmarks[i].ID == id {
			p.Bookmarks = append(p.Bookmarks[:i], p.Bookmarks[i+1:]...)
			p.touch()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
}

// MoveBookmark moves the bookmark at position from to position to,
// shifting the bookmarks in between.
func (p *Profile) MoveBookmark(from, to int) error {
	n := len(p.Bookmarks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d with %d bookmarks", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}

	moved := p.Bookmarks[from]
	if from < to {
		copy(p.Bookmarks[from:to], p.Bookmarks[from+1:to+1])
	} else {
		copy(p.Bookmarks[to+1:from+1], p.Bookmarks[to:from])
	}
	p.Bookmarks[to] = moved
	p.touch()
	return nil
}

// ImportMerge appends bookmarks whose URL is not already in the profile.
// Returns the number added and the number of duplicates skipped.
func (p *Profile) ImportMerge(bookmarks []Bookmark) (added, skipped int) {
	known := make(map[string]bool, len(p.Bookmarks))
	for _, b := range p.Bookmarks {
		known[b.URL] = true
	}

	for _, b := range bookmarks {
		if known[b.URL] {
			skipped++
			continue
		}
		known[b.URL] = true
		if b.Tags == nil {
			b.Tags = []string{}
		}
		p.Bookmarks = append(p.Bookmarks, b)
		added++
	}

	if added > 0 {
		p.touch()
	}
	return added, skipped
}

// RefreshTags recomputes the profile's tag list from its bookmarks.
func (p *Profile) RefreshTags() {
	p.Tags = ComputeTags(p.Bookmarks, p.Tags)
}

func (p *Profile) touch() {
	p.RefreshTags()
	p.RegenerateVersion()
}

// ComputeTags returns the tags used by bookmarks. Tags from existing that
// are still in use keep their order; new tags follow in first-seen order.
func ComputeTags(bookmarks []Bookmark, existing []string) []string {
	used := make(map[string]bool)
	var order []string
	for _, b := range bookmarks {
		for _, t := range b.Tags {
			t = strings.TrimSpace(t)
			if t == "" || used[t] {
				continue
			}
			used[t] = true
			order = append(order, t)
		}
	}

	result := []string{}
	added := make(map[string]bool, len(used))
	for _, t := range existing {
		if used[t] && !added[t] {
			result = append(result, t)
			added[t] = true
		}
	}
	for _, t := range order {
		if !added[t] {
			result = append(result, t)
		}
	}
	return result
}
