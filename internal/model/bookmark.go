package model

import "strings"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	SearchTitle string   `json:"search_title,omitempty"` // matched instead of Title when set
	URL         string   `json:"url"`
	IntranetURL string   `json:"intranet_url,omitempty"`
	SearchURL   string   `json:"search_url,omitempty"` // site search template, "{}" = query
	Icon        string   `json:"icon,omitempty"`
	Tags        []string `json:"tags"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title       string
	SearchTitle string
	URL         string
	IntranetURL string
	SearchURL   string
	Icon        string
	Tags        []string
}

// NewBookmark creates a Bookmark with a generated UUID and cleaned tags.
func NewBookmark(params NewBookmarkParams) Bookmark {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = params.URL
	}

	return Bookmark{
		ID:          GenerateUUID(),
		Title:       title,
		SearchTitle: strings.TrimSpace(params.SearchTitle),
		URL:         strings.TrimSpace(params.URL),
		IntranetURL: strings.TrimSpace(params.IntranetURL),
		SearchURL:   strings.TrimSpace(params.SearchURL),
		Icon:        params.Icon,
		Tags:        CleanTags(params.Tags),
	}
}

// MatchTitle returns the title used for search matching.
func (b Bookmark) MatchTitle() string {
	if b.SearchTitle != "" {
		return b.SearchTitle
	}
	return b.Title
}

// MatchURL returns the URL used for search matching.
func (b Bookmark) MatchURL() string {
	return b.URL
}

// MatchTags returns the tags used for search matching.
func (b Bookmark) MatchTags() []string {
	return b.Tags
}

// OpenURL returns the address to open. The intranet URL wins when intranet
// is true and one is set.
func (b Bookmark) OpenURL(intranet bool) string {
	if intranet && b.IntranetURL != "" {
		return b.IntranetURL
	}
	return b.URL
}

// CleanTags trims tags and drops blanks and duplicates, keeping first-seen
// order. Never returns nil.
func CleanTags(tags []string) []string {
	result := []string{}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}
