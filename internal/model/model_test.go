package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nikbrunner/bmdash/internal/model"
)

func TestBookmark_JSONSerialization(t *testing.T) {
	tests := []struct {
		name     string
		bookmark model.Bookmark
	}{
		{
			name: "bookmark with all fields",
			bookmark: model.Bookmark{
				ID:          "b1",
				Title:       "TanStack Router",
				SearchTitle: "tsr",
				URL:         "https://tanstack.com/router",
				IntranetURL: "http://router.internal",
				SearchURL:   "https://tanstack.com/search?q={}",
				Icon:        "tanstack.png",
				Tags:        []string{"react", "routing"},
			},
		},
		{
			name: "minimal bookmark",
			bookmark: model.Bookmark{
				ID:    "b2",
				Title: "Hacker News",
				URL:   "https://news.ycombinator.com",
				Tags:  []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.bookmark)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}

			var got model.Bookmark
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}

			if got.ID != tt.bookmark.ID {
				t.Errorf("ID mismatch: got %q, want %q", got.ID, tt.bookmark.ID)
			}
			if got.SearchTitle != tt.bookmark.SearchTitle {
				t.Errorf("SearchTitle mismatch: got %q, want %q", got.SearchTitle, tt.bookmark.SearchTitle)
			}
			if got.IntranetURL != tt.bookmark.IntranetURL {
				t.Errorf("IntranetURL mismatch: got %q, want %q", got.IntranetURL, tt.bookmark.IntranetURL)
			}
		})
	}
}

func TestBookmark_OptionalFieldsOmitted(t *testing.T) {
	data, err := json.Marshal(model.Bookmark{ID: "b1", Title: "Go", URL: "https://go.dev", Tags: []string{}})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	want := `{"id":"b1","title":"Go","url":"https://go.dev","tags":[]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestNewBookmark(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{
		Title: "  Go  ",
		URL:   "https://go.dev",
		Tags:  []string{"lang", " lang", "", "docs"},
	})

	if b.ID == "" {
		t.Error("expected generated ID")
	}
	if b.Title != "Go" {
		t.Errorf("expected trimmed title, got %q", b.Title)
	}
	want := []string{"lang", "docs"}
	if len(b.Tags) != len(want) {
		t.Fatalf("expected tags %v, got %v", want, b.Tags)
	}
	for i := range want {
		if b.Tags[i] != want[i] {
			t.Errorf("tag %d: got %q, want %q", i, b.Tags[i], want[i])
		}
	}
}

func TestNewBookmark_TitleFallsBackToURL(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{URL: "https://go.dev"})

	if b.Title != "https://go.dev" {
		t.Errorf("expected URL as title, got %q", b.Title)
	}
	if b.Tags == nil {
		t.Error("expected non-nil tags")
	}
}

func TestBookmark_MatchTitle(t *testing.T) {
	tests := []struct {
		name     string
		bookmark model.Bookmark
		want     string
	}{
		{"title only", model.Bookmark{Title: "GitHub"}, "GitHub"},
		{"search title wins", model.Bookmark{Title: "GitHub", SearchTitle: "gh code"}, "gh code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bookmark.MatchTitle(); got != tt.want {
				t.Errorf("MatchTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBookmark_OpenURL(t *testing.T) {
	b := model.Bookmark{URL: "https://wiki.example.com", IntranetURL: "http://wiki.lan"}

	if got := b.OpenURL(false); got != "https://wiki.example.com" {
		t.Errorf("OpenURL(false) = %q", got)
	}
	if got := b.OpenURL(true); got != "http://wiki.lan" {
		t.Errorf("OpenURL(true) = %q", got)
	}

	b.IntranetURL = ""
	if got := b.OpenURL(true); got != "https://wiki.example.com" {
		t.Errorf("OpenURL(true) without intranet URL = %q", got)
	}
}

func TestProfile_SearchURL(t *testing.T) {
	p := model.NewProfile("Work")

	got := p.SearchURL("go generics & more")
	want := "https://www.google.com/search?q=go+generics+%26+more"
	if got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
}

func TestComputeTags(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "b1", Tags: []string{"go", "docs"}},
		{ID: "b2", Tags: []string{" news ", ""}},
		{ID: "b3", Tags: []string{"docs"}},
	}

	got := model.ComputeTags(bookmarks, []string{"news", "unused", "docs"})

	want := []string{"news", "docs", "go"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProfile_MutationsRefreshTagsAndVersion(t *testing.T) {
	p := model.NewProfile("Default")
	version := p.Version

	p.AddBookmark(model.Bookmark{ID: "b1", Title: "Go", URL: "https://go.dev", Tags: []string{"lang"}})

	if p.Version == version {
		t.Error("expected version to change after AddBookmark")
	}
	if len(p.Tags) != 1 || p.Tags[0] != "lang" {
		t.Errorf("expected tags [lang], got %v", p.Tags)
	}

	version = p.Version
	if err := p.DeleteBookmark("b1"); err != nil {
		t.Fatalf("DeleteBookmark: %v", err)
	}
	if p.Version == version {
		t.Error("expected version to change after DeleteBookmark")
	}
	if len(p.Tags) != 0 {
		t.Errorf("expected no tags, got %v", p.Tags)
	}
}

func TestProfile_UpdateBookmark(t *testing.T) {
	p := model.NewProfile("Default")
	p.AddBookmark(model.Bookmark{ID: "b1", Title: "Go", URL: "https://go.dev"})

	err := p.UpdateBookmark(model.Bookmark{ID: "b1", Title: "Go Dev", URL: "https://go.dev", Tags: []string{"go"}})
	if err != nil {
		t.Fatalf("UpdateBookmark: %v", err)
	}
	if p.Bookmarks[0].Title != "Go Dev" {
		t.Errorf("expected updated title, got %q", p.Bookmarks[0].Title)
	}

	err = p.UpdateBookmark(model.Bookmark{ID: "missing"})
	if !errors.Is(err, model.ErrBookmarkNotFound) {
		t.Errorf("expected ErrBookmarkNotFound, got %v", err)
	}
}

func TestProfile_DeleteBookmark_NotFound(t *testing.T) {
	p := model.NewProfile("Default")

	if err := p.DeleteBookmark("nope"); !errors.Is(err, model.ErrBookmarkNotFound) {
		t.Errorf("expected ErrBookmarkNotFound, got %v", err)
	}
}

func TestProfile_MoveBookmark(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"same position", 1, 1, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewProfile("Default")
			for _, id := range []string{"a", "b", "c", "d"} {
				p.Bookmarks = append(p.Bookmarks, model.Bookmark{ID: id})
			}

			if err := p.MoveBookmark(tt.from, tt.to); err != nil {
				t.Fatalf("MoveBookmark: %v", err)
			}
			for i, id := range tt.want {
				if p.Bookmarks[i].ID != id {
					t.Errorf("position %d: got %q, want %q", i, p.Bookmarks[i].ID, id)
				}
			}
		})
	}
}

func TestProfile_MoveBookmark_OutOfRange(t *testing.T) {
	p := model.NewProfile("Default")
	p.Bookmarks = []model.Bookmark{{ID: "a"}}

	if err := p.MoveBookmark(0, 1); !errors.Is(err, model.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestProfile_ImportMerge_SkipsDuplicateURLs(t *testing.T) {
	p := model.NewProfile("Default")
	p.Bookmarks = []model.Bookmark{
		{ID: "existing", Title: "Existing", URL: "https://example.com"},
	}

	added, skipped := p.ImportMerge([]model.Bookmark{
		{ID: "new1", Title: "Duplicate", URL: "https://example.com"},
		{ID: "new2", Title: "New Site", URL: "https://newsite.com", Tags: []string{"imported"}},
		{ID: "new3", Title: "New Site Again", URL: "https://newsite.com"},
	})

	if added != 1 {
		t.Errorf("expected 1 added, got %d", added)
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", skipped)
	}
	if len(p.Bookmarks) != 2 {
		t.Errorf("expected 2 bookmarks, got %d", len(p.Bookmarks))
	}
	if len(p.Tags) != 1 || p.Tags[0] != "imported" {
		t.Errorf("expected tags [imported], got %v", p.Tags)
	}
}

// === Store Tests ===

func TestNewStore(t *testing.T) {
	store := model.NewStore()

	if len(store.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(store.Profiles))
	}
	if store.CurrentProfile().Name != model.DefaultProfileName {
		t.Errorf("expected current profile %q, got %q", model.DefaultProfileName, store.CurrentProfile().Name)
	}
}

func TestStore_Normalize(t *testing.T) {
	store := &model.Store{
		Profiles: []model.Profile{
			{Name: "Work", Bookmarks: []model.Bookmark{{ID: "b1"}}},
		},
		Current: "missing",
	}

	store.Normalize()

	p := store.CurrentProfile()
	if p.Name != "Work" {
		t.Errorf("expected current to fall back to Work, got %q", p.Name)
	}
	if p.Version == "" {
		t.Error("expected version to be assigned")
	}
	if p.SearchEngine != model.DefaultSearchEngine {
		t.Errorf("expected default search engine, got %q", p.SearchEngine)
	}
	if p.Bookmarks[0].Tags == nil || p.Tags == nil {
		t.Error("expected nil slices to be normalized")
	}
}

func TestStore_Normalize_EmptyStore(t *testing.T) {
	store := &model.Store{}
	store.Normalize()

	if len(store.Profiles) != 1 || store.Current != model.DefaultProfileName {
		t.Errorf("expected a default profile, got %+v", store)
	}
}

func TestStore_ProfileLifecycle(t *testing.T) {
	store := model.NewStore()

	if _, err := store.AddProfile("Work"); err != nil {
		t.Fatalf("AddProfile: %v", err)
	}
	if _, err := store.AddProfile("Work"); !errors.Is(err, model.ErrProfileExists) {
		t.Errorf("expected ErrProfileExists, got %v", err)
	}
	if _, err := store.AddProfile("  "); !errors.Is(err, model.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}

	if err := store.SwitchProfile("Work"); err != nil {
		t.Fatalf("SwitchProfile: %v", err)
	}
	if err := store.RenameProfile("Work", "Office"); err != nil {
		t.Fatalf("RenameProfile: %v", err)
	}
	if store.Current != "Office" {
		t.Errorf("expected current to follow rename, got %q", store.Current)
	}
	if err := store.RenameProfile("Office", model.DefaultProfileName); !errors.Is(err, model.ErrProfileExists) {
		t.Errorf("expected ErrProfileExists on rename clash, got %v", err)
	}

	if err := store.DeleteProfile("Office"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if store.Current != model.DefaultProfileName {
		t.Errorf("expected current to fall back to %q, got %q", model.DefaultProfileName, store.Current)
	}
	if err := store.DeleteProfile(model.DefaultProfileName); !errors.Is(err, model.ErrLastProfile) {
		t.Errorf("expected ErrLastProfile, got %v", err)
	}
	if err := store.SwitchProfile("gone"); !errors.Is(err, model.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestStore_ReorderProfiles(t *testing.T) {
	store := model.NewStore()
	store.AddProfile("A")
	store.AddProfile("B")

	if err := store.ReorderProfiles([]string{"B", model.DefaultProfileName, "A"}); err != nil {
		t.Fatalf("ReorderProfiles: %v", err)
	}
	if store.Profiles[0].Name != "B" || store.Profiles[2].Name != "A" {
		t.Errorf("unexpected order: %s, %s, %s", store.Profiles[0].Name, store.Profiles[1].Name, store.Profiles[2].Name)
	}

	invalid := [][]string{
		{"A", "B"},
		{"A", "A", "B"},
		{"A", "B", "C"},
	}
	for _, names := range invalid {
		if err := store.ReorderProfiles(names); !errors.Is(err, model.ErrInvalidProfileOrder) {
			t.Errorf("ReorderProfiles(%v): expected ErrInvalidProfileOrder, got %v", names, err)
		}
	}
}

func TestStore_ReplaceProfile(t *testing.T) {
	store := model.NewStore()
	current := *store.CurrentProfile()
	version := current.Version

	edited := current
	edited.Bookmarks = []model.Bookmark{{ID: "b1", URL: "https://go.dev", Tags: []string{"go"}}}

	if err := store.ReplaceProfile(edited, version); err != nil {
		t.Fatalf("ReplaceProfile: %v", err)
	}
	if store.CurrentProfile().Version == version {
		t.Error("expected a new version after replace")
	}
	if len(store.CurrentProfile().Tags) != 1 {
		t.Errorf("expected tags to be refreshed, got %v", store.CurrentProfile().Tags)
	}

	// A second writer still holding the old version loses.
	if err := store.ReplaceProfile(current, version); !errors.Is(err, model.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
	if len(store.CurrentProfile().Bookmarks) != 1 {
		t.Error("expected store to be unchanged after conflict")
	}
}
