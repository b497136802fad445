package model

import (
	"fmt"
	"strings"
)

// Store holds all profiles and remembers which one is active.
type Store struct {
	Profiles []Profile `json:"profiles"`
	Current  string    `json:"current"`
}

// NewStore creates a Store with a single default profile.
func NewStore() *Store {
	return &Store{
		Profiles: []Profile{NewProfile(DefaultProfileName)},
		Current:  DefaultProfileName,
	}
}

// Normalize prepares a freshly loaded store: it guarantees at least one
// profile, non-nil slices, a version on every profile and a valid current
// profile name.
func (s *Store) Normalize() {
	if len(s.Profiles) == 0 {
		s.Profiles = []Profile{NewProfile(DefaultProfileName)}
	}
	for i := range s.Profiles {
		p := &s.Profiles[i]
		if p.Bookmarks == nil {
			p.Bookmarks = []Bookmark{}
		}
		for j := range p.Bookmarks {
			if p.Bookmarks[j].Tags == nil {
				p.Bookmarks[j].Tags = []string{}
			}
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.SearchEngine == "" {
			p.SearchEngine = DefaultSearchEngine
		}
		p.EnsureVersion()
	}
	if s.Profile(s.Current) == nil {
		s.Current = s.Profiles[0].Name
	}
}

// Profile finds a profile by name, returns nil if not found.
func (s *Store) Profile(name string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].Name == name {
			return &s.Profiles[i]
		}
	}
	return nil
}

// CurrentProfile returns the active profile, falling back to the first.
func (s *Store) CurrentProfile() *Profile {
	if p := s.Profile(s.Current); p != nil {
		return p
	}
	if len(s.Profiles) == 0 {
		return nil
	}
	return &s.Profiles[0]
}

// AddProfile creates a new empty profile.
func (s *Store) AddProfile(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if s.Profile(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileExists, name)
	}
	s.Profiles = append(s.Profiles, NewProfile(name))
	return &s.Profiles[len(s.Profiles)-1], nil
}

// RenameProfile renames a profile, keeping it current if it was.
func (s *Store) RenameProfile(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	p := s.Profile(oldName)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if s.Profile(newName) != nil {
		return fmt.Errorf("%w: %s", ErrProfileExists, newName)
	}

	p.Name = newName
	p.RegenerateVersion()
	if s.Current == oldName {
		s.Current = newName
	}
	return nil
}

// DeleteProfile removes a profile. The last profile cannot be deleted.
func (s *Store) DeleteProfile(name string) error {
	idx := -1
	for i := range s.Profiles {
		if s.Profiles[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	if len(s.Profiles) == 1 {
		return ErrLastProfile
	}

	s.Profiles = append(s.Profiles[:idx], s.Profiles[idx+1:]...)
	if s.Current == name {
		s.Current = s.Profiles[0].Name
	}
	return nil
}

// SwitchProfile makes the named profile current.
func (s *Store) SwitchProfile(name string) error {
	if s.Profile(name) == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	s.Current = name
	return nil
}

// ReorderProfiles reorders profiles to match names, which must list every
// profile exactly once.
func (s *Store) ReorderProfiles(names []string) error {
	if len(names) != len(s.Profiles) {
		return ErrInvalidProfileOrder
	}

	reordered := make([]Profile, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		p := s.Profile(name)
		if p == nil || seen[name] {
			return ErrInvalidProfileOrder
		}
		seen[name] = true
		reordered = append(reordered, *p)
	}
	s.Profiles = reordered
	return nil
}

// ReplaceProfile stores an edited copy of a profile. expectedVersion must
// match the stored version, otherwise ErrVersionConflict is returned and the
// store is left unchanged. The replacement gets a fresh version.
func (s *Store) ReplaceProfile(p Profile, expectedVersion string) error {
	existing := s.Profile(p.Name)
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, p.Name)
	}
	if existing.Version != expectedVersion {
		return ErrVersionConflict
	}

	p.RefreshTags()
	p.RegenerateVersion()
	*existing = p
	return nil
}
