package content

import (
	"sync/atomic"

	"github.com/kakeru/folio/internal/apperr"
	"github.com/kakeru/folio/internal/models"
)

// Store holds the current content snapshot. All accessors are pure reads
// over immutable data and return fresh slices; the only mutation is an
// atomic snapshot swap driven by the watcher.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore creates a store serving the given snapshot.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.snap.Store(snap)
	return s
}

// Replace swaps in a new snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.snap.Store(snap)
}

// Fingerprint returns the digest of the current snapshot.
func (s *Store) Fingerprint() string {
	return s.snap.Load().fingerprint
}

// AllPosts returns every post sorted by date descending (newest first).
func (s *Store) AllPosts() []models.BlogPost {
	return append([]models.BlogPost(nil), s.snap.Load().postsByDate...)
}

// PostByID returns the post with the given slug, or apperr.ErrNotFound.
// Lookup is a linear scan; collections are small and static.
func (s *Store) PostByID(id string) (models.BlogPost, error) {
	for _, p := range s.snap.Load().posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.BlogPost{}, apperr.ErrNotFound
}

// PostsByCategory returns posts whose category matches in Chinese or
// English, preserving the authored order.
func (s *Store) PostsByCategory(category string) []models.BlogPost {
	var out []models.BlogPost
	for _, p := range s.snap.Load().posts {
		if p.Category.ZH == category || p.Category.EN == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the de-duplicated English category labels of all
// posts. Order is not guaranteed.
func (s *Store) Categories() []string {
	return categoryLabels(s.snap.Load().posts, func(p models.BlogPost) string { return p.Category.EN })
}

// AllProjects returns every project sorted by numeric year descending.
func (s *Store) AllProjects() []models.Project {
	return append([]models.Project(nil), s.snap.Load().projectsByYear...)
}

// ProjectByID returns the project with the given slug, or apperr.ErrNotFound.
func (s *Store) ProjectByID(id string) (models.Project, error) {
	for _, p := range s.snap.Load().projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, apperr.ErrNotFound
}

// FeaturedProjects returns projects flagged for curation, preserving the
// authored order.
func (s *Store) FeaturedProjects() []models.Project {
	var out []models.Project
	for _, p := range s.snap.Load().projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ProjectsByCategory returns projects whose category matches in Chinese
// or English, preserving the authored order.
func (s *Store) ProjectsByCategory(category string) []models.Project {
	var out []models.Project
	for _, p := range s.snap.Load().projects {
		if p.Category.ZH == category || p.Category.EN == category {
			out = append(out, p)
		}
	}
	return out
}

// ProjectCategories returns the de-duplicated English category labels of
// all projects.
func (s *Store) ProjectCategories() []string {
	return categoryLabels(s.snap.Load().projects, func(p models.Project) string { return p.Category.EN })
}

func categoryLabels[T any](entries []T, label func(T) string) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, e := range entries {
		l := label(e)
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
