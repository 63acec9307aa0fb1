// Package content loads the static post and project collections into an
// immutable in-memory snapshot and exposes the read accessors every page
// composes from.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kakeru/folio/internal/checksum"
	"github.com/kakeru/folio/internal/models"
)

// Snapshot is one immutable load of the content directory. Posts keep
// their authored order in `posts` and a date-descending order in
// `postsByDate`; projects likewise.
type Snapshot struct {
	posts          []models.BlogPost
	postsByDate    []models.BlogPost
	projects       []models.Project
	projectsByYear []models.Project
	fingerprint    string
}

// Fingerprint is a stable digest over all content files, used to skip
// no-op reloads.
func (s *Snapshot) Fingerprint() string { return s.fingerprint }

// Load reads posts/*.yaml and projects/*.yaml under dir, validates every
// entry, and returns an immutable snapshot. Validation failures (missing
// translations, duplicate ids, bad dates) fail the whole load: content
// defects are authoring errors, not runtime states.
func Load(dir string) (*Snapshot, error) {
	files := make(map[string][]byte)

	posts, err := loadEntries(filepath.Join(dir, "posts"), files, func(data []byte) (models.BlogPost, string, error) {
		var p models.BlogPost
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, "", err
		}
		return p, p.ID, p.Validate()
	})
	if err != nil {
		return nil, fmt.Errorf("content: load posts: %w", err)
	}

	projects, err := loadEntries(filepath.Join(dir, "projects"), files, func(data []byte) (models.Project, string, error) {
		var p models.Project
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, "", err
		}
		return p, p.ID, p.Validate()
	})
	if err != nil {
		return nil, fmt.Errorf("content: load projects: %w", err)
	}

	snap := &Snapshot{
		posts:       posts,
		projects:    projects,
		fingerprint: checksum.SumSet(files),
	}

	snap.postsByDate = append([]models.BlogPost(nil), posts...)
	sort.SliceStable(snap.postsByDate, func(i, j int) bool {
		return snap.postsByDate[i].Date > snap.postsByDate[j].Date
	})

	snap.projectsByYear = append([]models.Project(nil), projects...)
	sort.SliceStable(snap.projectsByYear, func(i, j int) bool {
		yi, _ := strconv.Atoi(snap.projectsByYear[i].Year)
		yj, _ := strconv.Atoi(snap.projectsByYear[j].Year)
		return yi > yj
	})

	return snap, nil
}

// loadEntries reads every .yaml file in dir (sorted by name), decodes and
// validates each entry, and rejects duplicate ids. Raw bytes are recorded
// in files for fingerprinting.
func loadEntries[T any](dir string, files map[string][]byte, decode func([]byte) (T, string, error)) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	seen := make(map[string]string, len(names))
	out := make([]T, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		files[path] = data

		entry, id, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s: duplicate id %q (already defined in %s)", name, id, prev)
		}
		seen[id] = name
		out = append(out, entry)
	}
	return out, nil
}
