// Package subscribers manages the newsletter subscriber list.
//
// The whole collection is persisted as one JSON document under a fixed
// key and rewritten wholesale on every mutation. There is no concurrency
// control beyond the store's own serialization: concurrent writers are
// last-writer-wins on the full collection, which is acceptable at this
// scale and documented as a limitation, not a guarantee.
package subscribers

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kakeru/folio/internal/apperr"
	"github.com/kakeru/folio/internal/kvstore"
	"github.com/kakeru/folio/internal/models"
)

// StorageKey is the fixed durable-store key holding the subscriber list.
const StorageKey = "blog_subscribers"

// Status tags the outcome of an Add call.
type Status string

const (
	StatusSubscribed        Status = "subscribed"
	StatusAlreadySubscribed Status = "already_subscribed"
	StatusInvalidEmail      Status = "invalid_email"
)

// emailRe is the intentionally simple address check: local@domain with a
// dot somewhere in the domain part.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Store reads and rewrites the persisted subscriber collection.
type Store struct {
	kv  *kvstore.Store
	now func() time.Time
}

// NewStore creates a subscriber store over the given key/value store.
func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// All returns the full persisted collection, or an empty slice when
// nothing has been stored yet.
func (s *Store) All() ([]models.Subscriber, error) {
	raw, err := s.kv.Get(StorageKey)
	if errors.Is(err, apperr.ErrNotFound) {
		return []models.Subscriber{}, nil
	}
	if err != nil {
		return nil, err
	}
	var subs []models.Subscriber
	if err := json.Unmarshal([]byte(raw), &subs); err != nil {
		return nil, fmt.Errorf("subscribers: decode: %w", err)
	}
	if subs == nil {
		subs = []models.Subscriber{}
	}
	return subs, nil
}

// Add subscribes an email address.
//
// The duplicate check runs before format validation, so a malformed but
// already-stored address reports already_subscribed rather than
// invalid_email. That ordering is inherited behavior and kept on purpose.
func (s *Store) Add(email string) (Status, error) {
	subs, err := s.All()
	if err != nil {
		return "", err
	}

	for _, sub := range subs {
		if strings.EqualFold(sub.Email, email) {
			return StatusAlreadySubscribed, nil
		}
	}

	if !emailRe.MatchString(email) {
		return StatusInvalidEmail, nil
	}

	subs = append(subs, models.Subscriber{
		Email:        email,
		SubscribedAt: s.now().UTC(),
		// No confirmation flow; records are confirmed on insert.
		Confirmed: true,
	})
	if err := s.write(subs); err != nil {
		return "", err
	}
	return StatusSubscribed, nil
}

// Remove unsubscribes an email address (case-insensitive). It reports
// whether the address was present.
func (s *Store) Remove(email string) (bool, error) {
	subs, err := s.All()
	if err != nil {
		return false, err
	}
	filtered := subs[:0]
	for _, sub := range subs {
		if !strings.EqualFold(sub.Email, email) {
			filtered = append(filtered, sub)
		}
	}
	if len(filtered) == len(subs) {
		return false, nil
	}
	if err := s.write(filtered); err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of persisted subscribers.
func (s *Store) Count() (int, error) {
	subs, err := s.All()
	if err != nil {
		return 0, err
	}
	return len(subs), nil
}

// Export returns the subscriber emails joined by newlines, for feeding a
// newsletter sender.
func (s *Store) Export() (string, error) {
	subs, err := s.All()
	if err != nil {
		return "", err
	}
	emails := make([]string, len(subs))
	for i, sub := range subs {
		emails[i] = sub.Email
	}
	return strings.Join(emails, "\n"), nil
}

func (s *Store) write(subs []models.Subscriber) error {
	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("subscribers: encode: %w", err)
	}
	return s.kv.Put(StorageKey, string(data))
}
