package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kakeru/folio/internal/apperr"
	"github.com/kakeru/folio/internal/kvstore"
)

// VisitCountKey is the durable key for the local visit counter fallback.
const VisitCountKey = "visitorCount"

// DefaultCounterBase is the public hit-counter endpoint.
const DefaultCounterBase = "https://api.countapi.xyz"

// VisitsResult carries the visit count and its origin.
type VisitsResult struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// VisitCounter records page visits against a shared remote counter, falling
// back to a locally persisted count when the remote is unreachable.
type VisitCounter struct {
	base      string
	namespace string
	key       string
	client    *http.Client
	kv        *kvstore.Store
	logger    *slog.Logger
}

// NewVisitCounter builds a counter. Empty base selects the public endpoint;
// a nil http.Client gets a 5s timeout default.
func NewVisitCounter(base, namespace, key string, client *http.Client, kv *kvstore.Store, logger *slog.Logger) *VisitCounter {
	if base == "" {
		base = DefaultCounterBase
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &VisitCounter{base: base, namespace: namespace, key: key, client: client, kv: kv, logger: logger}
}

type counterResponse struct {
	Value int64 `json:"value"`
}

// Hit increments the counter and returns the new value. One remote attempt;
// on failure the local fallback counter is incremented instead.
func (v *VisitCounter) Hit(ctx context.Context) (VisitsResult, error) {
	url := fmt.Sprintf("%s/hit/%s/%s", v.base, v.namespace, v.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return v.fallback(err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return v.fallback(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return v.fallback(fmt.Errorf("counter api status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return v.fallback(err)
	}

	var parsed counterResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return v.fallback(err)
	}

	return VisitsResult{Source: SourceLive, Count: parsed.Value}, nil
}

func (v *VisitCounter) fallback(cause error) (VisitsResult, error) {
	v.logger.Warn("visits: remote counter unavailable, using local count",
		slog.String("error", cause.Error()))

	count, err := v.incrementLocal()
	if err != nil {
		return VisitsResult{}, fmt.Errorf("increment local visit count: %w", err)
	}
	return VisitsResult{Source: SourceFallback, Count: count}, nil
}

func (v *VisitCounter) incrementLocal() (int64, error) {
	var count int64
	raw, err := v.kv.Get(VisitCountKey)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		count = 0
	case err != nil:
		return 0, err
	default:
		count, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			count = 0
		}
	}

	count++
	if err := v.kv.Put(VisitCountKey, strconv.FormatInt(count, 10)); err != nil {
		return 0, err
	}
	return count, nil
}
