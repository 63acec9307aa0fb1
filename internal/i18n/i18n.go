// Package i18n resolves the active UI language and supplies translated
// strings to every page.
package i18n

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kakeru/folio/internal/kvstore"
	"github.com/kakeru/folio/internal/models"
)

// PreferenceKey is the durable-store key holding the last selected
// language, kept compatible with the browser-era storage layout.
const PreferenceKey = "i18nextLng"

// DefaultLanguage is the hardcoded default UI language.
const DefaultLanguage = "zh"

// SupportedLanguages are the UI language tags the site accepts.
var SupportedLanguages = []string{"en", "zh", "zh-TW", "zh-CN", "ja"}

// Bundles maps a UI bundle locale (en/zh/ja) to flattened dot-path keys.
type Bundles map[string]map[string]string

// LoadBundles reads <locale>.yaml files from dir and flattens nested maps
// into dot-path keys.
func LoadBundles(dir string) (Bundles, error) {
	out := make(Bundles)
	for _, locale := range []string{"en", "zh", "ja"} {
		data, err := os.ReadFile(filepath.Join(dir, locale+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("i18n: read bundle %s: %w", locale, err)
		}
		var nested map[string]any
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("i18n: parse bundle %s: %w", locale, err)
		}
		flat := make(map[string]string)
		flatten("", nested, flat)
		out[locale] = flat
	}
	return out, nil
}

func flatten(prefix string, nested map[string]any, flat map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, flat)
		case string:
			flat[key] = val
		default:
			flat[key] = fmt.Sprintf("%v", val)
		}
	}
}

// ChangeListener is notified after the active language changes.
type ChangeListener func(lang string)

// Resolver holds the single process-wide active language. Initialization
// order for the active language: persisted preference, then the
// configured default.
type Resolver struct {
	bundles Bundles
	kv      *kvstore.Store
	logger  *slog.Logger

	mu        sync.RWMutex
	active    string
	listeners []ChangeListener
}

// NewResolver builds a resolver and restores the persisted language
// preference when one exists.
func NewResolver(bundles Bundles, kv *kvstore.Store, logger *slog.Logger) *Resolver {
	r := &Resolver{
		bundles: bundles,
		kv:      kv,
		logger:  logger,
		active:  DefaultLanguage,
	}
	if kv != nil {
		if saved, err := kv.Get(PreferenceKey); err == nil && saved != "" {
			r.active = saved
		}
	}
	return r
}

// OnChange registers a listener invoked after every language switch.
func (r *Resolver) OnChange(l ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Active returns the current UI language tag as selected (not normalized).
func (r *Resolver) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// ChangeLanguage switches the active language, persists the choice, and
// notifies listeners so locale-dependent views re-render. It never fails:
// unknown codes are stored as-is and resolve through the fallback chain.
func (r *Resolver) ChangeLanguage(code string) {
	r.mu.Lock()
	r.active = code
	listeners := append([]ChangeListener(nil), r.listeners...)
	r.mu.Unlock()

	if r.kv != nil {
		if err := r.kv.Put(PreferenceKey, code); err != nil {
			r.logger.Warn("i18n: persist language failed",
				slog.String("lang", code), slog.String("error", err.Error()))
		}
	}
	for _, l := range listeners {
		l(code)
	}
}

// T returns the translation for key in the active language, falling back
// to the default bundle, then to the key itself.
func (r *Resolver) T(key string) string {
	bundle := normalizeBundle(r.Active())
	if s, ok := r.bundles[bundle][key]; ok {
		return s
	}
	if s, ok := r.bundles[normalizeBundle(DefaultLanguage)][key]; ok {
		return s
	}
	return key
}

// ContentLocale maps the active UI language to a content locale. This is
// a narrower mapping than the UI bundle fallback chain: every zh-*
// variant normalizes to zh, ja to jp.
func (r *Resolver) ContentLocale() models.ContentLocale {
	return ContentLocaleFor(r.Active())
}

// ContentLocaleFor maps an arbitrary UI language tag to a content locale.
func ContentLocaleFor(lang string) models.ContentLocale {
	lower := strings.ToLower(lang)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return models.LocaleZH
	case strings.HasPrefix(lower, "ja"), strings.HasPrefix(lower, "jp"):
		return models.LocaleJP
	case strings.HasPrefix(lower, "en"):
		return models.LocaleEN
	default:
		return models.DefaultContentLocale
	}
}

// normalizeBundle maps a UI language tag to one of the bundle locales.
func normalizeBundle(lang string) string {
	lower := strings.ToLower(lang)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return "zh"
	case strings.HasPrefix(lower, "ja"):
		return "ja"
	case strings.HasPrefix(lower, "en"):
		return "en"
	default:
		return DefaultLanguage
	}
}
