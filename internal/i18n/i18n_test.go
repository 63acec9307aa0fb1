package i18n

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/kakeru/folio/internal/models"
	"github.com/kakeru/folio/internal/testutil"
)

func testBundles() Bundles {
	return Bundles{
		"en": {"nav.home": "Home", "blog.notFound.title": "Post Not Found"},
		"zh": {"nav.home": "首頁", "blog.notFound.title": "找不到文章", "zh.only": "只有中文"},
		"ja": {"nav.home": "ホーム"},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDefaultLanguageIsZh(t *testing.T) {
	r := NewResolver(testBundles(), nil, quietLogger())
	if r.Active() != "zh" {
		t.Errorf("active = %q, want zh", r.Active())
	}
	if got := r.T("nav.home"); got != "首頁" {
		t.Errorf("T(nav.home) = %q, want 首頁", got)
	}
}

func TestChangeLanguageSwitchesTranslations(t *testing.T) {
	r := NewResolver(testBundles(), nil, quietLogger())
	r.ChangeLanguage("ja")
	if got := r.T("nav.home"); got != "ホーム" {
		t.Errorf("T(nav.home) after ja = %q, want ホーム", got)
	}
	// Missing in ja falls back to the default bundle.
	if got := r.T("blog.notFound.title"); got != "找不到文章" {
		t.Errorf("fallback = %q, want 找不到文章", got)
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	r := NewResolver(testBundles(), nil, quietLogger())
	r.ChangeLanguage("fr")
	if got := r.T("nav.home"); got != "首頁" {
		t.Errorf("unknown lang should use default bundle, got %q", got)
	}
	if got := r.ContentLocale(); got != models.LocaleZH {
		t.Errorf("content locale = %q, want zh", got)
	}
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	r := NewResolver(testBundles(), nil, quietLogger())
	if got := r.T("ghost.key"); got != "ghost.key" {
		t.Errorf("T(ghost.key) = %q", got)
	}
}

func TestRegionalVariantsNormalize(t *testing.T) {
	r := NewResolver(testBundles(), nil, quietLogger())
	for _, code := range []string{"zh-TW", "zh-CN", "zh"} {
		r.ChangeLanguage(code)
		if got := r.T("nav.home"); got != "首頁" {
			t.Errorf("T(nav.home) for %s = %q, want 首頁", code, got)
		}
		if got := r.ContentLocale(); got != models.LocaleZH {
			t.Errorf("content locale for %s = %q, want zh", code, got)
		}
	}
}

func TestContentLocaleFor(t *testing.T) {
	tests := []struct {
		lang string
		want models.ContentLocale
	}{
		{"zh", models.LocaleZH},
		{"zh-TW", models.LocaleZH},
		{"ja", models.LocaleJP},
		{"jp", models.LocaleJP},
		{"en", models.LocaleEN},
		{"en-US", models.LocaleEN},
		{"ko", models.DefaultContentLocale},
		{"", models.DefaultContentLocale},
	}
	for _, tt := range tests {
		if got := ContentLocaleFor(tt.lang); got != tt.want {
			t.Errorf("ContentLocaleFor(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestLanguagePersistedAndRestored(t *testing.T) {
	kv := testutil.TestKV(t)

	r := NewResolver(testBundles(), kv, quietLogger())
	r.ChangeLanguage("ja")

	// A new resolver over the same store restores the preference.
	r2 := NewResolver(testBundles(), kv, quietLogger())
	if r2.Active() != "ja" {
		t.Errorf("restored language = %q, want ja", r2.Active())
	}
}

func TestChangeListenerNotified(t *testing.T) {
	r := NewResolver(testBundles(), nil, quietLogger())
	var got string
	r.OnChange(func(lang string) { got = lang })
	r.ChangeLanguage("en")
	if got != "en" {
		t.Errorf("listener got %q, want en", got)
	}
}

func TestLoadBundlesFlattens(t *testing.T) {
	dir := t.TempDir()
	for locale, body := range map[string]string{
		"en": "nav:\n  home: Home\n  blog: Blog\n",
		"zh": "nav:\n  home: 首頁\n  blog: 部落格\n",
		"ja": "nav:\n  home: ホーム\n  blog: ブログ\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, locale+".yaml"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	b, err := LoadBundles(dir)
	if err != nil {
		t.Fatalf("LoadBundles: %v", err)
	}
	if b["en"]["nav.home"] != "Home" || b["ja"]["nav.blog"] != "ブログ" {
		t.Errorf("bundles not flattened correctly: %v", b)
	}
}
