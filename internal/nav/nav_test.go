package nav

import "testing"

func TestResolveExactRoutes(t *testing.T) {
	tests := []struct {
		path string
		want Page
	}{
		{"/", PageHome},
		{"/about", PageAbout},
		{"/projects", PageProjects},
		{"/services", PageServices},
		{"/contact", PageContact},
		{"/blog", PageBlog},
		{"/blog/", PageBlog},
	}
	for _, tt := range tests {
		got := Resolve(tt.path)
		if got.Page != tt.want {
			t.Errorf("Resolve(%q).Page = %q, want %q", tt.path, got.Page, tt.want)
		}
		if !got.ResetScroll {
			t.Errorf("Resolve(%q) should reset scroll", tt.path)
		}
	}
}

func TestResolveDetailRoutes(t *testing.T) {
	m := Resolve("/blog/minami373-singer-introduction")
	if m.Page != PageBlogPost || m.Param != "minami373-singer-introduction" {
		t.Errorf("blog detail = %+v", m)
	}

	m = Resolve("/projects/kxlyrics-japanese-learning-website")
	if m.Page != PageProjectDetail || m.Param != "kxlyrics-japanese-learning-website" {
		t.Errorf("project detail = %+v", m)
	}
}

func TestResolveUnmatchedFallsBackToHome(t *testing.T) {
	for _, path := range []string{"/ghost", "/blog/a/b", "/projects/a/b/c", "/services/sub"} {
		if got := Resolve(path); got.Page != PageHome {
			t.Errorf("Resolve(%q).Page = %q, want home", path, got.Page)
		}
	}
}

func TestCurrentPage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "home"},
		{"/about", "about"},
		{"/projects", "projects"},
		{"/projects/some-id", "projects"},
		{"/blog/some-post", "blog"},
		{"/unknown", "home"},
	}
	for _, tt := range tests {
		if got := CurrentPage(tt.path); got != tt.want {
			t.Errorf("CurrentPage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// The prefix derivation and route dispatch disagree for nested paths:
// /services/consulting highlights "services" but dispatches to home.
// This pins the inherited behavior.
func TestCurrentPageDisagreesWithResolveOnNestedPaths(t *testing.T) {
	path := "/services/consulting"
	if got := CurrentPage(path); got != "services" {
		t.Errorf("CurrentPage(%q) = %q, want services", path, got)
	}
	if got := Resolve(path); got.Page != PageHome {
		t.Errorf("Resolve(%q).Page = %q, want home", path, got.Page)
	}
}
