// Package nav maps URL paths to pages and derives the coarse
// "current page" label used for navigation highlighting.
package nav

import "strings"

// Page identifies a composable page.
type Page string

const (
	PageHome          Page = "home"
	PageAbout         Page = "about"
	PageProjects      Page = "projects"
	PageProjectDetail Page = "project-detail"
	PageServices      Page = "services"
	PageContact       Page = "contact"
	PageBlog          Page = "blog"
	PageBlogPost      Page = "blog-post"
)

// Match is the result of resolving a path.
type Match struct {
	Page Page
	// Param carries the id segment for detail routes, empty otherwise.
	Param string
	// ResetScroll is set on every navigation: the viewport scrolls back
	// to the top whenever the path changes.
	ResetScroll bool
}

// Resolve dispatches a path against the fixed route table. There is no
// distinct 404 state: any unmatched path resolves to the home page.
func Resolve(path string) Match {
	path = normalize(path)

	switch path {
	case "/":
		return Match{Page: PageHome, ResetScroll: true}
	case "/about":
		return Match{Page: PageAbout, ResetScroll: true}
	case "/projects":
		return Match{Page: PageProjects, ResetScroll: true}
	case "/services":
		return Match{Page: PageServices, ResetScroll: true}
	case "/contact":
		return Match{Page: PageContact, ResetScroll: true}
	case "/blog":
		return Match{Page: PageBlog, ResetScroll: true}
	}

	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segs) == 2 && segs[1] != "" {
		switch segs[0] {
		case "projects":
			return Match{Page: PageProjectDetail, Param: segs[1], ResetScroll: true}
		case "blog":
			return Match{Page: PageBlogPost, Param: segs[1], ResetScroll: true}
		}
	}

	return Match{Page: PageHome, ResetScroll: true}
}

// currentPagePrefixes is the ordered prefix list for nav highlighting,
// first match wins.
var currentPagePrefixes = []struct {
	prefix string
	label  string
}{
	{"/about", "about"},
	{"/projects", "projects"},
	{"/services", "services"},
	{"/contact", "contact"},
	{"/blog", "blog"},
}

// CurrentPage derives the coarse nav-highlight label from a path prefix.
// This derivation is independent of Resolve and can disagree with it at
// edge cases: a hypothetical /services/consulting subpage highlights
// "services" here while Resolve dispatches it to home. The disagreement
// is inherited behavior; a test pins it.
func CurrentPage(path string) string {
	path = normalize(path)
	if path == "/" {
		return "home"
	}
	for _, p := range currentPagePrefixes {
		if strings.HasPrefix(path, p.prefix) {
			return p.label
		}
	}
	return "home"
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
