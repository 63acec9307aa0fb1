// Package sitemap renders sitemap.xml from the content store, so every
// generated entry went through content validation first.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/kakeru/folio/internal/content"
)

// URL is one sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// staticRoutes lists the fixed pages with their crawl hints.
var staticRoutes = []URL{
	{Loc: "/", ChangeFreq: "weekly", Priority: "1.0"},
	{Loc: "/about", ChangeFreq: "monthly", Priority: "0.8"},
	{Loc: "/projects", ChangeFreq: "weekly", Priority: "0.9"},
	{Loc: "/services", ChangeFreq: "monthly", Priority: "0.7"},
	{Loc: "/contact", ChangeFreq: "monthly", Priority: "0.6"},
	{Loc: "/blog", ChangeFreq: "daily", Priority: "0.9"},
}

// Generate builds the sitemap entries for a site rooted at baseURL.
func Generate(store *content.Store, baseURL string) []URL {
	base := strings.TrimSuffix(baseURL, "/")

	urls := make([]URL, 0, len(staticRoutes))
	for _, u := range staticRoutes {
		u.Loc = base + u.Loc
		urls = append(urls, u)
	}

	for _, p := range store.AllPosts() {
		urls = append(urls, URL{
			Loc:        fmt.Sprintf("%s/blog/%s", base, p.ID),
			LastMod:    p.Date,
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}

	for _, p := range store.AllProjects() {
		urls = append(urls, URL{
			Loc:        fmt.Sprintf("%s/projects/%s", base, p.ID),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	return urls
}

// Render marshals entries into a sitemap.xml document.
func Render(urls []URL) ([]byte, error) {
	doc := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: marshal: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteFile generates and writes sitemap.xml, returning the entry count.
func WriteFile(store *content.Store, baseURL, path string) (int, error) {
	urls := Generate(store, baseURL)
	body, err := Render(urls)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return 0, fmt.Errorf("sitemap: write %s: %w", path, err)
	}
	return len(urls), nil
}
