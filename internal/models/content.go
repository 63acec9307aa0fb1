// Package models defines the domain types for the portfolio site.
package models

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ContentLocale identifies one of the fixed content translation locales.
// Content locales are a narrower set than the UI language tags: every
// zh-* UI tag maps to "zh", ja maps to "jp".
type ContentLocale string

const (
	LocaleZH ContentLocale = "zh"
	LocaleEN ContentLocale = "en"
	LocaleJP ContentLocale = "jp"
)

// DefaultContentLocale is the locale content falls back to when a
// translation is missing.
const DefaultContentLocale = LocaleZH

// ContentLocales returns all supported content locales.
func ContentLocales() []ContentLocale {
	return []ContentLocale{LocaleZH, LocaleEN, LocaleJP}
}

// The date layout used by post Date fields.
const DateLayout = "2006-01-02"

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// LocaleString holds the parallel translations of a single content field,
// one per content locale.
type LocaleString struct {
	ZH string `yaml:"zh" json:"zh"`
	EN string `yaml:"en" json:"en"`
	JP string `yaml:"jp,omitempty" json:"jp,omitempty"`
}

// Resolve returns the translation for the given locale. Missing
// translations fall back to English, then to the default locale. The
// per-entry locale sets are validated at load time, so the fallback only
// fires for fields where a locale is legitimately optional (e.g. project
// descriptions carry no Japanese translation).
func (l LocaleString) Resolve(loc ContentLocale) string {
	var s string
	switch loc {
	case LocaleZH:
		s = l.ZH
	case LocaleEN:
		s = l.EN
	case LocaleJP:
		s = l.JP
	}
	if s == "" {
		s = l.EN
	}
	if s == "" {
		s = l.ZH
	}
	return s
}

// RequireLocales reports an error if any of the given locales has no
// translation. A missing translation is a data-authoring defect caught
// at load time, not a runtime-recoverable state.
func (l LocaleString) RequireLocales(locales ...ContentLocale) error {
	for _, loc := range locales {
		var s string
		switch loc {
		case LocaleZH:
			s = l.ZH
		case LocaleEN:
			s = l.EN
		case LocaleJP:
			s = l.JP
		}
		if s == "" {
			return fmt.Errorf("missing %s translation", loc)
		}
	}
	return nil
}

// BlogPost is a localized blog entry. Posts are authored as static
// content files and never mutated at runtime.
type BlogPost struct {
	ID         string       `yaml:"id" json:"id"`
	Title      LocaleString `yaml:"title" json:"title"`
	Excerpt    LocaleString `yaml:"excerpt" json:"excerpt"`
	Content    LocaleString `yaml:"content" json:"content"`
	Date       string       `yaml:"date" json:"date"`
	ReadTime   int          `yaml:"readTime" json:"readTime"`
	Category   LocaleString `yaml:"category" json:"category"`
	Tags       []string     `yaml:"tags" json:"tags"`
	CoverImage string       `yaml:"coverImage,omitempty" json:"coverImage,omitempty"`
	Author     string       `yaml:"author" json:"author"`
}

// PublishedAt parses the post date.
func (p *BlogPost) PublishedAt() (time.Time, error) {
	return time.Parse(DateLayout, p.Date)
}

// Validate checks the structural invariants of a post. Every locale-keyed
// field must carry all three content locales.
func (p *BlogPost) Validate() error {
	if err := validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, validation.Match(slugRe)),
		validation.Field(&p.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&p.ReadTime, validation.Required, validation.Min(1)),
		validation.Field(&p.Author, validation.Required),
	); err != nil {
		return err
	}
	for name, ls := range map[string]LocaleString{
		"title":    p.Title,
		"excerpt":  p.Excerpt,
		"content":  p.Content,
		"category": p.Category,
	} {
		if err := ls.RequireLocales(ContentLocales()...); err != nil {
			return fmt.Errorf("post %s: field %s: %w", p.ID, name, err)
		}
	}
	return nil
}

// Project is a localized portfolio entry. Project text carries Chinese
// and English translations; Japanese falls back through Resolve.
type Project struct {
	ID              string       `yaml:"id" json:"id"`
	Title           LocaleString `yaml:"title" json:"title"`
	Description     LocaleString `yaml:"description" json:"description"`
	FullDescription LocaleString `yaml:"fullDescription" json:"fullDescription"`
	Category        LocaleString `yaml:"category" json:"category"`
	Year            string       `yaml:"year" json:"year"`
	Technologies    []string     `yaml:"technologies" json:"technologies"`
	CoverImage      string       `yaml:"coverImage,omitempty" json:"coverImage,omitempty"`
	Images          []string     `yaml:"images,omitempty" json:"images,omitempty"`
	LiveURL         string       `yaml:"liveUrl,omitempty" json:"liveUrl,omitempty"`
	GithubURL       string       `yaml:"githubUrl,omitempty" json:"githubUrl,omitempty"`
	Featured        bool         `yaml:"featured" json:"featured"`
}

var yearRe = regexp.MustCompile(`^\d{4}$`)

// Validate checks the structural invariants of a project.
func (p *Project) Validate() error {
	if err := validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, validation.Match(slugRe)),
		validation.Field(&p.Year, validation.Required, validation.Match(yearRe)),
		validation.Field(&p.Technologies, validation.Required),
	); err != nil {
		return err
	}
	for name, ls := range map[string]LocaleString{
		"title":           p.Title,
		"description":     p.Description,
		"fullDescription": p.FullDescription,
		"category":        p.Category,
	} {
		if err := ls.RequireLocales(LocaleZH, LocaleEN); err != nil {
			return fmt.Errorf("project %s: field %s: %w", p.ID, name, err)
		}
	}
	return nil
}
