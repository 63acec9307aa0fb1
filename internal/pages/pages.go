// Package pages composes per-page view models from the content store, the
// language resolver, and the external integrations.
package pages

import (
	"context"
	"log/slog"

	"github.com/kakeru/folio/internal/content"
	"github.com/kakeru/folio/internal/i18n"
	"github.com/kakeru/folio/internal/integrations"
	"github.com/kakeru/folio/internal/markdown"
	"github.com/kakeru/folio/internal/models"
	"github.com/kakeru/folio/internal/nav"
)

// View wraps a composed page payload with its navigation context.
type View struct {
	Page        nav.Page `json:"page"`
	Path        string   `json:"path"`
	Current     string   `json:"current"`
	Language    string   `json:"language"`
	ResetScroll bool     `json:"resetScroll"`
	Data        any      `json:"data"`
}

// PostCard is a localized blog post summary.
type PostCard struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Date       string   `json:"date"`
	ReadTime   int      `json:"readTime"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage,omitempty"`
	Author     string   `json:"author"`
}

// PostView is a full localized blog post with rendered body.
type PostView struct {
	PostCard
	ContentHTML string `json:"contentHtml"`
}

// ProjectCard is a localized project summary.
type ProjectCard struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Year         string   `json:"year"`
	Technologies []string `json:"technologies"`
	CoverImage   string   `json:"coverImage,omitempty"`
	Featured     bool     `json:"featured"`
}

// ProjectView is a full localized project with rendered description.
type ProjectView struct {
	ProjectCard
	FullDescriptionHTML string   `json:"fullDescriptionHtml"`
	Images              []string `json:"images,omitempty"`
	LiveURL             string   `json:"liveUrl,omitempty"`
	GithubURL           string   `json:"githubUrl,omitempty"`
}

// NotFound is the localized missing-entry view. It is a normal page
// state, not an error.
type NotFound struct {
	Message   string `json:"message"`
	BackLink  string `json:"backLink"`
	BackLabel string `json:"backLabel"`
}

// HeroView is the home page banner copy.
type HeroView struct {
	Greeting string `json:"greeting"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTA      string `json:"cta"`
}

// HomeView is the landing page payload.
type HomeView struct {
	Hero             HeroView                         `json:"hero"`
	FeaturedProjects []ProjectCard                    `json:"featuredProjects"`
	LatestPosts      []PostCard                       `json:"latestPosts"`
	Contributions    integrations.ContributionsResult `json:"contributions"`
	Visits           integrations.VisitsResult        `json:"visits"`
}

// AboutView is the about page payload.
type AboutView struct {
	Title string `json:"title"`
	Intro string `json:"intro"`
	Bio   string `json:"bio"`
}

// ProjectsView lists all projects with their category labels.
type ProjectsView struct {
	Title      string        `json:"title"`
	Projects   []ProjectCard `json:"projects"`
	Categories []string      `json:"categories"`
}

// ProjectDetailView is either a project or its not-found state.
type ProjectDetailView struct {
	Project  *ProjectView `json:"project,omitempty"`
	NotFound *NotFound    `json:"notFound,omitempty"`
}

// ServiceItem is one offered service.
type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ServicesView is the services page payload.
type ServicesView struct {
	Title    string        `json:"title"`
	Services []ServiceItem `json:"services"`
}

// ContactView is the contact page payload.
type ContactView struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	NameLabel    string `json:"nameLabel"`
	EmailLabel   string `json:"emailLabel"`
	MessageLabel string `json:"messageLabel"`
	Submit       string `json:"submit"`
}

// BlogView lists posts, optionally filtered by category.
type BlogView struct {
	Title          string     `json:"title"`
	Posts          []PostCard `json:"posts"`
	Categories     []string   `json:"categories"`
	ActiveCategory string     `json:"activeCategory,omitempty"`
}

// BlogPostView is either a post or its not-found state.
type BlogPostView struct {
	Post     *PostView `json:"post,omitempty"`
	NotFound *NotFound `json:"notFound,omitempty"`
}

// Service composes views. All composition is read-only against the
// current content snapshot and the active language.
type Service struct {
	store   *content.Store
	i18n    *i18n.Resolver
	md      *markdown.Renderer
	contrib *integrations.ContributionsClient
	visits  *integrations.VisitCounter
	logger  *slog.Logger
}

func NewService(
	store *content.Store,
	resolver *i18n.Resolver,
	md *markdown.Renderer,
	contrib *integrations.ContributionsClient,
	visits *integrations.VisitCounter,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:   store,
		i18n:    resolver,
		md:      md,
		contrib: contrib,
		visits:  visits,
		logger:  logger,
	}
}

// Compose resolves a path and builds the matching view. Unknown paths
// compose the home page, mirroring the route table.
func (s *Service) Compose(ctx context.Context, path string, query map[string]string) View {
	match := nav.Resolve(path)

	view := View{
		Page:        match.Page,
		Path:        path,
		Current:     nav.CurrentPage(path),
		Language:    s.i18n.Active(),
		ResetScroll: match.ResetScroll,
	}

	switch match.Page {
	case nav.PageHome:
		view.Data = s.Home(ctx)
	case nav.PageAbout:
		view.Data = s.About()
	case nav.PageProjects:
		view.Data = s.Projects()
	case nav.PageProjectDetail:
		view.Data = s.ProjectDetail(match.Param)
	case nav.PageServices:
		view.Data = s.Services()
	case nav.PageContact:
		view.Data = s.Contact()
	case nav.PageBlog:
		view.Data = s.Blog(query["category"])
	case nav.PageBlogPost:
		view.Data = s.BlogPost(match.Param)
	}
	return view
}

// Home builds the landing page. The integration fetches run here so the
// widgets always reflect a fresh hit.
func (s *Service) Home(ctx context.Context) HomeView {
	visits, err := s.visits.Hit(ctx)
	if err != nil {
		s.logger.Warn("home: visit counter unavailable", slog.String("error", err.Error()))
	}

	return HomeView{
		Hero: HeroView{
			Greeting: s.i18n.T("home.hero.greeting"),
			Title:    s.i18n.T("home.hero.title"),
			Subtitle: s.i18n.T("home.hero.subtitle"),
			CTA:      s.i18n.T("home.hero.cta"),
		},
		FeaturedProjects: s.projectCards(s.store.FeaturedProjects()),
		LatestPosts:      s.postCards(latest(s.store.AllPosts(), 3)),
		Contributions:    s.contrib.Fetch(ctx),
		Visits:           visits,
	}
}

func (s *Service) About() AboutView {
	return AboutView{
		Title: s.i18n.T("about.title"),
		Intro: s.i18n.T("about.intro"),
		Bio:   s.i18n.T("about.bio"),
	}
}

func (s *Service) Projects() ProjectsView {
	return ProjectsView{
		Title:      s.i18n.T("projects.title"),
		Projects:   s.projectCards(s.store.AllProjects()),
		Categories: s.store.ProjectCategories(),
	}
}

func (s *Service) ProjectDetail(id string) ProjectDetailView {
	project, err := s.store.ProjectByID(id)
	if err != nil {
		return ProjectDetailView{NotFound: &NotFound{
			Message:   s.i18n.T("projects.notFound.message"),
			BackLink:  "/projects",
			BackLabel: s.i18n.T("projects.notFound.back"),
		}}
	}

	loc := s.i18n.ContentLocale()
	html, err := s.md.Render(project.FullDescription.Resolve(loc))
	if err != nil {
		s.logger.Warn("project: markdown render failed",
			slog.String("id", id), slog.String("error", err.Error()))
	}

	return ProjectDetailView{Project: &ProjectView{
		ProjectCard:         s.projectCard(project),
		FullDescriptionHTML: html,
		Images:              project.Images,
		LiveURL:             project.LiveURL,
		GithubURL:           project.GithubURL,
	}}
}

func (s *Service) Services() ServicesView {
	items := []ServiceItem{
		{Title: s.i18n.T("services.web.title"), Description: s.i18n.T("services.web.description")},
		{Title: s.i18n.T("services.design.title"), Description: s.i18n.T("services.design.description")},
		{Title: s.i18n.T("services.consulting.title"), Description: s.i18n.T("services.consulting.description")},
	}
	return ServicesView{Title: s.i18n.T("services.title"), Services: items}
}

func (s *Service) Contact() ContactView {
	return ContactView{
		Title:        s.i18n.T("contact.title"),
		Subtitle:     s.i18n.T("contact.subtitle"),
		NameLabel:    s.i18n.T("contact.form.name"),
		EmailLabel:   s.i18n.T("contact.form.email"),
		MessageLabel: s.i18n.T("contact.form.message"),
		Submit:       s.i18n.T("contact.form.submit"),
	}
}

// Blog lists posts newest first, optionally filtered by category label.
func (s *Service) Blog(category string) BlogView {
	posts := s.store.AllPosts()
	if category != "" {
		posts = s.store.PostsByCategory(category)
	}
	return BlogView{
		Title:          s.i18n.T("blog.title"),
		Posts:          s.postCards(posts),
		Categories:     s.store.Categories(),
		ActiveCategory: category,
	}
}

func (s *Service) BlogPost(id string) BlogPostView {
	post, err := s.store.PostByID(id)
	if err != nil {
		return BlogPostView{NotFound: &NotFound{
			Message:   s.i18n.T("blog.notFound.message"),
			BackLink:  "/blog",
			BackLabel: s.i18n.T("blog.notFound.back"),
		}}
	}

	loc := s.i18n.ContentLocale()
	html, err := s.md.Render(post.Content.Resolve(loc))
	if err != nil {
		s.logger.Warn("blog: markdown render failed",
			slog.String("id", id), slog.String("error", err.Error()))
	}

	return BlogPostView{Post: &PostView{
		PostCard:    s.postCard(post),
		ContentHTML: html,
	}}
}

func (s *Service) postCard(p models.BlogPost) PostCard {
	loc := s.i18n.ContentLocale()
	return PostCard{
		ID:         p.ID,
		Title:      p.Title.Resolve(loc),
		Excerpt:    p.Excerpt.Resolve(loc),
		Date:       p.Date,
		ReadTime:   p.ReadTime,
		Category:   p.Category.Resolve(loc),
		Tags:       p.Tags,
		CoverImage: p.CoverImage,
		Author:     p.Author,
	}
}

func (s *Service) postCards(posts []models.BlogPost) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, s.postCard(p))
	}
	return cards
}

func (s *Service) projectCard(p models.Project) ProjectCard {
	loc := s.i18n.ContentLocale()
	return ProjectCard{
		ID:           p.ID,
		Title:        p.Title.Resolve(loc),
		Description:  p.Description.Resolve(loc),
		Category:     p.Category.Resolve(loc),
		Year:         p.Year,
		Technologies: p.Technologies,
		CoverImage:   p.CoverImage,
		Featured:     p.Featured,
	}
}

func (s *Service) projectCards(projects []models.Project) []ProjectCard {
	cards := make([]ProjectCard, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, s.projectCard(p))
	}
	return cards
}

func latest(posts []models.BlogPost, n int) []models.BlogPost {
	if len(posts) <= n {
		return posts
	}
	return posts[:n]
}
