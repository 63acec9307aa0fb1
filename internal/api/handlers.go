package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kakeru/folio/internal/apperr"
	"github.com/kakeru/folio/internal/content"
	"github.com/kakeru/folio/internal/i18n"
	"github.com/kakeru/folio/internal/integrations"
	"github.com/kakeru/folio/internal/pages"
	"github.com/kakeru/folio/internal/subscribers"
	"github.com/kakeru/folio/internal/uistate"
)

// Handler holds API route handlers.
type Handler struct {
	pages   *pages.Service
	store   *content.Store
	subs    *subscribers.Store
	mailer  *integrations.Mailer
	contrib *integrations.ContributionsClient
	visits  *integrations.VisitCounter
	i18n    *i18n.Resolver
	theme   *uistate.Theme
}

// NewHandler creates a new Handler.
func NewHandler(
	pageSvc *pages.Service,
	store *content.Store,
	subs *subscribers.Store,
	mailer *integrations.Mailer,
	contrib *integrations.ContributionsClient,
	visits *integrations.VisitCounter,
	resolver *i18n.Resolver,
	theme *uistate.Theme,
) *Handler {
	return &Handler{
		pages:   pageSvc,
		store:   store,
		subs:    subs,
		mailer:  mailer,
		contrib: contrib,
		visits:  visits,
		i18n:    resolver,
		theme:   theme,
	}
}

// Page composes the view model for the requested path. Any path outside
// the route table composes the home page, so this also serves as the
// router's NotFound handler.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	query := map[string]string{}
	if c := r.URL.Query().Get("category"); c != "" {
		query["category"] = c
	}
	view := h.pages.Compose(r.Context(), r.URL.Path, query)
	writeJSON(w, http.StatusOK, view)
}

// ListPosts handles GET /api/posts.
//
//	@Summary		List blog posts, newest first
//	@Tags			posts
//	@Produce		json
//	@Param			category	query		string	false	"Filter by category label"
//	@Success		200			{object}	PostListResponse
//	@Router			/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	posts := h.store.AllPosts()
	if category != "" {
		posts = h.store.PostsByCategory(category)
	}
	writeJSON(w, http.StatusOK, PostListResponse{Posts: posts, Total: len(posts)})
}

// GetPost handles GET /api/posts/{id}.
//
//	@Summary		Get a single post by slug
//	@Tags			posts
//	@Produce		json
//	@Param			id	path		string	true	"Post slug"
//	@Success		200	{object}	models.BlogPost
//	@Failure		404	{object}	errResponse
//	@Router			/posts/{id} [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.store.PostByID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get post failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// PostCategories handles GET /api/posts/categories.
func (h *Handler) PostCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.store.Categories(),
	})
}

// ListProjects handles GET /api/projects.
//
//	@Summary		List projects, newest year first
//	@Tags			projects
//	@Produce		json
//	@Success		200	{object}	ProjectListResponse
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, _ *http.Request) {
	projects := h.store.AllProjects()
	writeJSON(w, http.StatusOK, ProjectListResponse{Projects: projects, Total: len(projects)})
}

// FeaturedProjects handles GET /api/projects/featured.
func (h *Handler) FeaturedProjects(w http.ResponseWriter, _ *http.Request) {
	projects := h.store.FeaturedProjects()
	writeJSON(w, http.StatusOK, ProjectListResponse{Projects: projects, Total: len(projects)})
}

// GetProject handles GET /api/projects/{id}.
//
//	@Summary		Get a single project by slug
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project slug"
//	@Success		200	{object}	models.Project
//	@Failure		404	{object}	errResponse
//	@Router			/projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	project, err := h.store.ProjectByID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get project failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Subscribe handles POST /api/subscribe.
//
//	@Summary		Subscribe an email address to the newsletter
//	@Tags			newsletter
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SubscribeRequest	true	"Address to subscribe"
//	@Success		201		{object}	SubscribeResponse
//	@Success		200		{object}	SubscribeResponse	"Already subscribed"
//	@Failure		400		{object}	SubscribeResponse	"Invalid address"
//	@Router			/subscribe [post]
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	status, err := h.subs.Add(req.Email)
	if err != nil {
		slog.Error("subscribe failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	total, err := h.subs.Count()
	if err != nil {
		slog.Error("subscriber count failed", slog.String("error", err.Error()))
	}

	resp := SubscribeResponse{Status: string(status), Total: total}
	switch status {
	case subscribers.StatusSubscribed:
		writeJSON(w, http.StatusCreated, resp)
	case subscribers.StatusAlreadySubscribed:
		writeJSON(w, http.StatusOK, resp)
	default:
		writeJSON(w, http.StatusBadRequest, resp)
	}
}

// Unsubscribe handles DELETE /api/subscribe.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	removed, err := h.subs.Remove(req.Email)
	if err != nil {
		slog.Error("unsubscribe failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubscribers handles GET /api/subscribers (auth-protected).
//
//	@Summary		List newsletter subscribers
//	@Tags			newsletter
//	@Produce		json
//	@Security		BearerAuth
//	@Router			/subscribers [get]
func (h *Handler) ListSubscribers(w http.ResponseWriter, _ *http.Request) {
	subs, err := h.subs.All()
	if err != nil {
		slog.Error("list subscribers failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subscribers": subs,
		"total":       len(subs),
	})
}

// Contact handles POST /api/contact.
//
//	@Summary		Deliver a contact form message
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ContactRequest	true	"Message"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	errResponse
//	@Failure		502		{object}	errResponse	"Delivery failed, resubmit the same form"
//	@Router			/contact [post]
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var msg integrations.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	err := h.mailer.Send(r.Context(), msg)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "sent",
			"message": h.i18n.T("contact.success"),
		})
	case errors.Is(err, integrations.ErrSendFailed):
		// The caller keeps the form data and may retry.
		writeJSON(w, http.StatusBadGateway, errorBody(h.i18n.T("contact.error")))
	default:
		var vErr validation.Errors
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("contact failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Contributions handles GET /api/metrics/contributions.
func (h *Handler) Contributions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.contrib.Fetch(r.Context()))
}

// Visits handles GET /api/metrics/visits. Every call counts a visit.
func (h *Handler) Visits(w http.ResponseWriter, r *http.Request) {
	res, err := h.visits.Hit(r.Context())
	if err != nil {
		slog.Error("visit count failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetLanguage handles GET /api/language.
func (h *Handler) GetLanguage(w http.ResponseWriter, _ *http.Request) {
	active := h.i18n.Active()
	writeJSON(w, http.StatusOK, LanguageResponse{
		Language:      active,
		ContentLocale: string(i18n.ContentLocaleFor(active)),
	})
}

// PutLanguage handles PUT /api/language.
func (h *Handler) PutLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Language == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("language is required"))
		return
	}

	h.i18n.ChangeLanguage(req.Language)
	writeJSON(w, http.StatusOK, LanguageResponse{
		Language:      h.i18n.Active(),
		ContentLocale: string(h.i18n.ContentLocale()),
	})
}

// GetTheme handles GET /api/theme.
func (h *Handler) GetTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ThemeResponse{Mode: h.theme.Active()})
}

// PutTheme handles PUT /api/theme.
func (h *Handler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	h.theme.Set(req.Mode)
	writeJSON(w, http.StatusOK, ThemeResponse{Mode: h.theme.Active()})
}
