package handler

import (
	"context"
	"net/http"

	"tooldir/internal/domain"
	"tooldir/internal/repository"
)

func (h *Handler) admin(fn http.HandlerFunc) http.Handler {
	return RequireRole(h.auth, domain.RoleAdmin)(fn)
}

func (h *Handler) registerContent(mux *http.ServeMux) {
	// Tools
	mux.HandleFunc("GET /api/tools", h.listTools)
	mux.HandleFunc("GET /api/tools/{id}", getByID(h, "tool", func(r *http.Request, id string) (*domain.Tool, error) {
		return h.repos.Tools.Get(r.Context(), id)
	}))
	mux.Handle("POST /api/tools", h.admin(h.createTool))
	mux.Handle("PUT /api/tools/{id}", h.admin(h.updateTool))
	mux.Handle("DELETE /api/tools/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Tools.Delete(r.Context(), r.PathValue("id"))
		h.noContent(w, r, "delete tool", ok, err)
	}))

	// Categories share one shape and one set of routes
	h.registerCategories(mux, "/api/categories", h.repos.ToolCategories)
	h.registerCategories(mux, "/api/article-categories", h.repos.ArticleCategories)
	h.registerCategories(mux, "/api/resource-categories", h.repos.ResourceCategories)

	// Articles
	mux.HandleFunc("GET /api/articles", func(w http.ResponseWriter, r *http.Request) {
		all := h.repos.Articles.List
		if r.URL.Query().Get("sort") == "pinned" {
			all = h.repos.Articles.ListPinnedFirst
		}
		listFiltered(h, w, r, "articles", "category", all, h.repos.Articles.ListByCategory)
	})
	mux.HandleFunc("GET /api/articles/{id}", getByID(h, "article", func(r *http.Request, id string) (*domain.Article, error) {
		return h.repos.Articles.Get(r.Context(), id)
	}))
	mux.Handle("POST /api/articles", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var in domain.ArticleInput
		if !h.decode(w, r, &in) {
			return
		}
		a, err := h.repos.Articles.Add(r.Context(), in)
		result(h, w, r, "create article", a, err, http.StatusCreated)
	}))
	mux.Handle("PUT /api/articles/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var patch domain.ArticlePatch
		if !h.decode(w, r, &patch) {
			return
		}
		a, err := h.repos.Articles.Update(r.Context(), r.PathValue("id"), patch)
		result(h, w, r, "update article", a, err, http.StatusOK)
	}))
	mux.Handle("DELETE /api/articles/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Articles.Delete(r.Context(), r.PathValue("id"))
		h.noContent(w, r, "delete article", ok, err)
	}))

	// Resources and their links
	mux.HandleFunc("GET /api/resources", func(w http.ResponseWriter, r *http.Request) {
		listFiltered(h, w, r, "resources", "category", h.repos.Resources.List, h.repos.Resources.ListByCategory)
	})
	mux.HandleFunc("GET /api/resources/{id}", getByID(h, "resource", func(r *http.Request, id string) (*domain.ResourceItem, error) {
		return h.repos.Resources.Get(r.Context(), id)
	}))
	mux.Handle("POST /api/resources", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var in domain.ResourceInput
		if !h.decode(w, r, &in) {
			return
		}
		res, err := h.repos.Resources.Add(r.Context(), in)
		result(h, w, r, "create resource", res, err, http.StatusCreated)
	}))
	mux.Handle("PUT /api/resources/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var patch domain.ResourcePatch
		if !h.decode(w, r, &patch) {
			return
		}
		res, err := h.repos.Resources.Update(r.Context(), r.PathValue("id"), patch)
		result(h, w, r, "update resource", res, err, http.StatusOK)
	}))
	mux.Handle("DELETE /api/resources/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Resources.Delete(r.Context(), r.PathValue("id"))
		h.noContent(w, r, "delete resource", ok, err)
	}))
	mux.Handle("POST /api/resources/{id}/links", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var in domain.CloudLinkInput
		if !h.decode(w, r, &in) {
			return
		}
		link, err := h.repos.Resources.AddLink(r.Context(), r.PathValue("id"), in)
		result(h, w, r, "add link", link, err, http.StatusCreated)
	}))
	mux.Handle("PUT /api/resources/{id}/links/{linkId}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var patch domain.CloudLinkPatch
		if !h.decode(w, r, &patch) {
			return
		}
		link, err := h.repos.Resources.UpdateLink(r.Context(), r.PathValue("id"), r.PathValue("linkId"), patch)
		result(h, w, r, "update link", link, err, http.StatusOK)
	}))
	mux.Handle("DELETE /api/resources/{id}/links/{linkId}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Resources.DeleteLink(r.Context(), r.PathValue("id"), r.PathValue("linkId"))
		h.noContent(w, r, "delete link", ok, err)
	}))
}

// listFiltered lists everything, or only the records matching the query
// parameter param when it is set
func listFiltered[T any](h *Handler, w http.ResponseWriter, r *http.Request, what, param string,
	all func(context.Context) ([]T, error), by func(context.Context, string) ([]T, error)) {
	var (
		items []T
		err   error
	)
	if v := r.URL.Query().Get(param); v != "" {
		items, err = by(r.Context(), v)
	} else {
		items, err = all(r.Context())
	}
	if err != nil {
		h.fail(w, r, "list "+what, err)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// listTools filters by ?category= or searches by ?q=
func (h *Handler) listTools(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		tools, err := h.repos.Tools.Search(r.Context(), q)
		if err != nil {
			h.fail(w, r, "search tools", err)
			return
		}
		writeJSON(w, tools, http.StatusOK)
		return
	}
	listFiltered(h, w, r, "tools", "category", h.repos.Tools.List, h.repos.Tools.ListByCategory)
}

func (h *Handler) createTool(w http.ResponseWriter, r *http.Request) {
	var in domain.ToolInput
	if !h.decode(w, r, &in) {
		return
	}
	tool, err := h.repos.Tools.Add(r.Context(), in)
	result(h, w, r, "create tool", tool, err, http.StatusCreated)
}

func (h *Handler) updateTool(w http.ResponseWriter, r *http.Request) {
	var patch domain.ToolPatch
	if !h.decode(w, r, &patch) {
		return
	}
	tool, err := h.repos.Tools.Update(r.Context(), r.PathValue("id"), patch)
	result(h, w, r, "update tool", tool, err, http.StatusOK)
}

func (h *Handler) registerCategories(mux *http.ServeMux, path string, repo *repository.CategoryRepository) {
	mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		cats, err := repo.List(r.Context())
		if err != nil {
			h.fail(w, r, "list categories", err)
			return
		}
		writeJSON(w, cats, http.StatusOK)
	})
	mux.HandleFunc("GET "+path+"/{id}", getByID(h, "category", func(r *http.Request, id string) (*domain.Category, error) {
		return repo.Get(r.Context(), id)
	}))
	mux.Handle("POST "+path, h.admin(func(w http.ResponseWriter, r *http.Request) {
		var in domain.CategoryInput
		if !h.decode(w, r, &in) {
			return
		}
		cat, err := repo.Add(r.Context(), in)
		result(h, w, r, "create category", cat, err, http.StatusCreated)
	}))
	mux.Handle("PUT "+path+"/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var patch domain.CategoryPatch
		if !h.decode(w, r, &patch) {
			return
		}
		cat, err := repo.Update(r.Context(), r.PathValue("id"), patch)
		result(h, w, r, "update category", cat, err, http.StatusOK)
	}))
	mux.Handle("DELETE "+path+"/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		cat, err := repo.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, "delete category", err)
			return
		}
		if cat == nil {
			notFound(w, "category")
			return
		}
		ok, err := repo.Delete(r.Context(), id)
		if err != nil {
			h.fail(w, r, "delete category", err)
			return
		}
		if !ok {
			writeError(w, "Failed to delete category", "the last category cannot be deleted", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}
