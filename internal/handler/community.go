package handler

import (
	"net/http"

	"tooldir/internal/auth"
	"tooldir/internal/domain"
)

// selectStyleRequest names the style to make current
type selectStyleRequest struct {
	ID string `json:"id" validate:"required"`
}

func (h *Handler) registerCommunity(mux *http.ServeMux) {
	// Guestbook
	mux.HandleFunc("GET /api/messages", func(w http.ResponseWriter, r *http.Request) {
		msgs, err := h.repos.Messages.List(r.Context())
		if err != nil {
			h.fail(w, r, "list messages", err)
			return
		}
		writeJSON(w, msgs, http.StatusOK)
	})
	mux.HandleFunc("GET /api/messages/{id}", getByID(h, "message", func(r *http.Request, id string) (*domain.Message, error) {
		return h.repos.Messages.Get(r.Context(), id)
	}))
	mux.HandleFunc("POST /api/messages", func(w http.ResponseWriter, r *http.Request) {
		var in domain.MessageInput
		if !h.decode(w, r, &in) {
			return
		}
		msg, err := h.repos.Messages.Add(r.Context(), in)
		result(h, w, r, "post message", msg, err, http.StatusCreated)
	})
	mux.Handle("DELETE /api/messages/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Messages.Delete(r.Context(), r.PathValue("id"))
		h.noContent(w, r, "delete message", ok, err)
	}))
	mux.Handle("POST /api/messages/{id}/replies", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var in domain.ReplyInput
		if !decodeJSON(w, r, &in) {
			return
		}
		// Replies posted through the API always come from the administrator
		in.IsAdmin = true
		if id, ok := auth.FromContext(r.Context()); ok && in.Author == "" {
			in.Author = id.Username
		}
		if !h.valid(w, r, &in) {
			return
		}
		reply, err := h.repos.Messages.AddReply(r.Context(), r.PathValue("id"), in)
		result(h, w, r, "add reply", reply, err, http.StatusCreated)
	}))
	mux.Handle("DELETE /api/messages/{id}/replies/{replyId}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Messages.DeleteReply(r.Context(), r.PathValue("id"), r.PathValue("replyId"))
		h.noContent(w, r, "delete reply", ok, err)
	}))

	// Styles
	mux.HandleFunc("GET /api/styles", func(w http.ResponseWriter, r *http.Request) {
		styles, err := h.repos.Styles.List(r.Context())
		if err != nil {
			h.fail(w, r, "list styles", err)
			return
		}
		writeJSON(w, styles, http.StatusOK)
	})
	mux.HandleFunc("GET /api/styles/current", func(w http.ResponseWriter, r *http.Request) {
		style, err := h.repos.Styles.Current(r.Context())
		result(h, w, r, "get current style", style, err, http.StatusOK)
	})
	mux.HandleFunc("GET /api/styles/{id}", getByID(h, "style", func(r *http.Request, id string) (*domain.AppStyle, error) {
		return h.repos.Styles.Get(r.Context(), id)
	}))
	mux.Handle("PUT /api/styles/current", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var req selectStyleRequest
		if !h.decode(w, r, &req) {
			return
		}
		ok, err := h.repos.Styles.SetCurrent(r.Context(), req.ID)
		if err != nil {
			h.fail(w, r, "select style", err)
			return
		}
		if !ok {
			notFound(w, "style")
			return
		}
		style, err := h.repos.Styles.Current(r.Context())
		result(h, w, r, "select style", style, err, http.StatusOK)
	}))
	mux.Handle("POST /api/styles", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var in domain.StyleInput
		if !h.decode(w, r, &in) {
			return
		}
		style, err := h.repos.Styles.Add(r.Context(), in)
		result(h, w, r, "create style", style, err, http.StatusCreated)
	}))
	mux.Handle("PUT /api/styles/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var patch domain.StylePatch
		if !h.decode(w, r, &patch) {
			return
		}
		style, err := h.repos.Styles.Update(r.Context(), r.PathValue("id"), patch)
		result(h, w, r, "update style", style, err, http.StatusOK)
	}))
	mux.Handle("DELETE /api/styles/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		style, err := h.repos.Styles.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, "delete style", err)
			return
		}
		if style == nil {
			notFound(w, "style")
			return
		}
		ok, err := h.repos.Styles.Delete(r.Context(), id)
		if err != nil {
			h.fail(w, r, "delete style", err)
			return
		}
		if !ok {
			writeError(w, "Failed to delete style", "the last style cannot be deleted", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}
