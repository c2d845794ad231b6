package handler

import (
	"net/http"

	"tooldir/internal/auth"
	"tooldir/internal/domain"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse carries the session token. Maker is set for maker logins.
type loginResponse struct {
	*auth.Token
	Maker *domain.Maker `json:"maker,omitempty"`
}

// applyRequest is a membership application redeeming an auth code
type applyRequest struct {
	domain.MakerInput
	AuthCode string `json:"authCode"`
}

type codeRequest struct {
	Code string `json:"code" validate:"required"`
}

type codeStatus struct {
	Code   string `json:"code"`
	Valid  bool   `json:"valid"`
	Points int    `json:"points,omitempty"`
}

type generateCodeRequest struct {
	Points int `json:"points" validate:"min=0"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type redeemResponse struct {
	Points int           `json:"points"`
	Maker  *domain.Maker `json:"maker"`
}

func (h *Handler) maker(fn http.HandlerFunc) http.Handler {
	return RequireRole(h.auth, domain.RoleMaker)(fn)
}

func (h *Handler) signedIn(fn http.HandlerFunc) http.Handler {
	return RequireRole(h.auth, domain.RoleAdmin, domain.RoleMaker)(fn)
}

// caller returns the identity RequireRole stored on the request
func caller(r *http.Request) *auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}

func publicMaker(m *domain.Maker) *domain.Maker {
	if m == nil {
		return nil
	}
	p := m.Public()
	return &p
}

func (h *Handler) registerMakers(mux *http.ServeMux) {
	// Sessions
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.Handle("GET /api/auth/me", h.signedIn(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, caller(r), http.StatusOK)
	}))

	// Membership
	mux.HandleFunc("POST /api/makers/apply", h.apply)
	mux.HandleFunc("POST /api/authcodes/validate", func(w http.ResponseWriter, r *http.Request) {
		var req codeRequest
		if !h.decode(w, r, &req) {
			return
		}
		points, ok, err := h.repos.AuthCodes.Validate(r.Context(), req.Code)
		if err != nil {
			h.fail(w, r, "validate auth code", err)
			return
		}
		writeJSON(w, codeStatus{Code: req.Code, Valid: ok, Points: points}, http.StatusOK)
	})
	mux.Handle("GET /api/authcodes", h.admin(func(w http.ResponseWriter, r *http.Request) {
		codes, err := h.repos.AuthCodes.List(r.Context())
		if err != nil {
			h.fail(w, r, "list auth codes", err)
			return
		}
		writeJSON(w, codes, http.StatusOK)
	}))
	mux.Handle("POST /api/authcodes", h.admin(func(w http.ResponseWriter, r *http.Request) {
		var req generateCodeRequest
		if r.ContentLength != 0 && !h.decode(w, r, &req) {
			return
		}
		code, err := h.repos.AuthCodes.Generate(r.Context(), req.Points)
		result(h, w, r, "generate auth code", code, err, http.StatusCreated)
	}))

	// Maker accounts
	mux.Handle("GET /api/makers", h.admin(h.listMakers))
	mux.HandleFunc("GET /api/makers/{id}", getByID(h, "maker", func(r *http.Request, id string) (*domain.Maker, error) {
		m, err := h.repos.Makers.Get(r.Context(), id)
		return publicMaker(m), err
	}))
	mux.Handle("POST /api/makers/{id}/reset-password", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Makers.ResetPassword(r.Context(), r.PathValue("id"))
		h.noContent(w, r, "reset password", ok, err)
	}))
	mux.Handle("GET /api/makers/me", h.maker(func(w http.ResponseWriter, r *http.Request) {
		m, err := h.repos.Makers.Get(r.Context(), caller(r).Subject)
		result(h, w, r, "get profile", publicMaker(m), err, http.StatusOK)
	}))
	mux.Handle("PUT /api/makers/me", h.maker(func(w http.ResponseWriter, r *http.Request) {
		var patch domain.MakerPatch
		if !h.decode(w, r, &patch) {
			return
		}
		m, err := h.repos.Makers.Update(r.Context(), caller(r).Subject, patch)
		result(h, w, r, "update profile", publicMaker(m), err, http.StatusOK)
	}))
	mux.Handle("PUT /api/makers/me/password", h.maker(func(w http.ResponseWriter, r *http.Request) {
		var req passwordRequest
		if !h.decode(w, r, &req) {
			return
		}
		ok, err := h.repos.Makers.UpdatePassword(r.Context(), caller(r).Subject, req.Password)
		h.noContent(w, r, "change password", ok, err)
	}))
	mux.Handle("POST /api/makers/me/authcodes", h.maker(func(w http.ResponseWriter, r *http.Request) {
		var req codeRequest
		if !h.decode(w, r, &req) {
			return
		}
		id := caller(r).Subject
		points, err := h.repos.AuthCodes.MarkUsed(r.Context(), req.Code, id)
		if err != nil {
			h.fail(w, r, "redeem auth code", err)
			return
		}
		m, err := h.repos.Makers.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, "redeem auth code", err)
			return
		}
		writeJSON(w, redeemResponse{Points: points, Maker: publicMaker(m)}, http.StatusOK)
	}))

	// Projects
	mux.HandleFunc("GET /api/projects", func(w http.ResponseWriter, r *http.Request) {
		listFiltered(h, w, r, "projects", "creator", h.repos.Projects.List, h.repos.Projects.ListByCreator)
	})
	mux.HandleFunc("GET /api/projects/{id}", getByID(h, "project", func(r *http.Request, id string) (*domain.Project, error) {
		return h.repos.Projects.Get(r.Context(), id)
	}))
	mux.Handle("POST /api/projects", h.maker(func(w http.ResponseWriter, r *http.Request) {
		var in domain.ProjectInput
		if !h.decode(w, r, &in) {
			return
		}
		p, err := h.repos.Projects.Add(r.Context(), caller(r).Subject, in)
		result(h, w, r, "create project", p, err, http.StatusCreated)
	}))
	mux.Handle("POST /api/projects/{id}/join", h.maker(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		ok, err := h.repos.Projects.Join(r.Context(), id, caller(r).Subject)
		if err != nil {
			h.fail(w, r, "join project", err)
			return
		}
		if !ok {
			notFound(w, "project")
			return
		}
		p, err := h.repos.Projects.Get(r.Context(), id)
		result(h, w, r, "join project", p, err, http.StatusOK)
	}))
	mux.Handle("PUT /api/projects/{id}", h.signedIn(h.ownProject(func(w http.ResponseWriter, r *http.Request) {
		var patch domain.ProjectPatch
		if !h.decode(w, r, &patch) {
			return
		}
		p, err := h.repos.Projects.Update(r.Context(), r.PathValue("id"), patch)
		result(h, w, r, "update project", p, err, http.StatusOK)
	})))
	mux.Handle("DELETE /api/projects/{id}", h.signedIn(h.ownProject(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Projects.Delete(r.Context(), r.PathValue("id"))
		h.noContent(w, r, "delete project", ok, err)
	})))

	// Teams
	mux.HandleFunc("GET /api/teams", func(w http.ResponseWriter, r *http.Request) {
		listFiltered(h, w, r, "teams", "member", h.repos.Teams.List, h.repos.Teams.ListByMember)
	})
	mux.HandleFunc("GET /api/teams/{id}", getByID(h, "team", func(r *http.Request, id string) (*domain.Team, error) {
		return h.repos.Teams.Get(r.Context(), id)
	}))
	mux.Handle("POST /api/teams", h.maker(func(w http.ResponseWriter, r *http.Request) {
		var in domain.TeamInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if in.LeaderID == "" {
			in.LeaderID = caller(r).Subject
		}
		if !h.valid(w, r, &in) {
			return
		}
		team, err := h.repos.Teams.Create(r.Context(), in)
		result(h, w, r, "create team", team, err, http.StatusCreated)
	}))
	mux.Handle("DELETE /api/teams/{id}", h.admin(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.repos.Teams.Delete(r.Context(), r.PathValue("id"))
		h.noContent(w, r, "delete team", ok, err)
	}))
}

// login accepts administrator or maker credentials
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if tok, err := h.auth.LoginAdmin(req.Username, req.Password); err == nil {
		writeJSON(w, loginResponse{Token: tok}, http.StatusOK)
		return
	}
	tok, m, err := h.auth.LoginMaker(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, "log in", err)
		return
	}
	writeJSON(w, loginResponse{Token: tok, Maker: m}, http.StatusOK)
}

// apply registers a maker by redeeming an auth code
func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decodeJSON(w, r, &req) || !h.valid(w, r, &req.MakerInput) {
		return
	}
	if req.AuthCode == "" {
		writeJSON(w, ErrorResponse{
			Error:   "Invalid input",
			Details: "invalid input: authCode (required)",
			Fields:  map[string]string{"authCode": "required"},
		}, http.StatusBadRequest)
		return
	}
	m, err := h.repos.Makers.Register(r.Context(), req.MakerInput, req.AuthCode)
	result(h, w, r, "register maker", publicMaker(m), err, http.StatusCreated)
}

func (h *Handler) listMakers(w http.ResponseWriter, r *http.Request) {
	makers, err := h.repos.Makers.List(r.Context())
	if err != nil {
		h.fail(w, r, "list makers", err)
		return
	}
	out := make([]domain.Maker, 0, len(makers))
	for _, m := range makers {
		out = append(out, m.Public())
	}
	writeJSON(w, out, http.StatusOK)
}

// ownProject admits the administrator and the project's creator
func (h *Handler) ownProject(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		if id.IsAdmin() {
			next(w, r)
			return
		}
		p, err := h.repos.Projects.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			h.fail(w, r, "get project", err)
			return
		}
		if p == nil {
			notFound(w, "project")
			return
		}
		if p.CreatorID != id.Subject {
			writeError(w, "Forbidden", "only the creator may change this project", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
