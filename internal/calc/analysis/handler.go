package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	auth "Meyerhof/internal/auth"
	bearing "Meyerhof/internal/calc/bearing"
	log "Meyerhof/internal/log"
	repo "Meyerhof/internal/repo"

	"github.com/gorilla/mux"
)

// Status maps an error from Build or Run to an HTTP status: input errors
// are 400, anything else 500.
func Status(err error) int {
	var (
		ge *bearing.GeometryError
		se *bearing.StratigraphyError
		ie *bearing.InsufficientStratigraphyError
		de *bearing.DesignMethodError
		le *bearing.LoadError
		pe *bearing.ParameterError
	)
	switch {
	case errors.As(err, &ge), errors.As(err, &se), errors.As(err, &ie),
		errors.As(err, &de), errors.As(err, &le), errors.As(err, &pe),
		errors.Is(err, ErrEmptyGrid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Execute builds and runs in, logging the run summary.
func Execute(in Input, defaultMethod string, opts Options) (Report, error) {
	if defaultMethod == "" {
		defaultMethod = bearing.MethodBowlesFS3
	}
	p, err := in.BuildWithDefault(defaultMethod)
	if err != nil {
		return Report{}, err
	}
	r, err := Run(p, opts)
	if err != nil {
		return Report{}, err
	}
	log.Infow("bearing run",
		"run_id", r.RunID,
		"method", r.Method.Name,
		"points", r.Summary.Points,
		"footings", r.Summary.Footings,
		"errored", r.Summary.Errored,
	)
	return r, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type Handler struct {
	DefaultMethod string
	Workers       int
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Execute(input, h.DefaultMethod, Options{Workers: h.Workers})
	if err != nil {
		http.Error(w, err.Error(), Status(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ProjectHandler stores project inputs per user and runs them on demand.
type ProjectHandler struct {
	Repo          repo.Repository
	DefaultMethod string
	Workers       int
}

type createProjectRequest struct {
	Name  string `json:"name"`
	Input Input  `json:"input"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = req.Input.Title
	}
	if req.Name == "" {
		http.Error(w, "Project name required", http.StatusBadRequest)
		return
	}
	if _, err := req.Input.BuildWithDefault(h.method()); err != nil {
		http.Error(w, err.Error(), Status(err))
		return
	}
	raw, err := json.Marshal(req.Input)
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	p, err := h.Repo.CreateProject(r.Context(), userID, req.Name, raw)
	if err != nil {
		log.Errorf("create project for user %d: %v", userID, err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	list, err := h.Repo.ListProjects(r.Context(), userID)
	if err != nil {
		log.Errorf("list projects for user %d: %v", userID, err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []repo.Project{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) Run(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	in, err := DecodeJSON(p.Input)
	if err != nil {
		log.Errorf("project %d: stored input: %v", p.ID, err)
		http.Error(w, "Stored project is unreadable", http.StatusInternalServerError)
		return
	}
	res, err := Execute(in, h.method(), Options{Workers: h.Workers})
	if err != nil {
		http.Error(w, err.Error(), Status(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ProjectHandler) method() string {
	if h.DefaultMethod == "" {
		return bearing.MethodBowlesFS3
	}
	return h.DefaultMethod
}

func (h *ProjectHandler) load(w http.ResponseWriter, r *http.Request) (repo.Project, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return repo.Project{}, false
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return repo.Project{}, false
	}
	p, err := h.Repo.GetProject(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return repo.Project{}, false
	}
	if err != nil {
		log.Errorf("get project %d: %v", id, err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return repo.Project{}, false
	}
	return p, true
}
