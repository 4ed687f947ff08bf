package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/shelfwise/library-server-go/internal/errors"
	"github.com/shelfwise/library-server-go/internal/httputil"
	"github.com/shelfwise/library-server-go/internal/service"
)

// APIHandler is the JSON surface: admin signup/login and book CRUD, plus
// the public student listing.
type APIHandler struct {
	adminService *service.AdminService
	bookService  *service.BookService
	requireAdmin func(http.Handler) http.Handler
}

func NewAPIHandler(
	adminService *service.AdminService,
	bookService *service.BookService,
	requireAdmin func(http.Handler) http.Handler,
) *APIHandler {
	return &APIHandler{
		adminService: adminService,
		bookService:  bookService,
		requireAdmin: requireAdmin,
	}
}

func (h *APIHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/admin/signup/", h.Signup)
	r.Post("/admin/login/", h.Login)

	// Public listing: same data as the gated one, reachable by anyone.
	r.Get("/student/books/", h.ListBooks)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/books/create/", h.CreateBook)
		r.Get("/books/", h.ListBooks)
		r.Put("/books/update/{id}/", h.UpdateBook)
		r.Patch("/books/update/{id}/", h.UpdateBook)
		r.Delete("/books/delete/{id}/", h.DeleteBook)
	})

	return r
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *APIHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.ErrCodeValidation, "Invalid request body"))
		return
	}

	user, err := h.adminService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, err := h.adminService.IssueToken(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token after signup")
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.ErrCodeValidation, "Invalid request body"))
		return
	}

	user, err := h.adminService.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Msg("login verification failed")
		httputil.WriteError(w, err)
		return
	}
	if user == nil {
		httputil.WriteError(w, apperrors.InvalidCredentials())
		return
	}

	token, err := h.adminService.IssueToken(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token on login")
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var input service.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.ErrCodeValidation, "Invalid request body"))
		return
	}

	book, err := h.bookService.Create(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

func (h *APIHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list books")
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

func (h *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		httputil.WriteError(w, apperrors.NotFound("Book"))
		return
	}

	var input service.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.ErrCodeValidation, "Invalid request body"))
		return
	}

	book, err := h.bookService.Update(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *APIHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		httputil.WriteError(w, apperrors.NotFound("Book"))
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
