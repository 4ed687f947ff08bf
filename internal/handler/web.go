package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/shelfwise/library-server-go/internal/errors"
	"github.com/shelfwise/library-server-go/internal/middleware"
	"github.com/shelfwise/library-server-go/internal/model"
	"github.com/shelfwise/library-server-go/internal/render"
	"github.com/shelfwise/library-server-go/internal/service"
)

// WebHandler is the HTML surface: signup, login, logout and the book
// dashboard, backed by cookie sessions and flash notices.
type WebHandler struct {
	adminService   *service.AdminService
	bookService    *service.BookService
	sessionService *service.SessionService
	renderer       render.Renderer
	requireAdmin   func(http.Handler) http.Handler
	isProduction   bool
}

func NewWebHandler(
	adminService *service.AdminService,
	bookService *service.BookService,
	sessionService *service.SessionService,
	renderer render.Renderer,
	requireAdmin func(http.Handler) http.Handler,
	isProduction bool,
) *WebHandler {
	return &WebHandler{
		adminService:   adminService,
		bookService:    bookService,
		sessionService: sessionService,
		renderer:       renderer,
		requireAdmin:   requireAdmin,
		isProduction:   isProduction,
	}
}

func (h *WebHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Home)
	r.Get("/signup/", h.SignupForm)
	r.Post("/signup/", h.Signup)
	r.Get("/login/", h.LoginForm)
	r.Post("/login/", h.Login)
	r.Post("/logout/", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/books/", h.StudentBooks)
		r.Get("/dashboard/", h.Dashboard)
		r.Post("/dashboard/", h.CreateBook)
		r.Get("/edit/{id}/", h.EditForm)
		r.Post("/edit/{id}/", h.Edit)
		r.Post("/delete/{id}/", h.Delete)
	})

	return r
}

// page assembles the common template context for a request.
func (h *WebHandler) page(w http.ResponseWriter, r *http.Request, title string) render.Page {
	return render.Page{
		Title:     title,
		Admin:     middleware.GetAdmin(r.Context()),
		Flash:     render.PopFlash(w, r),
		CSRFToken: csrfToken(r),
		Errors:    map[string]string{},
		Form:      map[string]string{},
	}
}

func (h *WebHandler) render(w http.ResponseWriter, status int, name string, page render.Page) {
	if err := h.renderer.Render(w, status, name, page); err != nil {
		log.Error().Err(err).Str("template", name).Msg("failed to render page")
	}
}

func csrfToken(r *http.Request) string {
	cookie, err := r.Cookie(middleware.CSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home.html", h.page(w, r, "Home"))
}

func (h *WebHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "signup.html", h.page(w, r, "Sign up"))
}

func (h *WebHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	_, err := h.adminService.Signup(r.Context(), email, password)
	if err != nil {
		page := h.page(w, r, "Sign up")
		page.Form["email"] = email
		if fields := apperrors.FieldErrors(err); fields != nil {
			page.Errors = fields
		} else {
			log.Error().Err(err).Msg("signup failed")
			page.Flash = &render.Flash{Level: "error", Message: "Signup failed, please try again"}
		}
		h.render(w, http.StatusOK, "signup.html", page)
		return
	}

	render.SetFlash(w, "success", "Signup successful! Please log in.")
	http.Redirect(w, r, "/login/", http.StatusFound)
}

func (h *WebHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.html", h.page(w, r, "Log in"))
}

func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.adminService.Verify(r.Context(), email, password)
	if err != nil {
		log.Error().Err(err).Msg("login verification failed")
	}
	if user == nil {
		// Deliberately generic: no hint whether the email or the
		// password was wrong.
		page := h.page(w, r, "Log in")
		page.Form["email"] = email
		page.Flash = &render.Flash{Level: "error", Message: "Invalid login credentials."}
		h.render(w, http.StatusOK, "login.html", page)
		return
	}

	token, err := h.sessionService.Create(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		page := h.page(w, r, "Log in")
		page.Flash = &render.Flash{Level: "error", Message: "Login failed, please try again"}
		h.render(w, http.StatusOK, "login.html", page)
		return
	}

	middleware.SetSessionCookie(w, token, h.isProduction)
	render.SetFlash(w, "success", "Login successful.")
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		if err := h.sessionService.Destroy(r.Context(), token); err != nil {
			log.Error().Err(err).Msg("failed to destroy session")
		}
	}

	middleware.ClearSessionCookie(w)
	render.SetFlash(w, "info", "Logged out.")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *WebHandler) StudentBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list books")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := h.page(w, r, "Books")
	page.Data = books
	h.render(w, http.StatusOK, "books.html", page)
}

func (h *WebHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list books")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := h.page(w, r, "Dashboard")
	page.Data = books
	h.render(w, http.StatusOK, "dashboard.html", page)
}

func (h *WebHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	input := bookFormInput(r)

	_, err := h.bookService.Create(r.Context(), input)
	if err != nil {
		books, listErr := h.bookService.List(r.Context())
		if listErr != nil {
			log.Error().Err(listErr).Msg("failed to list books")
		}

		page := h.page(w, r, "Dashboard")
		page.Data = books
		page.Form = bookFormValues(input)
		if fields := apperrors.FieldErrors(err); fields != nil {
			page.Errors = fields
		} else {
			log.Error().Err(err).Msg("failed to create book")
			page.Flash = &render.Flash{Level: "error", Message: "Could not add book, please try again"}
		}
		h.render(w, http.StatusOK, "dashboard.html", page)
		return
	}

	render.SetFlash(w, "success", "Book added.")
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

func (h *WebHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}

	page := h.page(w, r, "Edit book")
	page.Data = book.ID
	page.Form = bookFormValues(service.BookInput{
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		PublishedDate: book.PublishedDate.Format(model.BookDateFormat),
	})
	h.render(w, http.StatusOK, "edit.html", page)
}

func (h *WebHandler) Edit(w http.ResponseWriter, r *http.Request) {
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}

	input := bookFormInput(r)

	_, err := h.bookService.Update(r.Context(), book.ID, input)
	if err != nil {
		page := h.page(w, r, "Edit book")
		page.Data = book.ID
		page.Form = bookFormValues(input)
		if fields := apperrors.FieldErrors(err); fields != nil {
			page.Errors = fields
		} else {
			log.Error().Err(err).Msg("failed to update book")
			page.Flash = &render.Flash{Level: "error", Message: "Could not update book, please try again"}
		}
		h.render(w, http.StatusOK, "edit.html", page)
		return
	}

	render.SetFlash(w, "success", "Book updated.")
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

func (h *WebHandler) Delete(w http.ResponseWriter, r *http.Request) {
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}

	if err := h.bookService.Delete(r.Context(), book.ID); err != nil {
		log.Error().Err(err).Msg("failed to delete book")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.SetFlash(w, "success", "Book deleted.")
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

// findBook resolves {id} to a book, writing the HTML not-found response
// when it does not exist.
func (h *WebHandler) findBook(w http.ResponseWriter, r *http.Request) (*model.Book, bool) {
	id, ok := bookID(r)
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeNotFound {
			http.NotFound(w, r)
		} else {
			log.Error().Err(err).Msg("failed to load book")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return book, true
}

func bookFormInput(r *http.Request) service.BookInput {
	return service.BookInput{
		Title:         r.PostFormValue("title"),
		Author:        r.PostFormValue("author"),
		Description:   r.PostFormValue("description"),
		PublishedDate: r.PostFormValue("published_date"),
	}
}

func bookFormValues(input service.BookInput) map[string]string {
	return map[string]string{
		"title":          input.Title,
		"author":         input.Author,
		"description":    input.Description,
		"published_date": input.PublishedDate,
	}
}
