package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	g "github.com/maragudk/gomponents"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"inkwell/config"
	"inkwell/constants"
	"inkwell/views"
)

// Site bundles everything a handler needs: the database handle, the loaded
// configuration and the logger. Handlers are methods on it, so tests can
// build a Site against a throwaway database.
type Site struct {
	db  *gorm.DB
	cfg config.Config
	log *logrus.Logger
}

func New(db *gorm.DB, cfg config.Config, log *logrus.Logger) *Site {
	return &Site{db: db, cfg: cfg, log: log}
}

func (s *Site) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.identityMiddleware)

	r.Get("/", s.listPosts)

	r.HandleFunc("/register", s.register)
	r.HandleFunc("/login", s.login)
	r.Get("/logout", s.logout)

	r.HandleFunc("/post/{postID}", s.viewPost)

	r.With(s.requireCapability(capAdmin)).HandleFunc("/new-post", s.createPost)
	r.With(s.requireCapability(capAdmin)).HandleFunc("/edit-post/{postID}", s.editPost)
	r.With(s.requireCapability(capAdmin)).HandleFunc("/delete_post/{postID}", s.deletePost)

	r.HandleFunc("/delete_comment/{postID}-{commentID}", s.deleteComment)

	r.Get("/about", s.about)
	r.Get("/contact", s.contact)

	fileServer := http.FileServer(http.Dir("./assets"))
	r.Handle("/assets/*", http.StripPrefix("/assets", fileServer))

	CORSMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware.Handler)
		r.Route("/v1", func(r chi.Router) {
			r.Get("/posts", s.apiListPosts)
		})
	})

	return r
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, title string, body g.Node) {
	page := views.Layout(views.LayoutProps{
		SiteName:    constants.APP_NAME,
		Title:       title,
		CurrentUser: currentUser(r),
		Flash:       s.popFlash(w, r),
	}, body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		s.log.WithError(err).Error("page render failed")
	}
}

func (s *Site) serverError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Site) notFound(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func (s *Site) forbidden(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
