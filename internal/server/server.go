package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"pawhaven/internal/adoption"
	"pawhaven/internal/pets"
	"pawhaven/internal/storage"
	"pawhaven/internal/store"
	"pawhaven/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = newFormDecoder()

// newFormDecoder builds the shared form decoder. HTML date inputs submit
// bare 2006-01-02 values, which the decoder's default RFC 3339 time parsing
// rejects.
func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()

	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		if vals[0] == "" {
			return time.Time{}, nil
		}
		if t, err := time.Parse("2006-01-02", vals[0]); err == nil {
			return t, nil
		}
		return time.Parse(time.RFC3339, vals[0])
	}, time.Time{})

	return d
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	petsRepo         *store.PetRepository
	applicationsRepo *store.ApplicationRepository
	contactsRepo     *store.ContactRepository
	usersRepo        *store.UserRepository

	adoptions *adoption.Service
	registry  *pets.Registry
	images    *storage.ImageStore

	templates *template.Template
	cookie    *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	petsRepo *store.PetRepository,
	applicationsRepo *store.ApplicationRepository,
	contactsRepo *store.ContactRepository,
	usersRepo *store.UserRepository,
	adoptions *adoption.Service,
	registry *pets.Registry,
	images *storage.ImageStore,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		petsRepo:         petsRepo,
		applicationsRepo: applicationsRepo,
		contactsRepo:     contactsRepo,
		usersRepo:        usersRepo,

		adoptions: adoptions,
		registry:  registry,
		images:    images,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := s.loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)
	r.Use(s.MetricsMiddleware)
	r.Use(s.WithSession)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/about", s.handleAbout, http.MethodGet)
	r.HandleFunc("/adopt", s.handleAdoptInfo, http.MethodGet)

	r.HandleFunc("/pets", s.handlePetList, http.MethodGet)
	r.HandleFunc("/pets/:slug", s.handlePetDetail, http.MethodGet)

	r.HandleFunc("/apply", s.handleGetApply, http.MethodGet)
	r.HandleFunc("/apply", s.handlePostApply, http.MethodPost)

	r.HandleFunc("/contact", s.handleGetContact, http.MethodGet)
	r.HandleFunc("/contact", s.handlePostContact, http.MethodPost)

	r.HandleFunc("/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/account", s.handleAccount, http.MethodGet)
		r.HandleFunc("/account/edit", s.handleGetEditProfile, http.MethodGet)
		r.HandleFunc("/account/edit", s.handlePostEditProfile, http.MethodPost)
		r.HandleFunc("/account/applications", s.handleUserApplications, http.MethodGet)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireStaff)

		r.HandleFunc("/dashboard", s.handleDashboard, http.MethodGet)

		r.HandleFunc("/dashboard/applications", s.handleDashboardApplications, http.MethodGet)
		r.HandleFunc("/dashboard/applications/:id", s.handleDashboardApplicationDetail, http.MethodGet)
		r.HandleFunc("/dashboard/applications/:id/status", s.handlePostApplicationStatus, http.MethodPost)
		r.HandleFunc("/dashboard/applications/:id/notes", s.handlePostApplicationNotes, http.MethodPost)

		r.HandleFunc("/dashboard/pets", s.handleDashboardPets, http.MethodGet)
		r.HandleFunc("/dashboard/pets/new", s.handleGetNewPet, http.MethodGet)
		r.HandleFunc("/dashboard/pets/new", s.handlePostNewPet, http.MethodPost)
		r.HandleFunc("/dashboard/pets/:id/edit", s.handleGetEditPet, http.MethodGet)
		r.HandleFunc("/dashboard/pets/:id/edit", s.handlePostEditPet, http.MethodPost)
		r.HandleFunc("/dashboard/pets/:id/status", s.handlePostPetStatus, http.MethodPost)
		r.HandleFunc("/dashboard/pets/:id/delete", s.handlePostDeletePet, http.MethodPost)

		r.HandleFunc("/dashboard/contacts", s.handleDashboardContacts, http.MethodGet)
		r.HandleFunc("/dashboard/contacts/:id", s.handleDashboardContactDetail, http.MethodGet)
		r.HandleFunc("/dashboard/contacts/:id/responded", s.handlePostContactResponded, http.MethodPost)
	})

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.Handle("/metrics", promhttp.Handler(), http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func (s *Service) loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"imageURL": func(key string) string {
			return s.images.PublicURL(key)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefOr": func(s *string, defaultVal string) string {
			if s == nil {
				return defaultVal
			}
			return *s
		},
		"usd": func(cents int) string {
			return fmt.Sprintf("$%.2f", float64(cents)/100.0)
		},
		"title": func(v string) string {
			if v == "" {
				return v
			}
			return strings.ToUpper(v[:1]) + v[1:]
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
