package server

import (
	"net/http"

	"pawhaven/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	if setter, ok := data.(types.NavbarDataSetter); ok {
		navbar := types.NavbarData{}
		if user := s.currentUser(r.Context()); user != nil {
			navbar.IsAuthenticated = true
			navbar.IsStaff = user.IsStaff
			navbar.UserID = user.ID
			navbar.UserEmail = user.Email
			navbar.UserName = user.FullName()
		}
		setter.SetNavbarData(navbar)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.ExecuteTemplate(w, templateName, data)
}
