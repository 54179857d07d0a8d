package server

import (
	"net/http"
	"net/mail"
	"strings"

	"pawhaven/pkg/types"
)

func (s *Service) handleGetContact(w http.ResponseWriter, r *http.Request) {
	data := &types.ContactPageData{
		BasePageData: types.BasePageData{Title: "Contact Us"},
		Notice:       r.URL.Query().Get("notice"),
	}

	if err := s.renderTemplate(w, r, "page.contact", data); err != nil {
		s.logger.WithError(err).Error("failed to render contact page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "invalid form payload")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	message := strings.TrimSpace(r.FormValue("message"))

	data := &types.ContactPageData{
		BasePageData: types.BasePageData{Title: "Contact Us"},
		Name:         name,
		Email:        email,
		Phone:        phone,
		Subject:      subject,
		Message:      message,
	}

	data.FieldErrors = validateContactInput(name, email, subject, message)
	if len(data.FieldErrors) > 0 {
		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, "page.contact", data); err != nil {
			s.logger.WithError(err).Error("failed to render contact page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	_, err := s.contactsRepo.CreateMessage(ctx, name, email, phone, subject, message)
	if err != nil {
		s.logger.WithError(err).Error("failed to store contact message")
		data.Error = "Unable to send your message right now. Please try again."
		if renderErr := s.renderTemplate(w, r, "page.contact", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render contact page with error")
			s.internalServerError(w)
		}
		return
	}

	http.Redirect(w, r, "/contact?notice=Thanks+for+reaching+out.+We+will+get+back+to+you+soon.", http.StatusSeeOther)
}

func validateContactInput(name, email, subject, message string) map[string]string {
	errs := map[string]string{}

	if name == "" {
		errs["name"] = "Name is required."
	}

	if email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Enter a valid email address."
	}

	if subject == "" {
		errs["subject"] = "Subject is required."
	}

	if len(message) < 10 {
		errs["message"] = "Please tell us a bit more (at least 10 characters)."
	}

	return errs
}
