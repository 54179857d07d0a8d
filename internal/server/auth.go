package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"pawhaven/internal"
	"pawhaven/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// dummyPasswordHash is a cost-10 hash of a throwaway password. Login compares
// against it when the email is unknown so both failure paths burn a full
// bcrypt comparison.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func (s *Service) handleGetRegister(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := &types.RegisterPageData{
		BasePageData: types.BasePageData{Title: "Create Account"},
	}

	if err := s.renderTemplate(w, r, "page.register", data); err != nil {
		s.logger.WithError(err).Error("failed to render register page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirm_password")

	data := &types.RegisterPageData{
		BasePageData: types.BasePageData{Title: "Create Account"},
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
	}

	data.FieldErrors = validateRegisterInput(firstName, lastName, email, password, confirmPassword)
	if len(data.FieldErrors) > 0 {
		s.logger.WithField("field_errors", data.FieldErrors).Info("validation errors during registration")

		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, "page.register", data); err != nil {
			s.logger.WithError(err).Error("failed to render register page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.internalServerError(w)
		return
	}

	user := &types.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}

	err = s.usersRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, types.ErrEmailTaken) {
			data.Error = "Try logging in instead."
			data.FieldErrors = map[string]string{"email": "An account with this email already exists."}
			if renderErr := s.renderTemplate(w, r, "page.register", data); renderErr != nil {
				s.logger.WithError(renderErr).Error("failed to render register page with email error")
				s.internalServerError(w)
			}
			return
		}

		s.logger.WithError(err).Error("failed to create user")
		s.internalServerError(w)
		return
	}

	if err := s.setSessionCookie(w, user.ID); err != nil {
		s.logger.WithError(err).Error("failed to set session cookie after registration")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: "Log In"},
	}

	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: "Log In"},
		Email:        email,
	}

	user, err := s.usersRepo.UserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, types.ErrUserNotFound) {
			s.logger.WithError(err).Error("failed to look up user during login")
			s.internalServerError(w)
			return
		}

		_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))

		data.Error = "Invalid email or password."
		if renderErr := s.renderTemplate(w, r, "page.login", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render login page with error")
			s.internalServerError(w)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		data.Error = "Invalid email or password."
		if renderErr := s.renderTemplate(w, r, "page.login", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render login page with error")
			s.internalServerError(w)
		}
		return
	}

	if err := s.setSessionCookie(w, user.ID); err != nil {
		s.logger.WithError(err).Error("failed to set session cookie")
		s.internalServerError(w)
		return
	}

	s.logger.WithField("user_id", user.ID).Info("user logged in")

	// Check to see if this login attempt was the result of an unauthed redirect
	redirectCookie, err := r.Cookie(internal.COOKIE_REDIRECT_NAME)
	if err == nil {
		path := loginRedirectPath(redirectCookie.Value)
		s.clearRedirectCookie(w)
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginRedirectPath accepts only site-local paths from the redirect cookie.
// A tampered cookie must not bounce a fresh login to another origin.
func loginRedirectPath(value string) string {
	if strings.HasPrefix(value, "/") &&
		!strings.HasPrefix(value, "//") &&
		!strings.HasPrefix(value, "/\\") {
		return value
	}
	return "/"
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func validateRegisterInput(firstName, lastName, email, password, confirmPassword string) map[string]string {
	errs := map[string]string{}

	if firstName == "" {
		errs["first_name"] = "First name is required."
	}

	if lastName == "" {
		errs["last_name"] = "Last name is required."
	}

	if email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Enter a valid email address."
	}

	if len(password) < minPasswordLen {
		errs["password"] = "Password must be at least 8 characters."
	}

	if password != confirmPassword {
		errs["confirm_password"] = "Passwords do not match."
	}

	return errs
}
