package server

import (
	"errors"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"pawhaven/pkg/types"
)

func (s *Service) handleAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.userFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user not found in context")
		s.internalServerError(w)
		return
	}

	applications, err := s.applicationsRepo.ApplicationsForUser(ctx, user.ID, user.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to load applications for account page")
		s.internalServerError(w)
		return
	}

	if len(applications) > 3 {
		applications = applications[:3]
	}

	if err := s.attachPets(ctx, applications); err != nil {
		s.logger.WithError(err).Error("failed to load pets for account page")
		s.internalServerError(w)
		return
	}

	data := &types.AccountPageData{
		BasePageData:       types.BasePageData{Title: "My Account"},
		User:               user,
		RecentApplications: applications,
		Notice:             r.URL.Query().Get("notice"),
	}

	if err := s.renderTemplate(w, r, "page.account", data); err != nil {
		s.logger.WithError(err).Error("failed to render account page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetEditProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.userFromContext(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("user not found in context")
		s.internalServerError(w)
		return
	}

	data := &types.EditProfilePageData{
		BasePageData: types.BasePageData{Title: "Edit Profile"},
		Form: types.UpdateUser{
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}

	if err := s.renderTemplate(w, r, "page.account-edit", data); err != nil {
		s.logger.WithError(err).Error("failed to render edit profile page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostEditProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.userFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user not found in context")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "invalid form payload")
		return
	}

	var update types.UpdateUser
	if err := decoder.Decode(&update, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode profile form")
		s.internalServerError(w)
		return
	}

	update.Email = strings.ToLower(strings.TrimSpace(update.Email))
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)

	data := &types.EditProfilePageData{
		BasePageData: types.BasePageData{Title: "Edit Profile"},
		Form:         update,
	}

	data.FieldErrors = validateProfileInput(update)
	if len(data.FieldErrors) > 0 {
		data.Error = "Please fix the highlighted fields."
		if renderErr := s.renderTemplate(w, r, "page.account-edit", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render edit profile page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	err = s.usersRepo.Update(ctx, user.ID, update)
	if err != nil {
		if errors.Is(err, types.ErrEmailTaken) {
			data.Error = "Please fix the highlighted fields."
			data.FieldErrors = map[string]string{"email": "An account with this email already exists."}
			if renderErr := s.renderTemplate(w, r, "page.account-edit", data); renderErr != nil {
				s.logger.WithError(renderErr).Error("failed to render edit profile page with email error")
				s.internalServerError(w)
			}
			return
		}

		s.logger.WithError(err).Error("failed to update profile")
		s.internalServerError(w)
		return
	}

	v := url.Values{}
	v.Set("notice", "Profile updated.")
	http.Redirect(w, r, "/account?"+v.Encode(), http.StatusSeeOther)
}

func validateProfileInput(update types.UpdateUser) map[string]string {
	errs := map[string]string{}

	if update.FirstName == "" {
		errs["first_name"] = "First name is required."
	}

	if update.LastName == "" {
		errs["last_name"] = "Last name is required."
	}

	if update.Email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(update.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}

	return errs
}
