package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pawhaven/pkg/types"

	"github.com/sirupsen/logrus"
)

func (s *Service) handleGetApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &types.ApplicationFormPageData{
		BasePageData: types.BasePageData{Title: "Adoption Application"},
	}

	if petID := strings.TrimSpace(r.URL.Query().Get("pet")); petID != "" {
		pet, err := applyPreselection(s.petsRepo.Pet(ctx, petID))
		if err != nil {
			s.logger.WithError(err).WithField("pet_id", petID).Error("failed to load pet for application form")
			s.internalServerError(w)
			return
		}
		if pet != nil {
			data.Pet = pet
			data.Form.PetID = pet.ID
		}
	}

	if data.Pet == nil {
		available, err := s.petsRepo.AvailablePets(ctx, types.PetFilters{}, types.PetSortName, 200, 0)
		if err != nil {
			s.logger.WithError(err).Error("failed to load pets for application form")
			s.internalServerError(w)
			return
		}
		data.AvailablePets = available
	}

	if user := s.currentUser(ctx); user != nil {
		data.Form.FirstName = user.FirstName
		data.Form.LastName = user.LastName
		data.Form.Email = user.Email
	}

	if err := s.renderTemplate(w, r, "page.apply", data); err != nil {
		s.logger.WithError(err).Error("failed to render application form")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "invalid form payload")
		return
	}

	var sub types.ApplicationSubmission
	if err := decoder.Decode(&sub, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode application form")
		s.internalServerError(w)
		return
	}

	var userID string
	if user := s.currentUser(ctx); user != nil {
		userID = user.ID
	}

	application, err := s.adoptions.Submit(ctx, sub, userID)
	if err != nil {
		s.renderApplyError(w, r, sub, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": application.ID,
		"pet_id":         application.PetID,
	}).Info("adoption application submitted")

	if err := s.renderTemplate(w, r, "page.apply-confirmation", &types.ApplicationFormPageData{
		BasePageData: types.BasePageData{Title: "Application Received"},
		Pet:          application.Pet,
	}); err != nil {
		s.logger.WithError(err).Error("failed to render application confirmation")
		s.internalServerError(w)
		return
	}
}

func (s *Service) renderApplyError(w http.ResponseWriter, r *http.Request, sub types.ApplicationSubmission, submitErr error) {
	ctx := r.Context()

	data := &types.ApplicationFormPageData{
		BasePageData: types.BasePageData{Title: "Adoption Application"},
		Form:         sub,
	}

	if sub.PetID != "" {
		pet, err := s.petsRepo.Pet(ctx, sub.PetID)
		if err == nil {
			data.Pet = pet
		}
	}

	var verrs types.ValidationErrors
	switch {
	case errors.As(submitErr, &verrs):
		data.Error = "Please fix the highlighted fields."
		data.FieldErrors = verrs
	case errors.Is(submitErr, types.ErrDuplicateApplication):
		w.WriteHeader(http.StatusConflict)
		data.Error = "You already have a pending application for this pet."
	case errors.Is(submitErr, types.ErrPetNotFound):
		data.Error = "That pet is no longer listed. Please pick another."
	default:
		s.logger.WithError(submitErr).Error("failed to submit adoption application")
		s.internalServerError(w)
		return
	}

	if err := s.renderTemplate(w, r, "page.apply", data); err != nil {
		s.logger.WithError(err).Error("failed to render application form with errors")
		s.internalServerError(w)
	}
}

// applyPreselection folds the ?pet= lookup result for the application form.
// An unknown id is a stale or tampered link, not an error: it must not stick
// to the form, so the page falls back to the pet picker instead.
func applyPreselection(pet *types.Pet, err error) (*types.Pet, error) {
	if errors.Is(err, types.ErrPetNotFound) {
		return nil, nil
	}
	return pet, err
}

// attachPets populates the Pet field on each application in one query.
func (s *Service) attachPets(ctx context.Context, applications []*types.AdoptionApplication) error {
	if len(applications) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	petIDs := make([]string, 0, len(applications))
	for _, application := range applications {
		if _, ok := seen[application.PetID]; ok {
			continue
		}
		seen[application.PetID] = struct{}{}
		petIDs = append(petIDs, application.PetID)
	}

	petList, err := s.petsRepo.PetsByIDs(ctx, petIDs)
	if err != nil {
		return err
	}

	byID := make(map[string]*types.Pet, len(petList))
	for _, pet := range petList {
		byID[pet.ID] = pet
	}

	for _, application := range applications {
		application.Pet = byID[application.PetID]
	}

	return nil
}

func (s *Service) handleUserApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.userFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user not found in context")
		s.internalServerError(w)
		return
	}

	applications, err := s.applicationsRepo.ApplicationsForUser(ctx, user.ID, user.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to load user applications")
		s.internalServerError(w)
		return
	}

	if err := s.attachPets(ctx, applications); err != nil {
		s.logger.WithError(err).Error("failed to load pets for user applications")
		s.internalServerError(w)
		return
	}

	data := &types.UserApplicationsPageData{
		BasePageData: types.BasePageData{Title: "My Applications"},
		Applications: applications,
	}

	if err := s.renderTemplate(w, r, "page.account-applications", data); err != nil {
		s.logger.WithError(err).Error("failed to render user applications page")
		s.internalServerError(w)
		return
	}
}
