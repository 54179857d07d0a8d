package server

import (
	"net/http"

	"pawhaven/pkg/types"
)

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pending, err := s.applicationsRepo.CountByStatus(ctx, types.ApplicationStatusPending)
	if err != nil {
		s.logger.WithError(err).Error("failed to count pending applications")
		s.internalServerError(w)
		return
	}

	available, err := s.petsRepo.CountByStatus(ctx, types.PetStatusAvailable)
	if err != nil {
		s.logger.WithError(err).Error("failed to count available pets")
		s.internalServerError(w)
		return
	}

	adopted, err := s.petsRepo.CountByStatus(ctx, types.PetStatusAdopted)
	if err != nil {
		s.logger.WithError(err).Error("failed to count adopted pets")
		s.internalServerError(w)
		return
	}

	unread, err := s.contactsRepo.CountUnread(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count unread messages")
		s.internalServerError(w)
		return
	}

	recentApplications, err := s.applicationsRepo.RecentApplications(ctx, 5)
	if err != nil {
		s.logger.WithError(err).Error("failed to load recent applications")
		s.internalServerError(w)
		return
	}

	if err := s.attachPets(ctx, recentApplications); err != nil {
		s.logger.WithError(err).Error("failed to load pets for recent applications")
		s.internalServerError(w)
		return
	}

	recentContacts, err := s.contactsRepo.RecentMessages(ctx, 5)
	if err != nil {
		s.logger.WithError(err).Error("failed to load recent messages")
		s.internalServerError(w)
		return
	}

	data := &types.DashboardPageData{
		BasePageData: types.BasePageData{Title: "Dashboard"},
		Stats: types.DashboardStats{
			PendingApplications: pending,
			AvailablePets:       available,
			TotalAdopted:        adopted,
			UnreadMessages:      unread,
		},
		RecentApplications: recentApplications,
		RecentContacts:     recentContacts,
	}

	if err := s.renderTemplate(w, r, "page.dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
		return
	}
}
