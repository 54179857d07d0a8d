package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pawhaven/pkg/types"

	"github.com/sirupsen/logrus"
)

const applicationsPerPage = 20

func (s *Service) handleDashboardApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "invalid query")
		return
	}

	var filters types.ApplicationFilters
	if err := decoder.Decode(&filters, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode application filters")
		s.internalServerError(w)
		return
	}

	total, err := s.applicationsRepo.CountApplications(ctx, filters)
	if err != nil {
		s.logger.WithError(err).Error("failed to count applications")
		s.internalServerError(w)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pagination := types.NewPagination(page, applicationsPerPage, total)

	applications, err := s.applicationsRepo.FilterApplications(ctx, filters, uint64(pagination.PerPage), uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to load applications")
		s.internalServerError(w)
		return
	}

	if err := s.attachPets(ctx, applications); err != nil {
		s.logger.WithError(err).Error("failed to load pets for applications")
		s.internalServerError(w)
		return
	}

	data := &types.DashboardApplicationsPageData{
		BasePageData: types.BasePageData{Title: "Adoption Applications"},
		Applications: applications,
		Total:        total,
		Filters:      filters,
		Pagination:   pagination,
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.dashboard-applications", data); err != nil {
		s.logger.WithError(err).Error("failed to render applications page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleDashboardApplicationDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicationID := strings.TrimSpace(r.PathValue("id"))
	if applicationID == "" {
		http.NotFound(w, r)
		return
	}

	application, err := s.adoptions.Application(ctx, applicationID)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("application_id", applicationID).Error("failed to load application")
		s.internalServerError(w)
		return
	}

	data := &types.DashboardApplicationDetailPageData{
		BasePageData: types.BasePageData{Title: "Application from " + application.ApplicantName()},
		Application:  application,
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.dashboard-application-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render application detail page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostApplicationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicationID := strings.TrimSpace(r.PathValue("id"))
	status := types.ApplicationStatus(strings.TrimSpace(r.FormValue("status")))

	application, err := s.adoptions.SetStatus(ctx, applicationID, status)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrApplicationNotFound):
			http.NotFound(w, r)
		case errors.Is(err, types.ErrInvalidStatus):
			s.redirectApplicationWithError(w, r, applicationID, "Unknown application status.")
		default:
			s.logger.WithError(err).WithFields(logrus.Fields{
				"application_id": applicationID,
				"status":         status,
			}).Error("failed to update application status")
			s.redirectApplicationWithError(w, r, applicationID, "Could not update the application. Please try again.")
		}
		return
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": application.ID,
		"status":         application.Status,
	}).Info("application status updated")

	s.redirectApplicationWithNotice(w, r, applicationID, "Application marked "+application.Status.Display()+".")
}

func (s *Service) handlePostApplicationNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicationID := strings.TrimSpace(r.PathValue("id"))
	notes := strings.TrimSpace(r.FormValue("notes"))

	err := s.adoptions.SetNotes(ctx, applicationID, notes)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("application_id", applicationID).Error("failed to update application notes")
		s.redirectApplicationWithError(w, r, applicationID, "Could not save notes. Please try again.")
		return
	}

	s.redirectApplicationWithNotice(w, r, applicationID, "Notes saved.")
}

func (s *Service) redirectApplicationWithNotice(w http.ResponseWriter, r *http.Request, applicationID, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, "/dashboard/applications/"+applicationID+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectApplicationWithError(w http.ResponseWriter, r *http.Request, applicationID, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, "/dashboard/applications/"+applicationID+"?"+v.Encode(), http.StatusSeeOther)
}
