package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pawhaven/pkg/types"
)

const contactsPerPage = 20

func (s *Service) handleDashboardContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "invalid query")
		return
	}

	var filters types.ContactFilters
	if err := decoder.Decode(&filters, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode contact filters")
		s.internalServerError(w)
		return
	}

	total, err := s.contactsRepo.CountMessages(ctx, filters)
	if err != nil {
		s.logger.WithError(err).Error("failed to count contact messages")
		s.internalServerError(w)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pagination := types.NewPagination(page, contactsPerPage, total)

	messages, err := s.contactsRepo.FilterMessages(ctx, filters, uint64(pagination.PerPage), uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to load contact messages")
		s.internalServerError(w)
		return
	}

	data := &types.DashboardContactsPageData{
		BasePageData: types.BasePageData{Title: "Contact Messages"},
		Contacts:     messages,
		Total:        total,
		Filters:      filters,
		Pagination:   pagination,
		Notice:       r.URL.Query().Get("notice"),
	}

	if err := s.renderTemplate(w, r, "page.dashboard-contacts", data); err != nil {
		s.logger.WithError(err).Error("failed to render contact messages page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleDashboardContactDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messageID := strings.TrimSpace(r.PathValue("id"))
	if messageID == "" {
		http.NotFound(w, r)
		return
	}

	message, err := s.contactsRepo.Message(ctx, messageID)
	if err != nil {
		if errors.Is(err, types.ErrContactMessageNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("message_id", messageID).Error("failed to load contact message")
		s.internalServerError(w)
		return
	}

	// Opening a message marks it read.
	if !message.IsRead {
		if err := s.contactsRepo.MarkRead(ctx, messageID); err != nil {
			s.logger.WithError(err).WithField("message_id", messageID).Error("failed to mark message read")
		} else {
			message.IsRead = true
		}
	}

	data := &types.DashboardContactDetailPageData{
		BasePageData: types.BasePageData{Title: "Message from " + message.Name},
		Contact:      message,
		Notice:       r.URL.Query().Get("notice"),
	}

	if err := s.renderTemplate(w, r, "page.dashboard-contact-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render contact message page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostContactResponded(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messageID := strings.TrimSpace(r.PathValue("id"))
	responded := r.FormValue("responded") == "true"

	err := s.contactsRepo.SetResponded(ctx, messageID, responded)
	if err != nil {
		if errors.Is(err, types.ErrContactMessageNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("message_id", messageID).Error("failed to update responded flag")
		s.internalServerError(w)
		return
	}

	notice := "Marked as responded."
	if !responded {
		notice = "Marked as awaiting response."
	}

	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, "/dashboard/contacts/"+messageID+"?"+v.Encode(), http.StatusSeeOther)
}
