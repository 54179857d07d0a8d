package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pawhaven/pkg/types"
)

const petsPerPage = 12

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	featured, err := s.petsRepo.FeaturedPets(ctx, 4)
	if err != nil {
		s.logger.WithError(err).Error("failed to load featured pets")
		s.internalServerError(w)
		return
	}

	available, err := s.petsRepo.CountAvailable(ctx, types.PetFilters{})
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

	data := &types.HomePageData{
		BasePageData: types.BasePageData{Title: "PawHaven - Find Your New Best Friend"},
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
		FeaturedPets: featured,
		Stats: types.HomeStats{
			TotalAdopted:   adopted,
			AvailableNow:   available,
			HappyFamilies:  adopted,
			YearsOfService: 12,
		},
	}

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAbout(w http.ResponseWriter, r *http.Request) {
	data := &types.StaticPageData{
		BasePageData: types.BasePageData{Title: "About Us"},
	}

	if err := s.renderTemplate(w, r, "page.about", data); err != nil {
		s.logger.WithError(err).Error("failed to render about page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAdoptInfo(w http.ResponseWriter, r *http.Request) {
	data := &types.StaticPageData{
		BasePageData: types.BasePageData{Title: "How Adoption Works"},
	}

	if err := s.renderTemplate(w, r, "page.adopt-info", data); err != nil {
		s.logger.WithError(err).Error("failed to render adoption info page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePetList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "invalid query")
		return
	}

	var filters types.PetFilters
	if err := decoder.Decode(&filters, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode pet filters")
		s.internalServerError(w)
		return
	}
	filters.Status = ""

	sort := types.PetSort(r.URL.Query().Get("sort"))
	switch sort {
	case types.PetSortNewest, types.PetSortOldest, types.PetSortName:
	default:
		sort = types.PetSortNewest
	}

	total, err := s.petsRepo.CountAvailable(ctx, filters)
	if err != nil {
		s.logger.WithError(err).Error("failed to count pets")
		s.internalServerError(w)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pagination := types.NewPagination(page, petsPerPage, total)

	petList, err := s.petsRepo.AvailablePets(ctx, filters, sort, uint64(pagination.PerPage), uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to load pets")
		s.internalServerError(w)
		return
	}

	data := &types.PetListPageData{
		BasePageData: types.BasePageData{Title: "Available Pets"},
		Pets:         petList,
		TotalPets:    total,
		Filters:      filters,
		Sort:         sort,
		Pagination:   pagination,
	}

	if err := s.renderTemplate(w, r, "page.pets", data); err != nil {
		s.logger.WithError(err).Error("failed to render pet list page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePetDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		http.NotFound(w, r)
		return
	}

	pet, err := s.petsRepo.PetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, types.ErrPetNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("slug", slug).Error("failed to load pet")
		s.internalServerError(w)
		return
	}

	related, err := s.petsRepo.RelatedPets(ctx, pet.Type, pet.ID, 3)
	if err != nil {
		s.logger.WithError(err).WithField("pet_id", pet.ID).Error("failed to load related pets")
		s.internalServerError(w)
		return
	}

	data := &types.PetDetailPageData{
		BasePageData: types.BasePageData{Title: pet.Name + " - Meet Your New Friend"},
		Pet:          pet,
		RelatedPets:  related,
	}

	if err := s.renderTemplate(w, r, "page.pet-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render pet detail page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
