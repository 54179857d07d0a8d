package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"pawhaven/internal/utils"
	"pawhaven/pkg/types"

	"github.com/sirupsen/logrus"
)

const maxImageUploadBytes = 10 << 20

func (s *Service) handleDashboardPets(w http.ResponseWriter, r *http.Request) {
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

	total, err := s.petsRepo.CountPets(ctx, filters)
	if err != nil {
		s.logger.WithError(err).Error("failed to count pets")
		s.internalServerError(w)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pagination := types.NewPagination(page, petsPerPage, total)

	petList, err := s.petsRepo.AllPets(ctx, filters, uint64(pagination.PerPage), uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to load pets")
		s.internalServerError(w)
		return
	}

	data := &types.DashboardPetsPageData{
		BasePageData: types.BasePageData{Title: "Manage Pets"},
		Pets:         petList,
		Total:        total,
		Filters:      filters,
		Pagination:   pagination,
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.dashboard-pets", data); err != nil {
		s.logger.WithError(err).Error("failed to render pets page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetNewPet(w http.ResponseWriter, r *http.Request) {
	data := &types.DashboardPetFormPageData{
		BasePageData: types.BasePageData{Title: "Add Pet"},
	}

	if err := s.renderTemplate(w, r, "page.dashboard-pet-form", data); err != nil {
		s.logger.WithError(err).Error("failed to render pet form")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostNewPet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, ok := s.decodePetForm(w, r)
	if !ok {
		return
	}

	pet := &types.Pet{
		Name:                    form.Name,
		Type:                    form.Type,
		Breed:                   form.Breed,
		Age:                     form.Age,
		Gender:                  form.Gender,
		Size:                    form.Size,
		Color:                   form.Color,
		Description:             form.Description,
		Personality:             form.Personality,
		Vaccinated:              form.Vaccinated,
		SpayedNeutered:          form.SpayedNeutered,
		Microchipped:            form.Microchipped,
		SpecialNeeds:            form.SpecialNeeds,
		SpecialNeedsDescription: form.SpecialNeedsDescription,
		ArrivalDate:             form.ArrivalDate,
		AdoptionFeeCents:        form.AdoptionFeeCents,
		Featured:                form.Featured,
	}

	pet.MainImage, pet.Image2, pet.Image3 = s.uploadPetImages(r)

	err := s.registry.Create(ctx, pet)
	if err != nil {
		s.renderPetFormError(w, r, nil, form, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"pet_id": pet.ID,
		"slug":   pet.Slug,
	}).Info("pet created")

	s.redirectPetsWithNotice(w, r, pet.Name+" added.")
}

func (s *Service) handleGetEditPet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	petID := strings.TrimSpace(r.PathValue("id"))

	pet, err := s.petsRepo.Pet(ctx, petID)
	if err != nil {
		if errors.Is(err, types.ErrPetNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("pet_id", petID).Error("failed to load pet for edit")
		s.internalServerError(w)
		return
	}

	data := &types.DashboardPetFormPageData{
		BasePageData: types.BasePageData{Title: "Edit " + pet.Name},
		Pet:          pet,
		Form: types.UpdatePet{
			Name:                    pet.Name,
			Type:                    pet.Type,
			Breed:                   pet.Breed,
			Age:                     pet.Age,
			Gender:                  pet.Gender,
			Size:                    pet.Size,
			Color:                   pet.Color,
			Description:             pet.Description,
			Personality:             pet.Personality,
			Vaccinated:              pet.Vaccinated,
			SpayedNeutered:          pet.SpayedNeutered,
			Microchipped:            pet.Microchipped,
			SpecialNeeds:            pet.SpecialNeeds,
			SpecialNeedsDescription: pet.SpecialNeedsDescription,
			ArrivalDate:             pet.ArrivalDate,
			AdoptionFeeCents:        pet.AdoptionFeeCents,
			Featured:                pet.Featured,
		},
	}

	if err := s.renderTemplate(w, r, "page.dashboard-pet-form", data); err != nil {
		s.logger.WithError(err).Error("failed to render pet edit form")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostEditPet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	petID := strings.TrimSpace(r.PathValue("id"))

	pet, err := s.petsRepo.Pet(ctx, petID)
	if err != nil {
		if errors.Is(err, types.ErrPetNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("pet_id", petID).Error("failed to load pet for update")
		s.internalServerError(w)
		return
	}

	form, ok := s.decodePetForm(w, r)
	if !ok {
		return
	}

	// Uploads replace existing images; absent files keep the old keys.
	mainImage, image2, image3 := s.uploadPetImages(r)
	form.MainImage = pet.MainImage
	form.Image2 = pet.Image2
	form.Image3 = pet.Image3
	if mainImage != nil {
		form.MainImage = mainImage
	}
	if image2 != nil {
		form.Image2 = image2
	}
	if image3 != nil {
		form.Image3 = image3
	}

	err = s.registry.Update(ctx, petID, form)
	if err != nil {
		if errors.Is(err, types.ErrPetNotFound) {
			http.NotFound(w, r)
			return
		}
		s.renderPetFormError(w, r, pet, form, err)
		return
	}

	s.redirectPetsWithNotice(w, r, form.Name+" updated.")
}

func (s *Service) handlePostPetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	petID := strings.TrimSpace(r.PathValue("id"))
	status := types.PetStatus(strings.TrimSpace(r.FormValue("status")))

	err := s.registry.SetStatus(ctx, petID, status)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrPetNotFound):
			http.NotFound(w, r)
		case errors.Is(err, types.ErrInvalidStatus):
			s.redirectPetsWithError(w, r, "Unknown pet status.")
		default:
			s.logger.WithError(err).WithFields(logrus.Fields{
				"pet_id": petID,
				"status": status,
			}).Error("failed to update pet status")
			s.redirectPetsWithError(w, r, "Could not update the pet. Please try again.")
		}
		return
	}

	s.redirectPetsWithNotice(w, r, "Pet status updated.")
}

func (s *Service) handlePostDeletePet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	petID := strings.TrimSpace(r.PathValue("id"))

	pet, err := s.petsRepo.Pet(ctx, petID)
	if err != nil {
		if errors.Is(err, types.ErrPetNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("pet_id", petID).Error("failed to load pet for delete")
		s.internalServerError(w)
		return
	}

	for _, key := range pet.Images() {
		if err := s.images.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"pet_id":      petID,
				"storage_key": key,
			}).Error("failed to delete pet image from storage")
			s.redirectPetsWithError(w, r, "Could not delete uploaded images from storage. Please try again.")
			return
		}
	}

	if err := s.petsRepo.DeletePet(ctx, petID); err != nil {
		s.logger.WithError(err).WithField("pet_id", petID).Error("failed to delete pet")
		s.internalServerError(w)
		return
	}

	s.redirectPetsWithNotice(w, r, pet.Name+" removed.")
}

func (s *Service) decodePetForm(w http.ResponseWriter, r *http.Request) (types.UpdatePet, bool) {
	var form types.UpdatePet

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		s.redirectPetsWithError(w, r, "invalid form payload")
		return form, false
	}

	if err := decoder.Decode(&form, r.MultipartForm.Value); err != nil {
		s.logger.WithError(err).Error("failed to decode pet form")
		s.internalServerError(w)
		return form, false
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Breed = strings.TrimSpace(form.Breed)

	return form, true
}

// uploadPetImages pushes any provided image files to object storage and
// returns their keys. A nil key means no file was supplied for that slot.
func (s *Service) uploadPetImages(r *http.Request) (mainImage, image2, image3 *string) {
	upload := func(field string) *string {
		file, header, err := r.FormFile(field)
		if err != nil {
			return nil
		}
		defer file.Close()

		key, err := s.storeImage(r, file, header)
		if err != nil {
			s.logger.WithError(err).WithField("field", field).Error("failed to upload pet image")
			return nil
		}
		return &key
	}

	return upload("main_image"), upload("image_2"), upload("image_3")
}

func (s *Service) storeImage(r *http.Request, file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%s%s", utils.NanoID(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return s.images.Upload(r.Context(), name, file, contentType)
}

func (s *Service) renderPetFormError(w http.ResponseWriter, r *http.Request, pet *types.Pet, form types.UpdatePet, formErr error) {
	data := &types.DashboardPetFormPageData{
		BasePageData: types.BasePageData{Title: "Add Pet"},
		Pet:          pet,
		Form:         form,
	}
	if pet != nil {
		data.Title = "Edit " + pet.Name
	}

	var verrs types.ValidationErrors
	if errors.As(formErr, &verrs) {
		data.Error = "Please fix the highlighted fields."
		data.FieldErrors = verrs
	} else {
		s.logger.WithError(formErr).Error("failed to save pet")
		data.Error = "Could not save the pet. Please try again."
	}

	if err := s.renderTemplate(w, r, "page.dashboard-pet-form", data); err != nil {
		s.logger.WithError(err).Error("failed to render pet form with errors")
		s.internalServerError(w)
	}
}

func (s *Service) redirectPetsWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, "/dashboard/pets?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectPetsWithError(w http.ResponseWriter, r *http.Request, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, "/dashboard/pets?"+v.Encode(), http.StatusSeeOther)
}
