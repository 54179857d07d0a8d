// Package adoption owns the adoption-application lifecycle: submission
// validation and the status transitions that keep a pet's availability
// consistent with its application outcomes.
package adoption

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pawhaven/internal/utils"
	"pawhaven/pkg/types"
)

// Store is the persistence surface the service needs. Transition is the only
// write path allowed to touch a pet's status as an application side effect;
// direct staff overrides live in the pet registry instead.
type Store interface {
	Application(ctx context.Context, applicationID string) (*types.AdoptionApplication, error)
	CreateApplication(ctx context.Context, application *types.AdoptionApplication) error
	HasPending(ctx context.Context, email, petID string) (bool, error)
	SetNotes(ctx context.Context, applicationID, notes string, reviewedAt time.Time) error
	Transition(ctx context.Context, applicationID string, status types.ApplicationStatus, reviewedAt time.Time, petID string, petStatus *types.PetStatus) error
}

type PetReader interface {
	Pet(ctx context.Context, petID string) (*types.Pet, error)
}

type Service struct {
	store Store
	pets  PetReader

	now func() time.Time
}

func NewService(store Store, pets PetReader) *Service {
	return &Service{
		store: store,
		pets:  pets,
		now:   time.Now,
	}
}

// Submit validates an application and persists it with status pending. The
// referenced pet is untouched at submission time; its status only reacts to
// completed transitions later. Returns types.ValidationErrors with one entry
// per violated field, types.ErrPetNotFound, or
// types.ErrDuplicateApplication when a pending application for the same
// (email, pet) already exists.
func (s *Service) Submit(ctx context.Context, sub types.ApplicationSubmission, userID string) (*types.AdoptionApplication, error) {
	pet, err := s.pets.Pet(ctx, sub.PetID)
	if err != nil {
		return nil, err
	}

	if verrs := validateSubmission(sub); len(verrs) > 0 {
		return nil, verrs
	}

	email := strings.ToLower(strings.TrimSpace(sub.Email))

	// The schema-level partial unique index backs this check up under
	// concurrent submissions; CreateApplication maps that violation to the
	// same error.
	exists, err := s.store.HasPending(ctx, email, pet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for pending application: %w", err)
	}
	if exists {
		return nil, types.ErrDuplicateApplication
	}

	application := &types.AdoptionApplication{
		FirstName: strings.TrimSpace(sub.FirstName),
		LastName:  strings.TrimSpace(sub.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(sub.Phone),
		Address:   strings.TrimSpace(sub.Address),

		PetID: pet.ID,

		HousingType:      sub.HousingType,
		OwnOrRent:        sub.OwnOrRent,
		LandlordApproval: sub.LandlordApproval,

		HouseholdAdults:      sub.HouseholdAdults,
		HouseholdChildren:    sub.HouseholdChildren,
		HasOtherPets:         sub.HasOtherPets,
		OtherPetsDescription: strings.TrimSpace(sub.OtherPetsDescription),

		PreviousPetExperience: strings.TrimSpace(sub.PreviousPetExperience),
		ReasonForAdoption:     strings.TrimSpace(sub.ReasonForAdoption),

		Status:      types.ApplicationStatusPending,
		SubmittedAt: s.now(),
	}
	if userID != "" {
		application.UserID = utils.StringPtr(userID)
	}

	if err := s.store.CreateApplication(ctx, application); err != nil {
		return nil, err
	}

	application.Pet = pet
	return application, nil
}

// SetStatus transitions an application and applies the implied pet status
// change in the same store transaction: completed marks the pet adopted,
// leaving completed puts it back up for adoption, anything else leaves the
// pet alone.
func (s *Service) SetStatus(ctx context.Context, applicationID string, status types.ApplicationStatus) (*types.AdoptionApplication, error) {
	if !status.Valid() {
		return nil, types.ErrInvalidStatus
	}

	application, err := s.store.Application(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	petStatus := petStatusFor(application.Status, status)
	reviewedAt := s.now()

	err = s.store.Transition(ctx, application.ID, status, reviewedAt, application.PetID, petStatus)
	if err != nil {
		return nil, err
	}

	application.Status = status
	application.ReviewedAt = &reviewedAt
	return application, nil
}

// SetNotes overwrites the admin notes and stamps the review time.
func (s *Service) SetNotes(ctx context.Context, applicationID, notes string) error {
	return s.store.SetNotes(ctx, applicationID, notes, s.now())
}

// Application fetches an application with its pet attached.
func (s *Service) Application(ctx context.Context, applicationID string) (*types.AdoptionApplication, error) {
	application, err := s.store.Application(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	pet, err := s.pets.Pet(ctx, application.PetID)
	if err != nil {
		return nil, err
	}

	application.Pet = pet
	return application, nil
}
