package adoption

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawhaven/pkg/types"
)

type memoryStore struct {
	applications map[string]*types.AdoptionApplication
	nextID       int

	// transitions records every Transition call so tests can assert on the
	// pet status passed alongside the application update.
	transitions []transitionCall
}

type transitionCall struct {
	applicationID string
	status        types.ApplicationStatus
	petID         string
	petStatus     *types.PetStatus
}

func newMemoryStore() *memoryStore {
	return &memoryStore{applications: map[string]*types.AdoptionApplication{}, nextID: 1}
}

func (m *memoryStore) Application(_ context.Context, applicationID string) (*types.AdoptionApplication, error) {
	application, ok := m.applications[applicationID]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	copied := *application
	return &copied, nil
}

func (m *memoryStore) CreateApplication(_ context.Context, application *types.AdoptionApplication) error {
	if application.ID == "" {
		application.ID = "app-" + string(rune('0'+m.nextID))
		m.nextID++
	}
	copied := *application
	m.applications[application.ID] = &copied
	return nil
}

func (m *memoryStore) HasPending(_ context.Context, email, petID string) (bool, error) {
	for _, application := range m.applications {
		if application.Email == email && application.PetID == petID && application.Status == types.ApplicationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) SetNotes(_ context.Context, applicationID, notes string, reviewedAt time.Time) error {
	application, ok := m.applications[applicationID]
	if !ok {
		return types.ErrApplicationNotFound
	}
	application.Notes = notes
	application.ReviewedAt = &reviewedAt
	return nil
}

func (m *memoryStore) Transition(_ context.Context, applicationID string, status types.ApplicationStatus, reviewedAt time.Time, petID string, petStatus *types.PetStatus) error {
	application, ok := m.applications[applicationID]
	if !ok {
		return types.ErrApplicationNotFound
	}
	application.Status = status
	application.ReviewedAt = &reviewedAt
	m.transitions = append(m.transitions, transitionCall{
		applicationID: applicationID,
		status:        status,
		petID:         petID,
		petStatus:     petStatus,
	})
	return nil
}

type memoryPets struct {
	pets map[string]*types.Pet
}

func (m *memoryPets) Pet(_ context.Context, petID string) (*types.Pet, error) {
	pet, ok := m.pets[petID]
	if !ok {
		return nil, types.ErrPetNotFound
	}
	copied := *pet
	return &copied, nil
}

func newTestService(t *testing.T) (*Service, *memoryStore, *memoryPets) {
	t.Helper()

	store := newMemoryStore()
	pets := &memoryPets{pets: map[string]*types.Pet{
		"pet-buddy": {
			ID:     "pet-buddy",
			Name:   "Buddy",
			Slug:   "buddy",
			Type:   types.PetTypeDog,
			Status: types.PetStatusAvailable,
		},
		"pet-whiskers": {
			ID:     "pet-whiskers",
			Name:   "Whiskers",
			Slug:   "whiskers",
			Type:   types.PetTypeCat,
			Status: types.PetStatusAvailable,
		},
	}}

	svc := NewService(store, pets)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	}

	return svc, store, pets
}

func validSubmission(petID string) types.ApplicationSubmission {
	return types.ApplicationSubmission{
		FirstName:             "Jane",
		LastName:              "Miller",
		Email:                 "jane@example.com",
		Phone:                 "555-012-3456",
		Address:               "12 Maple Street, Springfield",
		PetID:                 petID,
		HousingType:           "house",
		OwnOrRent:             "own",
		HouseholdAdults:       2,
		HouseholdChildren:     1,
		PreviousPetExperience: "Grew up with two dogs and fostered several more.",
		ReasonForAdoption:     "Our home has been too quiet since our old dog passed away last year.",
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission is stored as pending", func(t *testing.T) {
		svc, store, _ := newTestService(t)

		application, err := svc.Submit(ctx, validSubmission("pet-buddy"), "user-1")
		require.NoError(t, err)

		assert.Equal(t, types.ApplicationStatusPending, application.Status)
		assert.Equal(t, svc.now(), application.SubmittedAt)
		assert.Nil(t, application.ReviewedAt)
		require.NotNil(t, application.UserID)
		assert.Equal(t, "user-1", *application.UserID)
		require.NotNil(t, application.Pet)
		assert.Equal(t, "Buddy", application.Pet.Name)

		stored, err := store.Application(ctx, application.ID)
		require.NoError(t, err)
		assert.Equal(t, types.ApplicationStatusPending, stored.Status)
	})

	t.Run("anonymous submission has no user", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		application, err := svc.Submit(ctx, validSubmission("pet-buddy"), "")
		require.NoError(t, err)
		assert.Nil(t, application.UserID)
	})

	t.Run("unknown pet", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Submit(ctx, validSubmission("pet-missing"), "")
		assert.ErrorIs(t, err, types.ErrPetNotFound)
	})

	t.Run("input is trimmed", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		sub := validSubmission("pet-buddy")
		sub.FirstName = "  Jane "
		sub.Email = " jane@example.com "

		application, err := svc.Submit(ctx, sub, "")
		require.NoError(t, err)
		assert.Equal(t, "Jane", application.FirstName)
		assert.Equal(t, "jane@example.com", application.Email)
	})

	t.Run("duplicate pending for same email and pet", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Submit(ctx, validSubmission("pet-buddy"), "")
		require.NoError(t, err)

		_, err = svc.Submit(ctx, validSubmission("pet-buddy"), "")
		assert.ErrorIs(t, err, types.ErrDuplicateApplication)
	})

	t.Run("same email may apply for a different pet", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Submit(ctx, validSubmission("pet-buddy"), "")
		require.NoError(t, err)

		_, err = svc.Submit(ctx, validSubmission("pet-whiskers"), "")
		assert.NoError(t, err)
	})

	t.Run("resubmission allowed after rejection", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		first, err := svc.Submit(ctx, validSubmission("pet-buddy"), "")
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, first.ID, types.ApplicationStatusRejected)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, validSubmission("pet-buddy"), "")
		assert.NoError(t, err)
	})
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*types.ApplicationSubmission)
		field  string
	}{
		{
			name:   "no adults in household",
			mutate: func(s *types.ApplicationSubmission) { s.HouseholdAdults = 0 },
			field:  "household_adults",
		},
		{
			name:   "negative children",
			mutate: func(s *types.ApplicationSubmission) { s.HouseholdChildren = -1 },
			field:  "household_children",
		},
		{
			name: "renting without landlord approval",
			mutate: func(s *types.ApplicationSubmission) {
				s.OwnOrRent = "rent"
				s.LandlordApproval = false
			},
			field: "landlord_approval",
		},
		{
			name: "other pets without description",
			mutate: func(s *types.ApplicationSubmission) {
				s.HasOtherPets = true
				s.OtherPetsDescription = "   "
			},
			field: "other_pets_description",
		},
		{
			name:   "experience too short",
			mutate: func(s *types.ApplicationSubmission) { s.PreviousPetExperience = "None really" },
			field:  "previous_pet_experience",
		},
		{
			name:   "reason too short",
			mutate: func(s *types.ApplicationSubmission) { s.ReasonForAdoption = "I want a dog" },
			field:  "reason_for_adoption",
		},
		{
			name:   "phone with too few digits",
			mutate: func(s *types.ApplicationSubmission) { s.Phone = "555-1234" },
			field:  "phone",
		},
		{
			name:   "malformed email",
			mutate: func(s *types.ApplicationSubmission) { s.Email = "not-an-email" },
			field:  "email",
		},
		{
			name:   "missing first name",
			mutate: func(s *types.ApplicationSubmission) { s.FirstName = "" },
			field:  "first_name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)

			sub := validSubmission("pet-buddy")
			tc.mutate(&sub)

			_, err := svc.Submit(ctx, sub, "")
			require.Error(t, err)

			var verrs types.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tc.field)
			assert.Empty(t, store.applications, "nothing should be persisted on validation failure")
		})
	}

	t.Run("renting with landlord approval passes", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		sub := validSubmission("pet-buddy")
		sub.OwnOrRent = "rent"
		sub.LandlordApproval = true

		_, err := svc.Submit(ctx, sub, "")
		assert.NoError(t, err)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, svc *Service, petID string) *types.AdoptionApplication {
		t.Helper()
		application, err := svc.Submit(ctx, validSubmission(petID), "")
		require.NoError(t, err)
		return application
	}

	t.Run("completed marks the pet adopted", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		application := submit(t, svc, "pet-buddy")

		updated, err := svc.SetStatus(ctx, application.ID, types.ApplicationStatusCompleted)
		require.NoError(t, err)

		assert.Equal(t, types.ApplicationStatusCompleted, updated.Status)
		require.NotNil(t, updated.ReviewedAt)
		assert.Equal(t, svc.now(), *updated.ReviewedAt)

		require.Len(t, store.transitions, 1)
		call := store.transitions[0]
		assert.Equal(t, "pet-buddy", call.petID)
		require.NotNil(t, call.petStatus)
		assert.Equal(t, types.PetStatusAdopted, *call.petStatus)
	})

	t.Run("leaving completed puts the pet back up for adoption", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		application := submit(t, svc, "pet-buddy")

		_, err := svc.SetStatus(ctx, application.ID, types.ApplicationStatusCompleted)
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, application.ID, types.ApplicationStatusApproved)
		require.NoError(t, err)

		require.Len(t, store.transitions, 2)
		call := store.transitions[1]
		require.NotNil(t, call.petStatus)
		assert.Equal(t, types.PetStatusAvailable, *call.petStatus)
	})

	t.Run("pending to approved leaves the pet alone", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		application := submit(t, svc, "pet-buddy")

		_, err := svc.SetStatus(ctx, application.ID, types.ApplicationStatusApproved)
		require.NoError(t, err)

		require.Len(t, store.transitions, 1)
		assert.Nil(t, store.transitions[0].petStatus)
	})

	t.Run("approved to rejected leaves the pet alone", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		application := submit(t, svc, "pet-buddy")

		_, err := svc.SetStatus(ctx, application.ID, types.ApplicationStatusApproved)
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, application.ID, types.ApplicationStatusRejected)
		require.NoError(t, err)

		require.Len(t, store.transitions, 2)
		assert.Nil(t, store.transitions[1].petStatus)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		application := submit(t, svc, "pet-buddy")

		_, err := svc.SetStatus(ctx, application.ID, types.ApplicationStatus("archived"))
		assert.ErrorIs(t, err, types.ErrInvalidStatus)
	})

	t.Run("unknown application", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.SetStatus(ctx, "app-missing", types.ApplicationStatusApproved)
		assert.ErrorIs(t, err, types.ErrApplicationNotFound)
	})
}

func TestSetNotes(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	application, err := svc.Submit(ctx, validSubmission("pet-buddy"), "")
	require.NoError(t, err)

	err = svc.SetNotes(ctx, application.ID, "Home visit scheduled for Friday.")
	require.NoError(t, err)

	stored, err := store.Application(ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home visit scheduled for Friday.", stored.Notes)
	require.NotNil(t, stored.ReviewedAt)
	assert.Equal(t, svc.now(), *stored.ReviewedAt)
}

func TestPetStatusFor(t *testing.T) {
	cases := []struct {
		name string
		old  types.ApplicationStatus
		new  types.ApplicationStatus
		want *types.PetStatus
	}{
		{"pending to completed", types.ApplicationStatusPending, types.ApplicationStatusCompleted, petStatusPtr(types.PetStatusAdopted)},
		{"approved to completed", types.ApplicationStatusApproved, types.ApplicationStatusCompleted, petStatusPtr(types.PetStatusAdopted)},
		{"completed to approved", types.ApplicationStatusCompleted, types.ApplicationStatusApproved, petStatusPtr(types.PetStatusAvailable)},
		{"completed to rejected", types.ApplicationStatusCompleted, types.ApplicationStatusRejected, petStatusPtr(types.PetStatusAvailable)},
		{"completed to completed", types.ApplicationStatusCompleted, types.ApplicationStatusCompleted, petStatusPtr(types.PetStatusAdopted)},
		{"pending to approved", types.ApplicationStatusPending, types.ApplicationStatusApproved, nil},
		{"pending to rejected", types.ApplicationStatusPending, types.ApplicationStatusRejected, nil},
		{"approved to pending", types.ApplicationStatusApproved, types.ApplicationStatusPending, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := petStatusFor(tc.old, tc.new)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}
