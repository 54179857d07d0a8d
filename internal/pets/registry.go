// Package pets owns pet records: creation with slug derivation, structured
// updates, and the staff-facing status override.
package pets

import (
	"context"
	"fmt"
	"strings"

	"pawhaven/internal/utils"
	"pawhaven/pkg/types"
)

type Store interface {
	Pet(ctx context.Context, petID string) (*types.Pet, error)
	CreatePet(ctx context.Context, pet *types.Pet) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdatePet(ctx context.Context, petID string, update types.UpdatePet) error
	SetStatus(ctx context.Context, petID string, status types.PetStatus) error
}

type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Create persists a new pet. When no slug is supplied one is derived from
// the name, with -1, -2, ... appended until unique.
func (r *Registry) Create(ctx context.Context, pet *types.Pet) error {
	if verrs := validatePet(pet.Name, pet.Type, pet.Status); len(verrs) > 0 {
		return verrs
	}

	if pet.Status == "" {
		pet.Status = types.PetStatusAvailable
	}

	if pet.Slug == "" {
		slug, err := r.uniqueSlug(ctx, pet.Name)
		if err != nil {
			return err
		}
		pet.Slug = slug
	}

	return r.store.CreatePet(ctx, pet)
}

func (r *Registry) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "pet"
	}

	slug := base
	for n := 1; ; n++ {
		exists, err := r.store.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", slug, err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// Update applies a structured partial update. The slug and status are not
// part of UpdatePet: the slug is fixed at creation and status changes go
// through SetStatus or the adoption lifecycle.
func (r *Registry) Update(ctx context.Context, petID string, update types.UpdatePet) error {
	if verrs := validatePet(update.Name, update.Type, ""); len(verrs) > 0 {
		return verrs
	}

	return r.store.UpdatePet(ctx, petID, update)
}

// SetStatus is the staff override for a pet's availability. Adoption-driven
// status changes never call this; they run inside the adoption service's
// transition instead.
func (r *Registry) SetStatus(ctx context.Context, petID string, status types.PetStatus) error {
	if !status.Valid() {
		return types.ErrInvalidStatus
	}

	return r.store.SetStatus(ctx, petID, status)
}

func validatePet(name string, petType types.PetType, status types.PetStatus) types.ValidationErrors {
	errs := types.ValidationErrors{}

	if strings.TrimSpace(name) == "" {
		errs["name"] = "Name is required."
	}

	if !petType.Valid() {
		errs["type"] = "Please select a valid pet type."
	}

	if status != "" && !status.Valid() {
		errs["status"] = "Please select a valid status."
	}

	return errs
}
