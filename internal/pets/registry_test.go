package pets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawhaven/pkg/types"
)

type memoryStore struct {
	pets   map[string]*types.Pet
	nextID int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{pets: map[string]*types.Pet{}, nextID: 1}
}

func (m *memoryStore) Pet(_ context.Context, petID string) (*types.Pet, error) {
	pet, ok := m.pets[petID]
	if !ok {
		return nil, types.ErrPetNotFound
	}
	copied := *pet
	return &copied, nil
}

func (m *memoryStore) CreatePet(_ context.Context, pet *types.Pet) error {
	if pet.ID == "" {
		pet.ID = "pet-" + string(rune('0'+m.nextID))
		m.nextID++
	}
	copied := *pet
	m.pets[pet.ID] = &copied
	return nil
}

func (m *memoryStore) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, pet := range m.pets {
		if pet.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) UpdatePet(_ context.Context, petID string, update types.UpdatePet) error {
	pet, ok := m.pets[petID]
	if !ok {
		return types.ErrPetNotFound
	}
	pet.Name = update.Name
	pet.Type = update.Type
	pet.Breed = update.Breed
	return nil
}

func (m *memoryStore) SetStatus(_ context.Context, petID string, status types.PetStatus) error {
	pet, ok := m.pets[petID]
	if !ok {
		return types.ErrPetNotFound
	}
	pet.Status = status
	return nil
}

func TestRegistryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("slug derived from name", func(t *testing.T) {
		store := newMemoryStore()
		registry := NewRegistry(store)

		pet := &types.Pet{Name: "Mr. Whiskers Jr.", Type: types.PetTypeCat}
		require.NoError(t, registry.Create(ctx, pet))
		assert.Equal(t, "mr-whiskers-jr", pet.Slug)
		assert.Equal(t, types.PetStatusAvailable, pet.Status)
	})

	t.Run("slug collisions get a numeric suffix", func(t *testing.T) {
		store := newMemoryStore()
		registry := NewRegistry(store)

		first := &types.Pet{Name: "Buddy", Type: types.PetTypeDog}
		require.NoError(t, registry.Create(ctx, first))
		assert.Equal(t, "buddy", first.Slug)

		second := &types.Pet{Name: "Buddy", Type: types.PetTypeDog}
		require.NoError(t, registry.Create(ctx, second))
		assert.Equal(t, "buddy-1", second.Slug)

		third := &types.Pet{Name: "Buddy", Type: types.PetTypeDog}
		require.NoError(t, registry.Create(ctx, third))
		assert.Equal(t, "buddy-2", third.Slug)
	})

	t.Run("supplied slug is kept", func(t *testing.T) {
		store := newMemoryStore()
		registry := NewRegistry(store)

		pet := &types.Pet{Name: "Buddy", Slug: "custom-buddy", Type: types.PetTypeDog}
		require.NoError(t, registry.Create(ctx, pet))
		assert.Equal(t, "custom-buddy", pet.Slug)
	})

	t.Run("supplied status is kept", func(t *testing.T) {
		store := newMemoryStore()
		registry := NewRegistry(store)

		pet := &types.Pet{Name: "Buddy", Type: types.PetTypeDog, Status: types.PetStatusPending}
		require.NoError(t, registry.Create(ctx, pet))
		assert.Equal(t, types.PetStatusPending, pet.Status)
	})

	t.Run("rejects missing name and bad type", func(t *testing.T) {
		store := newMemoryStore()
		registry := NewRegistry(store)

		err := registry.Create(ctx, &types.Pet{Name: "  ", Type: types.PetType("hamster")})
		require.Error(t, err)

		var verrs types.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "name")
		assert.Contains(t, verrs, "type")
		assert.Empty(t, store.pets)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		store := newMemoryStore()
		registry := NewRegistry(store)

		err := registry.Create(ctx, &types.Pet{Name: "Buddy", Type: types.PetTypeDog, Status: types.PetStatus("lost")})
		require.Error(t, err)

		var verrs types.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "status")
	})
}

func TestRegistrySetStatus(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	registry := NewRegistry(store)

	pet := &types.Pet{Name: "Buddy", Type: types.PetTypeDog}
	require.NoError(t, registry.Create(ctx, pet))

	require.NoError(t, registry.SetStatus(ctx, pet.ID, types.PetStatusPending))
	stored, err := store.Pet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, types.PetStatusPending, stored.Status)

	err = registry.SetStatus(ctx, pet.ID, types.PetStatus("missing"))
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
}

func TestRegistryUpdate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	registry := NewRegistry(store)

	pet := &types.Pet{Name: "Buddy", Type: types.PetTypeDog}
	require.NoError(t, registry.Create(ctx, pet))

	err := registry.Update(ctx, pet.ID, types.UpdatePet{Name: "Buddy Boy", Type: types.PetTypeDog, Breed: "Beagle"})
	require.NoError(t, err)

	stored, err := store.Pet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buddy Boy", stored.Name)
	assert.Equal(t, "Beagle", stored.Breed)

	err = registry.Update(ctx, "pet-missing", types.UpdatePet{Name: "X", Type: types.PetTypeDog})
	assert.ErrorIs(t, err, types.ErrPetNotFound)
}
