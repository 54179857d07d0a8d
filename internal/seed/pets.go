package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/store"
	"pawhaven/internal/utils"
	"pawhaven/pkg/types"
)

// SeedPets inserts the starter pets below, skipping any that already exist.
// IDs are fixed so reruns are idempotent.
//
// To generate new IDs: `go run ./cmd/pawhaven nanoid`
func SeedPets(ctx context.Context, repo *store.PetRepository) error {
	now := time.Now()

	pets := []types.Pet{
		{
			ID:               "f3kJOd6irR67jH2MPq8LxoqIK7tJ3Pe1",
			Name:             "Buddy",
			Slug:             "buddy",
			Type:             types.PetTypeDog,
			Breed:            "Golden Retriever",
			Age:              "3 years",
			Gender:           types.PetGenderMale,
			Size:             types.PetSizeLarge,
			Color:            "Golden",
			Description:      "Buddy is a gentle giant who loves fetch, long walks, and anyone holding a tennis ball. He walks well on a leash and is great with kids.",
			Personality:      []string{"Friendly", "Energetic", "Loyal"},
			Vaccinated:       true,
			SpayedNeutered:   true,
			Microchipped:     true,
			Status:           types.PetStatusAvailable,
			ArrivalDate:      now.AddDate(0, -2, 0),
			AdoptionFeeCents: 25000,
			Featured:         true,
		},
		{
			ID:               "a8zJW1x9HoTYADSiT7TWDtFby8f4Pe02",
			Name:             "Whiskers",
			Slug:             "whiskers",
			Type:             types.PetTypeCat,
			Breed:            "Domestic Shorthair",
			Age:              "2 years",
			Gender:           types.PetGenderFemale,
			Size:             types.PetSizeSmall,
			Color:            "Tabby",
			Description:      "Whiskers is a curious lap cat who greets everyone at the door. She gets along with other cats and enjoys a sunny windowsill.",
			Personality:      []string{"Curious", "Affectionate", "Playful"},
			Vaccinated:       true,
			SpayedNeutered:   true,
			Microchipped:     true,
			Status:           types.PetStatusAvailable,
			ArrivalDate:      now.AddDate(0, -1, -10),
			AdoptionFeeCents: 12500,
			Featured:         true,
		},
		{
			ID:               "cWRYNcTDtKgW5kY5hj6vgejsRQ5SPe03",
			Name:             "Clover",
			Slug:             "clover",
			Type:             types.PetTypeRabbit,
			Breed:            "Holland Lop",
			Age:              "1 year",
			Gender:           types.PetGenderFemale,
			Size:             types.PetSizeSmall,
			Color:            "White and brown",
			Description:      "Clover is a litter-trained house rabbit who loves leafy greens and quiet company. Best suited for a calm home.",
			Personality:      []string{"Calm", "Gentle"},
			Vaccinated:       true,
			SpayedNeutered:   true,
			Status:           types.PetStatusAvailable,
			ArrivalDate:      now.AddDate(0, 0, -14),
			AdoptionFeeCents: 7500,
		},
		{
			ID:               "sb8kmS7HyVZOusy0MFcHVJpBVCqdPe04",
			Name:             "Sunny",
			Slug:             "sunny",
			Type:             types.PetTypeBird,
			Breed:            "Cockatiel",
			Age:              "4 years",
			Gender:           types.PetGenderMale,
			Size:             types.PetSizeSmall,
			Color:            "Yellow and grey",
			Description:      "Sunny whistles back when you whistle first. He steps up onto a finger and loves millet more than anything in this world.",
			Personality:      []string{"Vocal", "Social"},
			Vaccinated:       true,
			Status:           types.PetStatusAvailable,
			ArrivalDate:      now.AddDate(0, 0, -5),
			AdoptionFeeCents: 5000,
		},
		{
			ID:               "mKeMQP08IH9k5rXHspDUer2xQWOLPe05",
			Name:             "Shadow",
			Slug:             "shadow",
			Type:             types.PetTypeDog,
			Breed:            "Border Collie Mix",
			Age:              "5 years",
			Gender:           types.PetGenderMale,
			Size:             types.PetSizeMedium,
			Color:            "Black and white",
			Description:      "Shadow is whip-smart and needs a home that will keep his brain busy. He knows sit, stay, spin, and how to open lever door handles.",
			Personality:      []string{"Intelligent", "Active", "Devoted"},
			Vaccinated:       true,
			SpayedNeutered:   true,
			Microchipped:     true,
			SpecialNeeds:     true,
			SpecialNeedsDescription: utils.StringPtr(
				"Mild hip dysplasia. Needs joint supplements and should avoid stairs where possible.",
			),
			Status:           types.PetStatusAvailable,
			ArrivalDate:      now.AddDate(0, -4, 0),
			AdoptionFeeCents: 20000,
		},
	}

	for i := range pets {
		pet := pets[i]

		_, err := repo.Pet(ctx, pet.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrPetNotFound) {
			return fmt.Errorf("failed to check for existing pet %s: %w", pet.ID, err)
		}

		if err := repo.CreatePet(ctx, &pet); err != nil {
			return fmt.Errorf("failed to seed pet %s: %w", pet.Name, err)
		}
	}

	return nil
}
