package types

import (
	"time"
)

type PetType string

const (
	PetTypeDog    PetType = "dog"
	PetTypeCat    PetType = "cat"
	PetTypeRabbit PetType = "rabbit"
	PetTypeBird   PetType = "bird"
)

func (t PetType) Valid() bool {
	switch t {
	case PetTypeDog, PetTypeCat, PetTypeRabbit, PetTypeBird:
		return true
	}
	return false
}

type PetSize string

const (
	PetSizeSmall  PetSize = "Small"
	PetSizeMedium PetSize = "Medium"
	PetSizeLarge  PetSize = "Large"
)

type PetGender string

const (
	PetGenderMale   PetGender = "Male"
	PetGenderFemale PetGender = "Female"
)

type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusAdopted   PetStatus = "adopted"
)

func (s PetStatus) Valid() bool {
	switch s {
	case PetStatusAvailable, PetStatusPending, PetStatusAdopted:
		return true
	}
	return false
}

type Pet struct {
	ID   string  `db:"id"`
	Name string  `db:"name"`
	Slug string  `db:"slug"`
	Type PetType `db:"type"`

	Breed  string    `db:"breed"`
	Age    string    `db:"age"`
	Gender PetGender `db:"gender"`
	Size   PetSize   `db:"size"`
	Color  string    `db:"color"`

	Description string   `db:"description"`
	Personality []string `db:"personality"` // jsonb array

	Vaccinated              bool    `db:"vaccinated"`
	SpayedNeutered          bool    `db:"spayed_neutered"`
	Microchipped            bool    `db:"microchipped"`
	SpecialNeeds            bool    `db:"special_needs"`
	SpecialNeedsDescription *string `db:"special_needs_description"`

	// Storage keys of uploaded images, main image first.
	MainImage *string `db:"main_image"`
	Image2    *string `db:"image_2"`
	Image3    *string `db:"image_3"`

	Status           PetStatus `db:"status"`
	ArrivalDate      time.Time `db:"arrival_date"`
	AdoptionFeeCents int       `db:"adoption_fee_cents"`
	Featured         bool      `db:"featured"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Images returns the set images in display order.
func (p *Pet) Images() []string {
	images := make([]string, 0, 3)
	for _, img := range []*string{p.MainImage, p.Image2, p.Image3} {
		if img != nil && *img != "" {
			images = append(images, *img)
		}
	}
	return images
}

// IsNewArrival reports whether the pet arrived within the last 30 days.
func (p *Pet) IsNewArrival() bool {
	return time.Since(p.ArrivalDate) <= 30*24*time.Hour
}

func (p *Pet) Badge() string {
	if p.SpecialNeeds {
		return "Special Needs"
	}
	if p.IsNewArrival() {
		return "New Arrival"
	}
	return ""
}

// UpdatePet enumerates the mutable pet fields for staff edits. Slug and
// status are never updated through this path: the slug is fixed at creation
// and status changes go through Registry.SetStatus.
type UpdatePet struct {
	Name                    string    `form:"name"`
	Type                    PetType   `form:"type"`
	Breed                   string    `form:"breed"`
	Age                     string    `form:"age"`
	Gender                  PetGender `form:"gender"`
	Size                    PetSize   `form:"size"`
	Color                   string    `form:"color"`
	Description             string    `form:"description"`
	Personality             []string  `form:"personality"`
	Vaccinated              bool      `form:"vaccinated"`
	SpayedNeutered          bool      `form:"spayed_neutered"`
	Microchipped            bool      `form:"microchipped"`
	SpecialNeeds            bool      `form:"special_needs"`
	SpecialNeedsDescription *string   `form:"special_needs_description"`
	MainImage               *string   `form:"-"`
	Image2                  *string   `form:"-"`
	Image3                  *string   `form:"-"`
	ArrivalDate             time.Time `form:"arrival_date"`
	AdoptionFeeCents        int       `form:"adoption_fee_cents"`
	Featured                bool      `form:"featured"`
}

type PetSort string

const (
	PetSortNewest PetSort = "newest"
	PetSortOldest PetSort = "oldest"
	PetSortName   PetSort = "name"
)

type PetFilters struct {
	Type         string   `form:"type"`
	Sizes        []string `form:"size"`
	SpecialNeeds bool     `form:"specialNeeds"`
	Search       string   `form:"search"`

	// Status narrows the dashboard listing; public queries always pin
	// status=available instead.
	Status string `form:"status"`
}
