package types

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved,
		ApplicationStatusRejected, ApplicationStatusCompleted:
		return true
	}
	return false
}

func (s ApplicationStatus) Display() string {
	switch s {
	case ApplicationStatusPending:
		return "Pending Review"
	case ApplicationStatusApproved:
		return "Approved"
	case ApplicationStatusRejected:
		return "Rejected"
	case ApplicationStatusCompleted:
		return "Adoption Completed"
	}
	return string(s)
}

type AdoptionApplication struct {
	ID string `db:"id"`

	// Optional owning user. Applications submitted while logged out are
	// matched back to an account later by email.
	UserID *string `db:"user_id"`

	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`

	PetID string `db:"pet_id"`

	HousingType      string `db:"housing_type"`
	OwnOrRent        string `db:"own_or_rent"`
	LandlordApproval bool   `db:"landlord_approval"`

	HouseholdAdults      int    `db:"household_adults"`
	HouseholdChildren    int    `db:"household_children"`
	HasOtherPets         bool   `db:"has_other_pets"`
	OtherPetsDescription string `db:"other_pets_description"`

	PreviousPetExperience string `db:"previous_pet_experience"`
	ReasonForAdoption     string `db:"reason_for_adoption"`

	Status      ApplicationStatus `db:"status"`
	SubmittedAt time.Time         `db:"submitted_at"`
	ReviewedAt  *time.Time        `db:"reviewed_at"`
	Notes       string            `db:"notes"`

	// Populated by read paths that join the referenced pet.
	Pet *Pet `db:"-"`
}

func (a *AdoptionApplication) ApplicantName() string {
	return a.FirstName + " " + a.LastName
}

// ApplicationSubmission carries the adoption form input into the adoption
// service, which validates it before anything is persisted.
type ApplicationSubmission struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Phone     string `form:"phone"`
	Address   string `form:"address"`

	PetID string `form:"pet_id"`

	HousingType      string `form:"housing_type"`
	OwnOrRent        string `form:"own_or_rent"`
	LandlordApproval bool   `form:"landlord_approval"`

	HouseholdAdults      int    `form:"household_adults"`
	HouseholdChildren    int    `form:"household_children"`
	HasOtherPets         bool   `form:"has_other_pets"`
	OtherPetsDescription string `form:"other_pets_description"`

	PreviousPetExperience string `form:"previous_pet_experience"`
	ReasonForAdoption     string `form:"reason_for_adoption"`
}

type ApplicationFilters struct {
	Status string `form:"status"`
	Search string `form:"search"`
}
