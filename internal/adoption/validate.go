package adoption

import (
	"net/mail"
	"strings"

	"pawhaven/pkg/types"
)

const (
	minExperienceLen = 20
	minReasonLen     = 30
	minPhoneDigits   = 10
)

func validateSubmission(sub types.ApplicationSubmission) types.ValidationErrors {
	errs := types.ValidationErrors{}

	if strings.TrimSpace(sub.FirstName) == "" {
		errs["first_name"] = "First name is required."
	}

	if strings.TrimSpace(sub.LastName) == "" {
		errs["last_name"] = "Last name is required."
	}

	email := strings.TrimSpace(sub.Email)
	if email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Enter a valid email address."
	}

	if digitCount(sub.Phone) < minPhoneDigits {
		errs["phone"] = "Please enter a valid phone number with at least 10 digits."
	}

	if strings.TrimSpace(sub.Address) == "" {
		errs["address"] = "Full address is required."
	}

	if strings.TrimSpace(sub.HousingType) == "" {
		errs["housing_type"] = "Housing type is required."
	}

	switch sub.OwnOrRent {
	case "own":
	case "rent":
		if !sub.LandlordApproval {
			errs["landlord_approval"] = "Landlord approval is required if you are renting."
		}
	default:
		errs["own_or_rent"] = "Please select whether you own or rent."
	}

	if sub.HouseholdAdults < 1 {
		errs["household_adults"] = "There must be at least 1 adult in the household."
	}

	if sub.HouseholdChildren < 0 {
		errs["household_children"] = "Number of children cannot be negative."
	}

	if sub.HasOtherPets && strings.TrimSpace(sub.OtherPetsDescription) == "" {
		errs["other_pets_description"] = "Please describe your other pets."
	}

	if len(strings.TrimSpace(sub.PreviousPetExperience)) < minExperienceLen {
		errs["previous_pet_experience"] = "Please provide more detail about your previous pet experience (at least 20 characters)."
	}

	if len(strings.TrimSpace(sub.ReasonForAdoption)) < minReasonLen {
		errs["reason_for_adoption"] = "Please provide more detail about why you want to adopt (at least 30 characters)."
	}

	return errs
}

func digitCount(phone string) int {
	count := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
