package adoption

import "pawhaven/pkg/types"

// petStatusFor returns the pet status implied by an application status
// transition, or nil when the pet is left untouched. A pet's stored status
// is a denormalized projection of "does a completed application exist for
// me", and this function is its single source of truth.
//
// Every transition between the four application statuses is currently
// permitted; a stricter policy only needs to change here.
func petStatusFor(oldStatus, newStatus types.ApplicationStatus) *types.PetStatus {
	switch {
	case newStatus == types.ApplicationStatusCompleted:
		return petStatusPtr(types.PetStatusAdopted)
	case oldStatus == types.ApplicationStatusCompleted:
		// Walking back a completed adoption puts the pet back up for
		// adoption.
		return petStatusPtr(types.PetStatusAvailable)
	default:
		return nil
	}
}

func petStatusPtr(s types.PetStatus) *types.PetStatus {
	return &s
}
