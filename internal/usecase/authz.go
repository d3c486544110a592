package usecase

import "driver-auth/internal/data/entity"

// Authorize decides whether the acting role may perform an operation
// restricted to the given roles. An empty role (no authenticated
// identity) is always denied; an empty requirement allows any
// authenticated identity. The decision is pure and evaluated per call.
func Authorize(role entity.UserRole, required ...entity.UserRole) bool {
	if role == "" {
		return false
	}

	if len(required) == 0 {
		return true
	}

	for _, r := range required {
		if role == r {
			return true
		}
	}

	return false
}
