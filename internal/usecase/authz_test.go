package usecase_test

import (
	"testing"

	"driver-auth/internal/data/entity"
	"driver-auth/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		role     entity.UserRole
		required []entity.UserRole
		want     bool
	}{
		{
			name:     "No identity is always denied",
			role:     "",
			required: nil,
			want:     false,
		},
		{
			name:     "No identity denied even without role requirement",
			role:     "",
			required: []entity.UserRole{},
			want:     false,
		},
		{
			name:     "Empty requirement allows any authenticated role",
			role:     entity.RoleDriver,
			required: nil,
			want:     true,
		},
		{
			name:     "Role member is allowed",
			role:     entity.RoleAdmin,
			required: []entity.UserRole{entity.RoleAdmin},
			want:     true,
		},
		{
			name:     "Role not a member is denied",
			role:     entity.RoleDriver,
			required: []entity.UserRole{entity.RoleAdmin},
			want:     false,
		},
		{
			name:     "Multiple required roles match any",
			role:     entity.RoleDriver,
			required: []entity.UserRole{entity.RoleAdmin, entity.RoleDriver},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.Authorize(tt.role, tt.required...))
		})
	}
}
