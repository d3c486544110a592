package entity

import "time"

type UserRole string

const (
	RoleDriver UserRole = "DRIVER"
	RoleAdmin  UserRole = "ADMIN"
)

type UserStatus string

const (
	StatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	StatusApproved            UserStatus = "APPROVED"
)

type User struct {
	Base
	Name          string     `db:"name"`
	Email         string     `db:"email"`
	Phone         string     `db:"phone"`
	PasswordHash  string     `db:"password_hash"`
	Role          UserRole   `db:"role"`
	Status        UserStatus `db:"status"`
	EmailVerified bool       `db:"email_verified"`

	// Set while email verification is pending, cleared on success
	EmailVerificationToken          *string    `db:"email_verification_token"`
	EmailVerificationTokenExpiresAt *time.Time `db:"email_verification_token_expires_at"`
}
