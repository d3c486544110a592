package usecase

import "errors"

// ErrDuplicateAccount is returned when a registration collides with an
// existing email or phone. The message never reveals which field.
var ErrDuplicateAccount = errors.New("email or phone already registered")

// ErrInvalidToken is returned for verification tokens that were never
// issued or were already consumed.
var ErrInvalidToken = errors.New("invalid verification token")

// ErrExpiredToken is returned for verification tokens past their expiry.
var ErrExpiredToken = errors.New("expired verification token")

// ErrInvalidCredentials covers both unknown email and wrong password so
// login failures cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountNotApproved is returned when a login hits an account that
// has not completed verification.
var ErrAccountNotApproved = errors.New("account not approved")

// ErrUserNotFound is returned when an id lookup finds no user.
var ErrUserNotFound = errors.New("user not found")
