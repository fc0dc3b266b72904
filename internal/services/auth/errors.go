package auth

import "errors"

// ErrEmailTaken is surfaced when registering with an email that exists.
var ErrEmailTaken = errors.New("user already exists")

// ErrInvalidCredentials is surfaced for a bad email/password pair at login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrCreateUser is returned when persisting a new user fails.
var ErrCreateUser = errors.New("failed to create user")

// ErrHashPassword is returned when password hashing fails.
var ErrHashPassword = errors.New("failed to process password")

// ErrGenToken is returned when we cannot sign a JWT.
var ErrGenToken = errors.New("failed to generate token")
