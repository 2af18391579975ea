package handler

import "github.com/horizonbank/banking-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. The dashboard shows the message verbatim.
type errorResponse struct {
	Error string `json:"error"`
}

type signUpRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=8"`
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	Address1    string `json:"address1"    validate:"required"`
	City        string `json:"city"        validate:"required"`
	State       string `json:"state"       validate:"required,len=2"`
	PostalCode  string `json:"postalCode"  validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	SSN         string `json:"ssn"         validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User *domain.User `json:"user"`
}
