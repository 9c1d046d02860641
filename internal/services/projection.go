package services

import (
	"github.com/go-playground/validator/v10"

	"github.com/ivstoyanov/rolodex/internal/models"
)

// AccountDetails is the outward view of an account. The password hash never
// appears here. Every instance must pass the projection validator before it
// leaves a service.
type AccountDetails struct {
	FirstName    string   `json:"firstName" validate:"required"`
	LastName     string   `json:"lastName" validate:"required"`
	DateOfBirth  string   `json:"dateOfBirth" validate:"required"`
	PhoneNumber  string   `json:"phoneNumber" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	RegisterDate string   `json:"registerDate" validate:"required"`
	Country      string   `json:"country" validate:"required"`
	Currency     string   `json:"currency" validate:"required"`
	City         string   `json:"city" validate:"required"`
	Roles        []string `json:"roles" validate:"required,min=1"`
}

// ProjectionValidator runs required-field checks on outward records. A
// record that fails is a data-integrity problem, not a caller error.
type ProjectionValidator struct {
	validate *validator.Validate
}

func NewProjectionValidator() *ProjectionValidator {
	return &ProjectionValidator{validate: validator.New()}
}

func (p *ProjectionValidator) IsValid(record any) bool {
	return p.validate.Struct(record) == nil
}

func projectAccount(account *models.Account) AccountDetails {
	return AccountDetails{
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		DateOfBirth:  account.DateOfBirth,
		PhoneNumber:  account.PhoneNumber,
		Email:        account.Email,
		RegisterDate: account.RegisterDate,
		Country:      account.Country,
		Currency:     account.Currency,
		City:         account.City,
		Roles:        account.RoleNames(),
	}
}
