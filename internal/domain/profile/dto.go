package profile

import (
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/validator"
)

type SaveProfileRequest struct {
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	CompanyEmail   string  `json:"company_email"`
	Department     *string `json:"department,omitempty"`
}

func (r *SaveProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number is required",
		})
	} else if !validator.IsValidEmployeeNumber(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number must be 3-10 digits",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	if !validator.IsEmpty(r.CompanyEmail) && !validator.IsValidEmail(r.CompanyEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_email",
			Message: "company_email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	CompanyEmail   string  `json:"company_email"`
	Department     *string `json:"department,omitempty"`
}

func ToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		EmployeeNumber: p.EmployeeNumber,
		FullName:       p.FullName,
		CompanyEmail:   p.CompanyEmail,
		Department:     p.Department,
	}
}
