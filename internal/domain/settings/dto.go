package settings

import (
	"mime/multipart"

	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	CompanyName    string  `json:"company_name"`
	GSTNumber      *string `json:"gst_number,omitempty"`
	GSTPercentage  float64 `json:"gst_percentage"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	CouponValue    int     `json:"coupon_value"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}

	if r.GSTPercentage < 0 || r.GSTPercentage > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "gst_percentage",
			Message: "gst_percentage must be between 0 and 100",
		})
	}

	if r.CouponValue <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "coupon_value",
			Message: "coupon_value must be positive",
		})
	}

	if r.PrimaryColor != nil && !validator.IsValidHexColor(*r.PrimaryColor) {
		errs = append(errs, validator.ValidationError{
			Field:   "primary_color",
			Message: "primary_color must be a hex color",
		})
	}
	if r.SecondaryColor != nil && !validator.IsValidHexColor(*r.SecondaryColor) {
		errs = append(errs, validator.ValidationError{
			Field:   "secondary_color",
			Message: "secondary_color must be a hex color",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UploadLogoRequest struct {
	File       multipart.File
	FileHeader *multipart.FileHeader
}

type SettingsResponse struct {
	ID             string  `json:"id"`
	CompanyName    string  `json:"company_name"`
	GSTNumber      *string `json:"gst_number,omitempty"`
	GSTPercentage  float64 `json:"gst_percentage"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	CouponValue    int     `json:"coupon_value"`
}

func ToResponse(s CompanySettings) SettingsResponse {
	return SettingsResponse{
		ID:             s.ID,
		CompanyName:    s.CompanyName,
		GSTNumber:      s.GSTNumber,
		GSTPercentage:  s.GSTPercentage,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		LogoURL:        s.LogoURL,
		CouponValue:    s.CouponValue,
	}
}
