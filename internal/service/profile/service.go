package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/database"
)

type ProfileServiceImpl struct {
	db *database.DB
	profile.ProfileRepository
}

func NewProfileService(db *database.DB, profileRepository profile.ProfileRepository) profile.ProfileService {
	return &ProfileServiceImpl{
		db:                db,
		ProfileRepository: profileRepository,
	}
}

// GetOrProvision implements profile.ProfileService. First authenticated
// access creates an empty shell so the client always has a row to edit.
func (s *ProfileServiceImpl) GetOrProvision(ctx context.Context, userID string, email string) (profile.ProfileResponse, error) {
	existing, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if existing != nil {
		return profile.ToResponse(*existing), nil
	}

	created, err := s.ProfileRepository.Create(ctx, profile.Profile{
		UserID:       userID,
		CompanyEmail: strings.ToLower(email),
	})
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to provision profile: %w", err)
	}

	return profile.ToResponse(created), nil
}

// Save implements profile.ProfileService. The uniqueness pre-check gives a
// friendly error; the unique index on employee_number still backs it up under
// races.
func (s *ProfileServiceImpl) Save(ctx context.Context, userID string, req profile.SaveProfileRequest) (profile.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	taken, err := s.ProfileRepository.EmployeeNumberTakenByOther(ctx, req.EmployeeNumber, userID)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to check employee number: %w", err)
	}
	if taken {
		return profile.ProfileResponse{}, profile.ErrEmployeeNumberExists
	}

	existing, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to load profile: %w", err)
	}

	next := profile.Profile{
		UserID:         userID,
		EmployeeNumber: req.EmployeeNumber,
		FullName:       strings.TrimSpace(req.FullName),
		CompanyEmail:   strings.ToLower(strings.TrimSpace(req.CompanyEmail)),
		Department:     req.Department,
	}

	var saved profile.Profile
	if existing == nil {
		saved, err = s.ProfileRepository.Create(ctx, next)
		if err != nil {
			return profile.ProfileResponse{}, err
		}
	} else {
		next.ID = existing.ID
		if next.CompanyEmail == "" {
			next.CompanyEmail = existing.CompanyEmail
		}
		saved, err = s.ProfileRepository.Update(ctx, next)
		if err != nil {
			return profile.ProfileResponse{}, err
		}
	}

	return profile.ToResponse(saved), nil
}
