package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
	"github.com/edutest/edutest-backend/internal/utils"
)

type UpdateProfileInput struct {
	FullName         *string `json:"fullName"`
	Email            *string `json:"email"`
	LevelID          *uint   `json:"levelId"`
	GradeID          *uint   `json:"gradeId"`
	UnitID           *uint   `json:"unitId"`
	SubUnitID        *uint   `json:"subUnitId"`
	ProficiencyLevel *string `json:"proficiencyLevel"`
	CurrentPassword  *string `json:"currentPassword"`
	NewPassword      *string `json:"newPassword"`
}

// Profile is the authenticated user plus the display labels of their
// curriculum assignment.
type Profile struct {
	types.User
	LevelName   string `json:"levelName"`
	GradeName   string `json:"gradeName"`
	UnitName    string `json:"unitName"`
	SubUnitName string `json:"subUnitName"`
}

type UserService interface {
	GetMe(ctx context.Context, userID uint) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*Profile, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	store    *taxonomy.Store
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, store *taxonomy.Store) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, store: store}
}

func (us *userService) GetMe(ctx context.Context, userID uint) (*Profile, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return us.buildProfile(user), nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*Profile, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, fmt.Errorf("full name must not be empty")
		}
		user.FullName = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, fmt.Errorf("email must not be empty")
		}
		if email != user.Email {
			taken, err := us.userRepo.EmailExists(ctx, nil, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if taken {
				return nil, fmt.Errorf("email already exists")
			}
			user.Email = email
		}
	}
	if input.ProficiencyLevel != nil {
		if !types.IsValidDifficulty(*input.ProficiencyLevel) {
			return nil, fmt.Errorf("invalid proficiency level: %s", *input.ProficiencyLevel)
		}
		user.ProficiencyLevel = *input.ProficiencyLevel
	}
	if input.NewPassword != nil {
		if input.CurrentPassword == nil || !utils.CheckPassword(user.Password, *input.CurrentPassword) {
			return nil, fmt.Errorf("current password is incorrect")
		}
		if len(*input.NewPassword) < 6 {
			return nil, fmt.Errorf("new password must be at least 6 characters")
		}
		hashed, err := utils.HashPassword(*input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	// A changed rank drops every assigned rank below it, the same cascade
	// the curriculum selects use.
	if input.LevelID != nil {
		user.LevelID = normalizeRef(input.LevelID)
		user.GradeID = nil
		user.UnitID = nil
		user.SubUnitID = nil
	}
	if input.GradeID != nil {
		user.GradeID = normalizeRef(input.GradeID)
		user.UnitID = nil
		user.SubUnitID = nil
	}
	if input.UnitID != nil {
		user.UnitID = normalizeRef(input.UnitID)
		user.SubUnitID = nil
	}
	if input.SubUnitID != nil {
		user.SubUnitID = normalizeRef(input.SubUnitID)
	}

	if _, err := us.userRepo.Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	us.log.Info("Profile updated", "user_id", user.ID)
	return us.buildProfile(user), nil
}

// normalizeRef maps an explicit zero to "unassigned".
func normalizeRef(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func (us *userService) buildProfile(user *types.User) *Profile {
	sn := us.store.Snapshot()
	p := &Profile{
		User:        *user,
		LevelName:   taxonomy.MissingLabel,
		GradeName:   taxonomy.MissingLabel,
		UnitName:    taxonomy.MissingLabel,
		SubUnitName: taxonomy.MissingLabel,
	}
	if user.LevelID != nil {
		if l := sn.Level(*user.LevelID); l != nil {
			p.LevelName = taxonomy.DisplayLabel(l.DisplayName, l.Name)
		}
	}
	if user.GradeID != nil {
		if g := sn.Grade(*user.GradeID); g != nil {
			p.GradeName = taxonomy.DisplayLabel(g.DisplayName, g.Name)
		}
	}
	if user.UnitID != nil {
		if u := sn.Unit(*user.UnitID); u != nil {
			p.UnitName = taxonomy.DisplayLabel(u.DisplayName, u.Name)
		}
	}
	if user.SubUnitID != nil {
		if su := sn.SubUnit(*user.SubUnitID); su != nil {
			p.SubUnitName = taxonomy.DisplayLabel(su.DisplayName, su.Name)
		}
	}
	return p
}
