package services

import (
	stderrors "errors"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/pkg/errors"
)

const suggestedUsernameCount = 5

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{2,31}$`)

// UserService maintains the local shadow accounts for identity-provider
// subjects: lazy creation on first sight, location sync, and the
// pick-an-anonymous-username onboarding flow.
type UserService struct {
	db        *gorm.DB
	generator *UsernameGenerator
}

func NewUserService(db *gorm.DB, generator *UsernameGenerator) *UserService {
	return &UserService{db: db, generator: generator}
}

// FindOrCreate returns the account for a subject, creating an empty one on
// first contact. Pre-onboarding accounts have no username yet.
func (s *UserService) FindOrCreate(subject string) (*models.User, *errors.AppError) {
	var user models.User
	err := s.db.First(&user, "clerk_user_id = ?", subject).Error
	if err == nil {
		return &user, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Internal("Failed to load user")
	}

	user = models.User{ClerkUserID: subject, CreatedAt: time.Now()}
	if err := s.db.Create(&user).Error; err != nil {
		// Lost a create race with a concurrent first request; reread.
		if err2 := s.db.First(&user, "clerk_user_id = ?", subject).Error; err2 != nil {
			return nil, errors.Internal("Failed to create user")
		}
	}
	return &user, nil
}

// SyncLocation upserts the caller's device position.
func (s *UserService) SyncLocation(subject string, latitude, longitude float64) *errors.AppError {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return errors.BadRequest("Coordinates out of range")
	}

	user, appErr := s.FindOrCreate(subject)
	if appErr != nil {
		return appErr
	}

	updates := map[string]interface{}{
		"latitude":  latitude,
		"longitude": longitude,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return errors.Internal("Failed to sync location")
	}
	return nil
}

// GenerateUsernames returns available anonymous usernames for the
// onboarding picker.
func (s *UserService) GenerateUsernames() ([]string, *errors.AppError) {
	var existing []string
	if err := s.db.Model(&models.User{}).Where("username IS NOT NULL").Pluck("username", &existing).Error; err != nil {
		return nil, errors.Internal("Failed to load existing usernames")
	}

	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[name] = struct{}{}
	}
	return s.generator.GenerateUnique(suggestedUsernameCount, taken), nil
}

// ClaimUsername assigns a display name to the subject's account. Fails if
// the name is malformed or already held by someone else.
func (s *UserService) ClaimUsername(subject, username string) *errors.AppError {
	if !usernamePattern.MatchString(username) {
		return errors.BadRequest("Invalid username")
	}

	user, appErr := s.FindOrCreate(subject)
	if appErr != nil {
		return appErr
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, user.ID).
		Count(&count).Error; err != nil {
		return errors.Internal("Failed to check username")
	}
	if count > 0 {
		return errors.InvalidOperation("Username is already taken")
	}

	if err := s.db.Model(user).Update("username", username).Error; err != nil {
		// Unique index closes the check-then-set race.
		return errors.InvalidOperation("Username is already taken")
	}
	return nil
}
