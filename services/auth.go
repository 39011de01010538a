package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"techtrek/events"
	"techtrek/models"
	"techtrek/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`\d`)
	symbolRe = regexp.MustCompile(`[!@#$%^&*]`)
)

// IsStrongPassword reports whether password has at least 8 characters and
// contains an uppercase letter, a lowercase letter, a digit and one of !@#$%^&*.
func IsStrongPassword(password string) bool {
	return utf8.RuneCountInString(password) >= 8 &&
		upperRe.MatchString(password) &&
		lowerRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		symbolRe.MatchString(password)
}

type RegisterRequest struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Mobile          string `form:"mobile"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type AuthService struct {
	db        *gorm.DB
	cost      int
	publisher events.Publisher
}

func NewAuthService(db *gorm.DB, cost int, publisher events.Publisher) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &AuthService{db: db, cost: cost, publisher: publisher}
}

// Register validates req and stores a new user with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	mobile := strings.TrimSpace(req.Mobile)

	missing := map[string]string{}
	for field, value := range map[string]string{
		"name":             name,
		"email":            email,
		"mobile":           mobile,
		"password":         strings.TrimSpace(req.Password),
		"confirm_password": strings.TrimSpace(req.ConfirmPassword),
	} {
		if value == "" {
			missing[field] = "This field is required."
		}
	}
	if len(missing) > 0 {
		return nil, invalid(ErrFieldsRequired, missing)
	}
	if req.Password != req.ConfirmPassword {
		return nil, invalid(ErrPasswordMismatch, map[string]string{"confirm_password": "Passwords do not match."})
	}
	if !IsStrongPassword(req.Password) {
		return nil, invalid(ErrWeakPassword, map[string]string{
			"password": "Password must be at least 8 characters, include an uppercase, lowercase, number, and special character (!@#$%^&*).",
		})
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistence("lookup user by email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		utils.Log.Error().Err(err).Msg("hashing password")
		return nil, &PersistenceError{Op: "hash password", Err: err}
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Mobile:   mobile,
		Password: string(hashed),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, persistence("create user", err)
	}

	publish(ctx, s.publisher, events.Event{
		Type:    events.UserRegistered,
		Key:     email,
		Payload: map[string]any{"user_id": user.ID, "email": user.Email},
	})
	return user, nil
}

// Authenticate returns the user matching email and password, or ErrAuth.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuth
	}
	if err != nil {
		return nil, persistence("lookup user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAuth
	}
	return &user, nil
}

// publish sends event after a commit. Failures are logged and dropped.
func publish(ctx context.Context, p events.Publisher, event events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	if err := p.Publish(ctx, event); err != nil {
		utils.Log.Warn().Err(err).Str("event", event.Type).Msg("publish event")
	}
}
