package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"techtrek/events"
	"techtrek/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"gorm.io/gorm"
)

type ContactRequest struct {
	Name    string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Subject string `form:"subject" json:"subject" validate:"required,min=2,max=200"`
	Message string `form:"message" json:"message" validate:"required,notblank,min=10"`
}

type ContactService struct {
	db        *gorm.DB
	validate  *validator.Validate
	publisher events.Publisher
	now       func() time.Time
}

func NewContactService(db *gorm.DB, publisher events.Publisher) *ContactService {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegisterValidation(v, "notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &ContactService{
		db:        db,
		validate:  v,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// mustRegisterValidation panics when a rule cannot be registered, which only
// happens for an empty tag or a nil func.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("services: registering %q validation: %v", tag, err))
	}
}

// Submit validates req and stores it with a server-assigned timestamp.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*models.ContactMessage, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, invalid(ErrInvalidInput, nil)
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return nil, invalid(ErrInvalidInput, fields)
	}

	msg := &models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: s.now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, persistence("create contact message", err)
	}

	publish(ctx, s.publisher, events.Event{
		Type:    events.ContactSubmitted,
		Key:     msg.Email,
		Payload: map[string]any{"message_id": msg.ID, "email": msg.Email, "subject": msg.Subject},
	})
	return msg, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min", "max":
		if msg, ok := lengthMessages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("Invalid length (%s %s).", fe.Tag(), fe.Param())
	default:
		return "Invalid value."
	}
}

var lengthMessages = map[string]string{
	"name":    "Field must be between 2 and 100 characters long.",
	"subject": "Field must be between 2 and 200 characters long.",
	"message": "Field must be at least 10 characters long.",
}
