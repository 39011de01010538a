package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"techtrek/database/databasetest"
	"techtrek/events"
	"techtrek/events/eventstest"
	"techtrek/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func contactRequest(message string) ContactRequest {
	return ContactRequest{
		Name:    "Grace",
		Email:   "grace@example.com",
		Subject: "Hi",
		Message: message,
	}
}

func TestContactMessageLengthBoundary(t *testing.T) {
	db := databasetest.New(t)
	rec := &eventstest.Recorder{}
	contact := NewContactService(db, rec)

	_, err := contact.Submit(context.Background(), contactRequest("123456789"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Field must be at least 10 characters long.", verr.Fields["message"])

	var n int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Count(&n).Error)
	assert.Zero(t, n)

	before := time.Now().UTC().Add(-time.Second)
	msg, err := contact.Submit(context.Background(), contactRequest("1234567890"))
	require.NoError(t, err)

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, msg.ID).Error)
	assert.Equal(t, "1234567890", stored.Message)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.True(t, stored.CreatedAt.After(before))
	assert.Equal(t, []string{events.ContactSubmitted}, rec.Types())
}

func TestContactFieldValidation(t *testing.T) {
	contact := NewContactService(databasetest.New(t), nil)

	_, err := contact.Submit(context.Background(), ContactRequest{
		Name:    "G",
		Email:   "not-an-email",
		Subject: strings.Repeat("s", 201),
		Message: strings.Repeat(" ", 12),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":    "Field must be between 2 and 100 characters long.",
		"email":   "Invalid email address.",
		"subject": "Field must be between 2 and 200 characters long.",
		"message": "This field is required.",
	}, verr.Fields)
}

func TestContactCountsCharactersNotBytes(t *testing.T) {
	contact := NewContactService(databasetest.New(t), nil)

	// Ten runes, twenty bytes.
	_, err := contact.Submit(context.Background(), contactRequest("éééééééééé"))
	assert.NoError(t, err)
}

func TestContactPersistenceFailureRollsBack(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "contact_messages"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	rec := &eventstest.Recorder{}
	_, err = NewContactService(db, rec).Submit(context.Background(), contactRequest("long enough message"))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Empty(t, rec.Events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMustRegisterValidation(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() { mustRegisterValidation(v, "", func(validator.FieldLevel) bool { return true }) })
	assert.Panics(t, func() { mustRegisterValidation(v, "always", nil) })
	assert.NotPanics(t, func() { mustRegisterValidation(v, "always", func(validator.FieldLevel) bool { return true }) })
}
