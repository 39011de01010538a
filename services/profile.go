package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"techtrek/models"
	"techtrek/utils"

	"gorm.io/gorm"
)

type ProfileUpdate struct {
	Name   string `form:"name"`
	Email  string `form:"email"`
	Mobile string `form:"mobile"`
}

type ProfileService struct {
	db        *gorm.DB
	uploadDir string
	sniff     bool
}

func NewProfileService(db *gorm.DB, uploadDir string, sniffContent bool) *ProfileService {
	return &ProfileService{db: db, uploadDir: uploadDir, sniff: sniffContent}
}

// View loads the user with the given id.
func (s *ProfileService) View(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, persistence("load user", err)
	}
	return &user, nil
}

// Update replaces the user's name, email and mobile. An avatar is stored
// only when it is an accepted image; otherwise the current reference stays.
func (s *ProfileService) Update(ctx context.Context, userID uint, req ProfileUpdate, avatar *multipart.FileHeader) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)

	missing := map[string]string{}
	if req.Name == "" {
		missing["name"] = "This field is required."
	}
	if req.Email == "" {
		missing["email"] = "This field is required."
	}
	if req.Mobile == "" {
		missing["mobile"] = "This field is required."
	}
	if len(missing) > 0 {
		return nil, invalid(ErrFieldsRequired, missing)
	}

	user, err := s.View(ctx, userID)
	if err != nil {
		return nil, err
	}

	var taken int64
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", req.Email, userID).
		Count(&taken).Error
	if err != nil {
		return nil, persistence("check email", err)
	}
	if taken > 0 {
		return nil, ErrConflict
	}

	changes := map[string]any{
		"name":   req.Name,
		"email":  req.Email,
		"mobile": req.Mobile,
	}

	var staged *utils.StagedAvatar
	if avatar != nil {
		staged, err = utils.StageAvatar(avatar, s.uploadDir, s.sniff)
		switch {
		case err == nil:
			defer staged.Discard()
			changes["profile_picture"] = staged.Filename
		case errors.Is(err, utils.ErrUnsupportedUpload):
			utils.Log.Info().Uint("user_id", userID).Str("filename", avatar.Filename).Msg("avatar rejected, keeping current picture")
		default:
			utils.Log.Error().Err(err).Uint("user_id", userID).Msg("saving avatar")
			return nil, &PersistenceError{Op: "save avatar", Err: err}
		}
	}

	// The stored file is replaced only once the row update has succeeded.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Updates(changes).Error; err != nil {
			return err
		}
		if staged != nil {
			return staged.Commit()
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, persistence("update profile", err)
	}

	user.Name, user.Email, user.Mobile = req.Name, req.Email, req.Mobile
	if filename, ok := changes["profile_picture"].(string); ok {
		user.ProfilePicture = &filename
	}
	return user, nil
}
