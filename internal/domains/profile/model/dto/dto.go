package dto

import (
	"fmt"
	"gooman/internal/domains/profile/model"
	gDto "gooman/shared/dto"
	gModel "gooman/shared/model"
	"gooman/shared/timezone"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// NewProfile builds the profile created alongside a new user.
func NewProfile(userID, email, fullName string) model.Profile {
	now := timezone.Now()

	return model.Profile{
		ID:       uuid.NewString(),
		UserID:   userID,
		Email:    &email,
		FullName: &fullName,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UpdateProfileRequest struct {
	FullName          string `db:"full_name"          json:"full_name,omitempty"          validate:"omitempty,min=2,max=100"`
	Phone             string `db:"phone"              json:"phone,omitempty"              validate:"omitempty,e164"`
	PreferredLanguage string `db:"preferred_language" json:"preferred_language,omitempty" validate:"omitempty,oneof=en ar"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `db:"avatar_url"`
}

type ProfileResponse struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id"`
	Email             *string `json:"email"`
	FullName          *string `json:"full_name"`
	Phone             *string `json:"phone"`
	PreferredLanguage *string `json:"preferred_language"`
	AvatarURL         *string `json:"avatar_url"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(model model.Profile) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.PreferredLanguage = model.PreferredLanguage
	r.AvatarURL = model.AvatarURL
	r.Metadata.FromModel(model.Metadata)
}

// UploadAvatarRequest carries an already-read image. ContentType is sniffed from the bytes.
type UploadAvatarRequest struct {
	FileName    string `validate:"required"`
	ContentType string `validate:"required,oneof=image/png image/jpeg image/webp"`
	Data        []byte `validate:"required,max=2097152"`
}

// AvatarForm is the multipart form of the avatar upload endpoint.
type AvatarForm struct {
	Image *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpeg image/webp,maxfilesize=2"`
}

// ToRequest reads the uploaded file and sniffs its content type from the bytes.
func (f AvatarForm) ToRequest() (UploadAvatarRequest, error) {
	file, err := f.Image.Open()
	if err != nil {
		return UploadAvatarRequest{}, fmt.Errorf("opening avatar: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return UploadAvatarRequest{}, fmt.Errorf("reading avatar: %w", err)
	}

	return UploadAvatarRequest{
		FileName:    f.Image.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
