package model

import "gooman/shared/model"

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID                = "id"
	FieldUserID            = "user_id"
	FieldEmail             = "email"
	FieldFullName          = "full_name"
	FieldPhone             = "phone"
	FieldPreferredLanguage = "preferred_language"
	FieldAvatarURL         = "avatar_url"
)

type Profile struct {
	ID                string  `db:"id"`
	UserID            string  `db:"user_id"`
	Email             *string `db:"email"`
	FullName          *string `db:"full_name"`
	Phone             *string `db:"phone"`
	PreferredLanguage *string `db:"preferred_language"`
	AvatarURL         *string `db:"avatar_url"`
	model.Metadata
}
