package dto

import (
	"gooman/internal/domains/listing/model"
	"gooman/shared"
	gDto "gooman/shared/dto"
	gModel "gooman/shared/model"
	"gooman/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type HotelResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Location      string   `json:"location"`
	Address       *string  `json:"address"`
	PricePerNight float64  `json:"price_per_night"`
	Rating        *float64 `json:"rating"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"is_active"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(m model.Hotel) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.Location = m.Location
	r.Address = m.Address
	r.PricePerNight = m.PricePerNight
	r.Rating = m.Rating
	r.Amenities = nonNil(m.Amenities)
	r.Images = nonNil(m.Images)
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

func (r HotelResponse) ToModel() model.Hotel {
	return model.Hotel{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Location:      r.Location,
		Address:       r.Address,
		PricePerNight: r.PricePerNight,
		Rating:        r.Rating,
		Amenities:     r.Amenities,
		Images:        r.Images,
		IsActive:      r.IsActive,
		Metadata:      toMetadata(r.Metadata),
	}
}

type GuideResponse struct {
	ID          string   `json:"id"`
	UserID      *string  `json:"user_id"`
	Name        string   `json:"name"`
	Bio         *string  `json:"bio"`
	AvatarURL   *string  `json:"avatar_url"`
	PricePerDay *float64 `json:"price_per_day"`
	Rating      *float64 `json:"rating"`
	Languages   []string `json:"languages"`
	Specialties []string `json:"specialties"`
	IsVerified  *bool    `json:"is_verified"`
	IsActive    *bool    `json:"is_active"`
	gDto.Metadata
}

func (r *GuideResponse) FromModel(m model.Guide) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.Name = m.Name
	r.Bio = m.Bio
	r.AvatarURL = m.AvatarURL
	r.PricePerDay = m.PricePerDay
	r.Rating = m.Rating
	r.Languages = nonNil(m.Languages)
	r.Specialties = nonNil(m.Specialties)
	r.IsVerified = m.IsVerified
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

func (r GuideResponse) ToModel() model.Guide {
	return model.Guide{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Bio:         r.Bio,
		AvatarURL:   r.AvatarURL,
		PricePerDay: r.PricePerDay,
		Rating:      r.Rating,
		Languages:   r.Languages,
		Specialties: r.Specialties,
		IsVerified:  r.IsVerified,
		IsActive:    r.IsActive,
		Metadata:    toMetadata(r.Metadata),
	}
}

type ExperienceResponse struct {
	ID            string   `json:"id"`
	GuideID       *string  `json:"guide_id"`
	Title         string   `json:"title"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location"`
	Price         float64  `json:"price"`
	DurationHours *float64 `json:"duration_hours"`
	MaxGroupSize  *int     `json:"max_group_size"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"is_active"`
	gDto.Metadata
}

func (r *ExperienceResponse) FromModel(m model.Experience) {
	r.ID = m.ID
	r.GuideID = m.GuideID
	r.Title = m.Title
	r.Description = m.Description
	r.Location = m.Location
	r.Price = m.Price
	r.DurationHours = m.DurationHours
	r.MaxGroupSize = m.MaxGroupSize
	r.Images = nonNil(m.Images)
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

func (r ExperienceResponse) ToModel() model.Experience {
	return model.Experience{
		ID:            r.ID,
		GuideID:       r.GuideID,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Price:         r.Price,
		DurationHours: r.DurationHours,
		MaxGroupSize:  r.MaxGroupSize,
		Images:        r.Images,
		IsActive:      r.IsActive,
		Metadata:      toMetadata(r.Metadata),
	}
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}

type GetGuidesResponse struct {
	Guides    []GuideResponse `json:"guides"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuidesResponse) FromModels(models []model.Guide, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guides = make([]GuideResponse, len(models))
	for i, mod := range models {
		r.Guides[i].FromModel(mod)
	}
}

type GetExperiencesResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetExperiencesResponse) FromModels(models []model.Experience, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Experiences = make([]ExperienceResponse, len(models))
	for i, mod := range models {
		r.Experiences[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

func toMetadata(m gDto.Metadata) gModel.Metadata {
	return gModel.Metadata{
		CreatedAt: parseTimestamp(m.CreatedAt),
		UpdatedAt: parseTimestamp(m.UpdatedAt),
	}
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("unparseable listing timestamp")

		return time.Time{}
	}

	return timezone.ToAppTime(parsed)
}
