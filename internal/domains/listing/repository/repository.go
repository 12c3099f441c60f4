package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"gooman/infras/otel"
	"gooman/infras/postgres"
	"gooman/internal/domains/listing/model"
	gDto "gooman/shared/dto"
	gRepo "gooman/shared/repository"
)

type Listing interface {
	GetHotels(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Hotel, error)
	CountHotels(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetHotel(ctx context.Context, filter gDto.FilterGroup) (model.Hotel, error)

	GetGuides(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Guide, error)
	CountGuides(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetGuide(ctx context.Context, filter gDto.FilterGroup) (model.Guide, error)

	GetExperiences(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Experience, error)
	CountExperiences(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetExperience(ctx context.Context, filter gDto.FilterGroup) (model.Experience, error)
}

type repositoryImpl struct {
	hotels      gRepo.Repository[model.Hotel]
	guides      gRepo.Repository[model.Guide]
	experiences gRepo.Repository[model.Experience]
}

func New(db *postgres.Connection, otel otel.Otel) Listing {
	return &repositoryImpl{
		hotels:      gRepo.NewRepository[model.Hotel](model.EntityHotel, model.TableHotels, model.FieldID, db, otel),
		guides:      gRepo.NewRepository[model.Guide](model.EntityGuide, model.TableGuides, model.FieldID, db, otel),
		experiences: gRepo.NewRepository[model.Experience](model.EntityExperience, model.TableExperiences, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetHotels(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Hotel, error) {
	return r.hotels.GetAll(ctx, params, filter)
}

func (r *repositoryImpl) CountHotels(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.hotels.Count(ctx, filter)
}

func (r *repositoryImpl) GetHotel(ctx context.Context, filter gDto.FilterGroup) (model.Hotel, error) {
	return r.hotels.Get(ctx, filter)
}

func (r *repositoryImpl) GetGuides(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Guide, error) {
	return r.guides.GetAll(ctx, params, filter)
}

func (r *repositoryImpl) CountGuides(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.guides.Count(ctx, filter)
}

func (r *repositoryImpl) GetGuide(ctx context.Context, filter gDto.FilterGroup) (model.Guide, error) {
	return r.guides.Get(ctx, filter)
}

func (r *repositoryImpl) GetExperiences(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Experience, error) {
	return r.experiences.GetAll(ctx, params, filter)
}

func (r *repositoryImpl) CountExperiences(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.experiences.Count(ctx, filter)
}

func (r *repositoryImpl) GetExperience(ctx context.Context, filter gDto.FilterGroup) (model.Experience, error) {
	return r.experiences.Get(ctx, filter)
}
