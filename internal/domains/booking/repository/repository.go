package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"gooman/infras/otel"
	"gooman/infras/postgres"
	"gooman/internal/domains/booking/model"
	gDto "gooman/shared/dto"
	gRepo "gooman/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

// repositoryImpl writes plain booking rows and reads them joined with their listing.
type repositoryImpl struct {
	bookings gRepo.Repository[model.Booking]
	details  gRepo.Repository[model.Detail]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		bookings: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:  gRepo.NewRepository[model.Detail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	return r.bookings.Insert(ctx, booking)
}

func (r *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return r.bookings.Update(ctx, req, filter)
}

func (r *repositoryImpl) Get(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error) {
	return r.details.Get(ctx, filter)
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
	return r.details.GetAll(ctx, params, filter)
}

func (r *repositoryImpl) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.details.Count(ctx, filter)
}
