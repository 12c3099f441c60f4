package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"gooman/infras/otel"
	"gooman/infras/postgres"
	"gooman/internal/domains/profile/model"
	gDto "gooman/shared/dto"
	gRepo "gooman/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Profile interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, profile model.Profile) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Profile, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	profiles gRepo.Repository[model.Profile]
}

func New(db *postgres.Connection, otel otel.Otel) Profile {
	return &repositoryImpl{
		profiles: gRepo.NewRepository[model.Profile](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, profile model.Profile) error {
	return r.profiles.InsertTx(ctx, tx, profile)
}

func (r *repositoryImpl) Get(ctx context.Context, filter gDto.FilterGroup) (model.Profile, error) {
	return r.profiles.Get(ctx, filter)
}

func (r *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return r.profiles.Update(ctx, req, filter)
}
