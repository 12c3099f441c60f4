package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gooman/config"
	kafkaMocks "gooman/infras/kafka/mocks"
	"gooman/infras/otel/mocks"
	bookingMocks "gooman/internal/domains/booking/mocks"
	"gooman/internal/domains/booking/model"
	"gooman/internal/domains/booking/model/dto"
	"gooman/internal/domains/booking/service"
	cacheMocks "gooman/shared/cache/mocks"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"
)

const (
	userID       = "7d0a5c55-3c5e-4c8e-9d1c-1f1b2f7a9e01"
	otherUserID  = "0b6f2e7e-8a61-4f7e-a4a3-6a2d0c9b3e42"
	experienceID = "c1a7f3d2-5b0e-4d8a-9f61-2e3b4c5d6e7f"
	hotelID      = "a3e1b2c4-d5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

type fixture struct {
	svc   service.Booking
	repo  *bookingMocks.MockBooking
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := newStrictFixture(t)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

// newStrictFixture leaves cache expectations to the test. Events are always accepted.
func newStrictFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  bookingMocks.NewMockBooking(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.BookingCreated = "booking.created"
	cfg.Kafka.Topics.BookingStatusChanged = "booking.status_changed"

	f.kafka.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, f.kafka, mocks.NewOtel())

	return f
}

func userContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func experienceRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		UserID:       userID,
		BookingType:  "experience",
		ExperienceID: experienceID,
		CheckInDate:  "2024-05-10",
		Guests:       2,
		TotalPrice:   170,
		Status:       "pending",
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("experience booking is inserted as pending", func(t *testing.T) {
		f := newFixture(t)

		var inserted model.Booking

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				inserted = booking

				return nil
			})

		res, err := f.svc.Create(userContext(userID, constant.RoleUser), experienceRequest())

		assert.NoError(t, err)
		assert.Equal(t, userID, inserted.UserID)
		assert.Equal(t, "experience", inserted.BookingType)
		assert.Equal(t, experienceID, *inserted.ExperienceID)
		assert.Nil(t, inserted.HotelID)
		assert.Nil(t, inserted.GuideID)
		assert.Equal(t, 170.0, inserted.TotalPrice)
		assert.Equal(t, string(model.StatusPending), inserted.Status)
		assert.Equal(t, "2024-05-10", *res.CheckInDate)
		assert.Nil(t, res.CheckOutDate)
		assert.Equal(t, inserted.ID, res.ID)
	})

	t.Run("cached list is evicted before returning", func(t *testing.T) {
		f := newStrictFixture(t)

		gomock.InOrder(
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
			f.cache.EXPECT().Clear(gomock.Any(), "booking:mine:"+userID+"*").Return(nil),
		)

		_, err := f.svc.Create(userContext(userID, constant.RoleUser), experienceRequest())

		assert.NoError(t, err)
	})

	t.Run("eviction failure does not fail the booking", func(t *testing.T) {
		f := newStrictFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		_, err := f.svc.Create(userContext(userID, constant.RoleUser), experienceRequest())

		assert.NoError(t, err)
	})

	t.Run("owner defaults to the caller", func(t *testing.T) {
		f := newFixture(t)

		req := experienceRequest()
		req.UserID = ""

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, userID, booking.UserID)

				return nil
			})

		_, err := f.svc.Create(userContext(userID, constant.RoleUser), req)

		assert.NoError(t, err)
	})

	t.Run("sequential confirmations create distinct records", func(t *testing.T) {
		f := newFixture(t)

		ids := []string{}

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				ids = append(ids, booking.ID)

				return nil
			}).Times(2)

		ctx := userContext(userID, constant.RoleUser)
		_, err1 := f.svc.Create(ctx, experienceRequest())
		_, err2 := f.svc.Create(ctx, experienceRequest())

		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), experienceRequest())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("owner differs from caller", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(userContext(otherUserID, constant.RoleUser), experienceRequest())

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.EqualError(t, err, `new row violates row-level security policy for table "bookings"`)
	})

	t.Run("reference does not match booking type", func(t *testing.T) {
		f := newFixture(t)

		req := experienceRequest()
		req.HotelID = hotelID

		_, err := f.svc.Create(userContext(userID, constant.RoleUser), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.ErrorContains(t, err, "must be set and match booking_type")
	})

	t.Run("foreign key violation carries the driver message", func(t *testing.T) {
		f := newFixture(t)

		pqErr := &pq.Error{
			Code:    constant.PqErrorCodeFkViolation,
			Message: `insert or update on table "bookings" violates foreign key constraint "bookings_experience_id_fkey"`,
		}

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.Join(errors.New("failed to insert data (booking)"), pqErr))

		_, err := f.svc.Create(userContext(userID, constant.RoleUser), experienceRequest())

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, pqErr.Message)
	})

	t.Run("database error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(userContext(userID, constant.RoleUser), experienceRequest())

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestBookingService_GetMine(t *testing.T) {
	t.Run("newest first for the caller", func(t *testing.T) {
		f := newFixture(t)

		name := "Al Bustan"
		ownFilter := gomock.Cond(func(x any) bool {
			filter, ok := x.(gDto.FilterGroup)
			if !ok {
				return false
			}

			where, args := filter.GetWhereClause()

			return where == "(bookings.user_id = :user_id)" && args["user_id"] == userID
		})

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), ownFilter).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), ownFilter).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.Detail, error) {
				assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.Detail{
					{
						Booking:   model.Booking{ID: "b-1", UserID: userID, BookingType: "hotel"},
						HotelName: &name,
					},
				}, nil
			})

		res, err := f.svc.GetMine(userContext(userID, constant.RoleUser), gDto.QueryParams{SortBy: "total_price", SortDir: "ASC"})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, "Al Bustan", res.Bookings[0].Title)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetMine(context.Background(), gDto.QueryParams{})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	detail := model.Detail{Booking: model.Booking{ID: "b-1", UserID: userID, BookingType: "guide", Status: "pending"}}

	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "owner", ctx: userContext(userID, constant.RoleUser)},
		{name: "admin", ctx: userContext(otherUserID, constant.RoleAdmin)},
		{name: "someone else", ctx: userContext(otherUserID, constant.RoleUser), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("miss"))
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(detail, nil)

			res, err := f.svc.Get(tt.ctx, "b-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "b-1", res.ID)
		})
	}

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Detail{}, nil)

		_, err := f.svc.Get(userContext(userID, constant.RoleUser), "b-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  model.Status
		next     string
		wantCode int
	}{
		{name: "confirm pending", current: model.StatusPending, next: "confirmed"},
		{name: "cancel pending", current: model.StatusPending, next: "cancelled"},
		{name: "complete confirmed", current: model.StatusConfirmed, next: "completed"},
		{name: "complete pending", current: model.StatusPending, next: "completed", wantCode: http.StatusConflict},
		{name: "reopen cancelled", current: model.StatusCancelled, next: "confirmed", wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			detail := model.Detail{Booking: model.Booking{ID: "b-1", UserID: userID, Status: string(tt.current)}}

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(detail, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.next, fields[model.FieldStatus])
						assert.Contains(t, fields, constant.FieldUpdatedAt)

						return nil
					})
			}

			err := f.svc.UpdateStatus(userContext(otherUserID, constant.RoleAdmin), dto.UpdateStatusRequest{Status: tt.next}, "b-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
