package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberService/internal/service/bookings"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func (m *MockBookingService) GetByReferenceCode(ctx context.Context, code uuid.UUID) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func newRouter(svc *MockBookingService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{appointmentId:[0-9]+}", h.Handle)
	router.HandleFunc("/appointments/ref/{referenceCode}", h.HandleByReference)
	return router
}

func serve(router *mux.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetByID", mock.Anything, int64(7)).Return(&models.AppointmentResponse{ID: 7}, nil)
	svc.On("GetByID", mock.Anything, int64(8)).Return(nil, bookings.ErrAppointmentNotFound)
	svc.On("GetByID", mock.Anything, int64(9)).Return(nil, errors.Join(bookings.ErrInternal, errors.New("db")))

	router := newRouter(svc)
	assert.Equal(t, http.StatusOK, serve(router, "/appointments/7").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, "/appointments/8").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(router, "/appointments/9").Code)
}

func TestHandleByReference(t *testing.T) {
	code := uuid.New()
	svc := new(MockBookingService)
	svc.On("GetByReferenceCode", mock.Anything, code).Return(&models.AppointmentResponse{ID: 7, ReferenceCode: code.String()}, nil)

	router := newRouter(svc)
	rec := serve(router, "/appointments/ref/"+code.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), code.String())

	assert.Equal(t, http.StatusBadRequest, serve(router, "/appointments/ref/not-a-uuid").Code)
}
