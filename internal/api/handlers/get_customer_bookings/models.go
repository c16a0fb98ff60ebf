package get_customer_bookings

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

var (
	errMissingPhone      = errors.New("phone is required")
	errInvalidBusinessID = errors.New("invalid businessId")
	errInvalidFlag       = errors.New("invalid includeInactive")
)

// ParseRequest собирает запрос сервиса из query параметров.
// Форматы дат и статуса проверяет сервис.
func ParseRequest(query url.Values) (*models.ListByPhoneRequest, error) {
	req := &models.ListByPhoneRequest{Phone: query.Get("phone")}
	if req.Phone == "" {
		return nil, errMissingPhone
	}

	if raw := query.Get("businessId"); raw != "" {
		businessID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errInvalidBusinessID
		}
		req.BusinessID = &businessID
	}

	if raw := query.Get("startDate"); raw != "" {
		req.StartDate = ptr.Ptr(types.Date(raw))
	}
	if raw := query.Get("endDate"); raw != "" {
		req.EndDate = ptr.Ptr(types.Date(raw))
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		flag, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errInvalidFlag
		}
		req.IncludeInactive = flag
	}

	return req, nil
}
