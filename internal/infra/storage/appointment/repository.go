package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/pgerr"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"reference_code",
	"provider_id",
	"business_id",
	"appointment_date",
	"slot_time",
	"total_duration",
	"total_price",
	"mode",
	"status",
	"customer_name",
	"customer_phone",
	"services",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте передана активная транзакция, использует её.
// Пересечение с другой активной записью провайдера отсекается exclusion-ограничением
// таблицы и возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	services, err := json.Marshal(servicesOrEmpty(a.Services))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeServices, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"reference_code",
			"provider_id",
			"business_id",
			"appointment_date",
			"slot_time",
			"total_duration",
			"total_price",
			"mode",
			"status",
			"customer_name",
			"customer_phone",
			"services",
		).
		Values(
			a.ReferenceCode,
			a.ProviderID,
			a.BusinessID,
			a.Date,
			a.SlotTime,
			a.TotalDuration,
			a.TotalPrice,
			a.Mode,
			a.Status,
			a.CustomerName,
			a.CustomerPhone,
			services,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pgerr.IsExclusionViolation(err) || pgerr.IsRetryable(err) {
			return nil, fmt.Errorf("%w: provider_id=%d date=%s time=%s", ErrSlotConflict, a.ProviderID, a.Date, a.SlotTime)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReferenceCode получает запись по публичному коду
func (r *Repository) GetByReferenceCode(ctx context.Context, code uuid.UUID) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByReferenceCode", squirrel.Eq{"reference_code": code})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where)

	// Внутри транзакции блокируем строку: после чтения обычно следует смена статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	return a, nil
}

// GetWithFilter получает записи с гибкой фильтрацией.
// Без Status и IncludeInactive отмененные записи исключаются.
// Для одной даты записи сортируются по времени начала, иначе сначала новые.
// Для одной даты внутри транзакции строки блокируются (создание записи).
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.ProviderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.BusinessID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"business_id": *filter.BusinessID})
	}
	if filter.CustomerPhone != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_phone": *filter.CustomerPhone})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.IsSingleDay() {
		selectBuilder = selectBuilder.OrderBy("slot_time ASC", "id ASC")
		if dbmetrics.IsInTransaction(ctx) {
			selectBuilder = selectBuilder.Suffix("FOR UPDATE")
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "slot_time DESC", "id DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus меняет статус записи. Для отмены дополнительно проставляется cancelled_at.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		services             []byte
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ReferenceCode,
		&a.ProviderID,
		&a.BusinessID,
		&a.Date,
		&a.SlotTime,
		&a.TotalDuration,
		&a.TotalPrice,
		&a.Mode,
		&a.Status,
		&a.CustomerName,
		&a.CustomerPhone,
		&services,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(services) > 0 {
		if err := json.Unmarshal(services, &a.Services); err != nil {
			return nil, fmt.Errorf("decode services: %w", err)
		}
	}

	if cancelledAt.Valid {
		t := cancelledAt.Time
		a.CancelledAt = &t
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func servicesOrEmpty(services []domain.Service) []domain.Service {
	if services == nil {
		return []domain.Service{}
	}
	return services
}
