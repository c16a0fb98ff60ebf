package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const table = "providers"

var columns = []string{
	"id",
	"business_id",
	"name",
	"work_start_time",
	"work_end_time",
	"recurring_closed_days",
	"on_location_mode",
	"on_location_days",
	"schedule_overrides",
	"daily_location_overrides",
	"time_off",
	"blocked_slots",
	"services",
	"enable_walkin_buffer",
	"walkin_buffer_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий провайдеров и их расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория провайдеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает провайдера вместе с расписанием
func (r *Repository) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule, err := encodeSchedule(p)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"business_id",
			"name",
			"work_start_time",
			"work_end_time",
			"recurring_closed_days",
			"on_location_mode",
			"on_location_days",
			"schedule_overrides",
			"daily_location_overrides",
			"time_off",
			"blocked_slots",
			"services",
			"enable_walkin_buffer",
			"walkin_buffer_minutes",
		).
		Values(
			p.BusinessID,
			p.Name,
			p.WorkStartTime,
			p.WorkEndTime,
			weekdaysArray(p.RecurringClosedDays),
			p.EffectiveOnLocationMode(),
			weekdaysArray(p.OnLocationDays),
			schedule.scheduleOverrides,
			schedule.dailyLocationOverrides,
			schedule.timeOff,
			schedule.blockedSlots,
			schedule.services,
			p.EnableWalkinBuffer,
			p.WalkinBufferMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает провайдера по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы параллельные записи
// к одному провайдеру шли последовательно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProvider(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	return p, nil
}

// List получает провайдеров. businessID = nil возвращает всех, включая непривязанных.
func (r *Repository) List(ctx context.Context, businessID *int64) ([]*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC", "id ASC")

	if businessID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"business_id": *businessID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return providers, nil
}

// UpdateSchedule перезаписывает рабочее окно, политики и все исключения расписания провайдера
func (r *Repository) UpdateSchedule(ctx context.Context, p *domain.Provider) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule, err := encodeSchedule(p)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update(table).
		Set("work_start_time", p.WorkStartTime).
		Set("work_end_time", p.WorkEndTime).
		Set("recurring_closed_days", weekdaysArray(p.RecurringClosedDays)).
		Set("on_location_mode", p.EffectiveOnLocationMode()).
		Set("on_location_days", weekdaysArray(p.OnLocationDays)).
		Set("schedule_overrides", schedule.scheduleOverrides).
		Set("daily_location_overrides", schedule.dailyLocationOverrides).
		Set("time_off", schedule.timeOff).
		Set("blocked_slots", schedule.blockedSlots).
		Set("services", schedule.services).
		Set("enable_walkin_buffer", p.EnableWalkinBuffer).
		Set("walkin_buffer_minutes", p.WalkinBufferMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row rowScanner) (*domain.Provider, error) {
	var (
		p                    domain.Provider
		businessID           sql.NullInt64
		closedDays, locDays  pq.Int64Array
		schedule             scheduleColumns
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&businessID,
		&p.Name,
		&p.WorkStartTime,
		&p.WorkEndTime,
		&closedDays,
		&p.OnLocationMode,
		&locDays,
		&schedule.scheduleOverrides,
		&schedule.dailyLocationOverrides,
		&schedule.timeOff,
		&schedule.blockedSlots,
		&schedule.services,
		&p.EnableWalkinBuffer,
		&p.WalkinBufferMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if businessID.Valid {
		id := businessID.Int64
		p.BusinessID = &id
	}
	p.RecurringClosedDays = weekdaysFromArray(closedDays)
	p.OnLocationDays = weekdaysFromArray(locDays)

	if err := schedule.decodeInto(&p); err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
