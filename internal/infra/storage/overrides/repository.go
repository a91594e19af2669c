package overrides

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/types"
)

// Repository read-only репозиторий календарных слоёв отмен:
// праздники, точечные отмены слотов и спецбронирования площадок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарных слоёв
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// HolidaysOn получает праздники, попадающие на дату:
// точные по дате и ежегодные по месяцу/дню
func (r *Repository) HolidaysOn(ctx context.Context, date time.Time) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"date",
		"is_recurring",
	).
		From("holidays").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"is_recurring": false},
				squirrel.Eq{"date": domain.DateOnly(date)},
			},
			squirrel.And{
				squirrel.Eq{"is_recurring": true},
				squirrel.Expr("EXTRACT(MONTH FROM date) = ?", int(date.Month())),
				squirrel.Expr("EXTRACT(DAY FROM date) = ?", date.Day()),
			},
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: HolidaysOn - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: HolidaysOn - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.IsRecurring); err != nil {
			return nil, fmt.Errorf("%w: HolidaysOn - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: HolidaysOn - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// CancellationFor получает точечную отмену слота на дату, если она есть
// Возвращает nil без ошибки, когда отмены нет
func (r *Repository) CancellationFor(ctx context.Context, slotID int64, date time.Time) (*domain.SlotCancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_id",
		"date",
		"reason",
	).
		From("slot_cancellations").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CancellationFor - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.SlotCancellation
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.SlotID, &c.Date, &c.Reason)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CancellationFor - scan row: %v", ErrScanRow, err)
	}

	return &c, nil
}

// SpecialBookingsCovering получает спецбронирования площадки,
// чей диапазон дат накрывает указанную дату
func (r *Repository) SpecialBookingsCovering(ctx context.Context, venueID int64, date time.Time) ([]*domain.SpecialBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"title",
		"start_date",
		"end_date",
		"start_time",
		"end_time",
		"reason",
		"cancels_classes",
	).
		From("special_bookings").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.LtOrEq{"start_date": domain.DateOnly(date)}).
		Where(squirrel.GtOrEq{"end_date": domain.DateOnly(date)}).
		OrderBy("start_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SpecialBookingsCovering - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SpecialBookingsCovering - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.SpecialBooking, 0)
	for rows.Next() {
		var b domain.SpecialBooking
		var startTime, endTime sql.NullString
		err := rows.Scan(
			&b.ID,
			&b.VenueID,
			&b.Title,
			&b.StartDate,
			&b.EndDate,
			&startTime,
			&endTime,
			&b.Reason,
			&b.CancelsClasses,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: SpecialBookingsCovering - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			ts := types.TimeString(truncateToMinutes(startTime.String))
			b.StartTime = &ts
		}
		if endTime.Valid {
			ts := types.TimeString(truncateToMinutes(endTime.String))
			b.EndTime = &ts
		}

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SpecialBookingsCovering - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// truncateToMinutes обрезает значение колонки TIME ("HH:MM:SS") до "HH:MM"
func truncateToMinutes(s string) string {
	if len(s) > len(domain.TimeFormat) {
		return s[:len(domain.TimeFormat)]
	}
	return s
}
