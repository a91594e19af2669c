package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий слотов и регулярных назначений
// Слоты и назначения ведутся администрированием расписания в другом
// сервисе; здесь обе таблицы только читаются
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ClassSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"program_id",
		"venue_id",
		"label",
		"coach_id",
		"day_of_week",
		"start_time",
		"end_time",
		"capacity",
		"recurrence",
		"valid_from",
		"valid_to",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("class_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ClassSlot
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ProgramID,
		&s.VenueID,
		&s.Label,
		&s.CoachID,
		&dayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.Recurrence,
		&s.ValidFrom,
		&s.ValidTo,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	// В БД день недели хранится как 0=Sunday..6=Saturday (соглашение time.Weekday)
	s.DayOfWeek = time.Weekday(dayOfWeek % 7)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// ActiveAssignmentCount считает активные регулярные назначения на слот
func (r *Repository) ActiveAssignmentCount(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("class_assignments").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"status": domain.AssignmentActive}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ActiveAssignmentCount - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: ActiveAssignmentCount - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// HasActiveAssignment возвращает true, если участник активно назначен на слот
func (r *Repository) HasActiveAssignment(ctx context.Context, memberID, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("class_assignments").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"status": domain.AssignmentActive}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveAssignment - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveAssignment - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}
