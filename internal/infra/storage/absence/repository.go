package absence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/psqlbuilder"
)

// Код ошибки postgres для нарушения уникального ограничения
const pgUniqueViolation = "23505"

var absenceColumns = []string{
	"id",
	"member_id",
	"slot_id",
	"absent_date",
	"reason",
	"status",
	"approved_by",
	"approved_at",
	"admin_notes",
	"makeup_slot_id",
	"makeup_date",
	"makeup_deadline",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на пропуск занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку на пропуск
// Уникальность (member_id, slot_id, absent_date) обеспечивается ограничением
// в БД; нарушение транслируется в ErrDuplicateAbsence
func (r *Repository) Create(ctx context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("class_absences").
		Columns(
			"member_id",
			"slot_id",
			"absent_date",
			"reason",
			"status",
		).
		Values(
			req.MemberID,
			req.SlotID,
			req.AbsentDate,
			req.Reason,
			req.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateAbsence
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется через FOR UPDATE, чтобы переходы
// статусов на одной заявке были сериализованы
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(absenceColumns...).
		From("class_absences").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanAbsence(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAbsenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan absence: %v", ErrScanRow, err)
	}

	return req, nil
}

// GetByMember получает заявки участника с опциональной фильтрацией
// по статусу и слоту
func (r *Repository) GetByMember(ctx context.Context, filter domain.MemberAbsencesFilter) ([]*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(absenceColumns...).
		From("class_absences").
		Where(squirrel.Eq{"member_id": filter.MemberID}).
		OrderBy("absent_date DESC, id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.SlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMember - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// CountSeatHoldersForSlot считает заявки, занимающие место в слоте замены
// (статусы makeup_selected и completed), независимо от даты замены:
// замена навсегда занимает место в недельном шаблоне слота
func (r *Repository) CountSeatHoldersForSlot(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("class_absences").
		Where(squirrel.Eq{"makeup_slot_id": slotID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SeatHoldingStatuses)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountSeatHoldersForSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSeatHoldersForSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountSeatHoldersForMonth считает заявки участника в статусах
// makeup_selected/completed, у которых absent_date попадает в месяц
// [monthStart, monthEnd). Заявка excludeID исключается из подсчёта -
// месячная квота не учитывает саму оцениваемую заявку
func (r *Repository) CountSeatHoldersForMonth(ctx context.Context, memberID int64, monthStart, monthEnd time.Time, excludeID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("class_absences").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SeatHoldingStatuses)}).
		Where(squirrel.GtOrEq{"absent_date": monthStart}).
		Where(squirrel.Lt{"absent_date": monthEnd}).
		Where(squirrel.NotEq{"id": excludeID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountSeatHoldersForMonth - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSeatHoldersForMonth - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// HasActiveForOccurrence возвращает true, если у участника уже есть заявка
// на этот пропуск (member_id, slot_id, absent_date)
func (r *Repository) HasActiveForOccurrence(ctx context.Context, memberID, slotID int64, absentDate time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("class_absences").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"absent_date": absentDate}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveForOccurrence - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveForOccurrence - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListOverdueApproved получает одобренные заявки с истёкшим сроком выбора
// замены (makeup_deadline < before). Используется expiry sweep
func (r *Repository) ListOverdueApproved(ctx context.Context, before time.Time) ([]*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("class_absences").
		Where(squirrel.Eq{"status": domain.StatusApproved}).
		Where(squirrel.Lt{"makeup_deadline": before}).
		OrderBy("makeup_deadline ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdueApproved - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdueApproved - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// Approve переводит заявку pending -> approved, фиксируя решение админа
// и срок выбора замены. Условный UPDATE по статусу: при 0 затронутых строк
// возвращается ErrStatusConflict
func (r *Repository) Approve(ctx context.Context, id, approvedBy int64, notes *string, approvedAt, deadline time.Time) error {
	builder := psqlbuilder.Update("class_absences").
		Set("status", domain.StatusApproved).
		Set("approved_by", approvedBy).
		Set("approved_at", approvedAt).
		Set("admin_notes", notes).
		Set("makeup_deadline", deadline).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending})

	return r.execTransition(ctx, "Approve", builder)
}

// Reject переводит заявку pending -> rejected
func (r *Repository) Reject(ctx context.Context, id, rejectedBy int64, notes string) error {
	builder := psqlbuilder.Update("class_absences").
		Set("status", domain.StatusRejected).
		Set("approved_by", rejectedBy).
		Set("admin_notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending})

	return r.execTransition(ctx, "Reject", builder)
}

// SetMakeup переводит заявку approved -> makeup_selected, резервируя место
// Вызывается только внутри сериализуемой транзакции usecase select_makeup
func (r *Repository) SetMakeup(ctx context.Context, id, makeupSlotID int64, makeupDate time.Time) error {
	builder := psqlbuilder.Update("class_absences").
		Set("status", domain.StatusMakeupSelected).
		Set("makeup_slot_id", makeupSlotID).
		Set("makeup_date", makeupDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusApproved})

	return r.execTransition(ctx, "SetMakeup", builder)
}

// DeclineMakeup переводит заявку approved -> no_makeup (отказ участника от замены)
func (r *Repository) DeclineMakeup(ctx context.Context, id int64) error {
	builder := psqlbuilder.Update("class_absences").
		Set("status", domain.StatusNoMakeup).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusApproved})

	return r.execTransition(ctx, "DeclineMakeup", builder)
}

// Complete переводит заявку makeup_selected -> completed
func (r *Repository) Complete(ctx context.Context, id int64) error {
	builder := psqlbuilder.Update("class_absences").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusMakeupSelected})

	return r.execTransition(ctx, "Complete", builder)
}

// Expire переводит заявку approved -> expired
// Условие по статусу делает операцию идемпотентной: повторный вызов
// на уже истёкшей заявке вернёт ErrStatusConflict
func (r *Repository) Expire(ctx context.Context, id int64) error {
	builder := psqlbuilder.Update("class_absences").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusApproved})

	return r.execTransition(ctx, "Expire", builder)
}

// execTransition выполняет условный UPDATE перехода статуса
// 0 затронутых строк означает, что заявка не существует либо её статус
// уже изменён - вызывающий код разбирает ситуацию повторным чтением
func (r *Repository) execTransition(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAbsence сканирует одну заявку
func scanAbsence(row rowScanner) (*domain.AbsenceRequest, error) {
	var req domain.AbsenceRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.MemberID,
		&req.SlotID,
		&req.AbsentDate,
		&req.Reason,
		&req.Status,
		&req.ApprovedBy,
		&req.ApprovedAt,
		&req.AdminNotes,
		&req.MakeupSlotID,
		&req.MakeupDate,
		&req.MakeupDeadline,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// scanAbsences сканирует результаты запроса в слайс заявок
func scanAbsences(rows *sql.Rows) ([]*domain.AbsenceRequest, error) {
	absences := make([]*domain.AbsenceRequest, 0)

	for rows.Next() {
		req, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAbsences - scan row: %v", ErrScanRow, err)
		}
		absences = append(absences, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAbsences - rows error: %v", ErrScanRow, err)
	}

	return absences, nil
}

// statusStrings конвертирует статусы в строки для squirrel.Eq
func statusStrings(statuses []domain.AbsenceStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
