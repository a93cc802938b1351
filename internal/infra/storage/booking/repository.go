package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"full_name",
	"email",
	"phone",
	"plate_number",
	"user_id",
	"parking_id",
	"entry_time",
	"exit_time",
	"status",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"full_name",
			"email",
			"phone",
			"plate_number",
			"user_id",
			"parking_id",
			"entry_time",
			"exit_time",
			"status",
		).
		Values(
			booking.FullName,
			booking.Email,
			booking.Phone,
			booking.PlateNumber,
			booking.UserID,
			booking.ParkingID,
			booking.EntryTime,
			booking.ExitTime,
			booking.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции запрос выполняется с FOR UPDATE: строка блокируется
// на время транзакции, что защищает переход выезда от конкурентных запросов.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с гибкой фильтрацией.
// Поддерживает период по entry_time, подстроку номера без учета регистра,
// статус, владельца и парковку. Сортировка - сначала новые.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"entry_time": *filter.FromDate})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"entry_time": *filter.ToDate})
	}

	// Поиск по номеру: подстрока, без учета регистра
	if filter.Plate != nil && *filter.Plate != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"plate_number": "%" + *filter.Plate + "%"})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ParkingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"parking_id": *filter.ParkingID})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC, id DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListParked получает автомобили, находящиеся на парковках (exit_time IS NULL).
// Сортировка по времени въезда - сначала недавно въехавшие.
func (r *Repository) ListParked(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"exit_time": nil}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		OrderBy("entry_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListParked - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListParked - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListExitedWithPayments получает бронирования, выехавшие в указанный период,
// вместе с суммами платежей (LEFT JOIN: завершенное бронирование без платежа
// дает NULL-сумму, а не выпадает из выборки). Сортировка по времени выезда DESC.
func (r *Repository) ListExitedWithPayments(ctx context.Context, from, to time.Time) ([]*domain.BookingWithPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.full_name",
		"b.email",
		"b.phone",
		"b.plate_number",
		"b.user_id",
		"b.parking_id",
		"b.entry_time",
		"b.exit_time",
		"b.status",
		"b.created_at",
		"p.amount",
	).
		From("bookings b").
		LeftJoin("payments p ON p.booking_id = b.id").
		Where(squirrel.NotEq{"b.exit_time": nil}).
		Where(squirrel.GtOrEq{"b.exit_time": from}).
		Where(squirrel.LtOrEq{"b.exit_time": to}).
		OrderBy("b.exit_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExitedWithPayments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExitedWithPayments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingWithPayment, 0)
	for rows.Next() {
		var item domain.BookingWithPayment
		var createdAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.FullName,
			&item.Email,
			&item.Phone,
			&item.PlateNumber,
			&item.UserID,
			&item.ParkingID,
			&item.EntryTime,
			&item.ExitTime,
			&item.Status,
			&createdAt,
			&item.PaymentAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExitedWithPayments - scan row: %v", ErrScanRow, err)
		}

		item.CreatedAt = createdAt.Time
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExitedWithPayments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountParkedByParkingID считает автомобили без зафиксированного выезда на парковке.
// Используется для расчета занятости (occupancy).
func (r *Repository) CountParkedByParkingID(ctx context.Context, parkingID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"parking_id": parkingID}).
		Where(squirrel.Eq{"exit_time": nil}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountParkedByParkingID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountParkedByParkingID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// MarkExited фиксирует выезд: проставляет exit_time и статус completed.
// Обновление условное (exit_time IS NULL) - если строка уже имеет выезд,
// обновление не затрагивает строк и возвращается ErrAlreadyExited.
// Выезд одноразовый: установленный exit_time больше никогда не меняется.
func (r *Repository) MarkExited(ctx context.Context, id int64, exitTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("exit_time", exitTime).
		Set("status", domain.StatusCompleted).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"exit_time": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkExited - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkExited - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkExited - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyExited
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

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
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, только для администраторов).
// Зависимый платеж удаляется каскадно по внешнему ключу.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.FullName,
		&booking.Email,
		&booking.Phone,
		&booking.PlateNumber,
		&booking.UserID,
		&booking.ParkingID,
		&booking.EntryTime,
		&booking.ExitTime,
		&booking.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.FullName,
			&booking.Email,
			&booking.Phone,
			&booking.PlateNumber,
			&booking.UserID,
			&booking.ParkingID,
			&booking.EntryTime,
			&booking.ExitTime,
			&booking.Status,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
