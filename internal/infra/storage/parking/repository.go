package parking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

var parkingColumns = []string{
	"id",
	"parking_code",
	"parking_name",
	"location",
	"total_slots",
	"fee_per_hour",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую парковку
func (r *Repository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parkings").
		Columns(
			"parking_code",
			"parking_name",
			"location",
			"total_slots",
			"fee_per_hour",
		).
		Values(
			lot.ParkingCode,
			lot.ParkingName,
			lot.Location,
			lot.TotalSlots,
			lot.FeePerHour,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	return lot, nil
}

// GetByID получает парковку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(parkingColumns...).
		From("parkings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var lot domain.ParkingLot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lot.ID,
		&lot.ParkingCode,
		&lot.ParkingName,
		&lot.Location,
		&lot.TotalSlots,
		&lot.FeePerHour,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrParkingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan parking: %v", ErrScanRow, err)
	}

	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	return &lot, nil
}

// List получает все парковки, отсортированные по коду
func (r *Repository) List(ctx context.Context) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(parkingColumns...).
		From("parkings").
		OrderBy("parking_code ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lots := make([]*domain.ParkingLot, 0)
	for rows.Next() {
		var lot domain.ParkingLot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&lot.ID,
			&lot.ParkingCode,
			&lot.ParkingName,
			&lot.Location,
			&lot.TotalSlots,
			&lot.FeePerHour,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		lot.CreatedAt = createdAt.Time
		lot.UpdatedAt = updatedAt.Time
		lots = append(lots, &lot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return lots, nil
}

// Update обновляет параметры парковки (только администраторы).
// Парковки в этой системе не удаляются.
func (r *Repository) Update(ctx context.Context, lot *domain.ParkingLot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parkings").
		Set("parking_code", lot.ParkingCode).
		Set("parking_name", lot.ParkingName).
		Set("location", lot.Location).
		Set("total_slots", lot.TotalSlots).
		Set("fee_per_hour", lot.FeePerHour).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pgUniqueViolation {
			return ErrDuplicateCode
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrParkingNotFound
	}

	return nil
}
