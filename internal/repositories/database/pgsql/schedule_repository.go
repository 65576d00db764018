package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	"github.com/fixedops/asset_management_app/internal/models"
	"github.com/fixedops/asset_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxScheduleRepository struct {
	BaseRepository
}

// newPgxScheduleRepository creates a new repository for schedule configs and
// their execution records.
func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

const scheduleConfigColumns = `
	schedule_id, business_unit_id, name, description, cadence, execution_day,
	is_active, include_category_ids, exclude_category_ids,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanScheduleConfig(row pgx.Row) (models.ScheduleConfig, error) {
	var m models.ScheduleConfig
	err := row.Scan(
		&m.ScheduleID,
		&m.BusinessUnitID,
		&m.Name,
		&m.Description,
		&m.Cadence,
		&m.ExecutionDay,
		&m.IsActive,
		&m.IncludeCategoryIDs,
		&m.ExcludeCategoryIDs,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveScheduleConfig persists a new schedule config.
func (r *PgxScheduleRepository) SaveScheduleConfig(ctx context.Context, config domain.ScheduleConfig) error {
	m := mapping.ToModelScheduleConfig(config)
	query := `
		INSERT INTO schedule_configs (` + scheduleConfigColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ScheduleID,
		m.BusinessUnitID,
		m.Name,
		m.Description,
		m.Cadence,
		m.ExecutionDay,
		m.IsActive,
		m.IncludeCategoryIDs,
		m.ExcludeCategoryIDs,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "schedule config "+m.Name+" already exists for business unit "+m.BusinessUnitID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert schedule config "+m.ScheduleID, err)
	}
	return nil
}

// FindScheduleConfigByID retrieves a schedule config by its ID.
func (r *PgxScheduleRepository) FindScheduleConfigByID(ctx context.Context, scheduleID string) (*domain.ScheduleConfig, error) {
	query := `SELECT ` + scheduleConfigColumns + ` FROM schedule_configs WHERE schedule_id = $1;`

	m, err := scanScheduleConfig(r.Pool.QueryRow(ctx, query, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find schedule config by ID "+scheduleID, err)
	}

	domainConfig := mapping.ToDomainScheduleConfig(m)
	return &domainConfig, nil
}

// ListScheduleConfigs retrieves the schedule configs of a business unit,
// optionally only active ones.
func (r *PgxScheduleRepository) ListScheduleConfigs(ctx context.Context, businessUnitID string, activeOnly bool) ([]domain.ScheduleConfig, error) {
	query := `SELECT ` + scheduleConfigColumns + ` FROM schedule_configs WHERE business_unit_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, businessUnitID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedule configs for business unit "+businessUnitID, err)
	}
	defer rows.Close()

	var configs []domain.ScheduleConfig
	for rows.Next() {
		m, scanErr := scanScheduleConfig(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan schedule config row", scanErr)
		}
		configs = append(configs, mapping.ToDomainScheduleConfig(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating schedule config rows", err)
	}

	return configs, nil
}

// SetScheduleConfigActive flips the active flag on a schedule config.
func (r *PgxScheduleRepository) SetScheduleConfigActive(ctx context.Context, scheduleID string, active bool, updatedBy string) error {
	query := `
		UPDATE schedule_configs
		SET is_active = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE schedule_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, scheduleID, active, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update schedule config "+scheduleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("schedule config " + scheduleID + " not found for update")
	}
	return nil
}

// SaveExecution persists a new batch execution record.
func (r *PgxScheduleRepository) SaveExecution(ctx context.Context, execution domain.ScheduleExecution) error {
	m := mapping.ToModelScheduleExecution(execution)
	query := `
		INSERT INTO schedule_executions (
			execution_id, schedule_id, business_unit_id, execution_date, status,
			assets_processed, succeeded, failed, skipped, total_amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExecutionID,
		m.ScheduleID,
		m.BusinessUnitID,
		m.ExecutionDate,
		m.Status,
		m.AssetsProcessed,
		m.Succeeded,
		m.Failed,
		m.Skipped,
		m.TotalAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert schedule execution "+m.ExecutionID, err)
	}
	return nil
}

// UpdateExecution persists the progress and outcome of a batch execution.
func (r *PgxScheduleRepository) UpdateExecution(ctx context.Context, execution domain.ScheduleExecution) error {
	m := mapping.ToModelScheduleExecution(execution)
	query := `
		UPDATE schedule_executions
		SET status = $2,
		    assets_processed = $3,
		    succeeded = $4,
		    failed = $5,
		    skipped = $6,
		    total_amount = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE execution_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ExecutionID,
		m.Status,
		m.AssetsProcessed,
		m.Succeeded,
		m.Failed,
		m.Skipped,
		m.TotalAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update schedule execution "+m.ExecutionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("schedule execution " + m.ExecutionID + " not found for update")
	}
	return nil
}
