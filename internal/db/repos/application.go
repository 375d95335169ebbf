package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/types"
)

// ApplicationRepository provides access to application-related database
// operations. The multi-row lifecycle steps (apply, withdraw, accept)
// run inside a single transaction so no partial state is ever persisted.
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository instance
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// GetByID retrieves an application by its ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &types.NotFoundError{Resource: "application", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// ListByJob returns a paginated list of applications for a job
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uint, opts *models.ListOptions) ([]models.Application, error) {
	opts = opts.WithDefaults()
	var apps []models.Application

	query := r.db.WithContext(ctx).Model(&models.Application{}).Where("job_id = ?", jobID)
	if !opts.IncludeDeleted {
		query = query.Where("is_active = ?", true)
	}

	err := query.
		Limit(opts.Limit).Offset(opts.Offset).
		Order(models.CreatedAtField + " DESC").
		Find(&apps).Error
	return apps, err
}

// ListByWorker returns a paginated list of a worker's applications
func (r *ApplicationRepository) ListByWorker(ctx context.Context, workerID uint, opts *models.ListOptions) ([]models.Application, error) {
	opts = opts.WithDefaults()
	var apps []models.Application

	query := r.db.WithContext(ctx).Model(&models.Application{}).Where("worker_id = ?", workerID)
	if !opts.IncludeDeleted {
		query = query.Where("is_active = ?", true)
	}

	err := query.
		Limit(opts.Limit).Offset(opts.Offset).
		Order(models.CreatedAtField + " DESC").
		Find(&apps).Error
	return apps, err
}

// CreateForOpenJob creates an application against a job that must
// still be open, enforcing the applicant cap and the one-active-
// application-per-worker rule. The applications counter is maintained
// in the same transaction as the insert.
func (r *ApplicationRepository) CreateForOpenJob(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, app.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Resource: "job", ID: app.JobID}
			}
			return fmt.Errorf("failed to get job: %w", err)
		}

		if job.Status != models.JobStatusOpen || !job.IsActive {
			return &types.InvalidTransitionError{
				Entity: "application",
				From:   job.Status.String(),
				To:     models.ApplicationStatusPending.String(),
				Reason: "Cannot apply to a job that is not open",
			}
		}

		var active int64
		err := tx.Model(&models.Application{}).
			Where("job_id = ? AND worker_id = ? AND is_active = ?", app.JobID, app.WorkerID, true).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to check existing applications: %w", err)
		}
		if active > 0 {
			return &types.DuplicateError{JobID: app.JobID, WorkerID: app.WorkerID}
		}

		if job.ApplicationsCount >= job.MaxApplicants {
			return &types.CapacityExceededError{JobID: job.ID, MaxApplicants: job.MaxApplicants}
		}

		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}

		return tx.Model(&models.Job{}).
			Where("id = ?", job.ID).
			UpdateColumn(models.JobApplicationsCountField, gorm.Expr(models.JobApplicationsCountField+" + 1")).Error
	})
}

// Withdraw marks a pending application withdrawn and inactive, and
// decrements the job's applications counter in the same transaction.
// RespondedAt is stamped here too: it records the moment the
// application first left pending, whichever party moved it.
func (r *ApplicationRepository) Withdraw(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Application{}).
			Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				models.ApplicationStatusField: models.ApplicationStatusWithdrawn,
				"is_active":                   false,
				"responded_at":                time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to withdraw application: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return staleTransitionError(tx, app.ID, models.ActionWithdraw)
		}

		return tx.Model(&models.Job{}).
			Where("id = ? AND "+models.JobApplicationsCountField+" > 0", app.JobID).
			UpdateColumn(models.JobApplicationsCountField, gorm.Expr(models.JobApplicationsCountField+" - 1")).Error
	})
}

// Accept accepts one pending application inside a single transaction:
// the job must still be open, sibling pending applications are
// auto-rejected, and the job moves to in-progress with the accepted
// worker assigned. Keying the job update on status=open closes the
// race between two concurrent accepts on the same job.
func (r *ApplicationRepository) Accept(ctx context.Context, app *models.Application) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		jobRes := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", app.JobID, models.JobStatusOpen).
			Updates(map[string]interface{}{
				models.JobStatusField: models.JobStatusInProgress,
				"assigned_worker_id":  app.WorkerID,
			})
		if jobRes.Error != nil {
			return fmt.Errorf("failed to assign job: %w", jobRes.Error)
		}
		if jobRes.RowsAffected == 0 {
			return &types.InvalidTransitionError{
				Entity: "application",
				From:   app.Status.String(),
				To:     models.ApplicationStatusAccepted.String(),
				Reason: "Cannot accept an application for a job that is no longer open",
			}
		}

		appRes := tx.Model(&models.Application{}).
			Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				models.ApplicationStatusField: models.ApplicationStatusAccepted,
				"responded_at":                now,
			})
		if appRes.Error != nil {
			return fmt.Errorf("failed to accept application: %w", appRes.Error)
		}
		if appRes.RowsAffected == 0 {
			return staleTransitionError(tx, app.ID, models.ActionAccept)
		}

		// Auto-reject the remaining pending applications for this job.
		return tx.Model(&models.Application{}).
			Where("job_id = ? AND id <> ? AND status = ?", app.JobID, app.ID, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				models.ApplicationStatusField: models.ApplicationStatusRejected,
				"responded_at":                now,
			}).Error
	})
}

// UpdateStatusFrom applies a guarded status change plus extra column
// updates: the update only lands if the application is still in the
// expected current status.
func (r *ApplicationRepository) UpdateStatusFrom(ctx context.Context, id uint, from []models.ApplicationStatus, action models.ApplicationAction, extra map[string]interface{}) error {
	updates := map[string]interface{}{models.ApplicationStatusField: action.NextStatus()}
	for k, v := range extra {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update application status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return staleTransitionError(r.db.WithContext(ctx), id, action)
	}
	return nil
}

// staleTransitionError re-reads the application to build an error
// naming the status that blocked a conditional update.
func staleTransitionError(tx *gorm.DB, id uint, action models.ApplicationAction) error {
	var current models.Application
	if err := tx.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Resource: "application", ID: id}
		}
		return fmt.Errorf("failed to get application: %w", err)
	}
	if err := models.ValidateApplicationAction(current.Status, action); err != nil {
		return err
	}
	return &types.InvalidTransitionError{
		Entity: "application",
		From:   current.Status.String(),
		To:     action.NextStatus().String(),
	}
}
