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

// JobFilter narrows job listings
type JobFilter struct {
	Status   models.JobStatus
	Category models.JobCategory
	City     string
	ClientID uint
}

// JobRepository provides access to job-related database operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job in the database
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by its ID
func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &types.NotFoundError{Resource: "job", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// List returns a paginated list of jobs matching the filter
func (r *JobRepository) List(ctx context.Context, filter JobFilter, opts *models.ListOptions) ([]models.Job, error) {
	opts = opts.WithDefaults()
	var jobs []models.Job

	query := r.db.WithContext(ctx).Model(&models.Job{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		query = query.Where("location_city = ?", filter.City)
	}
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if !opts.IncludeDeleted {
		query = query.Where("is_active = ?", true)
	}

	err := query.
		Limit(opts.Limit).Offset(opts.Offset).
		Order(models.CreatedAtField + " DESC").
		Find(&jobs).Error
	return jobs, err
}

// Count returns the number of jobs matching the filter
func (r *JobRepository) Count(ctx context.Context, filter JobFilter) (int64, error) {
	var count int64

	query := r.db.WithContext(ctx).Model(&models.Job{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		query = query.Where("location_city = ?", filter.City)
	}
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}

	err := query.Count(&count).Error
	return count, err
}

// Update applies a set of column updates to a job
func (r *JobRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateStatusFrom applies a guarded status change: the update only
// lands if the job is still in the expected current status. Returns an
// InvalidTransitionError when the precondition no longer holds.
func (r *JobRepository) UpdateStatusFrom(ctx context.Context, id uint, from, to models.JobStatus, extra map[string]interface{}) error {
	updates := map[string]interface{}{models.JobStatusField: to}
	for k, v := range extra {
		updates[k] = v
	}
	if to == models.JobStatusCompleted {
		updates["completed_at"] = time.Now()
	}

	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update job status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return &types.InvalidTransitionError{
			Entity: "job",
			From:   current.Status.String(),
			To:     to.String(),
		}
	}
	return nil
}

// SoftDelete deactivates a job, writing the given final status. The
// record is never physically removed.
func (r *JobRepository) SoftDelete(ctx context.Context, id uint, status models.JobStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":           false,
			models.JobStatusField: status,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to soft-delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "job", ID: id}
	}
	return nil
}
