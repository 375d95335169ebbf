package services

import (
	"context"
	"time"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
	"github.com/workielk/workie-api/internal/types"
)

// Job provides business logic for job operations, enforcing the job
// status guard on every mutation.
type Job struct {
	jobRepo  *repos.JobRepository
	userRepo *repos.UserRepository
}

// NewJobService creates a new job service instance
func NewJobService(jobRepo *repos.JobRepository, userRepo *repos.UserRepository) *Job {
	return &Job{jobRepo: jobRepo, userRepo: userRepo}
}

// CreateJob creates a new job owned by the given client
func (s *Job) CreateJob(ctx context.Context, clientID uint, req *types.CreateJobRequest) (*models.Job, error) {
	if req.Title == "" {
		return nil, &types.ValidationError{Field: "title", Reason: "title is required"}
	}
	category, err := models.ParseJobCategory(req.Category)
	if err != nil {
		return nil, &types.ValidationError{Field: "category", Reason: err.Error()}
	}
	budgetType, err := models.ParseBudgetType(req.BudgetType)
	if err != nil {
		return nil, &types.ValidationError{Field: "budget_type", Reason: err.Error()}
	}
	if req.BudgetAmount < 0 {
		return nil, &types.ValidationError{Field: "budget_amount", Reason: "budget amount cannot be negative"}
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Budget: models.Budget{
			Amount:   req.BudgetAmount,
			Currency: req.BudgetCurrency,
			Type:     budgetType,
		},
		Location: models.Location{
			Address:   req.Address,
			City:      req.City,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		ClientID:      clientID,
		MaxApplicants: req.MaxApplicants,
	}

	if req.Urgency != "" {
		urgency, err := models.ParseJobUrgency(req.Urgency)
		if err != nil {
			return nil, &types.ValidationError{Field: "urgency", Reason: err.Error()}
		}
		job.Urgency = urgency
	}
	if req.ExperienceLevel != "" {
		level, err := models.ParseExperienceLevel(req.ExperienceLevel)
		if err != nil {
			return nil, &types.ValidationError{Field: "experience_level", Reason: err.Error()}
		}
		job.ExperienceLevel = level
	}
	if req.StartDate != "" {
		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return nil, &types.ValidationError{Field: "start_date", Reason: "must be RFC3339"}
		}
		job.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return nil, &types.ValidationError{Field: "end_date", Reason: "must be RFC3339"}
		}
		job.EndDate = &end
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob retrieves a job by ID
func (s *Job) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// ListJobs retrieves a paginated list of jobs matching the filter
func (s *Job) ListJobs(ctx context.Context, filter repos.JobFilter, opts *models.ListOptions) ([]models.Job, int64, error) {
	jobs, err := s.jobRepo.List(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// UpdateJob applies a status-guarded update to a job. Only the owning
// client may update a job. Budget, category and location are frozen
// while the job is in progress unless the same request also moves the
// job to completed or cancelled.
func (s *Job) UpdateJob(ctx context.Context, actorID, jobID uint, req *types.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may update this job"}
	}

	var newStatus models.JobStatus
	if req.Status != nil {
		newStatus, err = models.ParseJobStatus(*req.Status)
		if err != nil {
			return nil, &types.ValidationError{Field: "status", Reason: err.Error()}
		}
		if err := models.ValidateJobTransition(job.Status, newStatus); err != nil {
			return nil, err
		}
		if newStatus == models.JobStatusInProgress && req.AssignedWorkerID == nil && job.AssignedWorkerID == nil {
			return nil, &types.ValidationError{
				Field:  "assigned_worker_id",
				Reason: "a job cannot move to in-progress without an assigned worker",
			}
		}
	}

	leavingInProgress := newStatus == models.JobStatusCompleted || newStatus == models.JobStatusCancelled
	if job.Status == models.JobStatusInProgress && req.TouchesRestrictedFields() && !leavingInProgress {
		return nil, &types.InvalidTransitionError{
			Entity: "job",
			From:   job.Status.String(),
			To:     job.Status.String(),
			Reason: "Cannot modify budget, category or location while the job is in progress",
		}
	}

	updates, err := buildJobUpdates(req)
	if err != nil {
		return nil, err
	}

	// An assignment only makes sense alongside a move to in-progress;
	// anywhere else it would either dangle on an open job or silently
	// do nothing.
	if req.AssignedWorkerID != nil {
		if newStatus != models.JobStatusInProgress {
			return nil, &types.ValidationError{
				Field:  "assigned_worker_id",
				Reason: "assigned_worker_id can only be set when moving the job to in-progress",
			}
		}
		updates["assigned_worker_id"] = *req.AssignedWorkerID
	}

	if req.Status != nil && newStatus != job.Status {
		if err := s.jobRepo.UpdateStatusFrom(ctx, jobID, job.Status, newStatus, updates); err != nil {
			return nil, err
		}
	} else if len(updates) > 0 {
		if err := s.jobRepo.Update(ctx, jobID, updates); err != nil {
			return nil, err
		}
	}

	return s.jobRepo.GetByID(ctx, jobID)
}

// AssignWorker moves an open job to in-progress with the given worker
// assigned. Only the owning client may assign.
func (s *Job) AssignWorker(ctx context.Context, actorID, jobID, workerID uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may assign a worker"}
	}
	if _, err := s.userRepo.GetByID(ctx, workerID); err != nil {
		return nil, err
	}

	err = s.jobRepo.UpdateStatusFrom(ctx, jobID, models.JobStatusOpen, models.JobStatusInProgress,
		map[string]interface{}{"assigned_worker_id": workerID})
	if err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, jobID)
}

// CompleteJob moves an in-progress job to completed, stamping
// CompletedAt. Only the owning client may complete.
func (s *Job) CompleteJob(ctx context.Context, actorID, jobID uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may complete this job"}
	}

	err = s.jobRepo.UpdateStatusFrom(ctx, jobID, models.JobStatusInProgress, models.JobStatusCompleted, nil)
	if err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, jobID)
}

// DeleteJob soft-deletes a job. A non-terminal job is forced to
// cancelled; a terminal one keeps its status and only becomes inactive.
func (s *Job) DeleteJob(ctx context.Context, actorID, jobID uint) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.ClientID != actorID {
		return &types.ForbiddenError{Reason: "only the job owner may delete this job"}
	}

	finalStatus := models.JobStatusCancelled
	if job.Status.IsTerminal() {
		finalStatus = job.Status
	}
	return s.jobRepo.SoftDelete(ctx, jobID, finalStatus)
}

func buildJobUpdates(req *types.UpdateJobRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		category, err := models.ParseJobCategory(*req.Category)
		if err != nil {
			return nil, &types.ValidationError{Field: "category", Reason: err.Error()}
		}
		updates["category"] = category
	}
	if req.BudgetAmount != nil {
		updates["budget_amount"] = *req.BudgetAmount
	}
	if req.BudgetCurrency != nil {
		updates["budget_currency"] = *req.BudgetCurrency
	}
	if req.BudgetType != nil {
		budgetType, err := models.ParseBudgetType(*req.BudgetType)
		if err != nil {
			return nil, &types.ValidationError{Field: "budget_type", Reason: err.Error()}
		}
		updates["budget_type"] = budgetType
	}
	if req.Address != nil {
		updates["location_address"] = *req.Address
	}
	if req.City != nil {
		updates["location_city"] = *req.City
	}
	if req.Urgency != nil {
		urgency, err := models.ParseJobUrgency(*req.Urgency)
		if err != nil {
			return nil, &types.ValidationError{Field: "urgency", Reason: err.Error()}
		}
		updates["urgency"] = urgency
	}
	if req.ExperienceLevel != nil {
		level, err := models.ParseExperienceLevel(*req.ExperienceLevel)
		if err != nil {
			return nil, &types.ValidationError{Field: "experience_level", Reason: err.Error()}
		}
		updates["experience_level"] = level
	}
	return updates, nil
}
