package services

import (
	"context"
	"time"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
	"github.com/workielk/workie-api/internal/events"
	"github.com/workielk/workie-api/internal/logger"
	"github.com/workielk/workie-api/internal/types"
)

// Application provides the application lifecycle handler: every
// actor-triggered transition from apply through close-job. Each
// transition is a single atomic update; notification emission happens
// after the update commits and never fails the transition.
type Application struct {
	appRepo *repos.ApplicationRepository
	jobRepo *repos.JobRepository
}

// NewApplicationService creates a new application service instance
func NewApplicationService(appRepo *repos.ApplicationRepository, jobRepo *repos.JobRepository) *Application {
	return &Application{appRepo: appRepo, jobRepo: jobRepo}
}

// Apply creates a worker's application to an open job
func (s *Application) Apply(ctx context.Context, workerID, jobID uint, req *types.ApplyRequest) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID == workerID {
		return nil, &types.ForbiddenError{Reason: "you cannot apply to your own job"}
	}
	if req.ProposedAmount < 0 {
		return nil, &types.ValidationError{Field: "proposed_amount", Reason: "proposed amount cannot be negative"}
	}

	app := &models.Application{
		JobID:       jobID,
		WorkerID:    workerID,
		CoverLetter: req.CoverLetter,
		ProposedPrice: models.ProposedPrice{
			Amount:   req.ProposedAmount,
			Currency: req.ProposedCurrency,
		},
		EstimatedDuration: req.EstimatedDuration,
		Portfolio:         req.Portfolio,
	}
	if req.AvailableFrom != "" {
		from, err := time.Parse(time.RFC3339, req.AvailableFrom)
		if err != nil {
			return nil, &types.ValidationError{Field: "available_from", Reason: "must be RFC3339"}
		}
		app.AvailableFrom = &from
	}
	if req.AvailableTo != "" {
		to, err := time.Parse(time.RFC3339, req.AvailableTo)
		if err != nil {
			return nil, &types.ValidationError{Field: "available_to", Reason: "must be RFC3339"}
		}
		app.AvailableTo = &to
	}

	if err := s.appRepo.CreateForOpenJob(ctx, app); err != nil {
		return nil, err
	}

	s.notify(events.EventApplicationReceived, job.ClientID, workerID, app)
	return app, nil
}

// GetApplication retrieves an application by ID
func (s *Application) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	return s.appRepo.GetByID(ctx, id)
}

// ListByJob retrieves the applications for a job. Only the owning
// client may list them.
func (s *Application) ListByJob(ctx context.Context, actorID, jobID uint, opts *models.ListOptions) ([]models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may list applications for this job"}
	}
	return s.appRepo.ListByJob(ctx, jobID, opts)
}

// ListByWorker retrieves a worker's own applications
func (s *Application) ListByWorker(ctx context.Context, workerID uint, opts *models.ListOptions) ([]models.Application, error) {
	return s.appRepo.ListByWorker(ctx, workerID, opts)
}

// Withdraw lets the applying worker withdraw a pending application
func (s *Application) Withdraw(ctx context.Context, actorID, appID uint) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.WorkerID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the applicant may withdraw this application"}
	}
	if err := models.ValidateApplicationAction(app.Status, models.ActionWithdraw); err != nil {
		return nil, err
	}

	if err := s.appRepo.Withdraw(ctx, app); err != nil {
		return nil, err
	}

	s.notify(events.EventApplicationWithdrawn, job.ClientID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// Reject lets the job owner reject a pending application
func (s *Application) Reject(ctx context.Context, actorID, appID uint) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may reject applications"}
	}

	err = s.appRepo.UpdateStatusFrom(ctx, appID,
		[]models.ApplicationStatus{models.ApplicationStatusPending},
		models.ActionReject,
		map[string]interface{}{"responded_at": time.Now()})
	if err != nil {
		return nil, err
	}

	s.notify(events.EventApplicationRejected, app.WorkerID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// Accept lets the job owner accept a pending application. The job must
// still be open; sibling pending applications are auto-rejected and
// the job moves to in-progress with this worker assigned, all in one
// transaction.
func (s *Application) Accept(ctx context.Context, actorID, appID uint) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may accept applications"}
	}
	if err := models.ValidateApplicationAction(app.Status, models.ActionAccept); err != nil {
		return nil, err
	}

	if err := s.appRepo.Accept(ctx, app); err != nil {
		return nil, err
	}

	s.notify(events.EventApplicationAccepted, app.WorkerID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// StartWork lets the accepted worker mark the engagement in progress.
// Moving the job itself to in-progress is best-effort: it normally
// already happened on accept.
func (s *Application) StartWork(ctx context.Context, actorID, appID uint) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.WorkerID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the applicant may start work on this application"}
	}

	err = s.appRepo.UpdateStatusFrom(ctx, appID,
		[]models.ApplicationStatus{models.ApplicationStatusAccepted},
		models.ActionStartWork, nil)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusOpen {
		err := s.jobRepo.UpdateStatusFrom(ctx, job.ID, models.JobStatusOpen, models.JobStatusInProgress,
			map[string]interface{}{"assigned_worker_id": app.WorkerID})
		if err != nil {
			logger.Warnf("start-work: could not move job %d to in-progress: %v", job.ID, err)
		}
	}

	s.notify(events.EventWorkStarted, job.ClientID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// CompleteWork lets the worker mark the work finished. The job follows
// to completed.
func (s *Application) CompleteWork(ctx context.Context, actorID, appID uint) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.WorkerID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the applicant may complete work on this application"}
	}

	err = s.appRepo.UpdateStatusFrom(ctx, appID,
		[]models.ApplicationStatus{models.ApplicationStatusInProgress},
		models.ActionCompleteWork, nil)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusInProgress {
		err := s.jobRepo.UpdateStatusFrom(ctx, job.ID, models.JobStatusInProgress, models.JobStatusCompleted, nil)
		if err != nil {
			logger.Errorf("complete-work: could not move job %d to completed: %v", job.ID, err)
		}
	}

	s.notify(events.EventWorkCompleted, job.ClientID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// ReleasePayment lets the job owner release payment on a completed
// application. The amount defaults to the proposed price.
func (s *Application) ReleasePayment(ctx context.Context, actorID, appID uint, req *types.ReleasePaymentRequest) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may release payment"}
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, &types.ValidationError{Field: "payment_method", Reason: err.Error()}
	}
	amount := req.Amount
	if amount <= 0 {
		amount = app.ProposedPrice.Amount
	}

	err = s.appRepo.UpdateStatusFrom(ctx, appID,
		[]models.ApplicationStatus{models.ApplicationStatusCompleted},
		models.ActionReleasePayment,
		map[string]interface{}{
			"payment_method":      method,
			"payment_amount":      amount,
			"payment_released_at": time.Now(),
			"payment_notes":       req.Notes,
		})
	if err != nil {
		return nil, err
	}

	s.notify(events.EventPaymentReleased, app.WorkerID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// ConfirmPayment lets the worker confirm receipt of a released
// payment. A missing payment sub-record is repaired with an online
// method and zero amount before the confirmation timestamp is applied.
func (s *Application) ConfirmPayment(ctx context.Context, actorID, appID uint) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.WorkerID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the applicant may confirm payment"}
	}

	updates := map[string]interface{}{"payment_confirmed_at": time.Now()}
	if app.Payment.Method == "" {
		updates["payment_method"] = models.PaymentMethodOnline
		updates["payment_amount"] = float64(0)
	}

	err = s.appRepo.UpdateStatusFrom(ctx, appID,
		[]models.ApplicationStatus{models.ApplicationStatusPaymentReleased},
		models.ActionConfirmPayment, updates)
	if err != nil {
		return nil, err
	}

	s.notify(events.EventPaymentConfirmed, job.ClientID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// SubmitReview lets the job owner review the engagement. Reviews are
// also accepted before payment confirmation, while the work is
// completed or still in progress.
func (s *Application) SubmitReview(ctx context.Context, actorID, appID uint, req *types.SubmitReviewRequest) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the job owner may submit a review"}
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, &types.ValidationError{Field: "rating", Reason: "rating must be between 1 and 5"}
	}

	err = s.appRepo.UpdateStatusFrom(ctx, appID,
		[]models.ApplicationStatus{
			models.ApplicationStatusPaymentConfirmed,
			models.ApplicationStatusCompleted,
			models.ApplicationStatusInProgress,
		},
		models.ActionSubmitReview,
		map[string]interface{}{
			"review_rating":       req.Rating,
			"review_comment":      req.Comment,
			"review_submitted_at": time.Now(),
		})
	if err != nil {
		return nil, err
	}

	s.notify(events.EventReviewSubmitted, app.WorkerID, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// CloseJob lets either party close a settled engagement. If the job is
// somehow still in progress it is moved to completed best-effort; the
// job status domain has no closed value.
func (s *Application) CloseJob(ctx context.Context, actorID, appID uint) (*models.Application, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.WorkerID != actorID && job.ClientID != actorID {
		return nil, &types.ForbiddenError{Reason: "only the applicant or the job owner may close this job"}
	}

	err = s.appRepo.UpdateStatusFrom(ctx, appID,
		[]models.ApplicationStatus{models.ApplicationStatusReviewed, models.ApplicationStatusPaymentConfirmed},
		models.ActionCloseJob, nil)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusInProgress {
		err := s.jobRepo.UpdateStatusFrom(ctx, job.ID, models.JobStatusInProgress, models.JobStatusCompleted, nil)
		if err != nil {
			logger.Warnf("close-job: could not move job %d to completed: %v", job.ID, err)
		}
	}

	recipient := job.ClientID
	if actorID == job.ClientID {
		recipient = app.WorkerID
	}
	s.notify(events.EventJobClosed, recipient, actorID, app)
	return s.appRepo.GetByID(ctx, appID)
}

// load fetches an application together with its job
func (s *Application) load(ctx context.Context, appID uint) (*models.Application, *models.Job, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	return app, job, nil
}

// notify publishes a lifecycle notification. Emission is fire-and-
// forget; it can never fail the transition that triggered it.
func (s *Application) notify(kind events.EventType, recipientID, senderID uint, app *models.Application) {
	events.Publish(events.Event{
		Type:          kind,
		RecipientID:   recipientID,
		SenderID:      senderID,
		JobID:         app.JobID,
		ApplicationID: app.ID,
	})
}
