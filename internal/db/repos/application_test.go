package repos

import (
	"time"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/types"
)

func (s *DBRepositoryTestSuite) TestApplicationCreateIncrementsCounter() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)

	app := s.createTestApplication(job.ID, worker.ID)
	s.Equal(models.ApplicationStatusPending, app.Status)

	fetched, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(1, fetched.ApplicationsCount)
}

func (s *DBRepositoryTestSuite) TestApplicationCreateRejectsDuplicate() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)
	s.createTestApplication(job.ID, worker.ID)

	err := s.appRepo.CreateForOpenJob(s.ctx, &models.Application{
		JobID:    job.ID,
		WorkerID: worker.ID,
	})

	var dup *types.DuplicateError
	s.Require().ErrorAs(err, &dup)
	s.Equal(job.ID, dup.JobID)
	s.Equal(worker.ID, dup.WorkerID)

	fetched, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(1, fetched.ApplicationsCount)
}

func (s *DBRepositoryTestSuite) TestApplicationCreateEnforcesCapacity() {
	client := s.createTestUser(models.UserRoleClient)
	first := s.createTestUser(models.UserRoleWorker)
	second := s.createTestUser(models.UserRoleWorker)

	job := s.createTestJob(client.ID)
	err := s.jobRepo.Update(s.ctx, job.ID, map[string]interface{}{"max_applicants": 1})
	s.Require().NoError(err)

	s.createTestApplication(job.ID, first.ID)

	err = s.appRepo.CreateForOpenJob(s.ctx, &models.Application{
		JobID:    job.ID,
		WorkerID: second.ID,
	})

	var capacity *types.CapacityExceededError
	s.Require().ErrorAs(err, &capacity)
	s.Equal(1, capacity.MaxApplicants)
}

func (s *DBRepositoryTestSuite) TestApplicationCreateRequiresOpenJob() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)

	err := s.jobRepo.UpdateStatusFrom(s.ctx, job.ID,
		models.JobStatusOpen, models.JobStatusCancelled, nil)
	s.Require().NoError(err)

	err = s.appRepo.CreateForOpenJob(s.ctx, &models.Application{
		JobID:    job.ID,
		WorkerID: worker.ID,
	})

	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
	s.Contains(err.Error(), "Cannot apply to a job that is not open")
}

func (s *DBRepositoryTestSuite) TestApplicationCreateMissingJob() {
	worker := s.createTestUser(models.UserRoleWorker)

	err := s.appRepo.CreateForOpenJob(s.ctx, &models.Application{
		JobID:    9999,
		WorkerID: worker.ID,
	})

	var notFound *types.NotFoundError
	s.Require().ErrorAs(err, &notFound)
}

func (s *DBRepositoryTestSuite) TestApplicationWithdrawDecrementsCounter() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)
	app := s.createTestApplication(job.ID, worker.ID)

	err := s.appRepo.Withdraw(s.ctx, app)
	s.Require().NoError(err)

	fetchedApp, err := s.appRepo.GetByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(models.ApplicationStatusWithdrawn, fetchedApp.Status)
	s.False(fetchedApp.IsActive)
	s.NotNil(fetchedApp.RespondedAt, "leaving pending stamps responded_at")

	fetchedJob, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(0, fetchedJob.ApplicationsCount)
}

func (s *DBRepositoryTestSuite) TestApplicationWithdrawAllowsReapply() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)
	app := s.createTestApplication(job.ID, worker.ID)

	err := s.appRepo.Withdraw(s.ctx, app)
	s.Require().NoError(err)

	// A withdrawn application no longer counts as active, so the same
	// worker may apply again.
	s.createTestApplication(job.ID, worker.ID)

	fetched, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(1, fetched.ApplicationsCount)
}

func (s *DBRepositoryTestSuite) TestApplicationWithdrawOnlyPending() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)
	app := s.createTestApplication(job.ID, worker.ID)

	err := s.appRepo.Accept(s.ctx, app)
	s.Require().NoError(err)

	err = s.appRepo.Withdraw(s.ctx, app)

	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
	s.Contains(err.Error(), "Current status: accepted")
}

func (s *DBRepositoryTestSuite) TestApplicationAcceptAssignsJobAndRejectsSiblings() {
	client := s.createTestUser(models.UserRoleClient)
	winner := s.createTestUser(models.UserRoleWorker)
	loser := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)

	accepted := s.createTestApplication(job.ID, winner.ID)
	sibling := s.createTestApplication(job.ID, loser.ID)

	err := s.appRepo.Accept(s.ctx, accepted)
	s.Require().NoError(err)

	fetchedJob, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusInProgress, fetchedJob.Status)
	s.Require().NotNil(fetchedJob.AssignedWorkerID)
	s.Equal(winner.ID, *fetchedJob.AssignedWorkerID)

	fetchedAccepted, err := s.appRepo.GetByID(s.ctx, accepted.ID)
	s.Require().NoError(err)
	s.Equal(models.ApplicationStatusAccepted, fetchedAccepted.Status)
	s.NotNil(fetchedAccepted.RespondedAt)

	fetchedSibling, err := s.appRepo.GetByID(s.ctx, sibling.ID)
	s.Require().NoError(err)
	s.Equal(models.ApplicationStatusRejected, fetchedSibling.Status)
	s.NotNil(fetchedSibling.RespondedAt)
}

func (s *DBRepositoryTestSuite) TestApplicationAcceptRequiresOpenJob() {
	client := s.createTestUser(models.UserRoleClient)
	winner := s.createTestUser(models.UserRoleWorker)
	loser := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)

	first := s.createTestApplication(job.ID, winner.ID)
	second := s.createTestApplication(job.ID, loser.ID)

	err := s.appRepo.Accept(s.ctx, first)
	s.Require().NoError(err)

	// The second accept loses the race: the job is no longer open.
	err = s.appRepo.Accept(s.ctx, second)

	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
	s.Contains(err.Error(), "no longer open")
}

func (s *DBRepositoryTestSuite) TestApplicationUpdateStatusFrom() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)
	app := s.createTestApplication(job.ID, worker.ID)

	err := s.appRepo.Accept(s.ctx, app)
	s.Require().NoError(err)

	err = s.appRepo.UpdateStatusFrom(s.ctx, app.ID,
		[]models.ApplicationStatus{models.ApplicationStatusAccepted},
		models.ActionStartWork, nil)
	s.Require().NoError(err)

	err = s.appRepo.UpdateStatusFrom(s.ctx, app.ID,
		[]models.ApplicationStatus{models.ApplicationStatusInProgress},
		models.ActionCompleteWork, nil)
	s.Require().NoError(err)

	err = s.appRepo.UpdateStatusFrom(s.ctx, app.ID,
		[]models.ApplicationStatus{models.ApplicationStatusCompleted},
		models.ActionReleasePayment,
		map[string]interface{}{
			"payment_method":      models.PaymentMethodPhysical,
			"payment_amount":      float64(5000),
			"payment_released_at": time.Now(),
		})
	s.Require().NoError(err)

	fetched, err := s.appRepo.GetByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(models.ApplicationStatusPaymentReleased, fetched.Status)
	s.Equal(models.PaymentMethodPhysical, fetched.Payment.Method)
	s.Equal(float64(5000), fetched.Payment.Amount)
	s.NotNil(fetched.Payment.ReleasedAt)
}

func (s *DBRepositoryTestSuite) TestApplicationUpdateStatusFromStale() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)
	app := s.createTestApplication(job.ID, worker.ID)

	now := time.Now()
	err := s.appRepo.UpdateStatusFrom(s.ctx, app.ID,
		[]models.ApplicationStatus{models.ApplicationStatusPending},
		models.ActionReject,
		map[string]interface{}{"responded_at": now})
	s.Require().NoError(err)

	err = s.appRepo.UpdateStatusFrom(s.ctx, app.ID,
		[]models.ApplicationStatus{models.ApplicationStatusAccepted},
		models.ActionStartWork, nil)

	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
	s.Equal("Cannot start work on accepted applications. Current status: rejected", err.Error())
}

func (s *DBRepositoryTestSuite) TestApplicationListByJobAndWorker() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	jobA := s.createTestJob(client.ID)
	jobB := s.createTestJob(client.ID)

	s.createTestApplication(jobA.ID, worker.ID)
	s.createTestApplication(jobB.ID, worker.ID)

	byJob, err := s.appRepo.ListByJob(s.ctx, jobA.ID, nil)
	s.Require().NoError(err)
	s.Len(byJob, 1)

	byWorker, err := s.appRepo.ListByWorker(s.ctx, worker.ID, nil)
	s.Require().NoError(err)
	s.Len(byWorker, 2)
}
