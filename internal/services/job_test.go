package services

import (
	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
	"github.com/workielk/workie-api/internal/types"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func uintPtr(u uint) *uint { return &u }

func (s *ServiceTestSuite) TestCreateJobValidation() {
	client := s.createUser("client")

	_, err := s.jobSvc.CreateJob(s.ctx, client.ID, &types.CreateJobRequest{
		Category: "plumbing",
	})
	var validation *types.ValidationError
	s.Require().ErrorAs(err, &validation)
	s.Equal("title", validation.Field)

	_, err = s.jobSvc.CreateJob(s.ctx, client.ID, &types.CreateJobRequest{
		Title:    "x",
		Category: "quantum-repair",
	})
	s.Require().ErrorAs(err, &validation)
	s.Equal("category", validation.Field)
}

func (s *ServiceTestSuite) TestCreateJobDefaults() {
	client := s.createUser("client")
	job := s.createJob(client.ID)

	s.Equal(models.JobStatusOpen, job.Status)
	s.Equal(models.DefaultMaxApplicants, job.MaxApplicants)
	s.Equal(models.UrgencyMedium, job.Urgency)
}

func (s *ServiceTestSuite) TestUpdateJobPauseAndResume() {
	client := s.createUser("client")
	job := s.createJob(client.ID)

	paused, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		Status: strPtr("paused"),
	})
	s.Require().NoError(err)
	s.Equal(models.JobStatusPaused, paused.Status)

	reopened, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		Status: strPtr("open"),
	})
	s.Require().NoError(err)
	s.Equal(models.JobStatusOpen, reopened.Status)
}

func (s *ServiceTestSuite) TestUpdateJobRejectsInvalidTransition() {
	client := s.createUser("client")
	job := s.createJob(client.ID)

	// An open job cannot jump straight to completed.
	_, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		Status: strPtr("completed"),
	})
	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
}

func (s *ServiceTestSuite) TestUpdateJobRequiresWorkerForInProgress() {
	client := s.createUser("client")
	job := s.createJob(client.ID)

	_, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		Status: strPtr("in-progress"),
	})
	var validation *types.ValidationError
	s.Require().ErrorAs(err, &validation)
	s.Equal("assigned_worker_id", validation.Field)
}

func (s *ServiceTestSuite) TestUpdateJobAssignsWorkerWithTransition() {
	client := s.createUser("client")
	worker := s.createUser("worker")
	job := s.createJob(client.ID)

	updated, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		Status:           strPtr("in-progress"),
		AssignedWorkerID: uintPtr(worker.ID),
	})
	s.Require().NoError(err)
	s.Equal(models.JobStatusInProgress, updated.Status)
	s.Require().NotNil(updated.AssignedWorkerID)
	s.Equal(worker.ID, *updated.AssignedWorkerID)
}

func (s *ServiceTestSuite) TestUpdateJobAssignedWorkerNeedsInProgress() {
	client := s.createUser("client")
	worker := s.createUser("worker")
	job := s.createJob(client.ID)

	// Without a move to in-progress the assignment has nowhere to go.
	_, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		AssignedWorkerID: uintPtr(worker.ID),
	})
	var validation *types.ValidationError
	s.Require().ErrorAs(err, &validation)
	s.Equal("assigned_worker_id", validation.Field)

	fetched, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Nil(fetched.AssignedWorkerID)
}

func (s *ServiceTestSuite) TestUpdateJobForbiddenForNonOwner() {
	client := s.createUser("client")
	stranger := s.createUser("client")
	job := s.createJob(client.ID)

	_, err := s.jobSvc.UpdateJob(s.ctx, stranger.ID, job.ID, &types.UpdateJobRequest{
		Title: strPtr("hijacked"),
	})
	var forbidden *types.ForbiddenError
	s.Require().ErrorAs(err, &forbidden)
}

func (s *ServiceTestSuite) TestUpdateJobFreezesFieldsWhileInProgress() {
	client := s.createUser("client")
	worker := s.createUser("worker")
	job := s.createJob(client.ID)

	_, err := s.jobSvc.AssignWorker(s.ctx, client.ID, job.ID, worker.ID)
	s.Require().NoError(err)

	_, err = s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		BudgetAmount: floatPtr(99999),
	})
	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
	s.Contains(err.Error(), "Cannot modify budget, category or location while the job is in progress")

	// Title is not frozen.
	updated, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		Title: strPtr("Rewire garage and carport"),
	})
	s.Require().NoError(err)
	s.Equal("Rewire garage and carport", updated.Title)

	// Frozen fields may ride along with a transition out of in-progress.
	cancelled, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
		Status:       strPtr("cancelled"),
		BudgetAmount: floatPtr(0),
	})
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, cancelled.Status)
}

func (s *ServiceTestSuite) TestAssignWorkerAndComplete() {
	client := s.createUser("client")
	worker := s.createUser("worker")
	job := s.createJob(client.ID)

	assigned, err := s.jobSvc.AssignWorker(s.ctx, client.ID, job.ID, worker.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusInProgress, assigned.Status)
	s.Require().NotNil(assigned.AssignedWorkerID)
	s.Equal(worker.ID, *assigned.AssignedWorkerID)

	completed, err := s.jobSvc.CompleteJob(s.ctx, client.ID, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, completed.Status)
	s.NotNil(completed.CompletedAt)
}

func (s *ServiceTestSuite) TestAssignWorkerUnknownWorker() {
	client := s.createUser("client")
	job := s.createJob(client.ID)

	_, err := s.jobSvc.AssignWorker(s.ctx, client.ID, job.ID, 9999)
	var notFound *types.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("user", notFound.Resource)
}

func (s *ServiceTestSuite) TestCompleteJobOnlyFromInProgress() {
	client := s.createUser("client")
	job := s.createJob(client.ID)

	_, err := s.jobSvc.CompleteJob(s.ctx, client.ID, job.ID)
	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
}

func (s *ServiceTestSuite) TestTerminalJobIsImmutable() {
	client := s.createUser("client")
	worker := s.createUser("worker")
	job := s.createJob(client.ID)

	_, err := s.jobSvc.AssignWorker(s.ctx, client.ID, job.ID, worker.ID)
	s.Require().NoError(err)
	_, err = s.jobSvc.CompleteJob(s.ctx, client.ID, job.ID)
	s.Require().NoError(err)

	for _, target := range []string{"open", "in-progress", "cancelled", "paused"} {
		_, err := s.jobSvc.UpdateJob(s.ctx, client.ID, job.ID, &types.UpdateJobRequest{
			Status: strPtr(target),
		})
		var invalidTx *types.InvalidTransitionError
		s.Require().ErrorAs(err, &invalidTx, "completed job accepted transition to %s", target)
	}
}

func (s *ServiceTestSuite) TestDeleteJobCancelsNonTerminal() {
	client := s.createUser("client")
	job := s.createJob(client.ID)

	err := s.jobSvc.DeleteJob(s.ctx, client.ID, job.ID)
	s.Require().NoError(err)

	fetched, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, fetched.Status)
	s.False(fetched.IsActive)
}

func (s *ServiceTestSuite) TestDeleteJobKeepsTerminalStatus() {
	client := s.createUser("client")
	worker := s.createUser("worker")
	job := s.createJob(client.ID)

	_, err := s.jobSvc.AssignWorker(s.ctx, client.ID, job.ID, worker.ID)
	s.Require().NoError(err)
	_, err = s.jobSvc.CompleteJob(s.ctx, client.ID, job.ID)
	s.Require().NoError(err)

	err = s.jobSvc.DeleteJob(s.ctx, client.ID, job.ID)
	s.Require().NoError(err)

	fetched, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, fetched.Status)
	s.False(fetched.IsActive)
}

func (s *ServiceTestSuite) TestListJobsReturnsTotal() {
	client := s.createUser("client")
	s.createJob(client.ID)
	s.createJob(client.ID)

	jobs, total, err := s.jobSvc.ListJobs(s.ctx, repos.JobFilter{ClientID: client.ID}, nil)
	s.Require().NoError(err)
	s.Len(jobs, 2)
	s.Equal(int64(2), total)
}
