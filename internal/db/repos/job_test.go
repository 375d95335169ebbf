package repos

import (
	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/types"
)

func (s *DBRepositoryTestSuite) TestJobCreateAppliesDefaults() {
	client := s.createTestUser(models.UserRoleClient)
	job := s.createTestJob(client.ID)

	fetched, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusOpen, fetched.Status)
	s.Equal(models.DefaultMaxApplicants, fetched.MaxApplicants)
	s.Equal(0, fetched.ApplicationsCount)
	s.True(fetched.IsActive)
}

func (s *DBRepositoryTestSuite) TestJobGetByIDNotFound() {
	_, err := s.jobRepo.GetByID(s.ctx, 9999)

	var notFound *types.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("job", notFound.Resource)
}

func (s *DBRepositoryTestSuite) TestJobListFilters() {
	client := s.createTestUser(models.UserRoleClient)
	other := s.createTestUser(models.UserRoleClient)
	s.createTestJob(client.ID)
	s.createTestJob(client.ID)
	s.createTestJob(other.ID)

	all, err := s.jobRepo.List(s.ctx, JobFilter{}, nil)
	s.Require().NoError(err)
	s.Len(all, 3)

	byClient, err := s.jobRepo.List(s.ctx, JobFilter{ClientID: client.ID}, nil)
	s.Require().NoError(err)
	s.Len(byClient, 2)

	byCity, err := s.jobRepo.List(s.ctx, JobFilter{City: "Kandy"}, nil)
	s.Require().NoError(err)
	s.Empty(byCity)

	count, err := s.jobRepo.Count(s.ctx, JobFilter{ClientID: client.ID})
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *DBRepositoryTestSuite) TestJobListExcludesInactive() {
	client := s.createTestUser(models.UserRoleClient)
	job := s.createTestJob(client.ID)
	s.createTestJob(client.ID)

	err := s.jobRepo.SoftDelete(s.ctx, job.ID, models.JobStatusCancelled)
	s.Require().NoError(err)

	active, err := s.jobRepo.List(s.ctx, JobFilter{}, nil)
	s.Require().NoError(err)
	s.Len(active, 1)

	all, err := s.jobRepo.List(s.ctx, JobFilter{}, &models.ListOptions{IncludeDeleted: true})
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *DBRepositoryTestSuite) TestJobUpdateStatusFrom() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)

	err := s.jobRepo.UpdateStatusFrom(s.ctx, job.ID,
		models.JobStatusOpen, models.JobStatusInProgress,
		map[string]interface{}{"assigned_worker_id": worker.ID})
	s.Require().NoError(err)

	fetched, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusInProgress, fetched.Status)
	s.Require().NotNil(fetched.AssignedWorkerID)
	s.Equal(worker.ID, *fetched.AssignedWorkerID)
}

func (s *DBRepositoryTestSuite) TestJobUpdateStatusFromStale() {
	client := s.createTestUser(models.UserRoleClient)
	job := s.createTestJob(client.ID)

	err := s.jobRepo.UpdateStatusFrom(s.ctx, job.ID,
		models.JobStatusOpen, models.JobStatusCancelled, nil)
	s.Require().NoError(err)

	// The job already left open, so a second guarded update must fail
	// and name the status it actually found.
	err = s.jobRepo.UpdateStatusFrom(s.ctx, job.ID,
		models.JobStatusOpen, models.JobStatusInProgress, nil)

	var invalidTx *types.InvalidTransitionError
	s.Require().ErrorAs(err, &invalidTx)
	s.Equal(models.JobStatusCancelled.String(), invalidTx.From)
}

func (s *DBRepositoryTestSuite) TestJobUpdateStatusFromStampsCompletedAt() {
	client := s.createTestUser(models.UserRoleClient)
	worker := s.createTestUser(models.UserRoleWorker)
	job := s.createTestJob(client.ID)

	err := s.jobRepo.UpdateStatusFrom(s.ctx, job.ID,
		models.JobStatusOpen, models.JobStatusInProgress,
		map[string]interface{}{"assigned_worker_id": worker.ID})
	s.Require().NoError(err)

	err = s.jobRepo.UpdateStatusFrom(s.ctx, job.ID,
		models.JobStatusInProgress, models.JobStatusCompleted, nil)
	s.Require().NoError(err)

	fetched, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, fetched.Status)
	s.NotNil(fetched.CompletedAt)
}

func (s *DBRepositoryTestSuite) TestJobSoftDeleteKeepsRecord() {
	client := s.createTestUser(models.UserRoleClient)
	job := s.createTestJob(client.ID)

	err := s.jobRepo.SoftDelete(s.ctx, job.ID, models.JobStatusCancelled)
	s.Require().NoError(err)

	fetched, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, fetched.Status)
	s.False(fetched.IsActive)
}

func (s *DBRepositoryTestSuite) TestJobSoftDeleteNotFound() {
	err := s.jobRepo.SoftDelete(s.ctx, 9999, models.JobStatusCancelled)

	var notFound *types.NotFoundError
	s.Require().ErrorAs(err, &notFound)
}
