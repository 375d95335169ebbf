package services

import (
	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/types"
)

func (s *ServiceTestSuite) TestCreateUserValidation() {
	_, err := s.userSvc.CreateUser(s.ctx, &types.CreateUserRequest{
		Name:  "x",
		Email: "x@example.com",
		Role:  "landlord",
	})
	var validation *types.ValidationError
	s.Require().ErrorAs(err, &validation)
	s.Equal("role", validation.Field)

	_, err = s.userSvc.CreateUser(s.ctx, &types.CreateUserRequest{
		Email: "x@example.com",
		Role:  "client",
	})
	s.Require().ErrorAs(err, &validation)
	s.Equal("name", validation.Field)
}

func (s *ServiceTestSuite) TestCreateUserDuplicateEmail() {
	_, err := s.userSvc.CreateUser(s.ctx, &types.CreateUserRequest{
		Name:  "first",
		Email: "taken@example.com",
		Role:  "client",
	})
	s.Require().NoError(err)

	_, err = s.userSvc.CreateUser(s.ctx, &types.CreateUserRequest{
		Name:  "second",
		Email: "taken@example.com",
		Role:  "worker",
	})
	var conflict *types.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Contains(conflict.Error(), "taken@example.com")
}

func (s *ServiceTestSuite) TestListUsersByRole() {
	s.createUser("client")
	s.createUser("worker")
	s.createUser("worker")

	role := models.UserRoleWorker
	workers, err := s.userSvc.ListUsers(s.ctx, &role, nil)
	s.Require().NoError(err)
	s.Len(workers, 2)
}
