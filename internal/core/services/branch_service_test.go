package services_test

import (
	"context"
	"testing"

	"github.com/carrentpro/crp_backend/internal/apperrors"
	"github.com/carrentpro/crp_backend/internal/core/domain"
	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/core/services"
	"github.com/carrentpro/crp_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BranchServiceTestSuite struct {
	suite.Suite
	mockBranchRepo *MockBranchRepository
	service        portssvc.BranchSvcFacade
}

func (suite *BranchServiceTestSuite) SetupTest() {
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.service = services.NewBranchService(suite.mockBranchRepo)
}

func (suite *BranchServiceTestSuite) TestCreateBranch_Success() {
	ctx := context.Background()
	suite.mockBranchRepo.On("SaveBranch", mock.Anything, mock.MatchedBy(func(b domain.Branch) bool {
		return b.Name == "Downtown" && b.CreatedBy == "admin-1" && b.BranchID != ""
	})).Return(nil).Once()

	branch, err := suite.service.CreateBranch(ctx, dto.CreateBranchRequest{
		Name:        "Downtown",
		Address:     "1 Main St",
		PhoneNumber: "+1-555-0100",
	}, "admin-1")

	suite.Require().NoError(err)
	suite.NotEmpty(branch.BranchID)
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func (suite *BranchServiceTestSuite) TestUpdateBranch_MergesOnlyProvidedFields() {
	ctx := context.Background()
	suite.mockBranchRepo.On("FindBranchByID", mock.Anything, "branch-1").
		Return(&domain.Branch{BranchID: "branch-1", Name: "Downtown", Address: "1 Main St"}, nil).Once()

	newAddress := "2 Side St"
	suite.mockBranchRepo.On("UpdateBranch", mock.Anything, mock.MatchedBy(func(b domain.Branch) bool {
		return b.Address == "2 Side St" && b.Name == "Downtown" && b.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	branch, err := suite.service.UpdateBranch(ctx, "branch-1", dto.UpdateBranchRequest{Address: &newAddress}, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("2 Side St", branch.Address)
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func (suite *BranchServiceTestSuite) TestDeleteBranch_RefusedWithVehicles() {
	ctx := context.Background()
	suite.mockBranchRepo.On("BranchHasVehicles", mock.Anything, "branch-1").
		Return(true, nil).Once()

	err := suite.service.DeleteBranch(ctx, "branch-1")

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "DeleteBranch", mock.Anything, mock.Anything)
}

func (suite *BranchServiceTestSuite) TestDeleteBranch_Success() {
	ctx := context.Background()
	suite.mockBranchRepo.On("BranchHasVehicles", mock.Anything, "branch-1").
		Return(false, nil).Once()
	suite.mockBranchRepo.On("DeleteBranch", mock.Anything, "branch-1").
		Return(nil).Once()

	err := suite.service.DeleteBranch(ctx, "branch-1")

	suite.Require().NoError(err)
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func TestBranchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BranchServiceTestSuite))
}
