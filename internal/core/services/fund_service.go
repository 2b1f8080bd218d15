package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// fundService handles business logic for funds. Reads are filtered by the
// requesting user's effective access at the repository; writes go through
// the access service gates.
type fundService struct {
	BaseService
	fundRepo   portsrepo.FundRepositoryFacade
	authorizer portssvc.AccessAuthorizerSvc
}

// NewFundService creates a new fund service.
func NewFundService(fundRepo portsrepo.FundRepositoryFacade, authorizer portssvc.AccessAuthorizerSvc) portssvc.FundSvcFacade {
	return &fundService{fundRepo: fundRepo, authorizer: authorizer}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

// GetFundByID retrieves a fund visible to the requesting user.
func (s *fundService) GetFundByID(ctx context.Context, fundID string, requestingUserID string) (*domain.Fund, error) {
	return s.fundRepo.FindFundByID(ctx, requestingUserID, fundID)
}

// ListFunds retrieves the funds the requesting user can see.
func (s *fundService) ListFunds(ctx context.Context, requestingUserID string, includeInactive bool) ([]domain.Fund, error) {
	funds, err := s.fundRepo.ListFunds(ctx, requestingUserID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	if funds == nil {
		funds = []domain.Fund{}
	}
	return funds, nil
}

// CreateFund persists a new fund. Restricted to admin/owner holders since a
// new fund has no grants yet.
func (s *fundService) CreateFund(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.Fund, error) {
	if err := s.requireOverride(ctx, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	fund := domain.Fund{
		FundID:      uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.fundRepo.SaveFund(ctx, fund); err != nil {
		s.LogError(ctx, err, "Failed to save fund", slog.String("fund_name", req.Name))
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}

	s.LogInfo(ctx, "Fund created", slog.String("fund_id", fund.FundID), slog.String("creator_user_id", creatorUserID))
	return &fund, nil
}

// UpdateFund updates fund details. Requires admin scope on the fund.
func (s *fundService) UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest, requestingUserID string) (*domain.Fund, error) {
	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, []string{fundID}, domain.ScopeAdmin); err != nil {
		return nil, err
	}

	fund, err := s.fundRepo.FindFundByID(ctx, requestingUserID, fundID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		fund.Name = *req.Name
	}
	if req.Description != nil {
		fund.Description = *req.Description
	}
	if req.IsActive != nil {
		fund.IsActive = *req.IsActive
	}
	fund.LastUpdatedAt = time.Now()
	fund.LastUpdatedBy = requestingUserID

	if err := s.fundRepo.UpdateFund(ctx, *fund); err != nil {
		s.LogError(ctx, err, "Failed to update fund", slog.String("fund_id", fundID))
		return nil, fmt.Errorf("failed to update fund: %w", err)
	}

	return fund, nil
}

// requireOverride delegates to the role gate for admin/owner.
func (s *fundService) requireOverride(ctx context.Context, userID string) error {
	if err := s.authorizer.RequireRole(ctx, userID, domain.RoleAdmin); err == nil {
		return nil
	}
	return s.authorizer.RequireRole(ctx, userID, domain.RoleOwner)
}
