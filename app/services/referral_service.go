package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotEligible = errors.New("order is not eligible for cashback")
	ErrClaimExists      = errors.New("a cashback claim already exists for this order")
	ErrClaimNotFound    = errors.New("cashback claim not found")
	ErrClaimNotPending  = errors.New("cashback claim was already reviewed")
)

// ReferralService runs the Instagram-cashback flow: a customer posts
// about a completed order, submits their handle, and an approved claim
// credits back a percentage of the order's grand total.
type ReferralService struct {
	referralRepo    repositories.ReferralRepositoryImpl
	orderRepo       repositories.OrderRepository
	userRepo        repositories.UserRepositoryImpl
	mailer          *Mailer
	cashbackPercent decimal.Decimal
}

func NewReferralService(
	referralRepo repositories.ReferralRepositoryImpl,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepositoryImpl,
	mailer *Mailer,
	cashbackPercent decimal.Decimal,
) *ReferralService {
	return &ReferralService{
		referralRepo:    referralRepo,
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		mailer:          mailer,
		cashbackPercent: cashbackPercent,
	}
}

// SubmitClaim files a pending claim for a completed order owned by the
// user. One claim per order.
func (s *ReferralService) SubmitClaim(ctx context.Context, userID, orderID, instagramHandle, postURL string) (*models.ReferralClaim, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil || order.UserID != userID || !order.IsCompleted() {
		return nil, ErrOrderNotEligible
	}

	existing, err := s.referralRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing claim: %w", err)
	}
	if existing != nil {
		return nil, ErrClaimExists
	}

	claim := &models.ReferralClaim{
		UserID:          userID,
		OrderID:         orderID,
		InstagramHandle: strings.TrimPrefix(strings.TrimSpace(instagramHandle), "@"),
		PostURL:         postURL,
		Status:          models.ReferralStatusPending,
	}
	if err := s.referralRepo.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to create cashback claim: %w", err)
	}
	return claim, nil
}

func (s *ReferralService) ListClaims(ctx context.Context, userID string) ([]models.ReferralClaim, error) {
	claims, err := s.referralRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cashback claims: %w", err)
	}
	return claims, nil
}

// ApproveClaim computes the cashback from the order's grand total and
// marks the claim approved. The notification email is best-effort.
func (s *ReferralService) ApproveClaim(ctx context.Context, claimID string) (*models.ReferralClaim, error) {
	claim, err := s.referralRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	if claim.Status != models.ReferralStatusPending {
		return nil, ErrClaimNotPending
	}

	now := time.Now()
	claim.Status = models.ReferralStatusApproved
	claim.CashbackAmount = claim.Order.GrandTotal.Mul(s.cashbackPercent).Div(decimal.NewFromInt(100))
	claim.ReviewedAt = &now

	if err := s.referralRepo.Update(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to approve claim: %w", err)
	}

	if s.mailer != nil {
		user, err := s.userRepo.FindByID(ctx, claim.UserID)
		if err == nil && user != nil {
			body := BuildCashbackApprovedBody(claim.InstagramHandle, claim.CashbackAmount)
			if err := s.mailer.SendHTMLEmail(user.Email, "Your RIIQX cashback is approved", body); err != nil {
				log.Printf("ApproveClaim: failed to send cashback email for claim %s: %v", claim.ID, err)
			}
		}
	}

	return claim, nil
}

func (s *ReferralService) RejectClaim(ctx context.Context, claimID string) (*models.ReferralClaim, error) {
	claim, err := s.referralRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	if claim.Status != models.ReferralStatusPending {
		return nil, ErrClaimNotPending
	}

	now := time.Now()
	claim.Status = models.ReferralStatusRejected
	claim.ReviewedAt = &now

	if err := s.referralRepo.Update(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to reject claim: %w", err)
	}
	return claim, nil
}
