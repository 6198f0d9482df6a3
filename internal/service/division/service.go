package division

import (
	"context"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
)

type PolicyServiceImpl struct {
	policyRepo division.PolicyRepository
}

// GetPolicy implements division.PolicyService.
func (s *PolicyServiceImpl) GetPolicy(ctx context.Context, div string) (division.PolicyResponse, error) {
	d := division.Division(div)
	if !d.IsValid() {
		return division.PolicyResponse{}, division.ErrInvalidDivision
	}

	policy, err := s.policyRepo.GetByDivision(ctx, d)
	if err != nil {
		return division.PolicyResponse{}, err
	}

	return mapPolicyToResponse(policy), nil
}

// ListPolicies implements division.PolicyService.
func (s *PolicyServiceImpl) ListPolicies(ctx context.Context) (division.ListPolicyResponse, error) {
	policies, err := s.policyRepo.List(ctx)
	if err != nil {
		return division.ListPolicyResponse{}, err
	}

	responses := make([]division.PolicyResponse, 0, len(policies))
	for _, policy := range policies {
		responses = append(responses, mapPolicyToResponse(policy))
	}

	return division.ListPolicyResponse{Data: responses}, nil
}

// UpsertPolicy implements division.PolicyService. Each division holds at
// most one policy; repeated upserts replace it.
func (s *PolicyServiceImpl) UpsertPolicy(ctx context.Context, req division.UpsertPolicyRequest) (division.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return division.PolicyResponse{}, err
	}

	policy := division.Policy{
		Division:               division.Division(req.Division),
		WorkStartTime:          req.WorkStartTime,
		WorkEndTime:            req.WorkEndTime,
		LateThresholdMinutes:   req.LateThresholdMinutes,
		DeductionPerMinute:     req.DeductionPerMinute,
		BaseSalary:             req.BaseSalary,
		OvertimeRateMultiplier: req.OvertimeRateMultiplier,
		WorkingDaysPerMonth:    req.WorkingDaysPerMonth,
	}

	saved, err := s.policyRepo.Upsert(ctx, policy)
	if err != nil {
		return division.PolicyResponse{}, err
	}

	return mapPolicyToResponse(saved), nil
}

func mapPolicyToResponse(policy division.Policy) division.PolicyResponse {
	return division.PolicyResponse{
		ID:                     policy.ID,
		Division:               string(policy.Division),
		WorkStartTime:          policy.WorkStartTime,
		WorkEndTime:            policy.WorkEndTime,
		LateThresholdMinutes:   policy.LateThresholdMinutes,
		DeductionPerMinute:     policy.DeductionPerMinute,
		BaseSalary:             policy.BaseSalary,
		OvertimeRateMultiplier: policy.OvertimeRateMultiplier,
		WorkingDaysPerMonth:    policy.WorkingDaysPerMonth,
	}
}

func NewPolicyService(policyRepo division.PolicyRepository) division.PolicyService {
	return &PolicyServiceImpl{policyRepo: policyRepo}
}
