package benefits

import "context"

// BenefitService is the application-facing contract for statutory
// benefit computation, granting and terminal leave claims.
type BenefitService interface {
	Compute(ctx context.Context, req ComputeRequest) (ComputeResponse, error)
	BatchCompute(ctx context.Context, req BatchComputeRequest) (BatchComputeResult, error)
	Grant(ctx context.Context, req GrantRequest) (BenefitResponse, error)
	ListEmployeeBenefits(ctx context.Context, employeeID string) ([]BenefitResponse, error)
	ListBenefitsByTypeYear(ctx context.Context, benefitType string, year int) ([]BenefitResponse, error)

	ComputeTLB(ctx context.Context, req ComputeTLBRequest) (TLBResponse, error)
	GetTLB(ctx context.Context, id string) (TLBResponse, error)
	TransitionTLB(ctx context.Context, id string, to TLBStatus) (TLBResponse, error)
}
