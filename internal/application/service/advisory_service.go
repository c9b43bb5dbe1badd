package service

import (
	"context"

	"github.com/healthplus/medipos-api/pkg/advisory"
)

// AdvisoryService screens medicine lists for drug interactions via the
// external advisory API. Its answers are informational only and never
// influence computed totals or block saving.
type AdvisoryService struct {
	client *advisory.Client
	drafts *DraftService
}

// NewAdvisoryService creates a new advisory service.
func NewAdvisoryService(client *advisory.Client, drafts *DraftService) *AdvisoryService {
	return &AdvisoryService{client: client, drafts: drafts}
}

// CheckNames screens an explicit list of medicine names.
func (s *AdvisoryService) CheckNames(ctx context.Context, names []string) advisory.Result {
	return s.client.CheckInteractions(ctx, names)
}

// CheckDraft screens the medicines currently on the draft.
func (s *AdvisoryService) CheckDraft(ctx context.Context) advisory.Result {
	return s.client.CheckInteractions(ctx, s.drafts.MedicineNames())
}
