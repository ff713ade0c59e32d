// pkg/ai/mock_client.go

package ai

import (
	"fmt"
	"time"
)

// mockClient stands in when no LLM endpoint is configured; deterministic
// output so the planning flow still works end to end.
type mockClient struct{}

func NewMock() Client { return &mockClient{} }

func (m *mockClient) ProposeHarvestWindow(crop, variety string, year int) (*HarvestWindowAdvice, error) {
	return &HarvestWindowAdvice{
		MaximumStart:  time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC),
		MaximumEnd:    time.Date(year, time.October, 31, 0, 0, 0, 0, time.UTC),
		DaysToHarvest: 60,
		YieldPeak:     "midsummer",
		Notes:         fmt.Sprintf("mock window for %s", crop),
		Source:        "mock",
	}, nil
}

func (m *mockClient) CritiquePlan(planSummary, guideCtx string) (string, error) {
	// Spacing advice only: flagged to the user, never auto-applied, so a
	// mock critique cannot mutate a real plan.
	return "Plan looks workable (mock review). Consider slightly wider spacing on the later sowings for airflow in humid weather.", nil
}
