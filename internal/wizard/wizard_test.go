package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/model"
)

type fakeAPI struct {
	estimateCalls int
	confirmCalls  int
	lastDraft     model.ProjectDraft
	lastPayload   model.ConfirmProjectPayload
	estimate      model.EstimateResult
	estimateErr   error
	confirmID     int64
	confirmErr    error
}

func (f *fakeAPI) EstimateProject(ctx context.Context, token string, draft model.ProjectDraft) (model.EstimateResult, error) {
	f.estimateCalls++
	f.lastDraft = draft
	return f.estimate, f.estimateErr
}

func (f *fakeAPI) ConfirmProject(ctx context.Context, token string, payload model.ConfirmProjectPayload) (int64, error) {
	f.confirmCalls++
	f.lastPayload = payload
	return f.confirmID, f.confirmErr
}

func roleID(id int64) *int64 {
	return &id
}

func devEstimate() model.EstimateResult {
	return model.EstimateResult{
		ProjectType:    "웹 서비스",
		EndDate:        "2025-12-25",
		ServiceSummary: "커머스 플랫폼",
		EstimateList: []model.EstimateRole{
			{
				RoleID: model.RoleDeveloper,
				Role:   "DEV",
				Cost:   100000,
				CandidatePartners: []model.CandidatePartner{
					{MemberID: 1, Nickname: "partner-one"},
					{MemberID: 2, Nickname: "partner-two"},
				},
			},
		},
	}
}

func TestSubmitDraft_NameRequired(t *testing.T) {
	api := &fakeAPI{}
	flow := NewFlow(api, zap.NewNop())

	_, err := flow.SubmitDraft(context.Background(), "token", model.ProjectDraft{Name: "  "})

	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, 0, api.estimateCalls, "validation failures must not reach the network")
	assert.Equal(t, StateDraft, flow.State())
}

func TestSubmitDraft_FiltersRecruitmentChips(t *testing.T) {
	api := &fakeAPI{estimate: devEstimate()}
	flow := NewFlow(api, zap.NewNop())

	draft := model.ProjectDraft{
		Name: "커머스 구축",
		RecruitmentList: []model.RecruitmentSlot{
			{RoleID: roleID(model.RoleDeveloper), Count: 2},
			{RoleID: roleID(model.RoleDesigner), Count: 0},
			{RoleID: nil, Count: 3},
		},
	}

	_, err := flow.SubmitDraft(context.Background(), "token", draft)
	require.NoError(t, err)

	require.Len(t, api.lastDraft.RecruitmentList, 1)
	assert.Equal(t, model.RoleDeveloper, *api.lastDraft.RecruitmentList[0].RoleID)
	assert.Equal(t, StateEstimated, flow.State())
}

func TestSubmitDraft_EmptyRecruitmentStillSubmitted(t *testing.T) {
	// The estimate step has no headcount floor; only confirm does.
	api := &fakeAPI{estimate: devEstimate()}
	flow := NewFlow(api, zap.NewNop())

	draft := model.ProjectDraft{
		Name: "이름만 있는 프로젝트",
		RecruitmentList: []model.RecruitmentSlot{
			{RoleID: roleID(model.RoleDesigner), Count: 0},
		},
	}

	_, err := flow.SubmitDraft(context.Background(), "token", draft)
	require.NoError(t, err)
	assert.Equal(t, 1, api.estimateCalls)
	assert.Empty(t, api.lastDraft.RecruitmentList)
}

func TestSubmitDraft_ServerErrorKeepsDraftState(t *testing.T) {
	api := &fakeAPI{estimateErr: errors.New("backend down")}
	flow := NewFlow(api, zap.NewNop())

	_, err := flow.SubmitDraft(context.Background(), "token", model.ProjectDraft{Name: "p"})

	assert.Error(t, err)
	assert.Equal(t, StateDraft, flow.State())
}

func TestSession_TotalTracksSelection(t *testing.T) {
	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())

	// Both candidates selected by default.
	assert.Equal(t, int64(200000), s.Total())

	s.ToggleCandidate(model.RoleDeveloper, 2)
	assert.Equal(t, int64(100000), s.Total())

	s.ToggleCandidate(model.RoleDeveloper, 1)
	assert.Equal(t, int64(0), s.Total())
}

func TestSession_SeedIsIdempotent(t *testing.T) {
	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())

	s.SetCost(model.RoleDeveloper, 150000)
	s.ToggleCandidate(model.RoleDeveloper, 2)

	// Re-entering the screen must not clobber the member's edits.
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())

	assert.Equal(t, int64(150000), s.Total())
	assert.Equal(t, 1, s.SelectedCount(model.RoleDeveloper))
}

func TestNormalizeEndDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2025.12.25", "2025-12-25", false},
		{"2025-12-25T00:00:00", "2025-12-25", false},
		{"2025-12-25", "2025-12-25", false},
		{"2025. 12. 25", "2025-12-25", false},
		{"bad-date", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeEndDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadDeadline)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmPayload_ExcludesUnselectedRoles(t *testing.T) {
	estimate := devEstimate()
	estimate.EstimateList = append(estimate.EstimateList, model.EstimateRole{
		RoleID: model.RoleDesigner,
		Role:   "DESIGN",
		Cost:   80000,
		CandidatePartners: []model.CandidatePartner{
			{MemberID: 3, Nickname: "partner-three"},
		},
	})

	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 2}, estimate)
	s.ToggleCandidate(model.RoleDesigner, 3)

	payload, err := s.ConfirmPayload()
	require.NoError(t, err)

	require.Len(t, payload.RecruitmentList, 1)
	assert.Equal(t, model.RoleDeveloper, payload.RecruitmentList[0].RoleID)
	assert.Equal(t, 2, payload.RecruitmentList[0].Count)
	assert.Equal(t, int64(200000), payload.TotalEstimate)
	assert.Equal(t, "2025-12-25", payload.EndDate)
}

func TestConfirmPayload_NoPartnerSelectedBlocks(t *testing.T) {
	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())
	s.ToggleCandidate(model.RoleDeveloper, 1)
	s.ToggleCandidate(model.RoleDeveloper, 2)

	_, err := s.ConfirmPayload()
	assert.ErrorIs(t, err, ErrNoPartnerSelected)
}

func TestConfirmPayload_ProjectTypeBounds(t *testing.T) {
	for _, typeID := range []int{0, 5, -1} {
		s := NewSession()
		s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: typeID}, devEstimate())

		_, err := s.ConfirmPayload()
		assert.ErrorIs(t, err, ErrBadProjectType, "projectTypeId %d must be rejected", typeID)
	}
}

func TestConfirmPayload_CostRoundedAndClamped(t *testing.T) {
	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())

	s.SetCost(model.RoleDeveloper, 99999.6)
	payload, err := s.ConfirmPayload()
	require.NoError(t, err)
	assert.Equal(t, int64(100000), payload.RecruitmentList[0].Cost)

	s.SetCost(model.RoleDeveloper, -500)
	_, err = s.ConfirmPayload()
	// A clamped zero cost means a zero total, which blocks submission.
	assert.ErrorIs(t, err, ErrNoPartnerSelected)
}

func TestConfirm_SubmitsAndTerminates(t *testing.T) {
	api := &fakeAPI{estimate: devEstimate(), confirmID: 42}
	flow := ResumeFlow(api, zap.NewNop())

	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())

	projectID, err := flow.Confirm(context.Background(), "token", s)
	require.NoError(t, err)
	assert.Equal(t, int64(42), projectID)
	assert.Equal(t, StateConfirmed, flow.State())
	assert.Equal(t, 1, api.confirmCalls)
}

func TestConfirm_ServerRejectionKeepsEstimatedState(t *testing.T) {
	api := &fakeAPI{confirmErr: errors.New("rejected")}
	flow := ResumeFlow(api, zap.NewNop())

	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())

	_, err := flow.Confirm(context.Background(), "token", s)
	assert.Error(t, err)
	assert.Equal(t, StateEstimated, flow.State(), "failed confirm must allow resubmission")
}

func TestConfirm_RequiresEstimatedState(t *testing.T) {
	api := &fakeAPI{}
	flow := NewFlow(api, zap.NewNop())

	s := NewSession()
	s.Seed(model.ProjectDraft{Name: "p", ProjectTypeID: 1}, devEstimate())

	_, err := flow.Confirm(context.Background(), "token", s)
	assert.ErrorIs(t, err, ErrNotEstimated)
	assert.Equal(t, 0, api.confirmCalls)
}
