package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/model"
)

// API is the slice of the backend the wizard needs
type API interface {
	EstimateProject(ctx context.Context, token string, draft model.ProjectDraft) (model.EstimateResult, error)
	ConfirmProject(ctx context.Context, token string, payload model.ConfirmProjectPayload) (int64, error)
}

// Validation errors are local: no network call is made and the flow state is
// unchanged, so the member can edit and resubmit.
var (
	ErrNameRequired      = errors.New("wizard: project name is required")
	ErrBadProjectType    = errors.New("wizard: project type must be between 1 and 4")
	ErrBadDeadline       = errors.New("wizard: end date must be YYYY-MM-DD")
	ErrNoPartnerSelected = errors.New("wizard: at least one partner must be selected")
	ErrSubmitInFlight    = errors.New("wizard: a submission is already in progress")
	ErrNotEstimated      = errors.New("wizard: estimate step has not completed")
)

// State is the wizard's position in the creation flow
type State int

const (
	// StateDraft is the initial form-filling stage
	StateDraft State = iota
	// StateEstimated means the backend returned an estimate and the member
	// is editing selections
	StateEstimated
	// StateConfirmed is terminal; the project exists
	StateConfirmed
)

// Flow drives the three-stage project creation: Draft → Estimated →
// Confirmed. Server rejections leave the state where it was; every
// resubmission re-sends the full current payload.
type Flow struct {
	api    API
	logger *zap.Logger

	mu         sync.Mutex
	state      State
	submitting bool
}

// NewFlow creates a project creation flow in the draft stage
func NewFlow(api API, logger *zap.Logger) *Flow {
	return &Flow{
		api:    api,
		logger: logger,
		state:  StateDraft,
	}
}

// ResumeFlow recreates a flow that already completed the estimate step, as
// happens when the estimate screen is entered with carried navigation state
func ResumeFlow(api API, logger *zap.Logger) *Flow {
	return &Flow{
		api:    api,
		logger: logger,
		state:  StateEstimated,
	}
}

// State returns the flow's current stage
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// beginSubmit marks a submission in flight; duplicate concurrent submits are
// refused rather than queued.
func (f *Flow) beginSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrSubmitInFlight
	}
	f.submitting = true
	return nil
}

func (f *Flow) endSubmit() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// FilterRecruitmentSlots keeps only the partner-role chips with a role picked
// and a positive headcount
func FilterRecruitmentSlots(slots []model.RecruitmentSlot) []model.RecruitmentSlot {
	filtered := make([]model.RecruitmentSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.RoleID != nil && slot.Count > 0 {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// SubmitDraft validates the creation form, requests an estimate, and seeds
// the estimate session that is carried to the next screen. The estimate step
// has no headcount floor: a draft whose chips all filter out is still
// submitted with an empty recruitment list.
func (f *Flow) SubmitDraft(ctx context.Context, token string, draft model.ProjectDraft) (*Session, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}

	if err := f.beginSubmit(); err != nil {
		return nil, err
	}
	defer f.endSubmit()

	draft.RecruitmentList = FilterRecruitmentSlots(draft.RecruitmentList)

	estimate, err := f.api.EstimateProject(ctx, token, draft)
	if err != nil {
		f.logger.Warn("Project estimate request failed", zap.Error(err))
		return nil, err
	}

	session := NewSession()
	session.Seed(draft, estimate)

	f.setState(StateEstimated)
	return session, nil
}

// Confirm builds the final payload from the session and submits it. On
// success the flow is terminal; on failure it stays in the estimated stage
// for a resubmission.
func (f *Flow) Confirm(ctx context.Context, token string, session *Session) (int64, error) {
	if f.State() != StateEstimated {
		return 0, ErrNotEstimated
	}

	payload, err := session.ConfirmPayload()
	if err != nil {
		return 0, err
	}

	if err := f.beginSubmit(); err != nil {
		return 0, err
	}
	defer f.endSubmit()

	projectID, err := f.api.ConfirmProject(ctx, token, payload)
	if err != nil {
		f.logger.Warn("Project confirm request failed", zap.Error(err))
		return 0, err
	}

	f.setState(StateConfirmed)
	return projectID, nil
}
