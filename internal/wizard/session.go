package wizard

import (
	"math"
	"regexp"
	"strings"

	"github.com/yourorg/matchup-bff/internal/model"
)

var deadlinePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Session holds the editable state of the estimate screen: which candidate
// partners are selected per role, the per-role cost, and the deadline and
// service summary. It is seeded exactly once from the estimate result; later
// Seed calls are no-ops so re-renders never clobber the member's edits.
type Session struct {
	draft    model.ProjectDraft
	estimate model.EstimateResult

	endDate        string
	serviceSummary string
	costs          map[int64]float64
	selected       map[int64]map[int64]bool

	initialized bool
}

// NewSession creates an unseeded estimate session
func NewSession() *Session {
	return &Session{
		costs:    make(map[int64]float64),
		selected: make(map[int64]map[int64]bool),
	}
}

// Seed loads the draft and estimate into the session: every candidate starts
// selected, costs and the deadline and summary start at the server's
// suggestions. Seeding happens at most once per session.
func (s *Session) Seed(draft model.ProjectDraft, estimate model.EstimateResult) {
	if s.initialized {
		return
	}
	s.initialized = true

	s.draft = draft
	s.estimate = estimate
	s.endDate = estimate.EndDate
	s.serviceSummary = estimate.ServiceSummary

	for _, role := range estimate.EstimateList {
		s.costs[role.RoleID] = float64(role.Cost)
		members := make(map[int64]bool, len(role.CandidatePartners))
		for _, partner := range role.CandidatePartners {
			members[partner.MemberID] = true
		}
		s.selected[role.RoleID] = members
	}
}

// Draft returns the filtered draft the session was seeded with
func (s *Session) Draft() model.ProjectDraft {
	return s.draft
}

// Estimate returns the server-provided estimate the session was seeded with
func (s *Session) Estimate() model.EstimateResult {
	return s.estimate
}

// SetEndDate overrides the project deadline
func (s *Session) SetEndDate(endDate string) {
	s.endDate = endDate
}

// SetServiceSummary overrides the service summary
func (s *Session) SetServiceSummary(summary string) {
	s.serviceSummary = summary
}

// SetCost overrides the cost for a role
func (s *Session) SetCost(roleID int64, cost float64) {
	s.costs[roleID] = cost
}

// ToggleCandidate flips a candidate partner's selection within a role
func (s *Session) ToggleCandidate(roleID, memberID int64) {
	members, ok := s.selected[roleID]
	if !ok {
		return
	}
	members[memberID] = !members[memberID]
}

// SetCandidateSelected sets a candidate partner's selection explicitly
func (s *Session) SetCandidateSelected(roleID, memberID int64, selected bool) {
	members, ok := s.selected[roleID]
	if !ok {
		return
	}
	if _, known := members[memberID]; !known {
		return
	}
	members[memberID] = selected
}

// SelectedCount returns how many candidates are selected for a role
func (s *Session) SelectedCount(roleID int64) int {
	count := 0
	for _, on := range s.selected[roleID] {
		if on {
			count++
		}
	}
	return count
}

// Total is the derived total estimate: per role, the rounded non-negative
// cost times the number of selected candidates, summed across roles.
func (s *Session) Total() int64 {
	var total int64
	for _, role := range s.estimate.EstimateList {
		total += roundCost(s.costs[role.RoleID]) * int64(s.SelectedCount(role.RoleID))
	}
	return total
}

// NormalizeEndDate rewrites a deadline into YYYY-MM-DD. Already-normalized
// dates pass through, ISO strings lose their time suffix, dot-separated
// dates get dashes. Anything that still fails the canonical pattern is
// rejected.
func NormalizeEndDate(endDate string) (string, error) {
	normalized := strings.TrimSpace(endDate)
	if idx := strings.Index(normalized, "T"); idx >= 0 {
		normalized = normalized[:idx]
	}
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, ".", "-")
	normalized = strings.TrimSuffix(normalized, "-")

	if !deadlinePattern.MatchString(normalized) {
		return "", ErrBadDeadline
	}
	return normalized, nil
}

// ConfirmPayload validates the session and builds the final confirm payload.
// Roles without a selected partner are excluded; the deadline is normalized;
// a zero total blocks submission.
func (s *Session) ConfirmPayload() (model.ConfirmProjectPayload, error) {
	var payload model.ConfirmProjectPayload

	if s.draft.ProjectTypeID < 1 || s.draft.ProjectTypeID > 4 {
		return payload, ErrBadProjectType
	}

	endDate, err := NormalizeEndDate(s.endDate)
	if err != nil {
		return payload, err
	}

	total := s.Total()
	if total <= 0 {
		return payload, ErrNoPartnerSelected
	}

	recruitment := make([]model.ConfirmRecruitment, 0, len(s.estimate.EstimateList))
	for _, role := range s.estimate.EstimateList {
		count := s.SelectedCount(role.RoleID)
		if count == 0 {
			continue
		}
		recruitment = append(recruitment, model.ConfirmRecruitment{
			RoleID: role.RoleID,
			Count:  count,
			Cost:   roundCost(s.costs[role.RoleID]),
		})
	}

	return model.ConfirmProjectPayload{
		Name:            s.draft.Name,
		Description:     s.draft.Description,
		ProjectTypeID:   s.draft.ProjectTypeID,
		Requirement:     s.draft.Requirement,
		ServiceSummary:  s.serviceSummary,
		EndDate:         endDate,
		TotalEstimate:   total,
		RecruitmentList: recruitment,
	}, nil
}

// roundCost rounds an edited cost to the nearest whole amount, clamped at zero
func roundCost(cost float64) int64 {
	rounded := int64(math.Round(cost))
	if rounded < 0 {
		return 0
	}
	return rounded
}
