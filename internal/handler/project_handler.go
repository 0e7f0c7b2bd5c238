package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/backend"
	"github.com/yourorg/matchup-bff/internal/middleware"
	"github.com/yourorg/matchup-bff/internal/model"
	"github.com/yourorg/matchup-bff/internal/session"
	"github.com/yourorg/matchup-bff/internal/wizard"
)

// ErrReopenNotSupported marks the acknowledged-unsupported "open new
// recruitment" action: it refuses without a network call because the backend
// has no contract for it.
var ErrReopenNotSupported = errors.New("project: reopening recruitment is not supported")

// ProjectHandler handles the project creation wizard and project management
type ProjectHandler struct {
	backend  *backend.Client
	sessions *session.Store
	logger   *zap.Logger
}

// NewProjectHandler creates a new project handler. sessions may be nil when
// Redis is disabled.
func NewProjectHandler(client *backend.Client, sessions *session.Store, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		backend:  client,
		sessions: sessions,
		logger:   logger,
	}
}

type estimateRequest struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	ProjectTypeID   int                     `json:"projectTypeId"`
	Requirement     string                  `json:"requirement"`
	RecruitmentList []model.RecruitmentSlot `json:"recruitmentList"`
}

// Estimate handles the draft submission of the creation wizard
// POST /api/v1/projects/estimate
func (h *ProjectHandler) Estimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "요청 형식이 올바르지 않습니다."})
		return
	}

	draft := model.ProjectDraft{
		Name:            req.Name,
		Description:     req.Description,
		ProjectTypeID:   req.ProjectTypeID,
		Requirement:     req.Requirement,
		RecruitmentList: req.RecruitmentList,
	}

	flow := wizard.NewFlow(h.backend, h.logger)
	estimateSession, err := flow.SubmitDraft(c.Request.Context(), middleware.Token(c), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	// The draft and estimate together are the navigation state the client
	// carries into the partner-recruitment screen.
	respondOK(c, gin.H{
		"draft":    estimateSession.Draft(),
		"estimate": estimateSession.Estimate(),
	})
}

type roleEdit struct {
	RoleID            int64    `json:"roleId"`
	Cost              *float64 `json:"cost"`
	SelectedMemberIDs *[]int64 `json:"selectedMemberIds"`
}

type confirmRequest struct {
	Draft          model.ProjectDraft   `json:"draft" binding:"required"`
	Estimate       model.EstimateResult `json:"estimate" binding:"required"`
	EndDate        string               `json:"endDate"`
	ServiceSummary string               `json:"serviceSummary"`
	RoleEdits      []roleEdit           `json:"roleEdits"`
}

// Confirm handles the final submission of the creation wizard
// POST /api/v1/projects/confirm
func (h *ProjectHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "요청 형식이 올바르지 않습니다."})
		return
	}

	estimateSession := wizard.NewSession()
	estimateSession.Seed(req.Draft, req.Estimate)

	if req.EndDate != "" {
		estimateSession.SetEndDate(req.EndDate)
	}
	if req.ServiceSummary != "" {
		estimateSession.SetServiceSummary(req.ServiceSummary)
	}
	applyRoleEdits(estimateSession, req.Estimate, req.RoleEdits)

	flow := wizard.ResumeFlow(h.backend, h.logger)
	projectID, err := flow.Confirm(c.Request.Context(), middleware.Token(c), estimateSession)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"projectId": projectID})
}

// applyRoleEdits replays the member's estimate-screen edits onto a freshly
// seeded session
func applyRoleEdits(s *wizard.Session, estimate model.EstimateResult, edits []roleEdit) {
	for _, edit := range edits {
		if edit.Cost != nil {
			s.SetCost(edit.RoleID, *edit.Cost)
		}
		if edit.SelectedMemberIDs == nil {
			continue
		}
		wanted := make(map[int64]bool, len(*edit.SelectedMemberIDs))
		for _, memberID := range *edit.SelectedMemberIDs {
			wanted[memberID] = true
		}
		for _, role := range estimate.EstimateList {
			if role.RoleID != edit.RoleID {
				continue
			}
			for _, partner := range role.CandidatePartners {
				s.SetCandidateSelected(role.RoleID, partner.MemberID, wanted[partner.MemberID])
			}
		}
	}
}

// Get handles retrieving a project detail and records it as the member's
// last-viewed project
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 프로젝트 번호입니다."})
		return
	}

	project, err := h.backend.Project(c.Request.Context(), middleware.Token(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.sessions != nil {
		if err := h.sessions.SetLastViewedProject(c.Request.Context(), middleware.MemberID(c), projectID); err != nil {
			h.logger.Warn("Failed to record last viewed project", zap.Error(err))
		}
	}

	respondOK(c, project)
}

// LastViewed redirects the project index to the member's last-viewed project
// GET /api/v1/members/me/last-project
func (h *ProjectHandler) LastViewed(c *gin.Context) {
	if h.sessions == nil {
		respondOK(c, gin.H{"found": false})
		return
	}

	projectID, found, err := h.sessions.LastViewedProject(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"found": found, "projectId": projectID})
}

// Update handles editing a confirmed project
// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 프로젝트 번호입니다."})
		return
	}

	var update model.ProjectUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "요청 형식이 올바르지 않습니다."})
		return
	}

	if err := h.backend.UpdateProject(c.Request.Context(), middleware.Token(c), projectID, update); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}

// Close handles closing a project
// POST /api/v1/projects/:id/close
func (h *ProjectHandler) Close(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 프로젝트 번호입니다."})
		return
	}

	if err := h.backend.CloseProject(c.Request.Context(), middleware.Token(c), projectID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}

// Reopen refuses the unsupported "open new recruitment" action
// POST /api/v1/projects/:id/reopen
func (h *ProjectHandler) Reopen(c *gin.Context) {
	h.logger.Warn("Reopen recruitment requested", zap.Error(ErrReopenNotSupported))
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "아직 지원하지 않는 기능입니다.",
	})
}

// CreateTask handles creating a task on a project board
// POST /api/v1/projects/:id/tasks
func (h *ProjectHandler) CreateTask(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 프로젝트 번호입니다."})
		return
	}

	var task model.TaskCreate
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "요청 형식이 올바르지 않습니다."})
		return
	}

	created, err := h.backend.CreateTask(c.Request.Context(), middleware.Token(c), projectID, task)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, created)
}

// UpdateTask handles editing a task
// PUT /api/v1/projects/:id/tasks/:taskId
func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 프로젝트 번호입니다."})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 태스크 번호입니다."})
		return
	}

	var update model.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "요청 형식이 올바르지 않습니다."})
		return
	}

	if err := h.backend.UpdateTask(c.Request.Context(), middleware.Token(c), projectID, taskID, update); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}

// DeleteTask handles deleting a task
// DELETE /api/v1/projects/:id/tasks/:taskId
func (h *ProjectHandler) DeleteTask(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 프로젝트 번호입니다."})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 태스크 번호입니다."})
		return
	}

	if err := h.backend.DeleteTask(c.Request.Context(), middleware.Token(c), projectID, taskID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}
