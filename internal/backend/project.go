package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yourorg/matchup-bff/internal/model"
)

// EstimateProject submits a project draft and returns the server-computed
// per-role costs and candidate partners. An empty recruitment list is valid
// here; only the confirm step enforces a headcount floor.
func (c *Client) EstimateProject(ctx context.Context, token string, draft model.ProjectDraft) (model.EstimateResult, error) {
	var result model.EstimateResult
	err := c.do(ctx, http.MethodPost, "/api/v1/projects/estimate", token, draft, &result)
	return result, err
}

type confirmProjectResponse struct {
	ProjectID int64 `json:"projectId"`
}

// ConfirmProject finalizes a project with the full confirm payload and
// returns the new project id
func (c *Client) ConfirmProject(ctx context.Context, token string, payload model.ConfirmProjectPayload) (int64, error) {
	var result confirmProjectResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/projects", token, payload, &result)
	return result.ProjectID, err
}

// Project retrieves a project's detail
func (c *Client) Project(ctx context.Context, token string, projectID int64) (model.Project, error) {
	var project model.Project
	path := fmt.Sprintf("/api/v1/projects/%d", projectID)
	err := c.do(ctx, http.MethodGet, path, token, nil, &project)
	return project, err
}

// UpdateProject updates a confirmed project's editable fields
func (c *Client) UpdateProject(ctx context.Context, token string, projectID int64, update model.ProjectUpdate) error {
	path := fmt.Sprintf("/api/v1/projects/%d", projectID)
	return c.do(ctx, http.MethodPut, path, token, update, nil)
}

// CloseProject closes a project
func (c *Client) CloseProject(ctx context.Context, token string, projectID int64) error {
	path := fmt.Sprintf("/api/v1/projects/%d/close", projectID)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

// CreateTask creates a task on a project board
func (c *Client) CreateTask(ctx context.Context, token string, projectID int64, task model.TaskCreate) (model.Task, error) {
	var created model.Task
	path := fmt.Sprintf("/api/v1/projects/%d/tasks", projectID)
	err := c.do(ctx, http.MethodPost, path, token, task, &created)
	return created, err
}

// UpdateTask updates a task
func (c *Client) UpdateTask(ctx context.Context, token string, projectID, taskID int64, update model.TaskUpdate) error {
	path := fmt.Sprintf("/api/v1/projects/%d/tasks/%d", projectID, taskID)
	return c.do(ctx, http.MethodPut, path, token, update, nil)
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(ctx context.Context, token string, projectID, taskID int64) error {
	path := fmt.Sprintf("/api/v1/projects/%d/tasks/%d", projectID, taskID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}
