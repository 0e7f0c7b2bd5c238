package model

// Recruitment role identifiers. The platform staffs projects from a fixed
// set of partner categories.
const (
	RolePlanner   int64 = 1
	RoleDeveloper int64 = 2
	RoleDesigner  int64 = 3
	RoleMarketer  int64 = 4
)

// RecruitmentSlot is one partner-role chip on the creation form: which role
// and how many partners the project wants for it. RoleID is nil while the
// chip has no role picked yet.
type RecruitmentSlot struct {
	RoleID *int64 `json:"roleId"`
	Count  int    `json:"count"`
}

// ProjectDraft holds the creation form input sent to the estimate step
type ProjectDraft struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	ProjectTypeID   int               `json:"projectTypeId"`
	Requirement     string            `json:"requirement"`
	RecruitmentList []RecruitmentSlot `json:"recruitmentList"`
}

// ConfirmRecruitment is one finalized role entry in the confirm payload
type ConfirmRecruitment struct {
	RoleID int64 `json:"roleId"`
	Count  int   `json:"count"`
	Cost   int64 `json:"cost"`
}

// ConfirmProjectPayload is the full payload finalizing a project after the
// estimate step. EndDate is normalized to YYYY-MM-DD before submission.
type ConfirmProjectPayload struct {
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	ProjectTypeID   int                  `json:"projectTypeId"`
	Requirement     string               `json:"requirement"`
	ServiceSummary  string               `json:"serviceSummary"`
	EndDate         string               `json:"endDate"`
	TotalEstimate   int64                `json:"totalEstimate"`
	RecruitmentList []ConfirmRecruitment `json:"recruitmentList"`
}

// Project represents a confirmed project as returned by the backend
type Project struct {
	ID             int64  `json:"projectId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ProjectTypeID  int    `json:"projectTypeId"`
	Requirement    string `json:"requirement"`
	ServiceSummary string `json:"serviceSummary"`
	EndDate        string `json:"endDate"`
	Status         string `json:"status"`
	TotalEstimate  int64  `json:"totalEstimate"`
}

// ProjectUpdate carries the editable fields of a confirmed project
type ProjectUpdate struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Requirement    string `json:"requirement"`
	ServiceSummary string `json:"serviceSummary"`
	EndDate        string `json:"endDate"`
}

// Task represents a task on a project board
type Task struct {
	ID          int64  `json:"taskId"`
	ProjectID   int64  `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate,omitempty"`
}

// TaskCreate carries the fields for creating a task
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"`
}

// TaskUpdate carries the editable fields of a task
type TaskUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate,omitempty"`
}
