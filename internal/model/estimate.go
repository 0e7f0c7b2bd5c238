package model

// CandidatePartner is one partner the backend proposes for a role
type CandidatePartner struct {
	MemberID     int64  `json:"memberId"`
	Nickname     string `json:"nickname"`
	Introduction string `json:"introduction"`
	ProjectCount int    `json:"projectCount"`
}

// EstimateRole is the server-computed estimate for a single recruitment role:
// a suggested cost and the candidate partners available for it.
type EstimateRole struct {
	RoleID            int64              `json:"roleId"`
	Role              string             `json:"role"`
	Cost              int64              `json:"cost"`
	CandidatePartners []CandidatePartner `json:"candidatePartnerList"`
}

// EstimateResult is the backend's answer to an estimate request. The cost per
// role and the partner selection are editable client-side before confirmation;
// everything else is display data.
type EstimateResult struct {
	ProjectType      string         `json:"projectType"`
	RecruitmentRoles []string       `json:"recruitmentRoles"`
	EndDate          string         `json:"endDate"`
	ServiceSummary   string         `json:"serviceSummary"`
	EstimateList     []EstimateRole `json:"estimateList"`
}
