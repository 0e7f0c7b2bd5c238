package model

// Member represents the signed-in member's profile
type Member struct {
	ID           int64  `json:"memberId"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	Introduction string `json:"introduction"`
	ProfileImage string `json:"profileImageUrl,omitempty"`
}

// MemberUpdate carries the editable profile fields
type MemberUpdate struct {
	Nickname     string `json:"nickname"`
	Introduction string `json:"introduction"`
	ProfileImage string `json:"profileImageUrl,omitempty"`
}

// PartnerProfile represents a partner's public profile
type PartnerProfile struct {
	MemberID     int64    `json:"memberId"`
	Nickname     string   `json:"nickname"`
	Introduction string   `json:"introduction"`
	Roles        []string `json:"roles"`
	ProjectCount int      `json:"projectCount"`
}

// LoginResult is returned by the backend on successful authentication
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	MemberID    int64  `json:"memberId"`
}
