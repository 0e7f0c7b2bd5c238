package handler

import (
	"github.com/gin-gonic/gin"
)

// The payments-history and "my" tabs of the original client ship with
// placeholder data that was never replaced by a live fetch. They are served
// here as static fixtures, an external-data seam rather than real behavior.

type paymentHistoryFixture struct {
	OrderID   string `json:"orderId"`
	OrderName string `json:"orderName"`
	Amount    int64  `json:"amount"`
	PaidAt    string `json:"paidAt"`
	Status    string `json:"status"`
}

var paymentHistoryFixtures = []paymentHistoryFixture{
	{OrderID: "ORD-2025-0001", OrderName: "모바일 앱 개발 파트너", Amount: 1500000, PaidAt: "2025-05-12", Status: "DONE"},
	{OrderID: "ORD-2025-0002", OrderName: "브랜드 디자인 파트너", Amount: 800000, PaidAt: "2025-06-03", Status: "DONE"},
}

type myProjectFixture struct {
	ProjectID int64  `json:"projectId"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Role      string `json:"role"`
}

var myProjectFixtures = []myProjectFixture{
	{ProjectID: 101, Name: "커머스 플랫폼 구축", Status: "IN_PROGRESS", Role: "OWNER"},
	{ProjectID: 87, Name: "사내 협업 도구", Status: "CLOSED", Role: "PARTNER"},
}

// PaymentHistory serves the placeholder payment history tab
// GET /api/v1/payments/history
func PaymentHistory(c *gin.Context) {
	respondOK(c, paymentHistoryFixtures)
}

// MyProjects serves the placeholder "my" tab project list
// GET /api/v1/members/me/projects
func MyProjects(c *gin.Context) {
	respondOK(c, myProjectFixtures)
}
