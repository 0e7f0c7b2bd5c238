package model

import "time"

// ChatRoom is one entry in the member's chat room listing
type ChatRoom struct {
	ID              int64     `json:"chatRoomId"`
	PartnerNickname string    `json:"partnerNickname"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageAt   time.Time `json:"lastMessageAt"`
	UnreadCount     int       `json:"unreadCount"`
}

// HomeFeedItem is one project card on the home feed
type HomeFeedItem struct {
	ProjectID   int64  `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectType string `json:"projectType"`
	Status      string `json:"status"`
}
