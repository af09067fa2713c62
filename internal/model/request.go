package model

type ChatRequest struct {
	Message      string `json:"message" binding:"required"`
	UseWebSearch bool   `json:"use_web_search"`
}

type StatusCheckCreate struct {
	ClientName string `json:"client_name" binding:"required"`
}
