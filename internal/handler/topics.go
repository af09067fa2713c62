package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness-backend/internal/model"
)

var wellnessTopics = []model.WellnessTopic{
	{ID: "nutrition", Label: "Nutrition", Icon: "apple"},
	{ID: "exercise", Label: "Exercise", Icon: "activity"},
	{ID: "sleep", Label: "Sleep", Icon: "moon"},
	{ID: "stress", Label: "Stress", Icon: "heart"},
	{ID: "hydration", Label: "Hydration", Icon: "droplet"},
	{ID: "checkup", Label: "Check-ups", Icon: "clipboard"},
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Wellness Assistant API"})
}

func GetWellnessTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": wellnessTopics})
}
