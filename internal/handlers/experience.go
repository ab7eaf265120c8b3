package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type ExperienceHandler struct {
  experienceService services.ExperienceService
}

func NewExperienceHandler(experienceService services.ExperienceService) *ExperienceHandler {
  return &ExperienceHandler{experienceService: experienceService}
}

func (eh *ExperienceHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  experiences, err := eh.experienceService.List(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"experiences": experiences})
}

func (eh *ExperienceHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.ExperienceInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  experience, snapshot, err := eh.experienceService.Create(c.Request.Context(), userID, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"experience": experience, "progress": snapshot})
}

func (eh *ExperienceHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  var req services.ExperienceInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  experience, snapshot, err := eh.experienceService.Update(c.Request.Context(), userID, id, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"experience": experience, "progress": snapshot})
}

func (eh *ExperienceHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  snapshot, err := eh.experienceService.Delete(c.Request.Context(), userID, id)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"deleted": true, "progress": snapshot})
}
