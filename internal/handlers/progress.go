package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type ProgressHandler struct {
  progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
  return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) Recompute(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  snapshot, sections, err := ph.progressService.RecomputeProgress(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"progress": snapshot, "sections": sections})
}

func (ph *ProgressHandler) Ready(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  ready, percentage, err := ph.progressService.IsReady(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"ready": ready, "percentage_complete": percentage})
}
