package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type PreferenceHandler struct {
  preferenceService services.PreferenceService
}

func NewPreferenceHandler(preferenceService services.PreferenceService) *PreferenceHandler {
  return &PreferenceHandler{preferenceService: preferenceService}
}

func (ph *PreferenceHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  preference, err := ph.preferenceService.GetByUser(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"program_preference": preference})
}

func (ph *PreferenceHandler) Save(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.PreferenceInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  preference, snapshot, err := ph.preferenceService.Save(c.Request.Context(), userID, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"program_preference": preference, "progress": snapshot})
}
