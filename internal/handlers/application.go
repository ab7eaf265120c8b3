package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type ApplicationHandler struct {
  applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
  return &ApplicationHandler{applicationService: applicationService}
}

func (ah *ApplicationHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  applications, err := ah.applicationService.List(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (ah *ApplicationHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.ApplicationInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  application, err := ah.applicationService.Create(c.Request.Context(), userID, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"application": application})
}

func (ah *ApplicationHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  var req services.ApplicationInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  application, err := ah.applicationService.Update(c.Request.Context(), userID, id, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"application": application})
}

func (ah *ApplicationHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  if err := ah.applicationService.Delete(c.Request.Context(), userID, id); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (ah *ApplicationHandler) Dashboard(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  dashboard, err := ah.applicationService.Dashboard(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, dashboard)
}
