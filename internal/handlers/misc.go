package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type MiscQuestionHandler struct {
  miscService services.MiscQuestionService
}

func NewMiscQuestionHandler(miscService services.MiscQuestionService) *MiscQuestionHandler {
  return &MiscQuestionHandler{miscService: miscService}
}

func (mh *MiscQuestionHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  misc, err := mh.miscService.GetByUser(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"miscellaneous": misc})
}

func (mh *MiscQuestionHandler) Save(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.MiscQuestionInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  misc, snapshot, err := mh.miscService.Save(c.Request.Context(), userID, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"miscellaneous": misc, "progress": snapshot})
}
