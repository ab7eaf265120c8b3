package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type ResearchHandler struct {
  researchService services.ResearchService
}

func NewResearchHandler(researchService services.ResearchService) *ResearchHandler {
  return &ResearchHandler{researchService: researchService}
}

func (rh *ResearchHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  products, err := rh.researchService.List(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"research_products": products})
}

func (rh *ResearchHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.ResearchInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  product, snapshot, err := rh.researchService.Create(c.Request.Context(), userID, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"research_product": product, "progress": snapshot})
}

func (rh *ResearchHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  var req services.ResearchInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  product, snapshot, err := rh.researchService.Update(c.Request.Context(), userID, id, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"research_product": product, "progress": snapshot})
}

func (rh *ResearchHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  snapshot, err := rh.researchService.Delete(c.Request.Context(), userID, id)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"deleted": true, "progress": snapshot})
}

func (rh *ResearchHandler) Enrich(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  product, snapshot, err := rh.researchService.Enrich(c.Request.Context(), userID, id)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"research_product": product, "progress": snapshot})
}
