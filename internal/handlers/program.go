package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type ProgramHandler struct {
  programService services.ProgramService
}

func NewProgramHandler(programService services.ProgramService) *ProgramHandler {
  return &ProgramHandler{programService: programService}
}

func (ph *ProgramHandler) List(c *gin.Context) {
  filter := repos.ProgramFilter{
    Specialty: c.Query("specialty"),
    State:     c.Query("state"),
  }
  programs, err := ph.programService.List(c.Request.Context(), filter)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"programs": programs})
}

func (ph *ProgramHandler) Get(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  program, err := ph.programService.Get(c.Request.Context(), id)
  if err != nil {
    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"program": program})
}

func (ph *ProgramHandler) Create(c *gin.Context) {
  var req services.ProgramInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  program, err := ph.programService.Create(c.Request.Context(), req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"program": program})
}

func (ph *ProgramHandler) Update(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  var req services.ProgramInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  program, err := ph.programService.Update(c.Request.Context(), id, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"program": program})
}

func (ph *ProgramHandler) Delete(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  if err := ph.programService.Delete(c.Request.Context(), id); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (ph *ProgramHandler) Recommend(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  result, err := ph.programService.Recommend(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, result)
}
