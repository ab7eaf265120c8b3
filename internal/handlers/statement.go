package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type StatementHandler struct {
  statementService services.StatementService
}

func NewStatementHandler(statementService services.StatementService) *StatementHandler {
  return &StatementHandler{statementService: statementService}
}

func (sh *StatementHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  statement, err := sh.statementService.GetByUser(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"personal_statement": statement})
}

func (sh *StatementHandler) Save(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.StatementInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  statement, snapshot, err := sh.statementService.Save(c.Request.Context(), userID, req)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"personal_statement": statement, "progress": snapshot})
}

func (sh *StatementHandler) GenerateTheses(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  statement, err := sh.statementService.GenerateThesisStatements(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"personal_statement": statement})
}

func (sh *StatementHandler) SelectThesis(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    ThesisStatement string `json:"thesis_statement"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  statement, err := sh.statementService.SelectThesis(c.Request.Context(), userID, req.ThesisStatement)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"personal_statement": statement})
}

func (sh *StatementHandler) Draft(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  statement, err := sh.statementService.DraftFinalStatement(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"personal_statement": statement})
}

func (sh *StatementHandler) Finalize(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  statement, snapshot, err := sh.statementService.Finalize(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"personal_statement": statement, "progress": snapshot})
}
