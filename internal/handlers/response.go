package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/matchwise/matchwise-backend/internal/requestdata"
  "github.com/matchwise/matchwise-backend/internal/services"
)

// currentUserID pulls the authenticated user out of the request context set
// by the auth middleware. A miss means the route was wired without it.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
    return uuid.Nil, false
  }
  return rd.UserID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
    return uuid.Nil, false
  }
  return id, true
}

// respondServiceError maps a service failure onto a status code. Not-ready
// export attempts get a 403 with the current percentage attached.
func respondServiceError(c *gin.Context, err error) {
  var notReady *services.NotReadyError
  if errors.As(err, &notReady) {
    c.JSON(http.StatusForbidden, gin.H{
      "error":               notReady.Error(),
      "percentage_complete": notReady.PercentageComplete,
    })
    return
  }
  c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
