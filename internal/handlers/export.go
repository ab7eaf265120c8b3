package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/matchwise/matchwise-backend/internal/services"
)

type ExportHandler struct {
  exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
  return &ExportHandler{exportService: exportService}
}

func (eh *ExportHandler) ExportPacket(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  pdfBytes, err := eh.exportService.ExportPacket(c.Request.Context(), userID)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  c.Header("Content-Disposition", `attachment; filename="application-packet.pdf"`)
  c.Data(200, "application/pdf", pdfBytes)
}
