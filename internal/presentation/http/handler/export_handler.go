package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/domain/stats"
	"github.com/medicore/hms-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles register export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportPatients streams the patient register as an Excel workbook
func (h *ExportHandler) ExportPatients(c *gin.Context) {
	filter := stats.PatientFilter{
		Search:    c.Query("search"),
		Gender:    c.Query("gender"),
		Status:    c.Query("status"),
		MinAge:    parseIntFilter(c.Query("min_age")),
		MaxAge:    parseIntFilter(c.Query("max_age")),
		AddedFrom: parseDateFilter(c.Query("from")),
		AddedTo:   parseDateFilter(c.Query("to")),
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFileName("patients")+`"`)

	if err := h.exportService.ExportPatients(c.Request.Context(), filter, c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}

// ExportInvoices streams the invoice register as an Excel workbook
func (h *ExportHandler) ExportInvoices(c *gin.Context) {
	filter := stats.InvoiceFilter{
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		PatientID:   parseUUIDFilter(c.Query("patient_id")),
		OverdueOnly: c.Query("overdue_only") == "true",
		MinTotal:    parseFloatFilter(c.Query("min_total")),
		MaxTotal:    parseFloatFilter(c.Query("max_total")),
		IssuedFrom:  parseDateFilter(c.Query("from")),
		IssuedTo:    parseDateFilter(c.Query("to")),
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFileName("invoices")+`"`)

	if err := h.exportService.ExportInvoices(c.Request.Context(), filter, c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}

func parseIntFilter(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatFilter(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
