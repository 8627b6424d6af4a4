package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"modshift/app"
	"modshift/domain/core"
	"modshift/internal/errors"
	"modshift/ports"
)

// VetHandler serves the vetting endpoints.
type VetHandler struct {
	service *app.VetService
	batch   *app.BatchVetter
	ledger  ports.ReportLedger
}

// NewVetHandler creates the handler set.
func NewVetHandler(service *app.VetService, batch *app.BatchVetter, ledger ports.ReportLedger) *VetHandler {
	return &VetHandler{service: service, batch: batch, ledger: ledger}
}

// HandleHealth reports liveness.
func (h *VetHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleVet runs the significance test for one candidate.
func (h *VetHandler) HandleVet(c *gin.Context) {
	var req app.VetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.service.Vet(c.Request.Context(), req)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Printf("[API] vet failed: %v", err)
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
			"code":  errors.GetCode(err),
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

// HandleVetBatch runs the significance test for several candidates.
func (h *VetHandler) HandleVetBatch(c *gin.Context) {
	var reqs []app.VetRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch is empty"})
		return
	}

	items, err := h.batch.VetAll(c.Request.Context(), reqs)
	if err != nil {
		log.Printf("[API] batch vet failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, len(items))
	for i, item := range items {
		entry := gin.H{"index": item.Index}
		if item.Err != nil {
			entry["error"] = item.Err.Error()
			entry["code"] = errors.GetCode(item.Err)
		} else {
			entry["report"] = item.Report
		}
		out[i] = entry
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "count": len(out)})
}

// HandleListReports returns the most recent vetting reports.
func (h *VetHandler) HandleListReports(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report ledger configured"})
		return
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	reports, err := h.ledger.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[API] failed to list reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

// HandleGetReport returns one report by run ID.
func (h *VetHandler) HandleGetReport(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report ledger configured"})
		return
	}

	runID, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.ledger.GetByRunID(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// statusForError maps the pipeline's failure taxonomy onto HTTP statuses:
// caller mistakes are 422s, everything else is a 500.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInputValidation, errors.CodeConfiguration, errors.CodeEmptyBin,
		errors.CodeDegenerateScatter, errors.CodeRangeError, errors.CodeInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
