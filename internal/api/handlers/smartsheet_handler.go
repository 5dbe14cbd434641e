package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/convergenps/backend/internal/model"
	"github.com/convergenps/backend/internal/repository"
	"github.com/convergenps/backend/internal/smartsheet"
)

// IExportService, IImportService and IStatusService define the interfaces the
// handler consumes, so tests can plug in mocks.
type IExportService interface {
	SyncOne(ctx context.Context, kind model.EntityKind, entityID string) model.SyncResult
	SyncAll(ctx context.Context, kind model.EntityKind) (*model.BatchSyncResult, error)
}

type IImportService interface {
	ImportSessions(ctx context.Context) (*model.ImportResult, error)
	ImportProjects(ctx context.Context) (*model.ImportResult, error)
	ImportOpportunities(ctx context.Context) (*model.ImportResult, error)
	ImportPartners(ctx context.Context) (*model.ImportResult, error)
	ImportAttendees(ctx context.Context) (*model.ImportResult, error)
	ImportAll(ctx context.Context) *model.AllImportResult
	InspectSheet(ctx context.Context, kind string) (*model.SheetInfo, error)
}

type IStatusService interface {
	GetStatus(ctx context.Context) (map[model.EntityKind]model.KindStatus, error)
	GetFailedSyncs(ctx context.Context, limit int) ([]model.SyncRecord, error)
	Retry(ctx context.Context, syncRecordID string) (model.SyncResult, error)
	ClearFailed(ctx context.Context) (int64, error)
}

type SmartsheetHandler struct {
	Export IExportService
	Import IImportService
	Status IStatusService
}

func NewSmartsheetHandler(export IExportService, imp IImportService, status IStatusService) *SmartsheetHandler {
	return &SmartsheetHandler{Export: export, Import: imp, Status: status}
}

// GetStatus returns the per-kind sync summary.
// GET /api/v1/admin/smartsheet/status
func (h *SmartsheetHandler) GetStatus(c *gin.Context) {
	status, err := h.Status.GetStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": status})
}

// GetFailures lists the most recent failed sync records.
// GET /api/v1/admin/smartsheet/failures?limit=100
func (h *SmartsheetHandler) GetFailures(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	failures, err := h.Status.GetFailedSyncs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": failures})
}

// TriggerSync exports every record of a kind.
// POST /api/v1/admin/smartsheet/sync/:kind
func (h *SmartsheetHandler) TriggerSync(c *gin.Context) {
	kind, err := smartsheet.ParseEntityKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("API trigger: sync all %s", kind)
	result, err := h.Export.SyncAll(c.Request.Context(), kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// RetrySync re-dispatches a previously failed sync.
// POST /api/v1/admin/smartsheet/retry/:id
func (h *SmartsheetHandler) RetrySync(c *gin.Context) {
	result, err := h.Status.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ClearFailures deletes all failed sync records.
// DELETE /api/v1/admin/smartsheet/failures
func (h *SmartsheetHandler) ClearFailures(c *gin.Context) {
	removed, err := h.Status.ClearFailed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": removed}})
}

// ImportKind runs one sheet import.
// POST /api/v1/admin/smartsheet/import/:kind
func (h *SmartsheetHandler) ImportKind(c *gin.Context) {
	ctx := c.Request.Context()
	kind := c.Param("kind")

	var result *model.ImportResult
	var err error
	switch kind {
	case "all":
		h.ImportAll(c)
		return
	case "sessions":
		result, err = h.Import.ImportSessions(ctx)
	case "projects":
		result, err = h.Import.ImportProjects(ctx)
	case "opportunities":
		result, err = h.Import.ImportOpportunities(ctx)
	case "partners":
		result, err = h.Import.ImportPartners(ctx)
	case "attendees":
		result, err = h.Import.ImportAttendees(ctx)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown import kind: " + kind})
		return
	}

	if err != nil {
		log.Printf("import %s failed: %v", kind, err)
		if smartsheet.IsConfiguration(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ImportAll runs all sheet imports, collecting per-kind errors.
// POST /api/v1/admin/smartsheet/import/all
func (h *SmartsheetHandler) ImportAll(c *gin.Context) {
	log.Println("API trigger: import all sheets")
	c.JSON(http.StatusOK, gin.H{"data": h.Import.ImportAll(c.Request.Context())})
}

// Inspect reports a sheet's column layout.
// GET /api/v1/admin/smartsheet/inspect/:kind
func (h *SmartsheetHandler) Inspect(c *gin.Context) {
	info, err := h.Import.InspectSheet(c.Request.Context(), c.Param("kind"))
	if err != nil {
		if smartsheet.IsConfiguration(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": info})
}
