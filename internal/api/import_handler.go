package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/club-roster-api/internal/config"
	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ImportHandler handles member import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// CreateImport handles POST /api/imports/members.
// Accepts a multipart xlsx upload, records a pending job and starts the
// run in the background. The response carries only the job identifier;
// progress is read through the status endpoints.
func (h *ImportHandler) CreateImport(c *gin.Context) {
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
		})
		return
	}

	uploadDir := h.cfg.Import.UploadDir
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		h.log.Error().Err(err).Msg("Failed to create upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	filename := fmt.Sprintf("%s_%s", uuid.New().String()[:8], filepath.Base(header.Filename))
	filePath := filepath.Join(uploadDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.log.Error().Err(err).Msg("Failed to copy file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	job, err := h.services.Import.CreateJob(ctx, header.Filename, filePath)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create import job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create import job"})
		return
	}

	h.services.Import.Start(job)

	h.log.Info().
		Int64("import_id", job.ID).
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Msg("Import started")

	c.JSON(http.StatusAccepted, gin.H{
		"import_id": job.ID,
		"status":    job.Status,
		"message":   "Import started",
	})
}

// ListImports handles GET /api/imports
func (h *ImportHandler) ListImports(c *gin.Context) {
	jobs, err := h.services.Import.ListJobs(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list imports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list imports"})
		return
	}
	if jobs == nil {
		jobs = []*models.ImportJob{}
	}

	c.JSON(http.StatusOK, jobs)
}

// GetImport handles GET /api/imports/:id
func (h *ImportHandler) GetImport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid import id"})
		return
	}

	detail, err := h.services.Import.GetJob(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("import_id", id).Msg("Failed to get import")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get import"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Import not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
