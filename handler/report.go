package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/middleware"
	"github.com/akashkendre1298/vastureports/model"
	"github.com/akashkendre1298/vastureports/pkg/logger"
	"github.com/akashkendre1298/vastureports/service"
)

const (
	msgNoReportType   = "Please select a report type."
	msgReportFailed   = "Failed to generate report"
	msgInvalidRequest = "Invalid report request"
)

// ReportRunner generates one artifact per selection
type ReportRunner interface {
	Run(ctx context.Context, sel model.Selection) (*model.Artifact, error)
}

// ArtifactPublisher hands out an external link for an artifact
type ArtifactPublisher interface {
	Publish(ctx context.Context, kind model.ReportKind, id string, artifact *model.Artifact) (string, error)
	Expiry() time.Duration
}

type ReportHandler struct {
	reports   ReportRunner
	store     *service.ArtifactStore
	publisher ArtifactPublisher
	downloads *config.DownloadsConfig
}

// NewReportHandler wires the report endpoints. publisher may be nil, in which
// case download links point at the in-memory store.
func NewReportHandler(reports ReportRunner, store *service.ArtifactStore, publisher ArtifactPublisher, downloads *config.DownloadsConfig) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		store:     store,
		publisher: publisher,
		downloads: downloads,
	}
}

type createReportRequest struct {
	ReportKind string `json:"report_kind"`
	StartMonth int    `json:"start_month"`
	EndMonth   int    `json:"end_month"`
	Format     string `json:"format"`
}

type createReportResponse struct {
	Filename    string    `json:"filename"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Stream generates the report and sends it back as an attachment
func (h *ReportHandler) Stream(c *gin.Context) {
	start, errStart := strconv.Atoi(c.Param("start"))
	end, errEnd := strconv.Atoi(c.Param("end"))
	if errStart != nil || errEnd != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Months must be numbers between 1 and 12"})
		return
	}

	sel, err := parseSelection(c.Param("kind"), start, end, c.Query("format"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	artifact, err := h.reports.Run(c.Request.Context(), sel)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", service.ContentDisposition(artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// Create generates the report and returns a short-lived download link for it
func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	sel, err := parseSelection(req.ReportKind, req.StartMonth, req.EndMonth, req.Format)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	artifact, err := h.reports.Run(ctx, sel)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.publisher != nil {
		id := uuid.New().String()
		link, err := h.publisher.Publish(ctx, sel.Kind, id, artifact)
		if err != nil {
			logger.Error(ctx, "failed to publish report", "error", err, "artifact_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgReportFailed})
			return
		}
		c.JSON(http.StatusCreated, createReportResponse{
			Filename:    artifact.Filename,
			DownloadURL: link,
			ExpiresAt:   time.Now().Add(h.publisher.Expiry()),
		})
		return
	}

	item := h.store.Put(artifact)
	token, expiresAt, err := middleware.GenerateDownloadToken(item.ID, artifact.Filename, h.store.TTL(), h.downloads)
	if err != nil {
		h.store.Delete(item.ID)
		logger.Error(ctx, "failed to sign download token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgReportFailed})
		return
	}

	c.JSON(http.StatusCreated, createReportResponse{
		Filename:    artifact.Filename,
		DownloadURL: "/api/downloads/" + token,
		ExpiresAt:   expiresAt,
	})
}

type reportKindInfo struct {
	Kind    model.ReportKind `json:"kind"`
	Title   string           `json:"title"`
	Headers []string         `json:"headers"`
}

type monthInfo struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// Kinds lists what the report form offers
func (h *ReportHandler) Kinds(c *gin.Context) {
	kinds := make([]reportKindInfo, 0, len(model.ReportKinds))
	for _, k := range model.ReportKinds {
		kinds = append(kinds, reportKindInfo{Kind: k, Title: k.Title(), Headers: service.Headers(k)})
	}

	months := make([]monthInfo, 12)
	for i := range months {
		months[i] = monthInfo{Value: i + 1, Name: time.Month(i + 1).String()}
	}

	c.JSON(http.StatusOK, gin.H{
		"kinds":   kinds,
		"months":  months,
		"formats": model.Formats,
	})
}

// parseSelection resolves raw form values. An unknown kind reads as no kind at all.
func parseSelection(kind string, start, end int, format string) (model.Selection, error) {
	k, err := model.ParseReportKind(kind)
	if err != nil {
		k = ""
	}

	f, err := model.ParseOutputFormat(format)
	if err != nil {
		return model.Selection{}, errors.Join(service.ErrInvalidSelection, err)
	}

	return model.Selection{
		Kind:   k,
		Months: model.MonthRange{Start: start, End: end},
		Format: f,
	}, nil
}

func (h *ReportHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoReportTypeSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoReportType})
	case errors.Is(err, service.ErrInvalidSelection), errors.Is(err, service.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
	case errors.Is(err, service.ErrMalformedResponse), errors.Is(err, service.ErrNetworkFailure):
		c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": msgReportFailed})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgReportFailed})
	}
}
