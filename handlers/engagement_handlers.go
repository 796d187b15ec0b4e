package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizinteltz/api/middleware"
	"bizinteltz/api/models"
	"bizinteltz/api/store"
	"bizinteltz/api/validation"
)

// EngagementHandlers covers the owner and customer facing records:
// claims, reviews, leads and media.
type EngagementHandlers struct {
	Store *store.DirectoryStore
	log   *zap.Logger
}

func NewEngagementHandlers(s *store.DirectoryStore, log *zap.Logger) *EngagementHandlers {
	return &EngagementHandlers{Store: s, log: log.Named("engagement")}
}

func (h *EngagementHandlers) SubmitClaim(c *gin.Context) {
	var req models.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	claim := h.Store.SubmitClaim(req)
	h.log.Info("claim submitted", zap.String("claim_id", claim.ID), zap.String("business_id", claim.BusinessID))
	c.JSON(http.StatusOK, gin.H{"status": "Claim submitted", "claim_id": claim.ID})
}

func (h *EngagementHandlers) ListClaims(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Claims())
}

func (h *EngagementHandlers) ApproveClaim(c *gin.Context) {
	claim, err := h.Store.ApproveClaim(c.Param("id"))
	if errors.Is(err, store.ErrClaimNotFound) {
		respondNotFound(c, "Claim not found")
		return
	}
	if err != nil {
		h.log.Error("claim approval failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.log.Info("claim approved",
		zap.String("claim_id", claim.ID),
		zap.String("business_id", claim.BusinessID),
		zap.String("approved_by", c.GetString(middleware.ContextUsername)),
	)
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

func (h *EngagementHandlers) AddReview(c *gin.Context) {
	var r models.Review
	if err := c.ShouldBindJSON(&r); err != nil {
		respondBindError(c, err)
		return
	}
	h.Store.AddReview(r)
	c.JSON(http.StatusOK, gin.H{"status": "Review added"})
}

func (h *EngagementHandlers) Reviews(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Reviews(c.Param("biz_id")))
}

func (h *EngagementHandlers) AddLead(c *gin.Context) {
	var l models.Lead
	if err := c.ShouldBindJSON(&l); err != nil {
		respondBindError(c, err)
		return
	}
	h.Store.AddLead(l)
	c.JSON(http.StatusOK, gin.H{"status": "Lead stored"})
}

func (h *EngagementHandlers) Leads(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Leads())
}

// UploadMedia records the uploaded file's name against the business. The file
// contents are not kept.
func (h *EngagementHandlers) UploadMedia(c *gin.Context) {
	bizID := c.PostForm("biz_id")
	file, err := c.FormFile("file")

	var errs []validation.FieldError
	if bizID == "" {
		errs = append(errs, validation.FieldError{Field: "biz_id", Reason: "field required"})
	}
	if err != nil {
		errs = append(errs, validation.FieldError{Field: "file", Reason: "field required"})
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	name := filepath.Base(file.Filename)
	h.Store.AddMedia(bizID, name)
	h.log.Info("media uploaded", zap.String("business_id", bizID), zap.String("filename", name), zap.Int64("size", file.Size))
	c.JSON(http.StatusOK, gin.H{"status": "File uploaded", "filename": name})
}

func (h *EngagementHandlers) Media(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Media(c.Param("biz_id")))
}
