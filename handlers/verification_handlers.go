package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizinteltz/api/models"
	"bizinteltz/api/store"
)

const biIDNotFound = "BI ID not found"

type VerificationHandlers struct {
	Store *store.DirectoryStore
	log   *zap.Logger
	now   func() time.Time
}

func NewVerificationHandlers(s *store.DirectoryStore, log *zap.Logger) *VerificationHandlers {
	return &VerificationHandlers{Store: s, log: log.Named("verification"), now: time.Now}
}

// VerifyBI answers 200 whether or not the BI ID exists; "valid" carries the result.
func (h *VerificationHandlers) VerifyBI(c *gin.Context) {
	now := h.now().UTC()

	b, found := h.Store.FindByBIID(c.Param("bi_id"))
	if !found {
		c.JSON(http.StatusOK, models.BIVerification{
			Valid:            false,
			Message:          biIDNotFound,
			VerificationDate: now,
		})
		return
	}

	status := "registered"
	if b.Verified {
		status = "verified"
	}
	c.JSON(http.StatusOK, models.BIVerification{
		Valid:            true,
		Business:         &b,
		Status:           status,
		VerificationDate: now,
	})
}

func (h *VerificationHandlers) RequestVerification(c *gin.Context) {
	var req models.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	b, found := h.Store.FindByBIID(req.BIID)
	if !found {
		respondNotFound(c, biIDNotFound)
		return
	}

	ack := models.VerificationAck{
		Status:       "verification_request_logged",
		BIID:         b.BIID,
		BusinessName: b.Name,
		Verified:     b.Verified,
		Claimed:      b.Claimed,
		RequestID:    uuid.NewString(),
		Timestamp:    h.now().UTC(),
	}
	h.log.Info("verification requested",
		zap.String("request_id", ack.RequestID),
		zap.String("bi_id", ack.BIID),
		zap.String("requester", req.RequesterName),
		zap.String("purpose", req.Purpose),
	)
	c.JSON(http.StatusOK, ack)
}
