package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizinteltz/api/fixtures"
	"bizinteltz/api/models"
	"bizinteltz/api/store"
	"bizinteltz/api/utils"
	"bizinteltz/api/validation"
)

const businessNotFound = "Business not found"

type BusinessHandlers struct {
	Store    *store.DirectoryStore
	Fixtures *fixtures.Generator
	log      *zap.Logger
}

func NewBusinessHandlers(s *store.DirectoryStore, gen *fixtures.Generator, log *zap.Logger) *BusinessHandlers {
	return &BusinessHandlers{Store: s, Fixtures: gen, log: log.Named("business")}
}

// Search handles GET /search. All filters are optional and combined with AND.
func (h *BusinessHandlers) Search(c *gin.Context) {
	minScore, err := utils.ParseOptionalInt("min_score", c.Query("min_score"))
	if err != nil {
		respondValidation(c, []validation.FieldError{{Field: "min_score", Reason: err.Error()}})
		return
	}

	results := h.Store.Search(store.SearchQuery{
		Text:         c.Query("q"),
		Region:       c.Query("region"),
		Sector:       c.Query("sector"),
		MinScore:     minScore,
		PremiumOnly:  utils.IsTrueFlag(c.Query("premium")),
		VerifiedOnly: utils.IsTrueFlag(c.Query("verified")),
		BIID:         c.Query("bi_id"),
	})
	c.JSON(http.StatusOK, results)
}

func (h *BusinessHandlers) Create(c *gin.Context) {
	raw, ok := h.readValidated(c, validation.ValidateBusinessCreate)
	if !ok {
		return
	}

	var in models.BusinessCreate
	if err := json.Unmarshal(raw, &in); err != nil {
		respondBindError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Store.CreateBusiness(in))
}

func (h *BusinessHandlers) Profile(c *gin.Context) {
	b, err := h.Store.GetBusiness(c.Param("id"))
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BusinessHandlers) Update(c *gin.Context) {
	raw, ok := h.readValidated(c, validation.ValidateBusinessUpdate)
	if !ok {
		return
	}

	var upd models.BusinessUpdate
	if err := json.Unmarshal(raw, &upd); err != nil {
		respondBindError(c, err)
		return
	}

	b, err := h.Store.UpdateBusiness(c.Param("id"), upd)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BusinessHandlers) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.DeleteBusiness(id); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.log.Info("business deleted", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Feature handles POST /admin/feature?biz_id=...
func (h *BusinessHandlers) Feature(c *gin.Context) {
	if _, err := h.Store.FeatureBusiness(c.Query("biz_id")); err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Business featured"})
}

// Scrape stores a synthetic batch of listings attributed to the given source.
func (h *BusinessHandlers) Scrape(c *gin.Context) {
	var req models.ScrapeRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	added := h.Store.InsertBusinesses(h.Fixtures.ScrapeBatch(req.Source, req.Region))
	h.log.Info("scrape batch stored", zap.String("source", req.Source), zap.Int("added", len(added)))
	c.JSON(http.StatusOK, gin.H{"status": "Scraped", "added": len(added)})
}

// Export streams the directory as CSV in insertion order.
func (h *BusinessHandlers) Export(c *gin.Context) {
	list := h.Store.ListBusinesses()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=businesses.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "name", "bi_id", "region", "sector"})
	for _, b := range list {
		_ = w.Write([]string{b.ID, b.Name, b.BIID, b.Region, b.Sector})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Warn("csv export interrupted", zap.Error(err))
	}
}

func (h *BusinessHandlers) readValidated(c *gin.Context, validate func([]byte) ([]validation.FieldError, error)) ([]byte, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read request body")
		return nil, false
	}

	fieldErrs, err := validate(raw)
	if err != nil {
		respondValidation(c, []validation.FieldError{{Field: "(root)", Reason: err.Error()}})
		return nil, false
	}
	if len(fieldErrs) > 0 {
		respondValidation(c, fieldErrs)
		return nil, false
	}
	return raw, true
}

func (h *BusinessHandlers) handleStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrBusinessNotFound) {
		respondNotFound(c, businessNotFound)
		return
	}
	h.log.Error("directory store failure", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
