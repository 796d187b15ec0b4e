package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizinteltz/api/validation"
)

// Every error body carries a "detail" message; validation failures add the
// offending fields.

func respondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func respondNotFound(c *gin.Context, detail string) {
	respondError(c, http.StatusNotFound, detail)
}

func respondValidation(c *gin.Context, errs []validation.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"detail": "Validation failed",
		"errors": errs,
	})
}

func respondBindError(c *gin.Context, err error) {
	respondValidation(c, validation.FromBindError(err))
}
