package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repair_shop/internal/apperrors"
)

// respondError maps the error taxonomy onto HTTP statuses: validation 400,
// lookup miss 404, write conflict 409, broken business rule 422.
func respondError(c *gin.Context, err error) {
	var verrs *apperrors.ValidationError
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verrs.Fields,
		})
		return
	}
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
		return
	}
	var rule *apperrors.BusinessRuleError
	if errors.As(err, &rule) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rule.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
