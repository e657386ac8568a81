package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/services"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Lookup finds a customer by key for the intake form. A miss is not an
// error: the form just switches to the new-customer path.
func (h *CustomerHandler) Lookup(c *gin.Context) {
	key := c.Query("key")
	customer, err := h.customerService.FindByKey(key)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"exists": false})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exists":  true,
		"id":      customer.ID,
		"key":     customer.Key,
		"name":    customer.Name,
		"address": customer.Address,
		"phone":   customer.Phone,
		"mobile":  customer.Mobile,
		"email":   customer.Email,
	})
}

type customerRequest struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	customer, err := h.customerService.Save(0, services.CustomerInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	customer, err := h.customerService.Save(uint(id), services.CustomerInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
