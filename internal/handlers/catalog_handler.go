package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"repair_shop/internal/models"
	"repair_shop/internal/services"
)

type CatalogHandler struct {
	catalogService    services.CatalogService
	searchService     services.SearchService
	technicianService services.TechnicianService
	partService       services.PartService
}

func NewCatalogHandler(
	catalogService services.CatalogService,
	searchService services.SearchService,
	technicianService services.TechnicianService,
	partService services.PartService,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService:    catalogService,
		searchService:     searchService,
		technicianService: technicianService,
		partService:       partService,
	}
}

type reconcileRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Brand string `json:"brand"` // id or free text, required for model free text
}

// Reconcile resolves an id-or-free-text catalog value to a reference,
// creating the row when the text is new.
func (h *CatalogHandler) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	ref, err := h.catalogService.Reconcile(models.CatalogKind(req.Kind), req.Value, req.Brand)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ref": ref})
}

func (h *CatalogHandler) SearchCatalog(c *gin.Context) {
	kind := models.CatalogKind(c.Query("kind"))
	term := c.Query("term")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.searchService.SearchCatalog(kind, term, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *CatalogHandler) SearchDevices(c *gin.Context) {
	term := c.Query("term")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	serials, err := h.searchService.SearchDevices(term, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	results := make([]gin.H, 0, len(serials))
	for _, serial := range serials {
		results = append(results, gin.H{"serial": serial})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *CatalogHandler) ListTechnicians(c *gin.Context) {
	technicians, err := h.technicianService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"technicians": technicians})
}

func (h *CatalogHandler) CreateTechnician(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	technician, err := h.technicianService.Create(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, technician)
}

type partRequest struct {
	Description   string          `json:"description"`
	Code          *string         `json:"code"`
	Stock         int             `json:"stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

func (h *CatalogHandler) CreatePart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	part := &models.Part{
		Description:   req.Description,
		Code:          req.Code,
		Stock:         req.Stock,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
	}
	if err := h.partService.CreatePart(part); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (h *CatalogHandler) ListParts(c *gin.Context) {
	parts, err := h.partService.ListParts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parts": parts})
}
