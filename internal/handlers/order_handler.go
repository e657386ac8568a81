package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/services"
)

type OrderHandler struct {
	intakeService services.IntakeService
	orderService  services.OrderService
	partService   services.PartService
}

func NewOrderHandler(
	intakeService services.IntakeService,
	orderService services.OrderService,
	partService services.PartService,
) *OrderHandler {
	return &OrderHandler{
		intakeService: intakeService,
		orderService:  orderService,
		partService:   partService,
	}
}

type intakeRequest struct {
	Customer struct {
		Key     string `json:"key"`
		Name    string `json:"name"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Mobile  string `json:"mobile"`
		Email   string `json:"email"`
	} `json:"customer"`
	Device struct {
		SerialIMEI   string `json:"serial_imei"`
		Type         string `json:"type"`
		Brand        string `json:"brand"`
		Model        string `json:"model"`
		Accessories  string `json:"accessories"`
		Condition    string `json:"condition"`
		PurchaseDate string `json:"purchase_date"` // YYYY-MM-DD
	} `json:"device"`
	Order struct {
		TechnicianID  *uint  `json:"technician_id"`
		ReportedFault string `json:"reported_fault"`
	} `json:"order"`
}

// CreateOrder handles the whole intake: customer, device and catalog
// reconciliation plus the order creation, atomically.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	in := services.IntakeInput{
		Customer: services.CustomerInput{
			Key:     req.Customer.Key,
			Name:    req.Customer.Name,
			Address: req.Customer.Address,
			Phone:   req.Customer.Phone,
			Mobile:  req.Customer.Mobile,
			Email:   req.Customer.Email,
		},
		Device: services.DeviceInput{
			SerialIMEI:  req.Device.SerialIMEI,
			TypeRef:     req.Device.Type,
			BrandRef:    req.Device.Brand,
			ModelRef:    req.Device.Model,
			Accessories: req.Device.Accessories,
			Condition:   req.Device.Condition,
		},
		Order: services.OrderInput{
			TechnicianID:  req.Order.TechnicianID,
			ReportedFault: req.Order.ReportedFault,
		},
	}
	if req.Device.PurchaseDate != "" {
		purchased, err := time.Parse("2006-01-02", req.Device.PurchaseDate)
		if err != nil {
			verrs := apperrors.NewValidation()
			verrs.Add("purchase_date", "expected date as YYYY-MM-DD")
			respondError(c, verrs)
			return
		}
		in.Device.PurchaseDate = &purchased
	}

	order, err := h.intakeService.CreateOrder(in)
	if err != nil {
		respondError(c, err)
		return
	}
	order.Device.UnderWarranty = order.Device.InWarranty()
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := c.DefaultQuery("filter", services.FilterShop)
	orders, err := h.orderService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filter": filter, "orders": orders})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type transitionRequest struct {
	Status          string           `json:"status"`
	TechnicianID    *uint            `json:"technician_id"`
	TechnicalReport *string          `json:"technical_report"`
	LaborCost       *decimal.Decimal `json:"labor_cost"`
	FinalBalance    *decimal.Decimal `json:"final_balance"`
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	order, err := h.orderService.Transition(id, services.TransitionInput{
		Status:          models.OrderStatus(req.Status),
		TechnicianID:    req.TechnicianID,
		TechnicalReport: req.TechnicalReport,
		LaborCost:       req.LaborCost,
		FinalBalance:    req.FinalBalance,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CloseOrder delivers a finished order and stamps the delivery time.
func (h *OrderHandler) CloseOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orderService.Close(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type addPartRequest struct {
	PartID    uint             `json:"part_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

func (h *OrderHandler) AddPart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req addPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	usage, err := h.partService.AddToOrder(id, req.PartID, req.Quantity, req.UnitPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usage)
}

func (h *OrderHandler) ListParts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	usages, err := h.partService.ListOrderParts(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parts": usages})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
