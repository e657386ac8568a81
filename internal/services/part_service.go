package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

type PartService interface {
	CreatePart(part *models.Part) error
	ListParts() ([]models.Part, error)
	// AddToOrder records a part usage line on an order. Re-adding the same
	// part increments the stored quantity. The unit price defaults to the
	// part's current sale price when not submitted.
	AddToOrder(orderID, partID uint, quantity int, unitPrice *decimal.Decimal) (*models.PartUsage, error)
	ListOrderParts(orderID uint) ([]models.PartUsage, error)
}

type partService struct {
	repos *repository.Registry
	uow   repository.UnitOfWork
}

func NewPartService(repos *repository.Registry, uow repository.UnitOfWork) PartService {
	return &partService{repos: repos, uow: uow}
}

func (s *partService) CreatePart(part *models.Part) error {
	verrs := apperrors.NewValidation()
	if strings.TrimSpace(part.Description) == "" {
		verrs.Add("description", "description required")
	}
	if part.Code != nil && strings.TrimSpace(*part.Code) == "" {
		part.Code = nil
	}
	if err := verrs.ErrOrNil(); err != nil {
		return err
	}
	return s.repos.Parts.Create(part)
}

func (s *partService) ListParts() ([]models.Part, error) {
	return s.repos.Parts.GetAll()
}

func (s *partService) AddToOrder(orderID, partID uint, quantity int, unitPrice *decimal.Decimal) (*models.PartUsage, error) {
	var out *models.PartUsage
	err := s.uow.Do(func(r *repository.Registry) error {
		if quantity <= 0 {
			verrs := apperrors.NewValidation()
			verrs.Add("quantity", "quantity must be a positive integer")
			return verrs
		}
		order, err := r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order.Status.Terminal() {
			return &apperrors.BusinessRuleError{Reason: "order already delivered"}
		}
		part, err := r.Parts.GetByID(partID)
		if err != nil {
			return err
		}
		price := part.SalePrice
		if unitPrice != nil {
			price = *unitPrice
		}
		usage := &models.PartUsage{
			OrderID:   orderID,
			PartID:    partID,
			Quantity:  quantity,
			UnitPrice: price,
		}
		if err := r.PartUsages.Upsert(usage); err != nil {
			return err
		}
		out = usage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *partService) ListOrderParts(orderID uint) ([]models.PartUsage, error) {
	if _, err := s.repos.Orders.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.repos.PartUsages.GetByOrderID(orderID)
}
