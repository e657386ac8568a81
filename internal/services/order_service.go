package services

import (
	"fmt"
	"strings"
	"time"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

// Listing filter names, mirroring the three disjoint status partitions.
const (
	FilterShop      = "shop"
	FilterFinished  = "finished"
	FilterDelivered = "delivered"
)

type OrderService interface {
	GetByID(id uint) (*models.ServiceOrder, error)
	// List returns orders in the named partition, newest intake first.
	// Unknown filters fall back to the in-shop view.
	List(filter string) ([]models.ServiceOrder, error)
	// Transition applies a status change and the field updates submitted
	// with it, all-or-nothing.
	Transition(id uint, in TransitionInput) (*models.ServiceOrder, error)
	// Close delivers a finished order back to the customer.
	Close(id uint) (*models.ServiceOrder, error)
}

type orderService struct {
	repos *repository.Registry
	uow   repository.UnitOfWork
}

func NewOrderService(repos *repository.Registry, uow repository.UnitOfWork) OrderService {
	return &orderService{repos: repos, uow: uow}
}

func (s *orderService) GetByID(id uint) (*models.ServiceOrder, error) {
	return s.repos.Orders.GetByID(id)
}

func (s *orderService) List(filter string) ([]models.ServiceOrder, error) {
	var statuses []models.OrderStatus
	switch filter {
	case FilterFinished:
		statuses = models.FinishedStatuses()
	case FilterDelivered:
		statuses = models.DeliveredStatuses()
	default:
		statuses = models.InShopStatuses()
	}
	return s.repos.Orders.ListByStatuses(statuses)
}

func (s *orderService) Transition(id uint, in TransitionInput) (*models.ServiceOrder, error) {
	var out *models.ServiceOrder
	err := s.uow.Do(func(r *repository.Registry) error {
		order, err := r.Orders.GetByID(id)
		if err != nil {
			return err
		}
		if order.Status.Terminal() {
			return &apperrors.BusinessRuleError{Reason: "order already delivered"}
		}

		verrs := apperrors.NewValidation()
		if in.TechnicianID != nil {
			if _, err := r.Technicians.GetByID(*in.TechnicianID); err != nil {
				if !apperrors.IsNotFound(err) {
					return err
				}
				verrs.Add("technician", fmt.Sprintf("technician %d not found", *in.TechnicianID))
			} else {
				order.TechnicianID = in.TechnicianID
			}
		}
		if in.TechnicalReport != nil {
			order.TechnicalReport = *in.TechnicalReport
		}
		if in.LaborCost != nil {
			order.LaborCost = *in.LaborCost
		}
		if in.FinalBalance != nil {
			order.FinalBalance = *in.FinalBalance
		}

		if in.Status != "" && in.Status != order.Status {
			if !in.Status.Valid() {
				verrs.Add("status", fmt.Sprintf("unknown status %q", in.Status))
			} else {
				switch in.Status {
				case models.StatusReceived:
					// The initial state is never re-entered.
					return &apperrors.BusinessRuleError{Reason: "order cannot return to RECEIVED"}
				case models.StatusDelivered:
					if err := deliver(order); err != nil {
						return err
					}
				case models.StatusDone:
					if strings.TrimSpace(order.TechnicalReport) == "" {
						verrs.Add("technical_report", "technical report required to finish the repair")
					} else {
						order.Status = models.StatusDone
					}
				default:
					order.Status = in.Status
				}
			}
		}

		if verrs.HasErrors() {
			return verrs
		}
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *orderService) Close(id uint) (*models.ServiceOrder, error) {
	var out *models.ServiceOrder
	err := s.uow.Do(func(r *repository.Registry) error {
		order, err := r.Orders.GetByID(id)
		if err != nil {
			return err
		}
		if err := deliver(order); err != nil {
			return err
		}
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// deliver is the single path into the terminal state: only finished or
// unrepairable orders can be handed back, and the delivery timestamp is
// set exactly once.
func deliver(order *models.ServiceOrder) error {
	if !order.Status.ReadyForDelivery() {
		return &apperrors.BusinessRuleError{Reason: "order not ready for delivery"}
	}
	now := time.Now()
	order.Status = models.StatusDelivered
	order.DeliveredAt = &now
	return nil
}
