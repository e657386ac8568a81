package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

// IntakeService runs the whole order intake: customer, catalog and device
// reconciliation plus the order creation, inside one unit of work. Either
// all writes commit or none do.
type IntakeService interface {
	CreateOrder(in IntakeInput) (*models.ServiceOrder, error)
}

type intakeService struct {
	uow repository.UnitOfWork
	log *zap.Logger
}

func NewIntakeService(uow repository.UnitOfWork, log *zap.Logger) IntakeService {
	return &intakeService{uow: uow, log: log}
}

// collect folds a sub-step error into the aggregated validation error.
// Validation and lookup misses are recorded under the originating field so
// the caller sees every invalid input at once; anything else is fatal and
// returned as-is.
func collect(verrs *apperrors.ValidationError, field string, err error) error {
	if err == nil {
		return nil
	}
	var sub *apperrors.ValidationError
	if errors.As(err, &sub) {
		verrs.Merge(sub)
		return nil
	}
	if apperrors.IsNotFound(err) {
		verrs.Add(field, err.Error())
		return nil
	}
	return err
}

func (s *intakeService) CreateOrder(in IntakeInput) (*models.ServiceOrder, error) {
	var out *models.ServiceOrder
	err := s.uow.Do(func(r *repository.Registry) error {
		verrs := apperrors.NewValidation()

		customer, customerCreated, err := reconcileCustomer(r, in.Customer)
		if err = collect(verrs, "customer", err); err != nil {
			return err
		}

		typeRef, err := resolveTypeRef(r, in.Device.TypeRef)
		if err = collect(verrs, "device_type", err); err != nil {
			return err
		}
		brand, err := resolveBrandRef(r, in.Device.BrandRef)
		if err = collect(verrs, "brand", err); err != nil {
			return err
		}
		model, err := resolveModelRef(r, brand, in.Device.ModelRef)
		if err = collect(verrs, "model", err); err != nil {
			return err
		}

		device, deviceCreated, err := reconcileDevice(r, in.Device, typeRef, brand, model)
		if err = collect(verrs, "device", err); err != nil {
			return err
		}

		fault := strings.TrimSpace(in.Order.ReportedFault)
		if fault == "" {
			verrs.Add("reported_fault", "reported fault required")
		}
		if in.Order.TechnicianID != nil {
			if _, err := r.Technicians.GetByID(*in.Order.TechnicianID); err != nil {
				if err = collect(verrs, "technician", err); err != nil {
					return err
				}
			}
		}

		// Abort before the order write: the rollback also discards any
		// catalog or customer rows created above.
		if verrs.HasErrors() {
			return verrs
		}

		order := &models.ServiceOrder{
			OrderNumber:   "OS-" + uuid.NewString(),
			CustomerID:    customer.ID,
			Customer:      *customer,
			DeviceID:      device.ID,
			Device:        *device,
			TechnicianID:  in.Order.TechnicianID,
			Status:        models.StatusReceived,
			ReceivedAt:    time.Now(),
			ReportedFault: fault,
		}
		if err := r.Orders.Create(order); err != nil {
			return err
		}
		out = order

		s.log.Info("service order created",
			zap.String("order_number", order.OrderNumber),
			zap.String("serial_imei", device.SerialIMEI),
			zap.Bool("customer_created", customerCreated),
			zap.Bool("device_created", deviceCreated),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
