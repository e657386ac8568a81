package services

import (
	"strings"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

func validateCustomerInput(in CustomerInput) *apperrors.ValidationError {
	verrs := apperrors.NewValidation()
	if strings.TrimSpace(in.Key) == "" {
		verrs.Add("key", "key required")
	}
	if strings.TrimSpace(in.Name) == "" {
		verrs.Add("name", "name required")
	}
	return verrs
}

// applyCustomerFields applies the submitted display and contact fields.
// Blank contact fields never erase previously stored values when the row
// is being reused.
func applyCustomerFields(customer *models.Customer, in CustomerInput) {
	customer.Name = strings.TrimSpace(in.Name)
	if in.Address != "" {
		customer.Address = in.Address
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Mobile != "" {
		customer.Mobile = in.Mobile
	}
	if in.Email != "" {
		customer.Email = in.Email
	}
}

// reconcileCustomer resolves the submitted key to a customer row: an
// existing row is reused with the submitted fields applied, otherwise a
// new row is created. The key itself is immutable identity.
func reconcileCustomer(r *repository.Registry, in CustomerInput) (customer *models.Customer, created bool, err error) {
	if verrs := validateCustomerInput(in); verrs.HasErrors() {
		return nil, false, verrs
	}
	key := strings.TrimSpace(in.Key)

	existing, err := r.Customers.GetByKey(key)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, false, err
	}
	if existing != nil {
		applyCustomerFields(existing, in)
		if err := r.Customers.Update(existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	c := &models.Customer{
		Key:     key,
		Name:    strings.TrimSpace(in.Name),
		Address: in.Address,
		Phone:   in.Phone,
		Mobile:  in.Mobile,
		Email:   in.Email,
	}
	if err := r.Customers.Create(c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// CustomerService exposes the customer lookup and save operations.
type CustomerService interface {
	FindByKey(key string) (*models.Customer, error)
	// Save creates a customer when id is zero and updates the bound row
	// otherwise. On the create path a duplicate key is a validation
	// failure; on the update path the row keeps its key and the check is
	// skipped.
	Save(id uint, in CustomerInput) (*models.Customer, error)
}

type customerService struct {
	repos *repository.Registry
	uow   repository.UnitOfWork
}

func NewCustomerService(repos *repository.Registry, uow repository.UnitOfWork) CustomerService {
	return &customerService{repos: repos, uow: uow}
}

func (s *customerService) FindByKey(key string) (*models.Customer, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.ErrNotFound
	}
	return s.repos.Customers.GetByKey(key)
}

func (s *customerService) Save(id uint, in CustomerInput) (*models.Customer, error) {
	var out *models.Customer
	err := s.uow.Do(func(r *repository.Registry) error {
		if verrs := validateCustomerInput(in); verrs.HasErrors() {
			return verrs
		}
		key := strings.TrimSpace(in.Key)

		if id == 0 {
			if _, err := r.Customers.GetByKey(key); err == nil {
				verrs := apperrors.NewValidation()
				verrs.Add("key", "duplicate key")
				return verrs
			} else if !apperrors.IsNotFound(err) {
				return err
			}
			c := &models.Customer{
				Key:     key,
				Name:    strings.TrimSpace(in.Name),
				Address: in.Address,
				Phone:   in.Phone,
				Mobile:  in.Mobile,
				Email:   in.Email,
			}
			if err := r.Customers.Create(c); err != nil {
				return err
			}
			out = c
			return nil
		}

		existing, err := r.Customers.GetByID(id)
		if err != nil {
			return err
		}
		applyCustomerFields(existing, in)
		if err := r.Customers.Update(existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
