package services

import (
	"strings"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

type TechnicianService interface {
	Create(name string) (*models.Technician, error)
	List() ([]models.Technician, error)
}

type technicianService struct {
	repos *repository.Registry
}

func NewTechnicianService(repos *repository.Registry) TechnicianService {
	return &technicianService{repos: repos}
}

func (s *technicianService) Create(name string) (*models.Technician, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verrs := apperrors.NewValidation()
		verrs.Add("name", "name required")
		return nil, verrs
	}
	technician := &models.Technician{Name: name}
	if err := s.repos.Technicians.Create(technician); err != nil {
		return nil, err
	}
	return technician, nil
}

func (s *technicianService) List() ([]models.Technician, error) {
	return s.repos.Technicians.GetAll()
}
