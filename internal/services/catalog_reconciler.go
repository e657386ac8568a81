package services

import (
	"fmt"
	"strconv"
	"strings"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

// CatalogRef is a resolved catalog reference.
type CatalogRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// parseCatalogRaw normalizes a raw submitted value. It returns the trimmed
// value, the parsed identifier when the value is numeric, and whether the
// value was empty.
func parseCatalogRaw(raw string) (text string, id uint, isID bool, empty bool) {
	text = strings.TrimSpace(raw)
	if text == "" {
		return "", 0, false, true
	}
	if n, err := strconv.ParseUint(text, 10, 32); err == nil {
		return text, uint(n), true, false
	}
	return text, 0, false, false
}

// resolveTypeRef maps a raw value to a device type row: numeric values look
// up an existing row, free text is found-or-created under the upper-cased
// name, empty means no reference.
func resolveTypeRef(r *repository.Registry, raw string) (*models.DeviceType, error) {
	text, id, isID, empty := parseCatalogRaw(raw)
	if empty {
		return nil, nil
	}
	if isID {
		t, err := r.Catalog.GetTypeByID(id)
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("device type %d: %w", id, apperrors.ErrNotFound)
		}
		return t, err
	}
	return r.Catalog.FindOrCreateType(strings.ToUpper(text))
}

func resolveBrandRef(r *repository.Registry, raw string) (*models.Brand, error) {
	text, id, isID, empty := parseCatalogRaw(raw)
	if empty {
		return nil, nil
	}
	if isID {
		b, err := r.Catalog.GetBrandByID(id)
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("brand %d: %w", id, apperrors.ErrNotFound)
		}
		return b, err
	}
	return r.Catalog.FindOrCreateBrand(strings.ToUpper(text))
}

// resolveModelRef resolves a model within the already-resolved brand. Free
// text without a brand is a validation failure: models are brand-scoped.
func resolveModelRef(r *repository.Registry, brand *models.Brand, raw string) (*models.DeviceModel, error) {
	text, id, isID, empty := parseCatalogRaw(raw)
	if empty {
		return nil, nil
	}
	if isID {
		m, err := r.Catalog.GetModelByID(id)
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("model %d: %w", id, apperrors.ErrNotFound)
		}
		return m, err
	}
	if brand == nil {
		verrs := apperrors.NewValidation()
		verrs.Add("model", "brand required before model")
		return nil, verrs
	}
	return r.Catalog.FindOrCreateModel(brand.ID, strings.ToUpper(text))
}

// CatalogService exposes catalog reconciliation as a standalone operation.
type CatalogService interface {
	Reconcile(kind models.CatalogKind, raw string, brandRef string) (*CatalogRef, error)
}

type catalogService struct {
	uow repository.UnitOfWork
}

func NewCatalogService(uow repository.UnitOfWork) CatalogService {
	return &catalogService{uow: uow}
}

func (s *catalogService) Reconcile(kind models.CatalogKind, raw string, brandRef string) (*CatalogRef, error) {
	var ref *CatalogRef
	err := s.uow.Do(func(r *repository.Registry) error {
		switch kind {
		case models.KindDeviceType:
			t, err := resolveTypeRef(r, raw)
			if err != nil {
				return err
			}
			if t != nil {
				ref = &CatalogRef{ID: t.ID, Name: t.Name}
			}
		case models.KindBrand:
			b, err := resolveBrandRef(r, raw)
			if err != nil {
				return err
			}
			if b != nil {
				ref = &CatalogRef{ID: b.ID, Name: b.Name}
			}
		case models.KindModel:
			brand, err := resolveBrandRef(r, brandRef)
			if err != nil {
				return err
			}
			m, err := resolveModelRef(r, brand, raw)
			if err != nil {
				return err
			}
			if m != nil {
				ref = &CatalogRef{ID: m.ID, Name: m.Name}
			}
		default:
			verrs := apperrors.NewValidation()
			verrs.Add("kind", fmt.Sprintf("unknown catalog kind %q", kind))
			return verrs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ref, nil
}
