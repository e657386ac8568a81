package services

import (
	"sort"
	"strings"
	"time"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

// fakeStore is an in-memory stand-in for the database. The fake unit of
// work snapshots it before each transaction and restores it on error, so
// rollback behavior can be asserted without a real database.
type fakeStore struct {
	nextID       uint
	customers    map[uint]models.Customer
	types        map[uint]models.DeviceType
	brands       map[uint]models.Brand
	deviceModels map[uint]models.DeviceModel
	devices      map[uint]models.Device
	technicians  map[uint]models.Technician
	orders       map[uint]models.ServiceOrder
	parts        map[uint]models.Part
	usages       map[uint]models.PartUsage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:    make(map[uint]models.Customer),
		types:        make(map[uint]models.DeviceType),
		brands:       make(map[uint]models.Brand),
		deviceModels: make(map[uint]models.DeviceModel),
		devices:      make(map[uint]models.Device),
		technicians:  make(map[uint]models.Technician),
		orders:       make(map[uint]models.ServiceOrder),
		parts:        make(map[uint]models.Part),
		usages:       make(map[uint]models.PartUsage),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextID = s.nextID
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.types {
		c.types[k] = v
	}
	for k, v := range s.brands {
		c.brands[k] = v
	}
	for k, v := range s.deviceModels {
		c.deviceModels[k] = v
	}
	for k, v := range s.devices {
		c.devices[k] = v
	}
	for k, v := range s.technicians {
		c.technicians[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.parts {
		c.parts[k] = v
	}
	for k, v := range s.usages {
		c.usages[k] = v
	}
	return c
}

func newFakeRegistry(s *fakeStore) *repository.Registry {
	return &repository.Registry{
		Customers:   &fakeCustomerRepo{s},
		Catalog:     &fakeCatalogRepo{s},
		Devices:     &fakeDeviceRepo{s},
		Technicians: &fakeTechnicianRepo{s},
		Orders:      &fakeOrderRepo{s},
		Parts:       &fakePartRepo{s},
		PartUsages:  &fakePartUsageRepo{s},
	}
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Do(fn func(r *repository.Registry) error) error {
	snapshot := u.store.clone()
	if err := fn(newFakeRegistry(u.store)); err != nil {
		*u.store = *snapshot
		return err
	}
	return nil
}

// --- customers ---

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(customer *models.Customer) error {
	for _, existing := range r.s.customers {
		if strings.EqualFold(existing.Key, customer.Key) {
			return &apperrors.ConflictError{Entity: "customer", Value: customer.Key}
		}
	}
	customer.ID = r.s.id()
	customer.CreatedAt = time.Now()
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Update(customer *models.Customer) error {
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id uint) (*models.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetByKey(key string) (*models.Customer, error) {
	for _, c := range r.s.customers {
		if strings.EqualFold(c.Key, key) {
			out := c
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// --- catalog ---

type fakeCatalogRepo struct{ s *fakeStore }

func (r *fakeCatalogRepo) GetTypeByID(id uint) (*models.DeviceType, error) {
	t, ok := r.s.types[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *fakeCatalogRepo) FindOrCreateType(name string) (*models.DeviceType, error) {
	for _, t := range r.s.types {
		if strings.EqualFold(t.Name, name) {
			out := t
			return &out, nil
		}
	}
	t := models.DeviceType{ID: r.s.id(), Name: name}
	r.s.types[t.ID] = t
	return &t, nil
}

func (r *fakeCatalogRepo) SearchTypes(term string, limit int) ([]models.DeviceType, error) {
	var out []models.DeviceType
	for _, t := range r.s.types {
		if strings.Contains(strings.ToUpper(t.Name), strings.ToUpper(term)) && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetBrandByID(id uint) (*models.Brand, error) {
	b, ok := r.s.brands[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (r *fakeCatalogRepo) FindOrCreateBrand(name string) (*models.Brand, error) {
	for _, b := range r.s.brands {
		if strings.EqualFold(b.Name, name) {
			out := b
			return &out, nil
		}
	}
	b := models.Brand{ID: r.s.id(), Name: name}
	r.s.brands[b.ID] = b
	return &b, nil
}

func (r *fakeCatalogRepo) SearchBrands(term string, limit int) ([]models.Brand, error) {
	var out []models.Brand
	for _, b := range r.s.brands {
		if strings.Contains(strings.ToUpper(b.Name), strings.ToUpper(term)) && len(out) < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetModelByID(id uint) (*models.DeviceModel, error) {
	m, ok := r.s.deviceModels[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (r *fakeCatalogRepo) FindOrCreateModel(brandID uint, name string) (*models.DeviceModel, error) {
	for _, m := range r.s.deviceModels {
		if m.BrandID == brandID && strings.EqualFold(m.Name, name) {
			out := m
			return &out, nil
		}
	}
	m := models.DeviceModel{ID: r.s.id(), BrandID: brandID, Name: name}
	r.s.deviceModels[m.ID] = m
	return &m, nil
}

func (r *fakeCatalogRepo) SearchModels(term string, limit int) ([]models.DeviceModel, error) {
	var out []models.DeviceModel
	for _, m := range r.s.deviceModels {
		if strings.Contains(strings.ToUpper(m.Name), strings.ToUpper(term)) && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- devices ---

type fakeDeviceRepo struct{ s *fakeStore }

func (r *fakeDeviceRepo) GetByID(id uint) (*models.Device, error) {
	d, ok := r.s.devices[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDeviceRepo) GetBySerial(serial string) (*models.Device, error) {
	for _, d := range r.s.devices {
		if d.SerialIMEI == serial {
			out := d
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeDeviceRepo) CreateIfAbsent(device *models.Device) (bool, error) {
	if existing, err := r.GetBySerial(device.SerialIMEI); err == nil {
		*device = *existing
		return false, nil
	}
	device.ID = r.s.id()
	device.CreatedAt = time.Now()
	r.s.devices[device.ID] = *device
	return true, nil
}

func (r *fakeDeviceRepo) Update(device *models.Device) error {
	r.s.devices[device.ID] = *device
	return nil
}

func (r *fakeDeviceRepo) SearchSerials(term string, limit int) ([]string, error) {
	var out []string
	for _, d := range r.s.devices {
		if strings.Contains(strings.ToUpper(d.SerialIMEI), strings.ToUpper(term)) && len(out) < limit {
			out = append(out, d.SerialIMEI)
		}
	}
	sort.Strings(out)
	return out, nil
}

// --- technicians ---

type fakeTechnicianRepo struct{ s *fakeStore }

func (r *fakeTechnicianRepo) Create(technician *models.Technician) error {
	technician.ID = r.s.id()
	r.s.technicians[technician.ID] = *technician
	return nil
}

func (r *fakeTechnicianRepo) GetByID(id uint) (*models.Technician, error) {
	t, ok := r.s.technicians[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTechnicianRepo) GetAll() ([]models.Technician, error) {
	var out []models.Technician
	for _, t := range r.s.technicians {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- orders ---

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(order *models.ServiceOrder) error {
	order.ID = r.s.id()
	order.CreatedAt = time.Now()
	r.s.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.ServiceOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) Update(order *models.ServiceOrder) error {
	r.s.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) ListByStatuses(statuses []models.OrderStatus) ([]models.ServiceOrder, error) {
	var out []models.ServiceOrder
	for _, o := range r.s.orders {
		for _, st := range statuses {
			if o.Status == st {
				out = append(out, o)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out, nil
}

// --- parts ---

type fakePartRepo struct{ s *fakeStore }

func (r *fakePartRepo) Create(part *models.Part) error {
	if part.Code != nil {
		for _, existing := range r.s.parts {
			if existing.Code != nil && *existing.Code == *part.Code {
				return &apperrors.ConflictError{Entity: "part", Value: *part.Code}
			}
		}
	}
	part.ID = r.s.id()
	r.s.parts[part.ID] = *part
	return nil
}

func (r *fakePartRepo) GetByID(id uint) (*models.Part, error) {
	p, ok := r.s.parts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *fakePartRepo) GetAll() ([]models.Part, error) {
	var out []models.Part
	for _, p := range r.s.parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, nil
}

// --- part usages ---

type fakePartUsageRepo struct{ s *fakeStore }

func (r *fakePartUsageRepo) Upsert(usage *models.PartUsage) error {
	for id, existing := range r.s.usages {
		if existing.OrderID == usage.OrderID && existing.PartID == usage.PartID {
			existing.Quantity += usage.Quantity
			existing.UnitPrice = usage.UnitPrice
			r.s.usages[id] = existing
			*usage = existing
			return nil
		}
	}
	usage.ID = r.s.id()
	r.s.usages[usage.ID] = *usage
	return nil
}

func (r *fakePartUsageRepo) GetByOrderID(orderID uint) ([]models.PartUsage, error) {
	var out []models.PartUsage
	for _, u := range r.s.usages {
		if u.OrderID == orderID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
