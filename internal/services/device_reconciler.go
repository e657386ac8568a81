package services

import (
	"strings"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
	"repair_shop/internal/repository"
)

// mergeDeviceAttrs refreshes a reused device with newly submitted values.
// Blank submissions never overwrite what is already on file: a returning
// customer with an incomplete form must not erase stored data.
func mergeDeviceAttrs(device *models.Device, in DeviceInput, t *models.DeviceType, b *models.Brand, m *models.DeviceModel) {
	if t != nil {
		device.TypeID = &t.ID
		device.Type = t
	}
	if b != nil {
		device.BrandID = &b.ID
		device.Brand = b
	}
	if m != nil {
		device.ModelID = &m.ID
		device.Model = m
	}
	if in.Accessories != "" {
		device.Accessories = in.Accessories
	}
	if in.Condition != "" {
		device.Condition = in.Condition
	}
	if in.PurchaseDate != nil {
		device.PurchaseDate = in.PurchaseDate
	}
}

// reconcileDevice resolves the serial/IMEI to a device row, creating one
// when absent. The created flag is surfaced for audit logging only.
func reconcileDevice(r *repository.Registry, in DeviceInput, t *models.DeviceType, b *models.Brand, m *models.DeviceModel) (device *models.Device, created bool, err error) {
	serial := strings.TrimSpace(in.SerialIMEI)
	if serial == "" {
		verrs := apperrors.NewValidation()
		verrs.Add("serial_imei", "serial/IMEI required")
		return nil, false, verrs
	}

	existing, err := r.Devices.GetBySerial(serial)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	if existing == nil {
		d := &models.Device{
			SerialIMEI:   serial,
			Accessories:  in.Accessories,
			Condition:    in.Condition,
			PurchaseDate: in.PurchaseDate,
		}
		if t != nil {
			d.TypeID = &t.ID
			d.Type = t
		}
		if b != nil {
			d.BrandID = &b.ID
			d.Brand = b
		}
		if m != nil {
			d.ModelID = &m.ID
			d.Model = m
		}
		inserted, err := r.Devices.CreateIfAbsent(d)
		if err != nil {
			return nil, false, err
		}
		if inserted {
			return d, true, nil
		}
		// Lost a creation race: d now holds the concurrently created row,
		// fall through to the reuse path.
		existing = d
	}

	mergeDeviceAttrs(existing, in, t, b, m)
	if err := r.Devices.Update(existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
