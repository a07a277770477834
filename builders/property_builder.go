package builders

import (
	"strconv"
	"strings"

	"restay/dto"
	"restay/models"

	"gorm.io/datatypes"
)

// BuildReport carries non-fatal conditions noticed while mapping a form.
type BuildReport struct {
	// ManagerUnavailable is set when a manager id was supplied but no such
	// manager exists. The assignment is dropped and the property is still
	// built without a manager.
	ManagerUnavailable bool
}

// PropertyBuilder maps validated form values onto the persistence shape
// step by step.
type PropertyBuilder struct {
	property *models.Property
	report   *BuildReport
}

// NewPropertyBuilder creates a new PropertyBuilder instance
func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{
		property: &models.Property{},
		report:   &BuildReport{},
	}
}

// WithForm applies the form values: trims text fields, clamps the counts
// that must stay positive, and defaults optional fields to empty values.
func (b *PropertyBuilder) WithForm(form dto.PropertyForm) *PropertyBuilder {
	b.property.ID = form.ID
	b.property.Name = strings.TrimSpace(form.Name)
	b.property.Type = form.Type
	b.property.Location = strings.TrimSpace(form.Location)
	b.property.ContactInfo = strings.TrimSpace(form.ContactInfo)
	b.property.TotalRooms = clampMin(form.TotalRooms, 1)
	b.property.TotalBeds = clampMin(form.TotalBeds, 1)
	b.property.Floors = clampMin(form.Floors, 1)

	roomTypes := make([]models.RoomTypeTemplate, 0, len(form.RoomTypes))
	for _, rt := range form.RoomTypes {
		amenities := rt.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		roomTypes = append(roomTypes, models.RoomTypeTemplate{
			Name:      strings.TrimSpace(rt.Name),
			Capacity:  clampMin(rt.Capacity, 1),
			Price:     rt.Price,
			Amenities: amenities,
		})
	}
	b.property.RoomTypes = datatypes.NewJSONSlice(roomTypes)
	b.property.Amenities = datatypes.NewJSONSlice([]string{})
	return b
}

// WithImages applies the uploaded image URL list
func (b *PropertyBuilder) WithImages(images []string) *PropertyBuilder {
	if images == nil {
		images = []string{}
	}
	b.property.Images = datatypes.NewJSONSlice(images)
	return b
}

// WithManager resolves the manager reference against the known managers.
// An id that resolves to nobody drops the assignment instead of failing
// the whole build.
func (b *PropertyBuilder) WithManager(managerID string, managers []models.User) *PropertyBuilder {
	if managerID == "" || managerID == "none" {
		return b
	}

	id, err := strconv.ParseUint(managerID, 10, 32)
	if err != nil {
		b.report.ManagerUnavailable = true
		return b
	}

	for _, m := range managers {
		if m.ID == uint(id) {
			mid := m.ID
			b.property.ManagerID = &mid
			b.property.ManagerName = m.Name
			return b
		}
	}

	b.report.ManagerUnavailable = true
	return b
}

// WithExisting carries the derived aggregates of the prior snapshot through
// an edit. Aggregates are recomputed after the mutation lands, so the form
// never supplies them.
func (b *PropertyBuilder) WithExisting(prior *models.Property) *PropertyBuilder {
	if prior == nil {
		return b
	}
	b.property.Revenue = prior.Revenue
	b.property.MonthlyRent = prior.MonthlyRent
	b.property.OccupancyRate = prior.OccupancyRate
	b.property.ActualOccupancy = prior.ActualOccupancy
	b.property.TotalCapacity = prior.TotalCapacity
	b.property.CreatedAt = prior.CreatedAt
	return b
}

// Build returns the finished property and the build report
func (b *PropertyBuilder) Build() (*models.Property, *BuildReport) {
	return b.property, b.report
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
