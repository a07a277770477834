package controllers

import (
	"fmt"

	"restay/builders"
	"restay/dto"
	apperrors "restay/errors"
	"restay/response"
	"restay/services"
	"restay/services/logger"
	"restay/services/notification"
	"restay/validator"

	"github.com/gin-gonic/gin"
)

// PropertyController serves the property management endpoints.
type PropertyController struct {
	properties *services.PropertyService
	reconcile  *services.ReconcileService
	search     *services.SearchService
	notifier   notification.Service
	logger     logger.Logger
}

type PropertyControllerOptions struct {
	Properties *services.PropertyService
	Reconcile  *services.ReconcileService
	Search     *services.SearchService
	Notifier   notification.Service
	Logger     logger.Logger
}

func NewPropertyController(opts PropertyControllerOptions) *PropertyController {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	n := opts.Notifier
	if n == nil {
		n = notification.NewLogService()
	}
	return &PropertyController{
		properties: opts.Properties,
		reconcile:  opts.Reconcile,
		search:     opts.Search,
		notifier:   n,
		logger:     l,
	}
}

// List returns properties with optional name filter and paging
func (ctl *PropertyController) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	properties, total, err := ctl.properties.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, toPropertyResponse(p))
	}
	response.SuccessWithPagination(c, out, q.Page, q.Limit, total)
}

// Get returns one property with its rooms
func (ctl *PropertyController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := ctl.properties.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, property)
}

// Create validates, maps and persists a new property. A duplicate submit
// while one is in flight returns success without creating anything; a room
// generation failure keeps the property and reports the partial outcome.
func (ctl *PropertyController) Create(c *gin.Context) {
	var form dto.PropertyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if violations := validator.PropertyForm(form); len(violations) > 0 {
		response.ValidationError(c, joinViolations(violations))
		return
	}

	managers, err := ctl.properties.Managers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	property, report := builders.NewPropertyBuilder().
		WithForm(form).
		WithImages(form.Images).
		WithManager(form.ManagerID, managers).
		Build()

	if report.ManagerUnavailable {
		if nerr := ctl.notifier.Notify(
			"Warning",
			"Selected manager is not available. The PG will be created without a manager.",
			notification.SeverityWarning,
		); nerr != nil {
			ctl.logger.Error("failed to send notification: %v", nerr)
		}
	}

	err = ctl.properties.Create(c.Request.Context(), property, form.Allocations)
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.ErrCodeSubmitInFlight:
			// Duplicate submit, dropped without a second create.
			response.SuccessWithMessage(c, apperrors.UserMessage(err), nil)
			return
		case apperrors.ErrCodePartialFailure:
			if rerr := ctl.reconcile.RefreshAll(c.Request.Context()); rerr != nil {
				ctl.logger.Error("read model refresh failed: %v", rerr)
			}
			response.SuccessWithMessage(c, apperrors.UserMessage(err), toPropertyResponse(*property))
			return
		}
		respondError(c, err)
		return
	}

	if rerr := ctl.reconcile.RefreshAll(c.Request.Context()); rerr != nil {
		ctl.logger.Error("read model refresh failed: %v", rerr)
	}
	if nerr := ctl.notifier.Notify("PG Added", fmt.Sprintf("%s has been added.", property.Name), notification.SeveritySuccess); nerr != nil {
		ctl.logger.Error("failed to send notification: %v", nerr)
	}
	response.Success(c, toPropertyResponse(*property))
}

// Update validates, maps and saves an edited property, then reconciles the
// room rows against the changed room-type templates.
func (ctl *PropertyController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.PropertyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	form.ID = id

	if violations := validator.PropertyForm(form); len(violations) > 0 {
		response.ValidationError(c, joinViolations(violations))
		return
	}

	prior, err := ctl.properties.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	managers, err := ctl.properties.Managers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	property, report := builders.NewPropertyBuilder().
		WithForm(form).
		WithImages(form.Images).
		WithManager(form.ManagerID, managers).
		WithExisting(prior).
		Build()

	if report.ManagerUnavailable {
		if nerr := ctl.notifier.Notify(
			"Warning",
			"Selected manager is not available. The manager assignment was dropped.",
			notification.SeverityWarning,
		); nerr != nil {
			ctl.logger.Error("failed to send notification: %v", nerr)
		}
	}

	if err := ctl.properties.Update(c.Request.Context(), property); err != nil {
		respondError(c, err)
		return
	}

	recErr := ctl.reconcile.PropertyUpdated(c.Request.Context(), prior, property)
	if recErr != nil && apperrors.CodeOf(recErr) == apperrors.ErrCodePartialFailure {
		response.SuccessWithMessage(c, apperrors.UserMessage(recErr), toPropertyResponse(*property))
		return
	}

	if nerr := ctl.notifier.Notify("PG Updated", fmt.Sprintf("%s has been updated.", property.Name), notification.SeveritySuccess); nerr != nil {
		ctl.logger.Error("failed to send notification: %v", nerr)
	}
	response.Success(c, toPropertyResponse(*property))
}

// Delete removes a property and its rooms
func (ctl *PropertyController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := ctl.properties.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctl.properties.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if rerr := ctl.reconcile.PropertyDeleted(c.Request.Context(), id); rerr != nil {
		ctl.logger.Error("read model refresh failed: %v", rerr)
	}
	if nerr := ctl.notifier.Notify("PG Deleted", fmt.Sprintf("%s and its rooms have been removed.", property.Name), notification.SeverityInfo); nerr != nil {
		ctl.logger.Error("failed to send notification: %v", nerr)
	}
	response.SuccessWithMessage(c, fmt.Sprintf("%s deleted", property.Name), nil)
}

// Managers returns the accounts that can be assigned as a property manager
func (ctl *PropertyController) Managers(c *gin.Context) {
	managers, err := ctl.properties.Managers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(managers))
	for _, m := range managers {
		out = append(out, toUserResponse(m))
	}
	response.Success(c, out)
}

// Occupancy returns the derived per-property occupancy aggregates
func (ctl *PropertyController) Occupancy(c *gin.Context) {
	response.Success(c, ctl.reconcile.OccupancySummaries())
}

// Search scores properties against a free-text query
func (ctl *PropertyController) Search(c *gin.Context) {
	query := c.Query("q")
	results, err := ctl.search.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, results)
}
