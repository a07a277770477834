package controllers

import (
	"fmt"
	"strconv"

	"restay/builders"
	"restay/dto"
	"restay/response"
	"restay/services"
	"restay/services/logger"
	"restay/services/notification"
	"restay/validator"

	"github.com/gin-gonic/gin"
)

// RoomController serves the room management endpoints.
type RoomController struct {
	rooms     *services.RoomService
	reconcile *services.ReconcileService
	notifier  notification.Service
	logger    logger.Logger
}

type RoomControllerOptions struct {
	Rooms     *services.RoomService
	Reconcile *services.ReconcileService
	Notifier  notification.Service
	Logger    logger.Logger
}

func NewRoomController(opts RoomControllerOptions) *RoomController {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	n := opts.Notifier
	if n == nil {
		n = notification.NewLogService()
	}
	return &RoomController{
		rooms:     opts.Rooms,
		reconcile: opts.Reconcile,
		notifier:  n,
		logger:    l,
	}
}

// List returns rooms, optionally scoped to one property via ?pgId=
func (ctl *RoomController) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var propertyID uint
	if raw := c.Query("pgId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid pgId")
			return
		}
		propertyID = uint(parsed)
	}

	rooms, total, err := ctl.rooms.List(c.Request.Context(), propertyID, q)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	response.SuccessWithPagination(c, out, q.Page, q.Limit, total)
}

// Get returns one room
func (ctl *RoomController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := ctl.rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toRoomResponse(*room))
}

// Create validates, maps and persists a new room
func (ctl *RoomController) Create(c *gin.Context) {
	var form dto.RoomForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if violations := validator.RoomForm(form); len(violations) > 0 {
		response.ValidationError(c, joinViolations(violations))
		return
	}

	room := builders.BuildRoom(form)
	if err := ctl.rooms.Create(c.Request.Context(), &room); err != nil {
		respondError(c, err)
		return
	}

	if rerr := ctl.reconcile.RefreshAll(c.Request.Context()); rerr != nil {
		ctl.logger.Error("read model refresh failed: %v", rerr)
	}
	if nerr := ctl.notifier.Notify("Room Added", fmt.Sprintf("Room %s has been added.", room.Number), notification.SeveritySuccess); nerr != nil {
		ctl.logger.Error("failed to send notification: %v", nerr)
	}
	response.Success(c, toRoomResponse(room))
}

// Update validates, maps and saves an edited room
func (ctl *RoomController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.RoomForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	form.ID = id

	if violations := validator.RoomForm(form); len(violations) > 0 {
		response.ValidationError(c, joinViolations(violations))
		return
	}

	room := builders.BuildRoom(form)
	if err := ctl.rooms.Update(c.Request.Context(), &room); err != nil {
		respondError(c, err)
		return
	}

	if rerr := ctl.reconcile.RefreshAll(c.Request.Context()); rerr != nil {
		ctl.logger.Error("read model refresh failed: %v", rerr)
	}
	response.Success(c, toRoomResponse(room))
}

// Delete removes a room
func (ctl *RoomController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctl.rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if rerr := ctl.reconcile.RefreshAll(c.Request.Context()); rerr != nil {
		ctl.logger.Error("read model refresh failed: %v", rerr)
	}
	response.SuccessWithMessage(c, "Room deleted", nil)
}

// BulkCapacity sets the capacity of every room of one type in a property
func (ctl *RoomController) BulkCapacity(c *gin.Context) {
	var req dto.BulkCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	affected, err := ctl.rooms.BulkUpdateCapacity(c.Request.Context(), req.PropertyID, req.RoomTypeName, req.Capacity)
	if err != nil {
		respondError(c, err)
		return
	}

	if rerr := ctl.reconcile.RefreshAll(c.Request.Context()); rerr != nil {
		ctl.logger.Error("read model refresh failed: %v", rerr)
	}
	response.SuccessWithMessage(c, fmt.Sprintf("%d room(s) updated", affected), gin.H{"affected": affected})
}
