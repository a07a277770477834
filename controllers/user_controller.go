package controllers

import (
	"fmt"

	"restay/builders"
	"restay/dto"
	"restay/response"
	"restay/services"
	"restay/services/logger"
	"restay/services/notification"
	"restay/validator"

	"github.com/gin-gonic/gin"
)

// UserController serves the staff account endpoints.
type UserController struct {
	users    *services.UserService
	notifier notification.Service
	logger   logger.Logger
}

type UserControllerOptions struct {
	Users    *services.UserService
	Notifier notification.Service
	Logger   logger.Logger
}

func NewUserController(opts UserControllerOptions) *UserController {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	n := opts.Notifier
	if n == nil {
		n = notification.NewLogService()
	}
	return &UserController{users: opts.Users, notifier: n, logger: l}
}

// List returns accounts with optional name/email filter and paging
func (ctl *UserController) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	users, total, err := ctl.users.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	response.SuccessWithPagination(c, out, q.Page, q.Limit, total)
}

// Get returns one account
func (ctl *UserController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := ctl.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toUserResponse(*user))
}

// Create validates and persists a new account
func (ctl *UserController) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if violations := validator.UserForm(req); len(violations) > 0 {
		response.ValidationError(c, joinViolations(violations))
		return
	}
	if req.Password != "" {
		if err := validator.ValidatePassword(req.Password); err != nil {
			respondError(c, err)
			return
		}
	}

	user := builders.BuildUser(req)
	if err := ctl.users.Create(c.Request.Context(), &user, req.Password); err != nil {
		respondError(c, err)
		return
	}

	if nerr := ctl.notifier.Notify("User Added", fmt.Sprintf("%s has been added.", user.Name), notification.SeveritySuccess); nerr != nil {
		ctl.logger.Error("failed to send notification: %v", nerr)
	}
	response.Success(c, toUserResponse(user))
}

// Update applies a partial edit to an account
func (ctl *UserController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := ctl.users.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toUserResponse(*user))
}

// Delete removes an account
func (ctl *UserController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctl.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "User deleted", nil)
}

// AssignProperty adds a property to an account's assignment list
func (ctl *UserController) AssignProperty(c *gin.Context) {
	var req dto.AssignPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := ctl.users.AssignProperty(c.Request.Context(), req.UserID, req.PropertyName)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toUserResponse(*user))
}

// UnassignProperty removes a property from an account's assignment list
func (ctl *UserController) UnassignProperty(c *gin.Context) {
	var req dto.AssignPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := ctl.users.UnassignProperty(c.Request.Context(), req.UserID, req.PropertyName)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toUserResponse(*user))
}
