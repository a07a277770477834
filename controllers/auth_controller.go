package controllers

import (
	"restay/constants"
	"restay/dto"
	"restay/response"
	"restay/services"
	"restay/services/logger"

	"github.com/gin-gonic/gin"
)

const accessTokenMinutes = 24 * 60

// AuthController serves the session endpoints.
type AuthController struct {
	auth   *services.AuthManager
	users  *services.UserService
	logger logger.Logger
}

type AuthControllerOptions struct {
	Auth   *services.AuthManager
	Users  *services.UserService
	Logger logger.Logger
}

func NewAuthController(opts AuthControllerOptions) *AuthController {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AuthController{auth: opts.Auth, users: opts.Users, logger: l}
}

// Login authenticates a credential pair and issues an access token
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	session, err := ctl.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.respondWithToken(c, session)
}

// GoogleLogin exchanges an identity-provider token for a session
func (ctl *AuthController) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Token is required")
		return
	}

	session, err := ctl.auth.LoginWithGoogle(c.Request.Context(), req.TokenID)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.respondWithToken(c, session)
}

// Logout ends the current session
func (ctl *AuthController) Logout(c *gin.Context) {
	if err := ctl.auth.Logout(c.Request.Context()); err != nil {
		ctl.logger.Error("logout failed: %v", err)
	}
	response.SuccessWithMessage(c, "Logged out", nil)
}

// Session reports the current session lifecycle phase and identity
func (ctl *AuthController) Session(c *gin.Context) {
	response.Success(c, gin.H{
		"state":   ctl.auth.State(),
		"session": ctl.auth.Current(),
	})
}

// Profile returns the account behind the verified token
func (ctl *AuthController) Profile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c)
		return
	}

	user, err := ctl.users.Get(c.Request.Context(), userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toUserResponse(*user))
}

func (ctl *AuthController) respondWithToken(c *gin.Context, session *services.Session) {
	token, err := services.GenerateToken(services.UserInfo{
		UserID: session.UserID,
		Role:   session.Role,
	}, accessTokenMinutes)
	if err != nil {
		ctl.logger.Error("token generation failed: %v", err)
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User: dto.UserResponse{
			ID:    session.UserID,
			Name:  session.Name,
			Email: session.Email,
			Role:  session.Role,
			// Fallback demo accounts are always active.
			Status:    constants.UserStatusActive,
			LastLogin: session.LoginedAt,
		},
	})
}
