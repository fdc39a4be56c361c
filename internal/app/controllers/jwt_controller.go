package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
)

// InterfaceJWTController defines the authentication controller interface
type InterfaceJWTController interface {
	Login()
	RequestPasswordReset()
	RedeemPasswordReset()
	RevokePasswordReset()
}

// JWTController handles authentication requests
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController creates a new authentication controller
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"Admin@123"`
}

// RequestResetRequest asks for a password reset token
type RequestResetRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
}

// RedeemResetRequest redeems a reset token for a new password
type RedeemResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// RevokeResetRequest invalidates an outstanding reset token
type RevokeResetRequest struct {
	Token string `json:"token" binding:"required"`
}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    int    `json:"code" example:"101002"`
	Message string `json:"message" example:"invalid username or password"`
}

// HandleJWTFunc returns a gin handler dispatching to the named method
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "requestPasswordReset":
			controller.RequestPasswordReset()
		case "redeemPasswordReset":
			controller.RedeemPasswordReset()
		case "revokePasswordReset":
			controller.RevokePasswordReset()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Login authenticates an operator
// @Summary      Operator login
// @Description  Validates credentials and returns a signed JWT
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters", nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Username, req.Password)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, result)
}

// RequestPasswordReset issues a one-time reset token
// @Summary      Request password reset
// @Description  Issues a fresh reset token and revokes earlier active ones
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RequestResetRequest true "Account username"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/password-reset [post]
func (c *JWTController) RequestPasswordReset() {
	var req RequestResetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters", nil)
		return
	}

	resetService := c.Container.GetService("password_reset").(services.InterfacePasswordResetService)
	reset, err := resetService.RequestReset(req.Username)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	// The token would normally leave the system by email only. It is
	// returned in the body because no mail transport is configured.
	response.Success(c.Ctx, gin.H{
		"token":      reset.Token,
		"expires_at": reset.ExpiresAt,
	})
}

// RedeemPasswordReset sets a new password using a reset token
// @Summary      Redeem password reset
// @Description  Validates the reset token and stores the new password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RedeemResetRequest true "Token and new password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/password-reset/redeem [post]
func (c *JWTController) RedeemPasswordReset() {
	var req RedeemResetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters", nil)
		return
	}

	resetService := c.Container.GetService("password_reset").(services.InterfacePasswordResetService)
	if err := resetService.RedeemReset(req.Token, req.NewPassword); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// RevokePasswordReset invalidates an outstanding reset token
// @Summary      Revoke password reset
// @Description  Marks an outstanding reset token unusable
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RevokeResetRequest true "Token to revoke"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/password-reset/revoke [post]
// @Security     BearerAuth
func (c *JWTController) RevokePasswordReset() {
	var req RevokeResetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters", nil)
		return
	}

	resetService := c.Container.GetService("password_reset").(services.InterfacePasswordResetService)
	if err := resetService.RevokeReset(req.Token); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
