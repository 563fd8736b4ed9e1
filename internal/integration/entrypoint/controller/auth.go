package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// AuthController handles device authentication endpoints.
type AuthController struct {
	loginUseCase    *auth.LoginDeviceUseCase
	validateUseCase *auth.ValidateTokenUseCase
	listUseCase     *auth.ListDevicesUseCase
	revokeUseCase   *auth.RevokeDeviceUseCase
	cleanupUseCase  *auth.CleanupDevicesUseCase
	retentionDays   int
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	loginUseCase *auth.LoginDeviceUseCase,
	validateUseCase *auth.ValidateTokenUseCase,
	listUseCase *auth.ListDevicesUseCase,
	revokeUseCase *auth.RevokeDeviceUseCase,
	cleanupUseCase *auth.CleanupDevicesUseCase,
	retentionDays int,
) *AuthController {
	return &AuthController{
		loginUseCase:    loginUseCase,
		validateUseCase: validateUseCase,
		listUseCase:     listUseCase,
		revokeUseCase:   revokeUseCase,
		cleanupUseCase:  cleanupUseCase,
		retentionDays:   retentionDays,
	}
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = ctx.GetHeader(middleware.DeviceIDHeader)
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginDeviceInput{
		Password:   req.Password,
		DeviceID:   deviceID,
		DeviceName: req.DeviceName,
		UserAgent:  ctx.Request.UserAgent(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoginResponse(output))
}

// Validate handles GET /auth/validate requests. It always answers 200 with
// the verdict so clients can probe a stored token.
func (c *AuthController) Validate(ctx *gin.Context) {
	token, ok := middleware.BearerToken(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, dto.ValidateResponse{Valid: false})
		return
	}

	result := c.validateUseCase.Execute(ctx.Request.Context(), auth.ValidateTokenInput{
		Token:    token,
		DeviceID: ctx.GetHeader(middleware.DeviceIDHeader),
	})
	if !result.Valid {
		ctx.JSON(http.StatusOK, dto.ValidateResponse{Valid: false})
		return
	}

	device := dto.ToDeviceResponse(result.Device, result.Device.DeviceID)
	ctx.JSON(http.StatusOK, dto.ValidateResponse{Valid: true, Device: &device})
}

// ListDevices handles GET /auth/devices requests.
func (c *AuthController) ListDevices(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	currentDeviceID, _ := middleware.GetDeviceIDFromContext(ctx)
	ctx.JSON(http.StatusOK, dto.ToDeviceListResponse(output, currentDeviceID))
}

// RevokeDevice handles DELETE /auth/devices/:deviceId requests.
func (c *AuthController) RevokeDevice(ctx *gin.Context) {
	deviceID := ctx.Param("deviceId")
	output, err := c.revokeUseCase.Execute(ctx.Request.Context(), auth.RevokeDeviceInput{DeviceID: deviceID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RevokeDeviceResponse{
		DeviceID: deviceID,
		Found:    output.Found,
	})
}

// Logout handles POST /auth/logout requests by revoking the calling device.
func (c *AuthController) Logout(ctx *gin.Context) {
	deviceID, ok := middleware.GetDeviceIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Device not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	if _, err := c.revokeUseCase.Execute(ctx.Request.Context(), auth.RevokeDeviceInput{DeviceID: deviceID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// CleanupDevices handles POST /auth/devices/cleanup requests.
func (c *AuthController) CleanupDevices(ctx *gin.Context) {
	var req dto.CleanupDevicesRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body",
				Code:  string(domainerror.ErrCodeMissingFields),
			})
			return
		}
	}

	retention := c.retentionDays
	if req.RetentionDays != nil {
		retention = *req.RetentionDays
	}

	output, err := c.cleanupUseCase.Execute(ctx.Request.Context(), auth.CleanupDevicesInput{RetentionDays: retention})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CleanupDevicesResponse{
		Deactivated: output.Deactivated,
		Cutoff:      output.Cutoff,
	})
}
