// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/recurring/internal/application/usecase/reminder"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// ReminderController handles reminder configuration and trigger endpoints.
type ReminderController struct {
	getConfigUseCase      *reminder.GetConfigUseCase
	updateConfigUseCase   *reminder.UpdateConfigUseCase
	checkUseCase          *reminder.CheckRemindersUseCase
	listDeliveriesUseCase *reminder.ListDeliveriesUseCase
}

// NewReminderController creates a new reminder controller instance.
func NewReminderController(
	getConfigUseCase *reminder.GetConfigUseCase,
	updateConfigUseCase *reminder.UpdateConfigUseCase,
	checkUseCase *reminder.CheckRemindersUseCase,
	listDeliveriesUseCase *reminder.ListDeliveriesUseCase,
) *ReminderController {
	return &ReminderController{
		getConfigUseCase:      getConfigUseCase,
		updateConfigUseCase:   updateConfigUseCase,
		checkUseCase:          checkUseCase,
		listDeliveriesUseCase: listDeliveriesUseCase,
	}
}

// GetConfig handles GET /reminders/config requests.
func (c *ReminderController) GetConfig(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getConfigUseCase.Execute(ctx.Request.Context(), reminder.GetConfigInput{
		UserID: userID,
	})
	if err != nil {
		c.handleReminderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderConfigResponse(output.Config))
}

// UpdateConfig handles PUT /reminders/config requests.
func (c *ReminderController) UpdateConfig(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.UpdateReminderConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingReminderField),
		})
		return
	}

	output, err := c.updateConfigUseCase.Execute(ctx.Request.Context(), req.ToInput(userID))
	if err != nil {
		c.handleReminderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderConfigResponse(output.Config))
}

// Check handles POST /reminders/check requests.
// It runs the reminder trigger for the caller only.
func (c *ReminderController) Check(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.checkUseCase.Execute(ctx.Request.Context(), reminder.CheckRemindersInput{
		UserID: &userID,
	})
	if err != nil {
		c.handleReminderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderCheckResponse(output))
}

// Deliveries handles GET /reminders/deliveries requests.
func (c *ReminderController) Deliveries(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.Query("limit"))

	output, err := c.listDeliveriesUseCase.Execute(ctx.Request.Context(), reminder.ListDeliveriesInput{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		c.handleReminderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderDeliveryListResponse(output.Deliveries))
}

// handleReminderError handles reminder errors and returns appropriate HTTP responses.
func (c *ReminderController) handleReminderError(ctx *gin.Context, err error) {
	var rmdErr *domainerror.ReminderError
	if errors.As(err, &rmdErr) {
		ctx.JSON(c.getStatusCodeForReminderError(rmdErr.Code), dto.ErrorResponse{
			Error: rmdErr.Message,
			Code:  string(rmdErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForReminderError maps reminder error codes to HTTP status codes.
func (c *ReminderController) getStatusCodeForReminderError(code domainerror.ReminderErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTimeOfDay,
		domainerror.ErrCodeInvalidDaysBeforeDue,
		domainerror.ErrCodeMissingReminderField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
