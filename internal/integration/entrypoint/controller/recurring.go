// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring schedule endpoints.
type RecurringController struct {
	listUseCase         *recurring.ListSchedulesUseCase
	createUseCase       *recurring.CreateScheduleUseCase
	getUseCase          *recurring.GetScheduleUseCase
	updateUseCase       *recurring.UpdateScheduleUseCase
	setActiveUseCase    *recurring.SetScheduleActiveUseCase
	deleteUseCase       *recurring.DeleteScheduleUseCase
	upcomingUseCase     *recurring.ListUpcomingUseCase
	processUseCase      *recurring.ApplyDueProcessingUseCase
	transactionsUseCase *recurring.ListScheduleTransactionsUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	listUseCase *recurring.ListSchedulesUseCase,
	createUseCase *recurring.CreateScheduleUseCase,
	getUseCase *recurring.GetScheduleUseCase,
	updateUseCase *recurring.UpdateScheduleUseCase,
	setActiveUseCase *recurring.SetScheduleActiveUseCase,
	deleteUseCase *recurring.DeleteScheduleUseCase,
	upcomingUseCase *recurring.ListUpcomingUseCase,
	processUseCase *recurring.ApplyDueProcessingUseCase,
	transactionsUseCase *recurring.ListScheduleTransactionsUseCase,
) *RecurringController {
	return &RecurringController{
		listUseCase:         listUseCase,
		createUseCase:       createUseCase,
		getUseCase:          getUseCase,
		updateUseCase:       updateUseCase,
		setActiveUseCase:    setActiveUseCase,
		deleteUseCase:       deleteUseCase,
		upcomingUseCase:     upcomingUseCase,
		processUseCase:      processUseCase,
		transactionsUseCase: transactionsUseCase,
	}
}

// List handles GET /recurring requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	activeOnly := ctx.Query("active") == "true"

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListSchedulesInput{
		UserID:     userID,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve recurring schedules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleListResponse(output.Schedules))
}

// Create handles POST /recurring requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingScheduleFields),
		})
		return
	}

	input, err := req.ToInput(userID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidScheduleDates),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToScheduleResponse(output.Schedule))
}

// Get handles GET /recurring/:id requests.
func (c *RecurringController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	scheduleID, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), recurring.GetScheduleInput{
		ScheduleID: scheduleID,
		UserID:     userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleResponse(output.Schedule))
}

// Update handles PATCH /recurring/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	scheduleID, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req dto.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingScheduleFields),
		})
		return
	}

	input, err := req.ToInput(scheduleID, userID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidScheduleDates),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleResponse(output.Schedule))
}

// Activate handles POST /recurring/:id/activate requests.
func (c *RecurringController) Activate(ctx *gin.Context) {
	c.setActive(ctx, true)
}

// Deactivate handles POST /recurring/:id/deactivate requests.
func (c *RecurringController) Deactivate(ctx *gin.Context) {
	c.setActive(ctx, false)
}

func (c *RecurringController) setActive(ctx *gin.Context, active bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	scheduleID, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	output, err := c.setActiveUseCase.Execute(ctx.Request.Context(), recurring.SetScheduleActiveInput{
		ScheduleID: scheduleID,
		UserID:     userID,
		Active:     active,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleResponse(output.Schedule))
}

// Delete handles DELETE /recurring/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	scheduleID, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteScheduleInput{
		ScheduleID: scheduleID,
		UserID:     userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	// Return no content on success
	ctx.Status(http.StatusNoContent)
}

// Upcoming handles GET /recurring/upcoming requests.
func (c *RecurringController) Upcoming(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	days := 0
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "days must be an integer",
				Code:  string(domainerror.ErrCodeInvalidHorizon),
			})
			return
		}
		days = parsed
	}

	output, err := c.upcomingUseCase.Execute(ctx.Request.Context(), recurring.ListUpcomingInput{
		UserID: userID,
		Days:   days,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpcomingResponse(output))
}

// Process handles POST /recurring/process requests.
// It applies due processing to the caller's schedules only.
func (c *RecurringController) Process(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.processUseCase.Execute(ctx.Request.Context(), recurring.ApplyDueProcessingInput{
		UserID: &userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDueProcessingResponse(output))
}

// Transactions handles GET /recurring/:id/transactions requests.
func (c *RecurringController) Transactions(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	scheduleID, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	output, err := c.transactionsUseCase.Execute(ctx.Request.Context(), recurring.ListScheduleTransactionsInput{
		ScheduleID: scheduleID,
		UserID:     userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGeneratedTransactionListResponse(output.Transactions))
}

// handleRecurringError handles recurring errors and returns appropriate HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		statusCode := c.getStatusCodeForRecurringError(recErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeScheduleNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedSchedule:
		return http.StatusForbidden
	case domainerror.ErrCodeScheduleConflict, domainerror.ErrCodeDuplicateOccurrence:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidScheduleAmount,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidAnchorDay,
		domainerror.ErrCodeInvalidScheduleKind,
		domainerror.ErrCodeInvalidScheduleDates,
		domainerror.ErrCodeMissingScheduleFields,
		domainerror.ErrCodeInvalidHorizon:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requireUser reads the authenticated user or answers 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

func parseScheduleID(ctx *gin.Context) (uuid.UUID, bool) {
	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring schedule ID format",
		})
		return uuid.Nil, false
	}
	return scheduleID, true
}
