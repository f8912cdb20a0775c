package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/novatrust/funds_transfer_app/internal/dto"
	"github.com/novatrust/funds_transfer_app/internal/middleware"
)

// transferHandler handles the one-shot transfer endpoints.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers the fee quote, dry-run and execution routes.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.GET("/fees/:transferType", h.getFee)
		transfers.POST("/validate", h.validateTransfer)
		transfers.POST("", h.executeTransfer)
	}
}

// getFee godoc
// @Summary Get the fee for a transfer type
// @Description Returns the flat fee charged for the given transfer type
// @Tags transfers
// @Produce  json
// @Param   transferType path string true "Transfer type" Enums(INTERNAL, EXTERNAL, WIRE, INTERNATIONAL, MOBILE)
// @Success 200 {object} dto.FeeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transfers/fees/{transferType} [get]
func (h *transferHandler) getFee(c *gin.Context) {
	transferType := domain.TransferType(c.Param("transferType"))
	fee := h.transferService.ResolveFee(transferType)
	c.JSON(http.StatusOK, dto.FeeResponse{TransferType: string(transferType), Fee: fee})
}

// validateTransfer godoc
// @Summary Validate a transfer request without executing it
// @Description Runs the full validation chain and returns a verdict with the first failure reason
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.ValidationResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to validate transfer"
// @Security BearerAuth
// @Router /transfers/validate [post]
func (h *transferHandler) validateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		logger.Error("Customer ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.transferService.ValidateTransferRequest(c.Request.Context(), customerID, req.ToDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.ValidationResponse{Valid: false, Reason: err.Error()})
			return
		}
		logger.Error("Failed to validate transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate transfer"})
		return
	}

	c.JSON(http.StatusOK, dto.ValidationResponse{Valid: true})
}

// executeTransfer godoc
// @Summary Execute a transfer
// @Description Validates, applies fees and moves the money in one atomic step
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Validation failure"
// @Failure 500 {object} map[string]string "Transfer failed"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) executeTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		logger.Error("Customer ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("customer_id", customerID),
		slog.String("from_account_id", req.FromAccountID),
		slog.String("transfer_type", req.TransferType),
	)
	logger.Info("Received request to execute transfer")

	outcome, err := h.transferService.ExecuteTransfer(c.Request.Context(), customerID, req.ToDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Transfer validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			// Execution failures stay generic; the cause is logged only.
			logger.Error("Transfer execution failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transfer failed, please try again"})
		}
		return
	}

	logger.Info("Transfer executed successfully", slog.String("reference", outcome.Reference))
	c.JSON(http.StatusOK, dto.TransferResponse{
		Reference:             outcome.Reference,
		ProcessingTime:        domain.TransferType(req.TransferType).ProcessingEstimate(),
		NewSourceBalance:      outcome.NewSourceBalance,
		NewDestinationBalance: outcome.NewDestinationBalance,
	})
}
