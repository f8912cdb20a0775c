package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/novatrust/funds_transfer_app/internal/dto"
	"github.com/novatrust/funds_transfer_app/internal/middleware"
)

// sessionHandler drives the multi-step review-and-confirm transfer flow.
type sessionHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newSessionHandler(ts portssvc.TransferSvcFacade) *sessionHandler {
	return &sessionHandler{transferService: ts}
}

// registerSessionRoutes registers the transfer session routes.
func registerSessionRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newSessionHandler(transferService)

	sessions := rg.Group("/transfer-sessions")
	{
		sessions.POST("", h.beginSession)
		sessions.GET("/:sessionID", h.getSession)
		sessions.POST("/:sessionID/review", h.reviewSession)
		sessions.POST("/:sessionID/confirm", h.confirmSession)
		sessions.POST("/:sessionID/back", h.backSession)
		sessions.POST("/:sessionID/restart", h.restartSession)
	}
}

func (h *sessionHandler) customerID(c *gin.Context) (string, bool) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Customer ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return customerID, ok
}

// respondSessionError maps session service errors onto HTTP statuses.
func respondSessionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Session not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Session state does not allow this action", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Session operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session operation failed"})
	}
}

// beginSession godoc
// @Summary Start a transfer session
// @Description Creates a new session in the collecting state
// @Tags transfer-sessions
// @Produce  json
// @Success 201 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Session operation failed"
// @Security BearerAuth
// @Router /transfer-sessions [post]
func (h *sessionHandler) beginSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}

	session, err := h.transferService.BeginSession(c.Request.Context(), customerID)
	if err != nil {
		respondSessionError(c, logger, err)
		return
	}

	logger.Info("Transfer session started", slog.String("session_id", session.SessionID))
	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// getSession godoc
// @Summary Get a transfer session
// @Tags transfer-sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /transfer-sessions/{sessionID} [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}

	session, err := h.transferService.GetSession(c.Request.Context(), c.Param("sessionID"), customerID)
	if err != nil {
		respondSessionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// reviewSession godoc
// @Summary Submit transfer details for review
// @Description Validates the submitted details; on success the session moves to reviewing with the fee quoted, on a validation failure it stays collecting and the reason is returned
// @Tags transfer-sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session state does not allow review"
// @Failure 422 {object} dto.SessionResponse "Validation failure; session stays collecting"
// @Security BearerAuth
// @Router /transfer-sessions/{sessionID}/review [post]
func (h *sessionHandler) reviewSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReviewSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.transferService.ReviewSession(c.Request.Context(), c.Param("sessionID"), customerID, req.ToDomain())
	if err != nil {
		if session != nil && (errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound)) {
			// Validation failed: the session is returned still collecting.
			resp := dto.ToSessionResponse(session)
			resp.FailureReason = err.Error()
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}
		respondSessionError(c, logger, err)
		return
	}

	logger.Info("Transfer session moved to review", slog.String("session_id", session.SessionID))
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// confirmSession godoc
// @Summary Confirm and execute the reviewed transfer
// @Description Applies the transfer; the session moves to completed with a reference, or to failed with a generic message
// @Tags transfer-sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session is not in the reviewing state"
// @Security BearerAuth
// @Router /transfer-sessions/{sessionID}/confirm [post]
func (h *sessionHandler) confirmSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}

	session, err := h.transferService.ConfirmSession(c.Request.Context(), c.Param("sessionID"), customerID)
	if err != nil {
		respondSessionError(c, logger, err)
		return
	}

	logger.Info("Transfer session confirmed",
		slog.String("session_id", session.SessionID),
		slog.String("state", string(session.State)),
	)
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// backSession godoc
// @Summary Return from review to editing
// @Description Moves the session back to collecting, retaining the submitted details
// @Tags transfer-sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session is not in the reviewing state"
// @Security BearerAuth
// @Router /transfer-sessions/{sessionID}/back [post]
func (h *sessionHandler) backSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}

	session, err := h.transferService.BackSession(c.Request.Context(), c.Param("sessionID"), customerID)
	if err != nil {
		respondSessionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// restartSession godoc
// @Summary Restart a failed transfer session
// @Description Moves the session from failed back to collecting for another attempt
// @Tags transfer-sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session is not in the failed state"
// @Security BearerAuth
// @Router /transfer-sessions/{sessionID}/restart [post]
func (h *sessionHandler) restartSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}

	session, err := h.transferService.RestartSession(c.Request.Context(), c.Param("sessionID"), customerID)
	if err != nil {
		respondSessionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
