package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/application/service"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/request"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/response"
)

// SessionHandler handles register session endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// OpenSession handles POST /api/v1/pos/sessions
func (h *SessionHandler) OpenSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req request.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), &service.OpenSessionInput{
		CashierID:   userID,
		OpeningCash: req.OpeningCash,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened", session)
}

// GetOpenSession handles GET /api/v1/pos/sessions/current
func (h *SessionHandler) GetOpenSession(c *gin.Context) {
	session, err := h.sessionService.GetOpenSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Open session retrieved", session)
}

// GetSession handles GET /api/v1/pos/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved", session)
}

// RequestClose handles POST /api/v1/pos/sessions/:id/request-close
func (h *SessionHandler) RequestClose(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.RequestClose(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session closing", session)
}

// CloseSession handles POST /api/v1/pos/sessions/:id/close
func (h *SessionHandler) CloseSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), &service.CloseSessionInput{
		SessionID:   id,
		ClosingCash: req.ClosingCash,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session closed", session)
}

// ListSessions handles GET /api/v1/pos/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	params := &repository.SessionFilterParams{
		Pagination: bindPagination(c),
	}

	if state := c.Query("state"); state != "" {
		s := enum.SessionState(state)
		params.State = &s
	}
	if cashier := c.Query("cashier_id"); cashier != "" {
		id, err := uuid.Parse(cashier)
		if err != nil {
			response.BadRequest(c, "Invalid cashier_id parameter")
			return
		}
		params.CashierID = &id
	}

	result, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sessions retrieved", result)
}
