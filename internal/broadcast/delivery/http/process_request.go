package http

import (
	"broadcast-srv/internal/middleware"
	"broadcast-srv/internal/model"
	pkgErrors "broadcast-srv/pkg/errors"
	"broadcast-srv/pkg/postgre"

	"github.com/gin-gonic/gin"
)

func (h *Handler) processScope(c *gin.Context) (model.Scope, error) {
	sc, ok := middleware.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, errMissingScope
	}
	return sc, nil
}

func (h *Handler) processIDParam(c *gin.Context) (string, error) {
	id := c.Param("id")
	if err := postgres.IsUUID(id); err != nil {
		return "", pkgErrors.NewValidationError(1, "id", "invalid broadcast id")
	}
	return id, nil
}

func (h *Handler) processCreateRequest(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.processCreateRequest: %v", err)
		return createReq{}, errInvalidBody
	}
	return req, nil
}

func (h *Handler) processUpdateRequest(c *gin.Context) (updateReq, error) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.processUpdateRequest: %v", err)
		return updateReq{}, errInvalidBody
	}
	return req, nil
}

func (h *Handler) processCancelRequest(c *gin.Context) (cancelReq, error) {
	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.processCancelRequest: %v", err)
		return cancelReq{}, errInvalidBody
	}
	return req, nil
}

func (h *Handler) processAcknowledgeRequest(c *gin.Context) (acknowledgeReq, error) {
	var req acknowledgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.processAcknowledgeRequest: %v", err)
		return acknowledgeReq{}, errInvalidBody
	}
	return req, nil
}

func (h *Handler) processListRequest(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.processListRequest: %v", err)
		return listReq{}, errInvalidQuery
	}
	req.PaginateQuery.Adjust()
	return req, nil
}
