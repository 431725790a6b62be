package http

import (
	"broadcast-srv/internal/queue"
	"broadcast-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Create drafts a new emergency broadcast.
// @Summary Create broadcast
// @Description Draft a new emergency broadcast. Priority, channels and expiration default from the emergency type when omitted.
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param body body createReq true "Broadcast"
// @Success 201 {object} response.Resp{data=broadcastItem}
// @Failure 400 {object} response.Resp
// @Router /api/v1/broadcasts [POST]
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	req, err := h.processCreateRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	b, err := h.uc.Create(ctx, sc, req.toInput(sc))
	if err != nil {
		h.l.Warnf(ctx, "internal.broadcast.delivery.http.Create: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.Created(c, newBroadcastItem(b))
}

// Update patches a draft broadcast.
// @Summary Update broadcast
// @Description Patch title, message, channels or expiration of a DRAFT broadcast.
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param id path string true "Broadcast ID"
// @Param body body updateReq true "Patch"
// @Success 200 {object} response.Resp{data=broadcastItem}
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/broadcasts/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	req, err := h.processUpdateRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	b, err := h.uc.Update(ctx, sc, id, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.broadcast.delivery.http.Update: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newBroadcastItem(b))
}

// Send dispatches a broadcast to its resolved audience.
// @Summary Send broadcast
// @Description Resolve recipients and fan out across the configured channels. With async=true the send is queued and processed by the worker.
// @Tags Broadcast
// @Produce json
// @Param id path string true "Broadcast ID"
// @Param async query bool false "Queue the send instead of running it inline"
// @Success 200 {object} response.Resp{data=broadcast.SendOutput}
// @Success 202 {object} response.Resp{data=enqueuedResp}
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/broadcasts/{id}/send [POST]
func (h *Handler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	if c.Query("async") == "true" {
		if err := h.enqueuer.EnqueueSendBroadcast(queue.SendBroadcastPayload{
			BroadcastID: id,
			ActorID:     sc.ActorID,
			ActorRole:   sc.Role,
		}); err != nil {
			h.l.Errorf(ctx, "internal.broadcast.delivery.http.Send.EnqueueSendBroadcast: %v", err)
			response.Error(c, err, h.d)
			return
		}
		response.Accepted(c, enqueuedResp{BroadcastID: id, Queued: true})
		return
	}

	output, err := h.uc.Send(ctx, sc, id)
	if err != nil {
		h.l.Warnf(ctx, "internal.broadcast.delivery.http.Send: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, output)
}

// Cancel stops a broadcast before or during dispatch.
// @Summary Cancel broadcast
// @Description Cancel a DRAFT or SENDING broadcast. Messages already handed to providers are not recalled.
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param id path string true "Broadcast ID"
// @Param body body cancelReq true "Reason"
// @Success 204
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/broadcasts/{id}/cancel [POST]
func (h *Handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	req, err := h.processCancelRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	if err := h.uc.Cancel(ctx, sc, id, req.Reason); err != nil {
		h.l.Warnf(ctx, "internal.broadcast.delivery.http.Cancel: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.NoContent(c)
}

// Acknowledge records a recipient's confirmation of receipt.
// @Summary Acknowledge broadcast
// @Description Record that a recipient confirmed receipt of a sent broadcast.
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param id path string true "Broadcast ID"
// @Param body body acknowledgeReq true "Acknowledgment"
// @Success 204
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/broadcasts/{id}/acknowledgments [POST]
func (h *Handler) Acknowledge(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	req, err := h.processAcknowledgeRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	at := sc.At
	if req.At != nil {
		at = *req.At
	}

	if err := h.uc.Acknowledge(ctx, sc, id, req.RecipientID, at); err != nil {
		h.l.Warnf(ctx, "internal.broadcast.delivery.http.Acknowledge: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.NoContent(c)
}

// Status reports the delivery progress of a broadcast.
// @Summary Broadcast status
// @Description Aggregate delivery stats plus the most recent per-recipient outcomes.
// @Tags Broadcast
// @Produce json
// @Param id path string true "Broadcast ID"
// @Success 200 {object} response.Resp{data=statusResp}
// @Failure 404 {object} response.Resp
// @Router /api/v1/broadcasts/{id}/status [GET]
func (h *Handler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	output, err := h.uc.Status(ctx, sc, id)
	if err != nil {
		h.l.Warnf(ctx, "internal.broadcast.delivery.http.Status: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newStatusResp(output))
}

// List returns a page of broadcasts.
// @Summary List broadcasts
// @Description Paginated broadcast listing filtered by status, type and school.
// @Tags Broadcast
// @Produce json
// @Param status query []string false "Status filter"
// @Param type query []string false "Emergency type filter"
// @Param school_id query string false "School filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Resp{data=listResp}
// @Router /api/v1/broadcasts [GET]
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	req, err := h.processListRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	output, err := h.uc.List(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.broadcast.delivery.http.List: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newListResp(output))
}
