package http

import (
	"broadcast-srv/internal/model"
	"broadcast-srv/internal/template"
	"broadcast-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

type previewReq struct {
	Type      string            `json:"type" binding:"required"`
	Variables map[string]string `json:"variables"`
}

type previewResp struct {
	Template   template.Entry            `json:"template"`
	Validation template.ValidationResult `json:"validation"`
}

// ListTemplates returns the canned template catalog.
// @Summary List templates
// @Description Pre-written title/message templates, one per emergency type.
// @Tags Template
// @Produce json
// @Success 200 {object} response.Resp{data=[]template.Entry}
// @Router /api/v1/templates [GET]
func (h *Handler) ListTemplates(c *gin.Context) {
	response.OK(c, template.List())
}

// PreviewTemplate fills a template's placeholders and validates the result.
// @Summary Preview template
// @Description Substitute {{placeholder}} variables into a template and run content validation on the result.
// @Tags Template
// @Accept json
// @Produce json
// @Param body body previewReq true "Preview"
// @Success 200 {object} response.Resp{data=previewResp}
// @Failure 400 {object} response.Resp
// @Router /api/v1/templates/preview [POST]
func (h *Handler) PreviewTemplate(c *gin.Context) {
	var req previewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.broadcast.delivery.http.PreviewTemplate: %v", err)
		response.Error(c, errInvalidBody, h.d)
		return
	}

	entry := template.Customize(model.EmergencyType(req.Type), req.Variables)

	response.OK(c, previewResp{
		Template:   entry,
		Validation: template.Validate(entry.Title, entry.Message),
	})
}
