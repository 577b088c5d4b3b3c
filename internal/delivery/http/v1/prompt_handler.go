package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-profile-extractor/internal/delivery/http/response"
	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/apperror"
)

type PromptHandler struct {
	promptUC domain.PromptUsecase
}

func NewPromptHandler(r *gin.RouterGroup, promptUC domain.PromptUsecase) {
	handler := &PromptHandler{promptUC: promptUC}

	prompts := r.Group("/prompts")
	{
		prompts.GET("", handler.List)
		prompts.GET("/:name", handler.Get)
		prompts.PUT("/:name", handler.Update)
	}
}

// List godoc
// @Summary      List available prompts
// @Tags         prompts
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /prompts [get]
func (h *PromptHandler) List(c *gin.Context) {
	names, err := h.promptUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Available prompts", gin.H{"prompts": names})
}

// Get godoc
// @Summary      Get a prompt template
// @Tags         prompts
// @Produce      json
// @Param        name  path  string  true  "Prompt name"
// @Success      200  {object}  response.Response{data=domain.PromptView}
// @Failure      404  {object}  response.Response
// @Router       /prompts/{name} [get]
func (h *PromptHandler) Get(c *gin.Context) {
	view, err := h.promptUC.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Prompt template", view)
}

// Update godoc
// @Summary      Update a prompt template
// @Description  Upserts the template text in the store and evicts the cache entry. Rejected when the store is unreachable.
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Param        name     path  string                      true  "Prompt name"
// @Param        request  body  domain.UpdatePromptRequest  true  "New template text"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /prompts/{name} [put]
func (h *PromptHandler) Update(c *gin.Context) {
	var req domain.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Field 'template' is required"))
		return
	}

	name := c.Param("name")
	if err := h.promptUC.Update(c.Request.Context(), name, &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Prompt '"+name+"' updated successfully", nil)
}
