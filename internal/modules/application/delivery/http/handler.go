package handler

import (
	"net/http"

	"anoa.com/jobportal/internal/modules/application/dto"
	application "anoa.com/jobportal/internal/modules/application/service"
	"anoa.com/jobportal/pkg/apperror"
	"anoa.com/jobportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	service application.ApplicationService
}

func NewApplicationHandler(service application.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	created, err := h.service.Apply(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "job applied successfully", gin.H{"application": created})
}

func (h *ApplicationHandler) ListAppliedJobs(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	applications, err := h.service.ListAppliedJobs(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"appliedJobs": applications})
}

func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	job, err := h.service.ListApplicants(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"job": job})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateStatusInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.ErrStatusRequired)
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "status updated successfully", gin.H{"application": updated})
}
