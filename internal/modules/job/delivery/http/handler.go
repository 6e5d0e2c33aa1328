package handler

import (
	"net/http"

	"anoa.com/jobportal/internal/modules/job/dto"
	job "anoa.com/jobportal/internal/modules/job/service"
	searchDto "anoa.com/jobportal/internal/modules/search/dto"
	"anoa.com/jobportal/pkg/apperror"
	"anoa.com/jobportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	service job.JobService
}

func NewJobHandler(service job.JobService) *JobHandler {
	return &JobHandler{service: service}
}

func (h *JobHandler) PostJob(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.PostJobInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.ErrMissingField)
		return
	}

	created, err := h.service.PostJob(c.Request.Context(), input, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "new job created successfully", gin.H{"job": created})
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dto.ListJobsQuery
	_ = c.ShouldBindQuery(&query)

	jobs, err := h.service.ListJobs(c.Request.Context(), query.Keyword)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"jobs": jobs})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	// Signed-in viewers are deduplicated by account, everyone else by address.
	viewer := c.ClientIP()
	if userID := response.OptionalUserID(c); userID != nil {
		viewer = userID.String()
	}

	found, err := h.service.GetJob(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"job": found})
}

func (h *JobHandler) ListOwnJobs(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	jobs, err := h.service.ListOwnJobs(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"jobs": jobs})
}

func (h *JobHandler) SearchJobs(c *gin.Context) {
	var query searchDto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid search query", apperror.ErrInvalidInput))
		return
	}

	result, err := h.service.SearchJobs(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"jobs": result.Hits, "meta": gin.H{
		"totalHits":        result.TotalHits,
		"page":             result.Page,
		"limit":            result.Limit,
		"processingTimeMs": result.Processing,
	}})
}
