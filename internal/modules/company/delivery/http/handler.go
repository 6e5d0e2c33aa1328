package handler

import (
	"net/http"

	"anoa.com/jobportal/internal/modules/company/dto"
	company "anoa.com/jobportal/internal/modules/company/service"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"anoa.com/jobportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	service company.CompanyService
}

func NewCompanyHandler(service company.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

func (h *CompanyHandler) RegisterCompany(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.RegisterCompanyInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.ErrMissingName)
		return
	}

	created, err := h.service.RegisterCompany(c.Request.Context(), input, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "company registered successfully", gin.H{"company": created})
}

func (h *CompanyHandler) ListOwnCompanies(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	companies, err := h.service.ListOwnCompanies(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"companies": companies})
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	found, err := h.service.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"company": found})
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateCompanyInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid company data", apperror.ErrInvalidInput))
		return
	}

	logo, file, err := commonDto.OpenFormFile(c, "file")
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "failed to read uploaded file", apperror.ErrInvalidInput))
		return
	}
	if file != nil {
		defer file.Close()
	}

	updated, err := h.service.UpdateCompany(c.Request.Context(), c.Param("id"), input, logo, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "company information updated", gin.H{"company": updated})
}
