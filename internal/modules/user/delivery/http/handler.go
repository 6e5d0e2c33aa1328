package handler

import (
	"net/http"
	"time"

	"anoa.com/jobportal/internal/modules/user/dto"
	user "anoa.com/jobportal/internal/modules/user/service"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"anoa.com/jobportal/pkg/response"
	"github.com/gin-gonic/gin"
)

const TokenCookie = "token"

type AuthHandler struct {
	service      user.AuthService
	cookieSecure bool
	cookieTTL    time.Duration
}

func NewAuthHandler(service user.AuthService, cookieSecure bool, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieSecure: cookieSecure,
		cookieTTL:    cookieTTL,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.ErrMissingField)
		return
	}

	avatar, file, err := commonDto.OpenFormFile(c, "file")
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "failed to read uploaded file", apperror.ErrInvalidInput))
		return
	}
	if file != nil {
		defer file.Close()
	}

	created, err := h.service.Register(c.Request.Context(), input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "account created successfully", gin.H{"user": created})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.ErrMissingField)
		return
	}

	res, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.setTokenCookie(c, res.Token, int(h.cookieTTL.Seconds()))
	response.Success(c, http.StatusOK, "welcome back "+res.User.FullName, gin.H{"user": res.User})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, "logged out successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	me, err := h.service.Me(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"user": me})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid profile data", apperror.ErrInvalidInput))
		return
	}

	resume, file, err := commonDto.OpenFormFile(c, "file")
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "failed to read uploaded file", apperror.ErrInvalidInput))
		return
	}
	if file != nil {
		defer file.Close()
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), userID.String(), input, resume)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated successfully", gin.H{"user": updated})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	// Browsers drop SameSite=None cookies that are not Secure.
	if h.cookieSecure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(TokenCookie, value, maxAge, "/", "", h.cookieSecure, true)
}
