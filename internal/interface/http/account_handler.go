package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/accountkit/account-service/internal/application"
	"github.com/accountkit/account-service/internal/domain/entity"
	"github.com/accountkit/account-service/pkg/response"
	"github.com/accountkit/account-service/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type createAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type updateAccountRequest struct {
	Name     *string `json:"name" binding:"omitempty"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

// accountView is the externally visible shape of an account. The
// password hash never appears here.
func accountView(a *entity.Account) gin.H {
	return gin.H{
		"id":         a.ID,
		"email":      a.Email,
		"name":       a.Name,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
}

// Create POST /user/create (unauthenticated entry point)
func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "email already exists", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("account create failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to create account", nil)
		return
	}
	response.Success(c, http.StatusCreated, accountView(a), "account created", nil)
}

// GetProfile GET /user/profile/:id (bearer token required)
func (h *AccountHandler) GetProfile(c *gin.Context) {
	id := c.Param("id")
	a, err := h.Svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrAccountNotFound) {
			response.Error[any](c, http.StatusNotFound, "account not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load profile", nil)
		return
	}
	response.Success(c, http.StatusOK, accountView(a), "profile", nil)
}

// Update PUT /user/:id (bearer token required)
// The response strips id and password, mirroring the update view the
// API has always returned.
func (h *AccountHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.Update(c.Request.Context(), id, application.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAccountNotFound):
			response.Error[any](c, http.StatusNotFound, "account not found", nil)
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusConflict, "email already exists", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("account_id", id).Error("account update failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "failed to update account", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"name": a.Name, "email": a.Email}, "account updated", nil)
}

// Remove DELETE /user/:id (bearer token required)
//
// This endpoint answers 200 for every outcome, with the result in the
// message string. Long-standing contract; clients parse the message
// rather than the status code.
func (h *AccountHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Remove(c.Request.Context(), id); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("account_id", id).Warn("account remove failed")
		}
		response.Success[any](c, http.StatusOK, gin.H{"message": "An error occurred while removing the account."}, "account removal", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"message": "Account removed successfully."}, "account removal", nil)
}
