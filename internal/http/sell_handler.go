package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/service"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
)

// ==================== Sell Handlers ====================

func (h *Handler) NewSell(c *gin.Context) {
	var req models.NewSell
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	sell, err := h.sellService.Create(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusCreated, sell)
}

func (h *Handler) VerifySell(c *gin.Context) {
	id, ok := paramInt32(c, "sell_id")
	if !ok {
		return
	}

	var account models.AccountInfo
	if err := c.ShouldBindJSON(&account); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	sell, err := h.sellService.Verify(c.Request.Context(), id, &account)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, sell)
}

func (h *Handler) SellInfo(c *gin.Context) {
	id, ok := paramInt32(c, "sell_id")
	if !ok {
		return
	}

	sell, err := h.sellService.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, sell)
}

func (h *Handler) SellsList(c *gin.Context) {
	sells, err := h.sellService.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, sells)
}

func (h *Handler) SellsListByRef(c *gin.Context) {
	id, ok := paramInt64(c, "ref_id")
	if !ok {
		return
	}

	sells, err := h.sellService.ListByRef(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, sells)
}

func (h *Handler) SellsListByUser(c *gin.Context) {
	id, ok := paramInt64(c, "user_id")
	if !ok {
		return
	}

	sells, err := h.sellService.ListByUser(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, sells)
}

// ==================== Auth Handlers ====================

// authErrs are operator mistakes, reported as 400 with their message.
var authErrs = []error{
	service.ErrAdminKeyMissing,
	service.ErrAdminKeyInvalid,
	service.ErrUserExists,
	service.ErrUserNotFound,
	service.ErrBadUsername,
	service.ErrBadPassword,
}

func renderAuthError(c *gin.Context, err error) {
	for _, known := range authErrs {
		if errors.Is(err, known) {
			respondMsg(c, http.StatusBadRequest, known.Error())
			return
		}
	}
	renderError(c, err)
}

func (h *Handler) Register(c *gin.Context) {
	var req models.LoginInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.Register(c.Request.Context(), &req); err != nil {
		renderAuthError(c, err)
		return
	}

	respondOk(c, http.StatusCreated, "user successfully created!")
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	tokenString, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		renderAuthError(c, err)
		return
	}

	respondOk(c, http.StatusCreated, tokenString)
}

func (h *Handler) VerifyToken(c *gin.Context) {
	tokenString, err := token.FromHeader(c.GetHeader("Authorization"))
	if err != nil {
		respondMsg(c, http.StatusUnauthorized, "missing authorization header")
		return
	}

	role, err := h.authService.Verify(tokenString)
	if err != nil {
		respondMsg(c, http.StatusUnauthorized, err.Error())
		return
	}

	respondOk(c, http.StatusOK, role.String())
}
