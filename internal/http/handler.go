package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/service"
)

type Handler struct {
	nodeService    *service.NodeService
	catalogService *service.CatalogService
	sellService    *service.SellService
	authService    *service.AuthService
}

func NewHandler(nodeService *service.NodeService, catalogService *service.CatalogService, sellService *service.SellService, authService *service.AuthService) *Handler {
	return &Handler{
		nodeService:    nodeService,
		catalogService: catalogService,
		sellService:    sellService,
		authService:    authService,
	}
}

func paramInt32(c *gin.Context, name string) (int32, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		respondMsg(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return int32(v), true
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondMsg(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

// ==================== Node Handlers ====================

func (h *Handler) NewNode(c *gin.Context) {
	var req models.NewNode
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	node, err := h.nodeService.Create(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusCreated, node)
}

func (h *Handler) GetNode(c *gin.Context) {
	id, ok := paramInt32(c, "node_id")
	if !ok {
		return
	}

	node, err := h.nodeService.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, node)
}

func (h *Handler) UpdateNode(c *gin.Context) {
	id, ok := paramInt32(c, "node_id")
	if !ok {
		return
	}

	var patch models.UpdateNode
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	node, err := h.nodeService.Update(c.Request.Context(), id, &patch)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, node)
}

func (h *Handler) DeleteNode(c *gin.Context) {
	id, ok := paramInt32(c, "node_id")
	if !ok {
		return
	}

	deleted, err := h.nodeService.Delete(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, deleted)
}

func (h *Handler) NodesList(c *gin.Context) {
	nodes, err := h.nodeService.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, nodes)
}

func (h *Handler) NodeInfo(c *gin.Context) {
	id, ok := paramInt32(c, "node_id")
	if !ok {
		return
	}

	info, err := h.nodeService.Info(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, info)
}

func (h *Handler) HwStats(c *gin.Context) {
	id, ok := paramInt32(c, "node_id")
	if !ok {
		return
	}

	stats, err := h.nodeService.HwStats(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, stats)
}

func (h *Handler) NetStats(c *gin.Context) {
	id, ok := paramInt32(c, "node_id")
	if !ok {
		return
	}

	stats, err := h.nodeService.NetStats(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, stats)
}

// ==================== Service Handlers ====================

func (h *Handler) NewService(c *gin.Context) {
	var req models.NewService
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusCreated, svc)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := paramInt32(c, "service_id")
	if !ok {
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := paramInt32(c, "service_id")
	if !ok {
		return
	}

	var patch models.UpdateService
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, &patch)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := paramInt32(c, "service_id")
	if !ok {
		return
	}

	deleted, err := h.catalogService.DeleteService(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, deleted)
}

func (h *Handler) ServicesList(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, services)
}

// ==================== User Handlers ====================

func (h *Handler) NewUser(c *gin.Context) {
	var req models.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.catalogService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if err == service.ErrRefNotFound {
			respondMsg(c, http.StatusBadRequest, err.Error())
			return
		}
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusCreated, user)
}

func (h *Handler) UsersList(c *gin.Context) {
	users, err := h.catalogService.ListUsers(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, users)
}

func (h *Handler) UserRefs(c *gin.Context) {
	id, ok := paramInt64(c, "user_id")
	if !ok {
		return
	}

	refs, err := h.catalogService.UserRefs(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	respondOk(c, http.StatusOK, refs)
}
