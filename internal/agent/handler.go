package agent

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/config"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/sshuser"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/stats"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/workers"
)

// Handler serves the node agent API. Account mutations run through the
// worker pool so a burst of provisioning requests cannot fork-bomb the box.
type Handler struct {
	cfg     *config.NodeConfig
	manager *sshuser.Manager
	pool    *workers.Pool
}

func NewHandler(cfg *config.NodeConfig, manager *sshuser.Manager, pool *workers.Pool) *Handler {
	return &Handler{
		cfg:     cfg,
		manager: manager,
		pool:    pool,
	}
}

func respondOk(c *gin.Context, value any) {
	c.JSON(http.StatusOK, gin.H{"Ok": value})
}

func respondErrMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"Err": msg})
}

// renderError serializes account-admin failures as their bare name, matching
// what the control plane relays upstream.
func renderError(c *gin.Context, err error) {
	var userErr sshuser.UserError
	if errors.As(err, &userErr) {
		c.JSON(http.StatusOK, gin.H{"Err": string(userErr)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"Err": err.Error()})
}

// run executes fn on the worker pool and renders its result.
func run[T any](h *Handler, c *gin.Context, fn func() (T, error)) {
	var result T
	err := h.pool.Do(c.Request.Context(), func() error {
		var callErr error
		result, callErr = fn()
		return callErr
	})
	if err != nil {
		renderError(c, err)
		return
	}
	respondOk(c, result)
}

// ==================== Stats Handlers ====================

func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (h *Handler) NodeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Ok": h.cfg.NodeInfo})
}

func (h *Handler) HwStats(c *gin.Context) {
	usage, err := stats.HwStats()
	if err != nil {
		renderError(c, err)
		return
	}
	respondOk(c, usage)
}

func (h *Handler) NetStats(c *gin.Context) {
	usage, err := stats.NetUsage()
	if err != nil {
		renderError(c, err)
		return
	}
	respondOk(c, usage)
}

func (h *Handler) ListUsers(c *gin.Context) {
	var params models.UserLookupParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	if params.Prefix == nil && params.Group == nil {
		respondErrMsg(c, http.StatusBadRequest, "Please provide username's prefix or groupname")
		return
	}

	var users []string
	var err error
	if params.Prefix != nil {
		users, err = h.manager.GetUsersByPrefix(*params.Prefix)
	} else {
		users, err = h.manager.GetUsersByGroup(*params.Group)
	}
	if err != nil {
		renderError(c, err)
		return
	}
	respondOk(c, users)
}

func (h *Handler) UserExpiry(c *gin.Context) {
	run(h, c, func() (*models.UserExp, error) {
		return h.manager.GetChageExp(c.Param("user"))
	})
}

func (h *Handler) UsersUsage(c *gin.Context) {
	var params models.UserLookupParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	if params.Prefix == nil && params.Group == nil && params.Username == nil {
		respondErrMsg(c, http.StatusBadRequest, "Please provide username's prefix, groupname, or the username")
		return
	}

	run(h, c, func() (map[string]float64, error) {
		switch {
		case params.Prefix != nil:
			return h.manager.UsageByPrefix(*params.Prefix)
		case params.Group != nil:
			return h.manager.UsageByGroup(*params.Group)
		default:
			return h.manager.UsageByName(*params.Username)
		}
	})
}

// ==================== Command Handlers ====================

func (h *Handler) UserAdd(c *gin.Context) {
	var req models.InputSSHUser
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	shell := h.manager.DefaultShell()
	if req.Shell != nil {
		shell = *req.Shell
	}

	run(h, c, func() (*models.SSHUser, error) {
		return h.manager.Add(req.Username, shell, req.Group, req.ExpDate, req.Password)
	})
}

func (h *Handler) AutoUserAdd(c *gin.Context) {
	var req models.AutoSSHUser
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	run(h, c, func() (*models.SSHUser, error) {
		return h.manager.AutoAdd(req.Prefix, req.UsersCount, req.Group, req.ExpDate)
	})
}

func (h *Handler) UserDel(c *gin.Context) {
	var params models.UserLookupParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	if params.Username == nil {
		respondErrMsg(c, http.StatusBadRequest, "username field cannot be empty")
		return
	}

	run(h, c, func() (*models.UserStatus, error) {
		return h.manager.Del(*params.Username)
	})
}

func (h *Handler) Passwd(c *gin.Context) {
	var req models.UserPasswd
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	run(h, c, func() (*models.UserRawCreds, error) {
		return h.manager.ChangePass(req.Username, req.Password)
	})
}

// RestorePass re-derives a user's deterministic password and applies it, for
// operators recovering lost credentials.
func (h *Handler) RestorePass(c *gin.Context) {
	var req models.OnlyUser
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	run(h, c, func() (*models.UserRawCreds, error) {
		return h.manager.RestorePassword(req.Username)
	})
}

func (h *Handler) ChGrp(c *gin.Context) {
	var req models.UserGrp
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	run(h, c, func() (*models.ChGrpMsg, error) {
		return h.manager.ChangeGrp(req.Username, req.Group)
	})
}

func (h *Handler) ChExp(c *gin.Context) {
	var req models.UserExpDate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	run(h, c, func() (*models.ChExpMsg, error) {
		return h.manager.ChangeExp(req.Username, req.ExpDate)
	})
}

func (h *Handler) UserLock(c *gin.Context) {
	var req models.OnlyUser
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	run(h, c, func() (*models.UserStatus, error) {
		return h.manager.Lock(req.Username)
	})
}

func (h *Handler) UserUnlock(c *gin.Context) {
	var req models.OnlyUser
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	run(h, c, func() (*models.UserStatus, error) {
		return h.manager.Unlock(req.Username)
	})
}
