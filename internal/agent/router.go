package agent

import (
	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/config"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
)

type Server struct {
	router  *gin.Engine
	handler *Handler
	issuer  *token.Issuer
}

func NewServer(cfg *config.NodeConfig, issuer *token.Issuer, handler *Handler) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:  router,
		handler: handler,
		issuer:  issuer,
	}

	s.setupRoutes()
	return s
}

// setupRoutes mounts the agent API. The identity block and liveness probe
// are open; stats require any valid token; account mutations require a
// privileged one.
func (s *Server) setupRoutes() {
	s.router.GET("/ping", s.handler.Ping)
	s.router.GET("/api/node_info", s.handler.NodeInfo)

	tokenAuth := TokenAuthMiddleware(s.issuer)

	statsGroup := s.router.Group("/api/stats")
	statsGroup.Use(tokenAuth)
	{
		statsGroup.GET("/ping", s.handler.Ping)
		statsGroup.GET("/node_info", s.handler.NodeInfo)
		statsGroup.GET("/hw_stats", s.handler.HwStats)
		statsGroup.GET("/net_stats", s.handler.NetStats)
		statsGroup.GET("/user_expiry/:user", s.handler.UserExpiry)
		statsGroup.POST("/list_users", s.handler.ListUsers)
		statsGroup.POST("/users_usage", s.handler.UsersUsage)
	}

	cmd := s.router.Group("/api/cmd")
	cmd.Use(tokenAuth, RequirePrivileged())
	{
		cmd.POST("/useradd", s.handler.UserAdd)
		cmd.POST("/auto_useradd", s.handler.AutoUserAdd)
		cmd.POST("/userdel", s.handler.UserDel)
		cmd.POST("/passwd", s.handler.Passwd)
		cmd.POST("/restore_pass", s.handler.RestorePass)
		cmd.POST("/chgrp", s.handler.ChGrp)
		cmd.POST("/chexp", s.handler.ChExp)
		cmd.POST("/userlock", s.handler.UserLock)
		cmd.POST("/userunlock", s.handler.UserUnlock)
	}
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
