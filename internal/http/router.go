package http

import (
	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/config"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
)

type Server struct {
	router  *gin.Engine
	handler *Handler
	issuer  *token.Issuer
	cfg     *config.Config
}

func NewServer(cfg *config.Config, issuer *token.Issuer, handler *Handler) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(RequestIDMiddleware())

	s := &Server{
		router:  router,
		handler: handler,
		issuer:  issuer,
		cfg:     cfg,
	}

	s.setupRoutes()
	return s
}

// setupRoutes mounts the operator API. Everything except /auth and the
// liveness probe sits behind a bearer token; mutations additionally require
// the privileged role.
func (s *Server) setupRoutes() {
	s.router.GET("/nodes/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	auth := s.router.Group("/auth")
	{
		auth.POST("/register", s.handler.Register)
		auth.POST("/login", s.handler.Login)
		auth.POST("/verify_token", s.handler.VerifyToken)
	}

	tokenAuth := TokenAuthMiddleware(s.issuer)
	privileged := RequirePrivileged()

	nodes := s.router.Group("/nodes")
	nodes.Use(tokenAuth)
	{
		nodes.GET("/nodes_list", s.handler.NodesList)
		nodes.GET("/get_node/:node_id", s.handler.GetNode)
		nodes.GET("/node_info/:node_id", s.handler.NodeInfo)
		nodes.GET("/hw_stats/:node_id", s.handler.HwStats)
		nodes.GET("/net_stats/:node_id", s.handler.NetStats)

		nodes.POST("/new_node", privileged, s.handler.NewNode)
		nodes.POST("/update_node/:node_id", privileged, s.handler.UpdateNode)
		nodes.POST("/delete_node/:node_id", privileged, s.handler.DeleteNode)
	}

	services := s.router.Group("/services")
	services.Use(tokenAuth)
	{
		services.GET("/services_list", s.handler.ServicesList)
		services.GET("/get_service/:service_id", s.handler.GetService)

		services.POST("/new_service", privileged, s.handler.NewService)
		services.POST("/update_service/:service_id", privileged, s.handler.UpdateService)
		services.POST("/delete_service/:service_id", privileged, s.handler.DeleteService)
	}

	users := s.router.Group("/users")
	users.Use(tokenAuth)
	{
		users.GET("/users_list", s.handler.UsersList)
		users.GET("/user_refs/:user_id", s.handler.UserRefs)

		users.POST("/new_user", privileged, s.handler.NewUser)
	}

	sells := s.router.Group("/sells")
	sells.Use(tokenAuth)
	{
		sells.GET("/sell_info/:sell_id", s.handler.SellInfo)
		sells.GET("/sells_list", s.handler.SellsList)
		sells.GET("/sells_list_by_ref/:ref_id", s.handler.SellsListByRef)
		sells.GET("/sells_list_by_user/:user_id", s.handler.SellsListByUser)

		sells.POST("/new_sell", privileged, s.handler.NewSell)
		sells.POST("/verify_sell/:sell_id", privileged, s.handler.VerifySell)
	}
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
