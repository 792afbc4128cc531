package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/servushq/servus-raffle/docs"
	v1 "github.com/servushq/servus-raffle/internal/api/handler/v1"
	"github.com/servushq/servus-raffle/internal/api/middleware"
	"github.com/servushq/servus-raffle/internal/config"
	"github.com/servushq/servus-raffle/internal/pkg/cache"
	"github.com/servushq/servus-raffle/internal/realtime"
	"github.com/servushq/servus-raffle/internal/repository"
	"github.com/servushq/servus-raffle/internal/repository/dao"
	"github.com/servushq/servus-raffle/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	raffleRepo := repository.NewRaffleRepository(dao.NewRaffleDAO(db))

	publisher := realtime.NewPublisher(rdb)
	statsSvc := service.NewStatsService(raffleRepo, cache.New(rdb))
	userSvc := service.NewUserService(userRepo)

	hub := realtime.NewHub(rdb)
	go hub.Run(context.Background())

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(conf.API, userSvc)
	raffleHandler := v1.NewRaffleHandler(conf.API,
		service.NewRaffleService(raffleRepo, userRepo, publisher, statsSvc, conf.API.JoinCodeSalt))
	drawHandler := v1.NewDrawHandler(service.NewDrawService(raffleRepo, publisher, statsSvc))
	statsHandler := v1.NewStatsHandler(statsSvc)
	liveHandler := v1.NewLiveHandler(hub)

	s.MountHandlers(userSvc, authHandler, userHandler, raffleHandler, drawHandler, statsHandler, liveHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc middleware.UserGetter,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	raffleHandler *v1.RaffleHandler,
	drawHandler *v1.DrawHandler,
	statsHandler *v1.StatsHandler,
	liveHandler *v1.LiveHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	adminOnly := middleware.AdminOnly(s.Config.API.AdminAllowlist(), userSvc)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		// Live draw viewing is public; results broadcast to everyone.
		public.GET("/raffles/:raffleID/live", liveHandler.HandleLive)
	}

	authed := s.Router.Group(basePath, verifyJWT)
	{
		authed.GET("/me", userHandler.HandleGetMe)
		authed.POST("/raffles/:raffleID/join", raffleHandler.HandleJoinRaffle)
		authed.GET("/raffles/:raffleID/stats", statsHandler.HandleRaffleStats)
		authed.GET("/stats/multi-winners", statsHandler.HandleMultiWinners)
	}

	admin := s.Router.Group(basePath, verifyJWT, adminOnly)
	{
		admin.GET("/users/:userID", userHandler.HandleGetUser)

		admin.GET("/raffles", raffleHandler.HandleListRaffles)
		admin.POST("/raffles", raffleHandler.HandleCreateRaffle)
		admin.GET("/raffles/:raffleID", raffleHandler.HandleGetRaffle)
		admin.PUT("/raffles/:raffleID", raffleHandler.HandleUpdateRaffle)
		admin.DELETE("/raffles/:raffleID", raffleHandler.HandleDeleteRaffle)
		admin.POST("/raffles/:raffleID/activate", raffleHandler.HandleActivateRaffle)
		admin.POST("/raffles/:raffleID/end", raffleHandler.HandleEndRaffle)
		admin.GET("/raffles/:raffleID/join-code", raffleHandler.HandleGetJoinCode)

		admin.GET("/raffles/:raffleID/participants", raffleHandler.HandleListParticipants)
		admin.PUT("/raffles/:raffleID/participants/:participantID", raffleHandler.HandleUpdateParticipantTickets)
		admin.DELETE("/raffles/:raffleID/participants/:participantID", raffleHandler.HandleRemoveParticipant)

		admin.GET("/raffles/:raffleID/prizes", raffleHandler.HandleListPrizes)
		admin.POST("/raffles/:raffleID/prizes", raffleHandler.HandleCreatePrize)
		admin.PUT("/raffles/:raffleID/prizes/:prizeID", raffleHandler.HandleUpdatePrize)
		admin.DELETE("/raffles/:raffleID/prizes/:prizeID", raffleHandler.HandleDeletePrize)
		admin.POST("/raffles/:raffleID/prizes/:prizeID/draw", drawHandler.HandleRunDraw)
		admin.GET("/raffles/:raffleID/winners", drawHandler.HandleListWinners)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Servus Raffle API"
	docs.SwaggerInfo.Description = "API for running live raffle draws at meetups."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
