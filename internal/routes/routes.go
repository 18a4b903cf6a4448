package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	"github.com/BruksfildServices01/room-booking/internal/auth"
	"github.com/BruksfildServices01/room-booking/internal/config"
	"github.com/BruksfildServices01/room-booking/internal/handlers"
	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/room-booking/internal/infra/repository"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/models"
	ucOrder "github.com/BruksfildServices01/room-booking/internal/usecase/order"
	ucReview "github.com/BruksfildServices01/room-booking/internal/usecase/review"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  cache.Cache
	Images storage.ImageStore
	Audit  *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	orderRepo := infraRepo.NewOrderGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	createOrderUC := ucOrder.NewCreateOrder(orderRepo, d.Audit)
	updateOrderUC := ucOrder.NewUpdateOrderStatus(orderRepo, d.Audit)
	listOrdersUC := ucOrder.NewListOrders(orderRepo)
	resolveActorUC := ucOrder.NewResolveActor(orderRepo)

	createReviewUC := ucReview.NewCreateReview(reviewRepo, d.Cache, d.Audit)
	listReviewsUC := ucReview.NewListReviewsForMaster(reviewRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	userHandler := handlers.NewUserHandler(d.DB, cfg, tokens, d.Cache, d.Images, d.Audit)
	masterHandler := handlers.NewMasterHandler(d.DB, d.Cache, cfg.CacheTTL, d.Images)
	categoryHandler := handlers.NewCategoryHandler(d.DB, d.Cache, cfg.CacheTTL)
	roomHandler := handlers.NewRoomHandler(d.DB, d.Images, d.Audit)
	orderHandler := handlers.NewOrderHandler(createOrderUC, updateOrderUC, listOrdersUC, resolveActorUC)
	reviewHandler := handlers.NewReviewHandler(createReviewUC, listReviewsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	authRequired := middleware.AuthMiddleware(tokens)
	masterOnly := middleware.RequireRole(models.RoleMaster)
	customerOnly := middleware.RequireRole(models.RoleUser)

	api := r.Group("/api")
	{
		// ------------------------------
		// USERS
		// ------------------------------
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/check-login/:login", userHandler.CheckLogin)

			users.GET("/profile", authRequired, userHandler.GetProfile)
			users.PUT("/profile", authRequired, userHandler.UpdateProfile)
			users.DELETE("/profile", authRequired, userHandler.DeleteProfile)
			users.GET("/activity", authRequired, auditLogsHandler.List)
		}

		// ------------------------------
		// MASTERS
		// ------------------------------
		masters := api.Group("/masters")
		{
			masters.GET("", masterHandler.List)
			masters.GET("/profile", authRequired, masterOnly, masterHandler.GetProfile)
			masters.PUT("/profile", authRequired, masterOnly, masterHandler.UpdateProfile)
			masters.POST("/profile/image", authRequired, masterOnly, masterHandler.UploadImage)
			masters.GET("/:id", masterHandler.Get)
		}

		api.GET("/categories", categoryHandler.List)

		// ------------------------------
		// ROOMS
		// ------------------------------
		rooms := api.Group("/rooms")
		{
			rooms.GET("/place/:master_id", roomHandler.ListForPlace)

			own := rooms.Group("", authRequired, masterOnly)
			own.GET("/master", roomHandler.ListOwn)
			own.POST("", roomHandler.Create)
			own.PUT("/:id", roomHandler.Update)
			own.DELETE("/:id", roomHandler.Delete)
			own.POST("/:id/image", roomHandler.UploadImage)
		}

		// ------------------------------
		// ORDERS
		// ------------------------------
		orders := api.Group("/orders", authRequired)
		{
			// masters manage orders but never place them
			orders.POST("", customerOnly, orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.PUT("/:id", orderHandler.UpdateStatus)
		}

		// ------------------------------
		// REVIEWS
		// ------------------------------
		api.POST("/reviews", authRequired, customerOnly, reviewHandler.Create)
		api.GET("/reviews/:master_id", reviewHandler.ListForMaster)
	}
}
