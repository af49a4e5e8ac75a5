package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"tapto-backend/internal/auth"
	"tapto-backend/internal/domain"
	"tapto-backend/internal/metrics"
	activityrepo "tapto-backend/internal/repository/activity"
	statsrepo "tapto-backend/internal/repository/stats"
	activitysvc "tapto-backend/internal/service/activity"
	addrsvc "tapto-backend/internal/service/address"
	cartsvc "tapto-backend/internal/service/cart"
	driversvc "tapto-backend/internal/service/driver"
	ordersvc "tapto-backend/internal/service/order"
	productsvc "tapto-backend/internal/service/product"
	usersvc "tapto-backend/internal/service/user"
)

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput, meta usersvc.RequestMeta) (*domain.User, string, error)
	Login(ctx context.Context, email, password string, meta usersvc.RequestMeta) (*domain.User, string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in usersvc.UpdateProfileInput, meta usersvc.RequestMeta) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

type cartService interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, in cartsvc.ItemInput) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID string, in cartsvc.ItemInput) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID, size, color string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
	Sync(ctx context.Context, userID string, items []cartsvc.ItemInput) (*domain.Cart, error)
}

type orderService interface {
	Create(ctx context.Context, userID string, in ordersvc.CreateInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, reason string) (*domain.Order, error)
	AssignDriver(ctx context.Context, orderID, driverID string) (*domain.Order, error)
	Track(ctx context.Context, orderID string) (*ordersvc.TrackingInfo, error)
	UpdateLiveLocation(ctx context.Context, orderID string, lat, lng float64) (*domain.Order, error)
	GetForUser(ctx context.Context, orderID, userID string, isAdmin bool) (*domain.Order, error)
	ListMine(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type productService interface {
	List(ctx context.Context, in productsvc.ListInput) (*productsvc.Page, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, createdBy string, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type addressService interface {
	Create(ctx context.Context, userID string, in addrsvc.Input) (*domain.Address, error)
	Update(ctx context.Context, id, userID string, in addrsvc.Input) (*domain.Address, error)
	Get(ctx context.Context, id, userID string) (*domain.Address, error)
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Delete(ctx context.Context, id, userID string) error
	SetDefault(ctx context.Context, id, userID string) (*domain.Address, error)
}

type driverService interface {
	Create(ctx context.Context, in driversvc.Input) (*domain.DeliveryDriver, error)
	Update(ctx context.Context, id string, in driversvc.Input) (*domain.DeliveryDriver, error)
	Get(ctx context.Context, id string) (*domain.DeliveryDriver, error)
	List(ctx context.Context) ([]domain.DeliveryDriver, error)
	Delete(ctx context.Context, id string) error
}

type activityService interface {
	List(ctx context.Context, f activityrepo.Filter) (*activitysvc.Page, error)
	ListForUser(ctx context.Context, userID string, page, limit int) (*activitysvc.Page, error)
	Stats(ctx context.Context) (*activityrepo.Stats, error)
}

type adminService interface {
	Dashboard(ctx context.Context) (*statsrepo.Dashboard, error)
}

// Deps carries the collaborators the router needs.
type Deps struct {
	Users       userService
	Carts       cartService
	Orders      orderService
	Products    productService
	Addresses   addressService
	Drivers     driverService
	Activities  activityService
	Admin       adminService
	Tokens      *auth.Manager
	Metrics     *metrics.ServerMetrics
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if deps.Metrics != nil {
		router.Use(metricsMiddleware(deps.Metrics))
	}
	if len(deps.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = deps.CORSOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")

	api.POST("/auth/register", registerHandler(deps.Users))
	api.POST("/auth/login", loginHandler(deps.Users))

	api.GET("/products", listProductsHandler(deps.Products))
	api.GET("/products/categories", listCategoriesHandler(deps.Products))
	api.GET("/products/:productId", getProductHandler(deps.Products))

	authed := api.Group("", authRequired(deps.Tokens))

	authed.GET("/auth/profile", profileHandler(deps.Users))
	authed.PUT("/auth/profile", updateProfileHandler(deps.Users))
	authed.GET("/auth/activity", myActivityHandler(deps.Activities))

	authed.GET("/cart", getCartHandler(deps.Carts))
	authed.POST("/cart", addCartItemHandler(deps.Carts))
	authed.PATCH("/cart", updateCartItemHandler(deps.Carts))
	authed.PUT("/cart/sync", syncCartHandler(deps.Carts))
	authed.DELETE("/cart", clearCartHandler(deps.Carts))
	authed.DELETE("/cart/:productId", removeCartItemHandler(deps.Carts))

	authed.POST("/orders", createOrderHandler(deps.Orders))
	authed.GET("/orders/my-orders", myOrdersHandler(deps.Orders))
	authed.GET("/orders/:orderId", getOrderHandler(deps.Orders))
	authed.GET("/orders/:orderId/track", trackOrderHandler(deps.Orders))
	authed.POST("/orders/:orderId/cancel", cancelOrderHandler(deps.Orders))
	authed.PATCH("/orders/:orderId/location", updateLocationHandler(deps.Orders))

	authed.GET("/addresses", listAddressesHandler(deps.Addresses))
	authed.POST("/addresses", createAddressHandler(deps.Addresses))
	authed.GET("/addresses/:addressId", getAddressHandler(deps.Addresses))
	authed.PUT("/addresses/:addressId", updateAddressHandler(deps.Addresses))
	authed.DELETE("/addresses/:addressId", deleteAddressHandler(deps.Addresses))
	authed.PATCH("/addresses/:addressId/default", setDefaultAddressHandler(deps.Addresses))

	admin := authed.Group("", adminRequired())

	admin.PATCH("/orders/:orderId/status", updateOrderStatusHandler(deps.Orders))
	admin.PATCH("/orders/:orderId/assign-driver", assignDriverHandler(deps.Orders))

	admin.GET("/admin/dashboard/stats", dashboardStatsHandler(deps.Admin))
	admin.GET("/admin/users", listUsersHandler(deps.Users))
	admin.GET("/admin/orders", listAllOrdersHandler(deps.Orders))
	admin.GET("/admin/activities", listActivitiesHandler(deps.Activities))
	admin.GET("/admin/activities/stats", activityStatsHandler(deps.Activities))

	admin.GET("/admin/drivers", listDriversHandler(deps.Drivers))
	admin.POST("/admin/drivers", createDriverHandler(deps.Drivers))
	admin.GET("/admin/drivers/:driverId", getDriverHandler(deps.Drivers))
	admin.PUT("/admin/drivers/:driverId", updateDriverHandler(deps.Drivers))
	admin.DELETE("/admin/drivers/:driverId", deleteDriverHandler(deps.Drivers))

	admin.POST("/admin/products", createProductHandler(deps.Products))
	admin.PUT("/admin/products/:productId", updateProductHandler(deps.Products))
	admin.DELETE("/admin/products/:productId", deleteProductHandler(deps.Products))

	return router
}
