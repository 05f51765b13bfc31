package routes

import (
	"net/http"

	"github.com/rajeshhitechvalley/Cfapp-sub001/configs"
	"github.com/rajeshhitechvalley/Cfapp-sub001/controllers"
	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/middlewares"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	DB        *gorm.DB
	Config    *configs.Config
	Log       *logger.Logger
	Publisher events.Publisher
	Hub       *ws.Hub
}

const (
	admin     = entity.RoleAdmin
	manager   = entity.RoleManager
	cashier   = entity.RoleCashier
	waiter    = entity.RoleWaiter
	kitchen   = entity.RoleKitchen
	reception = entity.RoleReception
)

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	pub := d.Publisher
	if pub == nil {
		pub = events.Noop{}
	}

	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	loyalty := services.Loyalty{SpendPerPoint: cfg.LoyaltySpendPerPoint, PointValue: cfg.LoyaltyPointValue}

	// Services
	authSvc := services.NewAuthService(repository.NewUserRepository(d.DB), cfg.JWTSecret, cfg.JWTTTL, d.Log)
	menuSvc := services.NewMenuService(repository.NewMenuRepository(d.DB), d.Log)
	tableSvc := services.NewTableService(repository.NewTableRepository(d.DB), pub, d.Log)
	resSvc := services.NewReservationService(d.DB, pub, d.Log)
	custSvc := services.NewCustomerService(d.DB, loyalty, d.Log)
	taxSvc := services.NewTaxService(d.DB, d.Log)
	orderSvc := services.NewOrderService(d.DB, pub, d.Log)
	billSvc := services.NewBillService(d.DB, services.BillSettings{
		ServiceChargePercent: cfg.ServiceChargePercent,
		Currency:             cfg.Currency,
		Loyalty:              loyalty,
	}, pub, d.Log)
	dashSvc := services.NewDashboardService(d.DB)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, d.Log)
	menuCtrl := controllers.NewMenuController(menuSvc, d.Log)
	tableCtrl := controllers.NewTableController(tableSvc, d.Log)
	resCtrl := controllers.NewReservationController(resSvc, d.Log)
	custCtrl := controllers.NewCustomerController(custSvc, d.Log)
	taxCtrl := controllers.NewTaxController(taxSvc, d.Log)
	orderCtrl := controllers.NewOrderController(orderSvc, d.Log)
	billCtrl := controllers.NewBillController(billSvc, d.Log)
	dashCtrl := controllers.NewDashboardController(dashSvc, d.Log)

	auth := func(roles ...string) gin.HandlerFunc { return middlewares.AuthMiddleware(cfg.JWTSecret, roles...) }
	only := middlewares.RequireRoles

	// Public
	r.POST("/auth/login", authCtrl.Login)
	r.GET("/menu", menuCtrl.Public)

	// Any signed-in staff member
	staff := r.Group("/", auth())
	{
		staff.GET("/auth/me", authCtrl.Me)

		staff.GET("/categories", menuCtrl.ListCategories)
		staff.GET("/menu-items", menuCtrl.ListItems)
		staff.GET("/menu-items/:id", menuCtrl.GetItem)

		staff.GET("/tables", tableCtrl.List)
		staff.GET("/tables/:id", tableCtrl.Get)

		staff.GET("/tax-settings", taxCtrl.List)
		staff.GET("/tax-settings/active", taxCtrl.Active)

		staff.GET("/orders", orderCtrl.List)
		staff.GET("/orders/:id", orderCtrl.Get)
	}

	// Menu, tables and tax setup (manager/admin)
	setup := r.Group("/", auth(admin, manager))
	{
		setup.POST("/categories", menuCtrl.CreateCategory)
		setup.PATCH("/categories/:id", menuCtrl.UpdateCategory)
		setup.DELETE("/categories/:id", menuCtrl.DeleteCategory)

		setup.POST("/menu-items", menuCtrl.CreateItem)
		setup.PATCH("/menu-items/:id", menuCtrl.UpdateItem)
		setup.DELETE("/menu-items/:id", menuCtrl.DeleteItem)

		setup.POST("/tables", tableCtrl.Create)
		setup.PATCH("/tables/:id", tableCtrl.Update)
		setup.DELETE("/tables/:id", tableCtrl.Delete)

		setup.POST("/tax-settings", taxCtrl.Create)
		setup.PATCH("/tax-settings/:id", taxCtrl.Update)
		setup.POST("/tax-settings/:id/activate", taxCtrl.Activate)
		setup.POST("/tax-settings/:id/deactivate", taxCtrl.Deactivate)
		setup.DELETE("/tax-settings/:id", taxCtrl.Delete)
	}

	// 86'ing a dish is a kitchen call too
	r.PATCH("/menu-items/:id/availability", auth(admin, manager, kitchen), menuCtrl.ToggleItem)
	r.PATCH("/tables/:id/status", auth(admin, manager, waiter, reception), tableCtrl.SetStatus)

	// Orders
	orders := r.Group("/orders", auth(admin, manager, cashier, waiter, kitchen))
	{
		orders.PATCH("/:id/status", orderCtrl.UpdateStatus)

		floor := orders.Group("", only(admin, manager, cashier, waiter))
		floor.POST("", orderCtrl.Create)
		floor.POST("/:id/items", orderCtrl.AddItem)
		floor.PATCH("/:id/items/:itemId", orderCtrl.UpdateItem)
		floor.DELETE("/:id/items/:itemId", orderCtrl.RemoveItem)

		orders.POST("/:id/bill", only(admin, manager, cashier), billCtrl.Generate)
	}

	// Billing
	bills := r.Group("/bills", auth(admin, manager, cashier))
	{
		bills.GET("", billCtrl.List)
		bills.GET("/:id", billCtrl.Get)
		bills.GET("/:id/receipt", billCtrl.Receipt)
		bills.POST("/:id/pay", billCtrl.Pay)
		bills.POST("/:id/void", only(admin, manager), billCtrl.Void)
	}

	// Reservations
	res := r.Group("/reservations", auth(admin, manager, reception, waiter))
	{
		res.GET("", resCtrl.List)
		res.GET("/:id", resCtrl.Get)
		res.POST("", resCtrl.Create)
		res.PATCH("/:id/status", resCtrl.UpdateStatus)
	}

	// Customers & loyalty
	cust := r.Group("/customers", auth(admin, manager, cashier, reception, waiter))
	{
		cust.GET("", custCtrl.List)
		cust.GET("/lookup", custCtrl.Lookup)
		cust.GET("/:id", custCtrl.Get)
		cust.POST("", custCtrl.Create)
		cust.PATCH("/:id", custCtrl.Update)
		cust.GET("/:id/loyalty", custCtrl.Loyalty)
		cust.POST("/:id/loyalty/adjust", only(admin, manager), custCtrl.Adjust)
	}

	// Dashboards
	dash := r.Group("/dashboard")
	{
		dash.GET("/kitchen", auth(admin, manager, kitchen), dashCtrl.Kitchen)
		dash.GET("/reception", auth(admin, manager, reception, waiter), dashCtrl.Reception)
		dash.GET("/sales", auth(admin, manager), dashCtrl.Sales)
	}

	// Staff accounts (admin only)
	adm := r.Group("/admin", auth(admin))
	{
		adm.POST("/users", authCtrl.CreateUser)
		adm.GET("/users", authCtrl.ListUsers)
		adm.PATCH("/users/:id", authCtrl.UpdateUser)
	}

	// Live dashboard feed
	if d.Hub != nil {
		r.GET("/ws/:channel", middlewares.WSAuthMiddleware(cfg.JWTSecret), d.Hub.Handle)
	}
}
