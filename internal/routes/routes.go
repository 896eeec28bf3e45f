package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medifind/internal/audit"
	"github.com/BruksfildServices01/medifind/internal/cache"
	"github.com/BruksfildServices01/medifind/internal/config"
	pharmacyDomain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/handlers"
	infraRepo "github.com/BruksfildServices01/medifind/internal/infra/repository"
	"github.com/BruksfildServices01/medifind/internal/metrics"
	"github.com/BruksfildServices01/medifind/internal/middleware"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/token"
	ucMedicine "github.com/BruksfildServices01/medifind/internal/usecase/medicine"
	ucPharmacy "github.com/BruksfildServices01/medifind/internal/usecase/pharmacy"
	ucUser "github.com/BruksfildServices01/medifind/internal/usecase/user"
	"github.com/BruksfildServices01/medifind/internal/validators"
)

// Options carries the optional collaborators. Zero values disable the
// matching feature.
type Options struct {
	Cache    pharmacyDomain.Cache
	Images   ucMedicine.ObjectStore
	Audit    audit.Sink
	Metrics  *metrics.Metrics
	Resolver validators.Resolver
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, opts Options) {
	if opts.Cache == nil {
		opts.Cache = cache.Noop{}
	}
	if opts.Audit == nil {
		opts.Audit = audit.Discard{}
	}

	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.AccessLogMiddleware(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/health", health(db))

	userRepo := infraRepo.NewUserGormRepository(db)
	pharmacyRepo := infraRepo.NewPharmacyGormRepository(db)
	medicineRepo := infraRepo.NewMedicineGormRepository(db)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	owned := &ucUser.OwnedPharmacies{Repo: pharmacyRepo, Cache: opts.Cache}

	userHandler := handlers.NewUserHandler(
		ucUser.NewRegister(userRepo, issuer, opts.Resolver),
		ucUser.NewLogin(userRepo, issuer),
		ucUser.NewGetUser(userRepo),
		ucUser.NewListUsers(userRepo),
		ucUser.NewUpdateUser(userRepo, opts.Audit, owned),
		ucUser.NewDeleteUser(userRepo, opts.Audit, owned),
	)

	pharmacyHandler := handlers.NewPharmacyHandler(
		ucPharmacy.NewCreatePharmacy(pharmacyRepo, opts.Audit),
		ucPharmacy.NewListPharmacies(pharmacyRepo),
		ucPharmacy.NewGetPharmacy(pharmacyRepo, opts.Cache),
		ucPharmacy.NewGetMyPharmacy(pharmacyRepo),
		ucPharmacy.NewUpdatePharmacy(pharmacyRepo, opts.Cache, opts.Audit),
		ucPharmacy.NewDeletePharmacy(pharmacyRepo, opts.Cache, opts.Audit),
	)

	medicineHandler := handlers.NewMedicineHandler(
		ucMedicine.NewCreateMedicine(medicineRepo, pharmacyRepo, opts.Audit),
		ucMedicine.NewSearchMedicines(medicineRepo, pharmacyRepo),
		ucMedicine.NewGetMedicine(medicineRepo),
		ucMedicine.NewListPharmacyMedicines(medicineRepo, pharmacyRepo),
		ucMedicine.NewUpdateMedicine(medicineRepo, pharmacyRepo, opts.Audit),
		ucMedicine.NewDeleteMedicine(medicineRepo, pharmacyRepo, opts.Audit),
		ucMedicine.NewUploadMedicineImage(medicineRepo, pharmacyRepo, opts.Images, opts.Audit),
		opts.Metrics,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	auth := middleware.AuthMiddleware(issuer, userRepo, opts.Metrics)
	pharmacyRoles := middleware.RequireRole(models.RolePharmacy, models.RoleAdmin)
	medicineRoles := middleware.RequireRole(models.RolePharmacy)

	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)

		users.GET("/profile", auth, userHandler.Profile)
		users.GET("/me", auth, userHandler.Profile)
		users.GET("", auth, middleware.RequireRole(models.RoleAdmin), userHandler.List)
		users.GET("/:id", auth, userHandler.Get)
		users.PUT("/:id", auth, userHandler.Update)
		users.DELETE("/:id", auth, userHandler.Delete)
	}

	pharmacies := api.Group("/pharmacies")
	{
		pharmacies.GET("", pharmacyHandler.List)
		pharmacies.GET("/my-pharmacy", auth, pharmacyHandler.Mine)
		pharmacies.GET("/me", auth, pharmacyHandler.Mine)
		pharmacies.GET("/:id", pharmacyHandler.Get)

		pharmacies.POST("", auth, pharmacyRoles, pharmacyHandler.Create)
		pharmacies.PUT("/:id", auth, pharmacyRoles, pharmacyHandler.Update)
		pharmacies.DELETE("/:id", auth, pharmacyRoles, pharmacyHandler.Delete)
	}

	medicines := api.Group("/medicines")
	{
		medicines.GET("", medicineHandler.Search)
		medicines.GET("/search", medicineHandler.Search)
		medicines.GET("/pharmacy/:id", medicineHandler.ByPharmacy)
		medicines.GET("/:id", medicineHandler.Get)

		medicines.POST("", auth, medicineRoles, medicineHandler.Create)
		medicines.PUT("/:id", auth, medicineRoles, medicineHandler.Update)
		medicines.DELETE("/:id", auth, medicineRoles, medicineHandler.Delete)
		medicines.PUT("/:id/image", auth, medicineRoles, medicineHandler.UploadImage)
	}

	api.GET("/audit-logs", auth, middleware.RequireRole(models.RoleAdmin), auditLogsHandler.List)
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
