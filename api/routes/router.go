package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minhle2212044/greencycle-backend/api/controllers"
	"github.com/minhle2212044/greencycle-backend/api/middleware"
	"github.com/minhle2212044/greencycle-backend/internal/auth"
	"github.com/minhle2212044/greencycle-backend/internal/centers"
	"github.com/minhle2212044/greencycle-backend/internal/materials"
	"github.com/minhle2212044/greencycle-backend/internal/orders"
	"github.com/minhle2212044/greencycle-backend/internal/rewards"
	materialtypes "github.com/minhle2212044/greencycle-backend/internal/types"
	"github.com/minhle2212044/greencycle-backend/internal/users"
	"github.com/minhle2212044/greencycle-backend/pkg/config"
	"github.com/minhle2212044/greencycle-backend/pkg/logger"
	"github.com/minhle2212044/greencycle-backend/pkg/metrics"
	"github.com/minhle2212044/greencycle-backend/pkg/redis"
)

// Dependencies carries everything the router wires together. RateLimiter and
// Metrics may be nil and drop their middleware.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	Auth      auth.Service
	Users     users.Service
	Centers   centers.Service
	Materials materials.Service
	Types     materialtypes.Service
	Rewards   rewards.Service
	Orders    orders.Service

	RateLimiter *redis.Client
	Metrics     *metrics.HTTPMetrics
	Health      []controllers.HealthCheck
}

// New assembles the full HTTP surface.
func New(deps Dependencies) http.Handler {
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.CORS())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/health/live", controllers.Live())
	r.Get("/health/ready", controllers.Ready(logg, deps.Health...))
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	rl := deps.Config.AuthRateLimit
	r.Route("/auth", func(r chi.Router) {
		r.With(rateLimit(deps, "signup", rl.SignupWindow, rl.SignupIPLimit, rl.SignupEmailLimit)).
			Post("/signup", controllers.Signup(deps.Auth, logg))
		r.With(rateLimit(deps, "signin", rl.SigninWindow, rl.SigninIPLimit, rl.SigninEmailLimit)).
			Post("/signin", controllers.Signin(deps.Auth, logg))
		r.Post("/refresh-token", controllers.RefreshToken(deps.Auth, logg))
		r.Post("/resign-access-token", controllers.ReSignAccessToken(deps.Auth, logg))
		r.Post("/verify-token", controllers.VerifyToken(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Config.JWT, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Get("/email/{email}", controllers.GetUserByEmail(deps.Users, logg))
			r.Get("/{id}", controllers.GetUser(deps.Users, logg))
			r.Patch("/{id}", controllers.UpdateUser(deps.Users, logg))
			r.Delete("/{id}", controllers.DeleteUser(deps.Users, logg))
			r.Patch("/{id}/password", controllers.UpdateUserPassword(deps.Users, logg))
			r.Get("/{id}/recycle-stats", controllers.UserRecycleStats(deps.Users, logg))
		})

		r.Route("/centers", func(r chi.Router) {
			r.Post("/", controllers.CreateCenter(deps.Centers, logg))
			r.Get("/", controllers.ListCenters(deps.Centers, logg))
			r.Get("/{id}", controllers.GetCenter(deps.Centers, logg))
			r.Patch("/{id}", controllers.UpdateCenter(deps.Centers, logg))
			r.Delete("/{id}", controllers.DeleteCenter(deps.Centers, logg))
			r.Post("/{id}/collectables", controllers.AddCenterCollectables(deps.Centers, logg))
			r.Post("/{id}/schedules", controllers.AddCenterSchedules(deps.Centers, logg))
		})

		r.Route("/materials", func(r chi.Router) {
			r.Post("/", controllers.CreateMaterial(deps.Materials, logg))
			r.Get("/", controllers.ListMaterials(deps.Materials, logg))
			r.Get("/{id}", controllers.GetMaterial(deps.Materials, logg))
			r.Patch("/{id}", controllers.UpdateMaterial(deps.Materials, logg))
			r.Delete("/{id}", controllers.DeleteMaterial(deps.Materials, logg))
		})

		r.Route("/types", func(r chi.Router) {
			r.Get("/", controllers.ListTypes(deps.Types, logg))
			r.Post("/material/{id}", controllers.AddTypeToMaterial(deps.Types, logg))
			r.Get("/material/{id}", controllers.ListTypesByMaterial(deps.Types, logg))
			r.Get("/{name}", controllers.GetType(deps.Types, logg))
			r.Patch("/{name}", controllers.UpdateType(deps.Types, logg))
			r.Delete("/{name}", controllers.DeleteType(deps.Types, logg))
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/", controllers.CreateReward(deps.Rewards, logg))
			r.Get("/", controllers.ListRewards(deps.Rewards, logg))
			r.Get("/type/{type}", controllers.ListRewardsByType(deps.Rewards, logg))
			r.Post("/favorite", controllers.ToggleFavoriteReward(deps.Rewards, logg))
			r.Route("/cart", func(r chi.Router) {
				r.Post("/", controllers.AddToCart(deps.Rewards, logg))
				r.Get("/", controllers.ListCart(deps.Rewards, logg))
				r.Patch("/increase/{id}", controllers.IncreaseCartQuantity(deps.Rewards, logg))
				r.Patch("/decrease/{id}", controllers.DecreaseCartQuantity(deps.Rewards, logg))
				r.Get("/summary/{userId}", controllers.CartSummary(deps.Rewards, logg))
			})
			r.Get("/{id}", controllers.GetReward(deps.Rewards, logg))
			r.Patch("/{id}", controllers.UpdateReward(deps.Rewards, logg))
			r.Delete("/{id}", controllers.DeleteReward(deps.Rewards, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Post("/material", controllers.CreateMaterialOrder(deps.Orders, logg))
			r.Post("/reward/{id}", controllers.CreateRewardOrder(deps.Orders, logg))
			r.Get("/reward/{id}/detail", controllers.GetRewardOrderDetail(deps.Orders, logg))
			r.Get("/material/{id}/detail", controllers.GetMaterialOrderDetail(deps.Orders, logg))
			r.Get("/reward/user/{userId}", controllers.ListRewardOrders(deps.Orders, logg))
			r.Get("/material/user/{userId}", controllers.ListMaterialOrders(deps.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(deps.Orders, logg))
		})
	})

	return r
}

// rateLimit builds the fixed-window limiter for one auth surface, or a no-op
// middleware when no Redis client is wired.
func rateLimit(deps Dependencies, name string, window time.Duration, ipLimit, emailLimit int) func(http.Handler) http.Handler {
	if deps.RateLimiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	policy := middleware.NewAuthRateLimitPolicy(name, window, ipLimit, emailLimit)
	return middleware.AuthRateLimit(policy, deps.RateLimiter, deps.Logger)
}
