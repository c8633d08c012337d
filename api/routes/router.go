package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopcart-backend/api/controllers"
	"github.com/angelmondragon/shopcart-backend/api/middleware"
	"github.com/angelmondragon/shopcart-backend/internal/catalog"
	"github.com/angelmondragon/shopcart-backend/pkg/config"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	snapshots controllers.Pinger,
	products *catalog.Catalog,
	sessions middleware.SessionProvider,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, snapshots))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(products, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(products, logg))
		r.Get("/categories", controllers.CategoriesList(products, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(sessions, logg))

			r.Route("/browse", func(r chi.Router) {
				r.Get("/", controllers.BrowseFetch(products, logg))
				r.Put("/query", controllers.BrowseSetQuery(products, logg))
				r.Put("/sort", controllers.BrowseSetSort(products, logg))
				r.Put("/price", controllers.BrowseSetPrice(products, logg))
				r.Post("/categories/{category}", controllers.BrowseToggleCategory(products, logg))
				r.Delete("/categories", controllers.BrowseClearCategories(products, logg))
				r.Put("/product/{productId}", controllers.BrowseOpenProduct(products, logg))
				r.Delete("/product", controllers.BrowseCloseProduct(products, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Delete("/", controllers.CartClear(logg))
				r.Post("/items", controllers.CartAddItem(products, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(logg))
				r.Post("/coupon", controllers.CartApplyCoupon(logg))
				r.Delete("/coupon", controllers.CartRemoveCoupon(logg))
			})
		})
	})

	return r
}
