package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenstudio/lumen-api/internal/middleware"
)

// PublicRoutes returns the public catalog router (read only, active rows).
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}", h.GetCategory)
	r.Get("/packages", h.ListPackages)
	r.Get("/packages/{id}", h.GetPackage)
	r.Get("/addons", h.ListAddons)

	return r
}

// AdminRoutes returns the catalog management router (staff and admin).
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/categories", h.AdminListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)

	r.Get("/packages", h.AdminListPackages)
	r.Post("/packages", h.CreatePackage)
	r.Put("/packages/{id}", h.UpdatePackage)
	r.Delete("/packages/{id}", h.DeletePackage)

	r.Get("/addons", h.AdminListAddons)
	r.Post("/addons", h.CreateAddon)
	r.Put("/addons/{id}", h.UpdateAddon)
	r.Delete("/addons/{id}", h.DeleteAddon)

	return r
}
