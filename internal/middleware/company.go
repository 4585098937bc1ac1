package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/scope"
	"github.com/jamesruscoe/dog-kennel/internal/services"
)

// CompanyFromSlug binds the company named by the :slug path parameter. It
// serves the public routes, where there is no token to carry the company.
func CompanyFromSlug(companies services.CompanyService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			slug := c.Param("slug")
			if slug == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing kennel slug")
			}

			// Lookup runs unscoped; there is no company bound yet.
			company, err := companies.GetBySlug(scope.Unscoped(c.Request().Context()), slug)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "kennel not found")
			}

			ctx := scope.Bind(c.Request().Context(), company.ID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("company", company)

			return next(c)
		}
	}
}
