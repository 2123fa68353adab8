package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pizza-order-service/internal/config"
)

// Version reported by the welcome and docs endpoints.
const Version = "20240518.154317"

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Welcome greets callers of the API root.
func Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "welcome to JWT Pizza",
		"version": Version,
	})
}

// NotFound renders the JSON body for unknown endpoints.
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"message": "unknown endpoint"})
}

// Docs lists the API surface so clients can discover endpoints without
// external documentation.
func Docs(cfg config.Config) echo.HandlerFunc {
	endpoints := []echo.Map{
		{"method": "POST", "path": "/api/auth", "description": "Register a new user"},
		{"method": "PUT", "path": "/api/auth", "description": "Login existing user"},
		{"method": "PUT", "path": "/api/auth/:userId", "description": "Update user", "requiresAuth": true},
		{"method": "DELETE", "path": "/api/auth", "description": "Logout a user", "requiresAuth": true},
		{"method": "GET", "path": "/api/order/menu", "description": "Get the pizza menu"},
		{"method": "PUT", "path": "/api/order/menu", "description": "Add an item to the menu", "requiresAuth": true},
		{"method": "GET", "path": "/api/order", "description": "Get the orders for the authenticated user", "requiresAuth": true},
		{"method": "POST", "path": "/api/order", "description": "Create an order for the authenticated user", "requiresAuth": true},
		{"method": "GET", "path": "/api/franchise", "description": "List all the franchises"},
		{"method": "GET", "path": "/api/franchise/:userId", "description": "List a user's franchises", "requiresAuth": true},
		{"method": "POST", "path": "/api/franchise", "description": "Create a new franchise", "requiresAuth": true},
		{"method": "DELETE", "path": "/api/franchise/:franchiseId", "description": "Delete a franchise", "requiresAuth": true},
		{"method": "POST", "path": "/api/franchise/:franchiseId/store", "description": "Create a new franchise store", "requiresAuth": true},
		{"method": "DELETE", "path": "/api/franchise/:franchiseId/store/:storeId", "description": "Delete a store", "requiresAuth": true},
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version":   Version,
			"endpoints": endpoints,
			"config":    echo.Map{"factory": cfg.FactoryURL},
		})
	}
}
