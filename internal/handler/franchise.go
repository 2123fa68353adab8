package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pizza-order-service/internal/authz"
	"github.com/iliyamo/pizza-order-service/internal/middleware"
	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/repository"
)

// FranchiseHandler serves franchise and store management endpoints.
type FranchiseHandler struct {
	Franchises *repository.FranchiseRepo
}

func NewFranchiseHandler(f *repository.FranchiseRepo) *FranchiseHandler {
	return &FranchiseHandler{Franchises: f}
}

type createFranchiseReq struct {
	Name   string `json:"name"`
	Admins []struct {
		Email string `json:"email"`
	} `json:"admins"`
}

type createStoreReq struct {
	Name string `json:"name"`
}

// List returns every franchise with its stores. The route is public;
// a system admin caller additionally sees admins and store revenue.
func (h *FranchiseHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	franchises, err := h.Franchises.List(ctx, middleware.AuthUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, franchises)
}

// ListForUser returns the franchises the target user administers. Only
// the user themself or an admin sees them; anyone else gets an empty
// list rather than an error, so the endpoint leaks nothing.
func (h *FranchiseHandler) ListForUser(c echo.Context) error {
	caller := middleware.AuthUser(c)
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	franchises := []model.Franchise{}
	if authz.Authorized(caller, authz.ActionListUserFranchises, authz.Resource{UserID: userID}) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if franchises, err = h.Franchises.ListForUser(ctx, userID); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(http.StatusOK, franchises)
}

// Create makes a new franchise with the given admin users. Admin only.
func (h *FranchiseHandler) Create(c echo.Context) error {
	if !authz.Authorized(middleware.AuthUser(c), authz.ActionCreateFranchise, authz.Resource{}) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to create a franchise"})
	}
	var req createFranchiseReq
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "franchise name is required"})
	}

	f := model.Franchise{Name: req.Name}
	for _, a := range req.Admins {
		f.Admins = append(f.Admins, model.User{Email: a.Email})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Franchises.Create(ctx, &f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, created)
}

// Delete removes a franchise, cascading to its stores and franchisee
// bindings. Admin only. Historical orders survive.
func (h *FranchiseHandler) Delete(c echo.Context) error {
	if !authz.Authorized(middleware.AuthUser(c), authz.ActionDeleteFranchise, authz.Resource{}) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to delete a franchise"})
	}
	franchiseID, err := strconv.ParseUint(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid franchise id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Franchises.Delete(ctx, franchiseID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "franchise deleted"})
}

// CreateStore adds a store under a franchise. Allowed for admins and
// for franchisees bound to that franchise.
func (h *FranchiseHandler) CreateStore(c echo.Context) error {
	franchiseID, err := strconv.ParseUint(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid franchise id"})
	}
	if !authz.Authorized(middleware.AuthUser(c), authz.ActionCreateStore, authz.Resource{FranchiseID: franchiseID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to create a store"})
	}
	var req createStoreReq
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "store name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	store, err := h.Franchises.CreateStore(ctx, franchiseID, &model.Store{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

// DeleteStore removes a store. Same authorization rule as CreateStore;
// the store's orders remain retrievable.
func (h *FranchiseHandler) DeleteStore(c echo.Context) error {
	franchiseID, err := strconv.ParseUint(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid franchise id"})
	}
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid store id"})
	}
	if !authz.Authorized(middleware.AuthUser(c), authz.ActionDeleteStore, authz.Resource{FranchiseID: franchiseID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to delete a store"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Franchises.DeleteStore(ctx, franchiseID, storeID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "store deleted"})
}
