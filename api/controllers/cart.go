package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopcart-backend/api/responses"
	"github.com/angelmondragon/shopcart-backend/api/validators"
	"github.com/angelmondragon/shopcart-backend/internal/cart"
	"github.com/angelmondragon/shopcart-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=255"`
}

type updateItemRequest struct {
	Quantity any `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code" validate:"max=64"`
}

// CartFetch renders the session cart with its totals.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

// CartAddItem adds one unit of a catalog product.
func CartAddItem(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := c.Get(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Cart.AddToCart(r.Context(), product)
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

// CartUpdateItem sets a line quantity. Loose numeric input is floored and
// anything below one removes the line.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"quantity": "is required"}))
			return
		}

		sess.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), cart.CoerceQuantity(payload.Quantity))
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.Cart.RemoveItem(r.Context(), chi.URLParam(r, "productId"))
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

// CartClear empties the lines; an applied coupon stays.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.Cart.ClearCart(r.Context())
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

// CartApplyCoupon applies a promo code. Rejections carry details.reason.
func CartApplyCoupon(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload applyCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res := sess.Cart.ApplyCoupon(r.Context(), payload.Code)
		if !res.OK {
			responses.WriteError(r.Context(), logg, w, couponError(res.Reason))
			return
		}
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

func CartRemoveCoupon(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.Cart.RemoveCoupon(r.Context())
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

func couponError(reason cart.Reason) *pkgerrors.Error {
	details := map[string]any{"reason": string(reason)}
	switch reason {
	case cart.ReasonEmpty:
		return pkgerrors.New(pkgerrors.CodeValidation, "enter a promo code").WithDetails(details)
	case cart.ReasonAlreadyApplied:
		return pkgerrors.New(pkgerrors.CodeConflict, "promo code already applied").WithDetails(details)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid promo code").WithDetails(details)
	}
}
