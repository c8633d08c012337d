package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/api/responses"
	"github.com/angelmondragon/shopcart-backend/api/validators"
	"github.com/angelmondragon/shopcart-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
)

type browseQueryRequest struct {
	Query string `json:"query" validate:"max=200"`
}

type browseSortRequest struct {
	Sort string `json:"sort"`
}

type browsePriceRequest struct {
	MinPrice *json.Number `json:"min_price"`
	MaxPrice *json.Number `json:"max_price"`
}

func (p browsePriceRequest) bounds() (*decimal.Decimal, *decimal.Decimal, error) {
	lo, err := priceBound("min_price", p.MinPrice)
	if err != nil {
		return nil, nil, err
	}
	hi, err := priceBound("max_price", p.MaxPrice)
	if err != nil {
		return nil, nil, err
	}
	return lo, hi, nil
}

func priceBound(field string, raw *json.Number) (*decimal.Decimal, error) {
	if raw == nil || raw.String() == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be numeric").WithDetails(map[string]any{"field": field})
	}
	if value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price out of range").WithDetails(map[string]any{"field": field, "min": 0})
	}
	return &value, nil
}

// BrowseFetch returns the session's browse state with its current results.
func BrowseFetch(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}

func BrowseSetQuery(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload browseQueryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Browse.SetQuery(validators.SanitizeString(payload.Query, maxSearchLength))
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}

// BrowseSetSort stores the sort key; unknown keys fall back to catalog order.
func BrowseSetSort(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload browseSortRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Browse.SetSort(payload.Sort)
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}

func BrowseSetPrice(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload browsePriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lo, hi, err := payload.bounds()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Browse.SetPriceRange(lo, hi)
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}

// BrowseToggleCategory flips the category named in the path.
func BrowseToggleCategory(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := validators.SanitizeString(chi.URLParam(r, "category"), maxSearchLength)
		if category == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category is required"))
			return
		}

		sess.Browse.ToggleCategory(category)
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}

func BrowseClearCategories(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.Browse.ClearCategories()
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}

// BrowseOpenProduct records a deep link. Unknown ids are 404 and leave the
// state unchanged.
func BrowseOpenProduct(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := sess.Browse.OpenProduct(c, chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}

func BrowseCloseProduct(c *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.Browse.CloseProduct()
		responses.WriteSuccess(w, newBrowseView(sess.Browse, c))
	}
}
