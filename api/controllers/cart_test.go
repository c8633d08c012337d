package controllers

import (
	"net/http"
	"testing"
)

func TestCartAddUpdateRemove(t *testing.T) {
	c := testCatalog(t)
	logg := testLogger()
	sess := testSession(t)

	add := CartAddItem(c, logg)
	serve(t, sess, http.MethodPost, "/cart/items", "/cart/items", `{"product_id":"p-001"}`, add)
	resp := serve(t, sess, http.MethodPost, "/cart/items", "/cart/items", `{"product_id":"p-001"}`, add)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	view := decodeData[CartView](t, resp)
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 2 || view.ItemCount != 2 {
		t.Fatalf("expected one line with qty 2, got %+v", view)
	}
	if view.Subtotal.Value != "43.98" || view.Total.Formatted != "$43.98" {
		t.Fatalf("unexpected totals %+v", view)
	}

	resp = serve(t, sess, http.MethodPatch, "/cart/items/{productId}", "/cart/items/p-001", `{"quantity":"3.7"}`, CartUpdateItem(logg))
	if view := decodeData[CartView](t, resp); view.Lines[0].Quantity != 3 || view.Lines[0].LineTotal.Value != "65.97" {
		t.Fatalf("expected floored qty 3, got %+v", view.Lines)
	}

	resp = serve(t, sess, http.MethodPatch, "/cart/items/{productId}", "/cart/items/p-001", `{"quantity":0}`, CartUpdateItem(logg))
	if view := decodeData[CartView](t, resp); len(view.Lines) != 0 {
		t.Fatalf("qty 0 must remove the line, got %+v", view.Lines)
	}

	serve(t, sess, http.MethodPost, "/cart/items", "/cart/items", `{"product_id":"p-002"}`, add)
	resp = serve(t, sess, http.MethodDelete, "/cart/items/{productId}", "/cart/items/p-002", "", CartRemoveItem(logg))
	if view := decodeData[CartView](t, resp); len(view.Lines) != 0 || view.Total.Value != "0.00" {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	c := testCatalog(t)
	logg := testLogger()
	sess := testSession(t)

	resp := serve(t, sess, http.MethodPost, "/cart/items", "/cart/items", `{}`, CartAddItem(c, logg))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	resp = serve(t, sess, http.MethodPost, "/cart/items", "/cart/items", `{"product_id":"ghost"}`, CartAddItem(c, logg))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	resp = serve(t, sess, http.MethodPatch, "/cart/items/{productId}", "/cart/items/p-001", `{}`, CartUpdateItem(logg))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing quantity got %d", resp.Code)
	}
	if sess.Cart.ItemCount() != 0 {
		t.Fatalf("rejected requests must not touch the cart")
	}
}

func TestCartCouponFlow(t *testing.T) {
	c := testCatalog(t)
	logg := testLogger()
	sess := testSession(t)
	apply := CartApplyCoupon(logg)

	serve(t, sess, http.MethodPost, "/cart/items", "/cart/items", `{"product_id":"p-003"}`, CartAddItem(c, logg))

	resp := serve(t, sess, http.MethodPost, "/cart/coupon", "/cart/coupon", `{"code":"  bigspender "}`, apply)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	view := decodeData[CartView](t, resp)
	if view.Coupon == nil || view.Coupon.Code != "BIGSPENDER" || view.Coupon.ThresholdMin == nil {
		t.Fatalf("expected BIGSPENDER applied, got %+v", view.Coupon)
	}
	if view.Discount.Value != "20.00" || view.Total.Value != "80.00" {
		t.Fatalf("unexpected totals %+v", view)
	}

	cases := []struct {
		body   string
		status int
		code   string
		reason string
	}{
		{body: `{"code":"BIGSPENDER"}`, status: http.StatusConflict, code: "CONFLICT", reason: "ALREADY_APPLIED"},
		{body: `{"code":"   "}`, status: http.StatusBadRequest, code: "VALIDATION_ERROR", reason: "EMPTY"},
		{body: `{"code":"NOPE"}`, status: http.StatusBadRequest, code: "VALIDATION_ERROR", reason: "INVALID"},
	}
	for _, tc := range cases {
		resp := serve(t, sess, http.MethodPost, "/cart/coupon", "/cart/coupon", tc.body, apply)
		if resp.Code != tc.status {
			t.Fatalf("%s: expected %d got %d", tc.body, tc.status, resp.Code)
		}
		apiErr := decodeError(t, resp)
		details, _ := apiErr.Details.(map[string]any)
		if apiErr.Code != tc.code || details["reason"] != tc.reason {
			t.Fatalf("%s: unexpected error %+v", tc.body, apiErr)
		}
	}
	if sess.Cart.AppliedCoupon().Code != "BIGSPENDER" {
		t.Fatalf("failed applies must keep the current coupon")
	}

	resp = serve(t, sess, http.MethodDelete, "/cart", "/cart", "", CartClear(logg))
	if view := decodeData[CartView](t, resp); len(view.Lines) != 0 || view.Coupon == nil {
		t.Fatalf("clear keeps the coupon, got %+v", view)
	}

	resp = serve(t, sess, http.MethodDelete, "/cart/coupon", "/cart/coupon", "", CartRemoveCoupon(logg))
	if view := decodeData[CartView](t, resp); view.Coupon != nil {
		t.Fatalf("expected coupon removed, got %+v", view.Coupon)
	}

	resp = serve(t, sess, http.MethodGet, "/cart", "/cart", "", CartFetch(logg))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if view := decodeData[CartView](t, resp); view.Lines == nil || view.Total.Formatted != "$0.00" {
		t.Fatalf("unexpected empty cart view %+v", view)
	}
}
