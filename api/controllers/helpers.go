package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopcart-backend/api/middleware"
	"github.com/angelmondragon/shopcart-backend/internal/session"
	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
)

func sessionFromRequest(r *http.Request) (*session.Session, error) {
	if r == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil || sess.Cart == nil || sess.Browse == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sess, nil
}
