package appfxtest

import (
	"net/http"
	"net/http/httptest"

	"github.com/advdv/cyprus"
)

// CallHandler runs a single [cyprus.HandlerFunc] as the only function of a chain and returns the
// recorded response. Path parameters are not available since no pattern is matched. A handler that
// neither sends nor fails produces the empty 404 of an unbranded app.
func CallHandler(handler cyprus.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	app := cyprus.New(cyprus.WithRemoveBranding(true))
	app.Use(handler)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	return rec
}
