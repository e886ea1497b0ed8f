// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/post-board/internal/utils"
	"github.com/MKhiriev/post-board/models"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi calls it when the request path matches a registered route but the
// method is not handled. The response is 405 with a JSON error body and an
// Allow header listing the methods registered for that path.
//
// The Allow lookup walks every route registered on router, sub-routers
// included, and compares each full pattern against the raw request path
// ([http.Request.URL.Path]). Parameterised or wildcard segments are not
// expanded; post-board has none.
//
// It must be registered before any sub-router is mounted so that the
// sub-routers inherit it.
//
// Usage:
//
//	router := chi.NewRouter()
//	router.MethodNotAllowed(CheckHTTPMethod(router))
//	// ... register routes ...
func CheckHTTPMethod(router chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(router, r.URL.Path); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}

		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)}, http.StatusMethodNotAllowed)
	}
}

// allowedMethods returns the sorted methods registered for path.
func allowedMethods(router chi.Routes, path string) []string {
	var methods []string
	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route == path || strings.TrimSuffix(route, "/") == path {
			methods = append(methods, method)
		}
		return nil
	})

	slices.Sort(methods)
	return slices.Compact(methods)
}

// notFound answers unknown paths with a JSON 404 body.
func notFound(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
}
