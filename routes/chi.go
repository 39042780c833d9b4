package routes

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ChiProvider lists the routes registered on a chi router.
type ChiProvider struct {
	router chi.Routes
}

var _ Provider = (*ChiProvider)(nil)

// NewChiProvider creates a provider over router.
func NewChiProvider(router chi.Routes) *ChiProvider {
	return &ChiProvider{router: router}
}

// Descriptors walks the router. The result is sorted by path and method.
func (p *ChiProvider) Descriptors() []Descriptor {
	descriptors := chiDescriptors(p.router, "")
	sort.SliceStable(descriptors, func(i, j int) bool {
		a, b := FromDescriptor(descriptors[i]), FromDescriptor(descriptors[j])
		return a.Compare(b) < 0
	})
	return descriptors
}

// chiDescriptors flattens the routes below prefix. A handler registered for
// every method (Handle, HandleFunc, Mount) yields one descriptor without a
// method constraint; chi also stores it under each verb.
func chiDescriptors(router chi.Routes, prefix string) []Descriptor {
	var out []Descriptor
	for _, route := range router.Routes() {
		if route.SubRoutes != nil {
			out = append(out, chiDescriptors(route.SubRoutes, prefix+route.Pattern)...)
			continue
		}
		path := strings.ReplaceAll(prefix+route.Pattern, "/*/", "/")

		var anyName string
		if h, ok := route.Handlers[AnyMethod]; ok {
			anyName = handlerFuncName(h)
			out = append(out, Descriptor{
				AttributeRouteInfo: Attribute(strings.TrimPrefix(path, "/")),
				RouteValues:        ValuesFromHandler(anyName),
			})
		}
		for method, h := range route.Handlers {
			if method == AnyMethod {
				continue
			}
			name := handlerFuncName(h)
			if anyName != "" && name == anyName {
				continue
			}
			out = append(out, FromHandler(method, path, name))
		}
	}
	return out
}

func handlerFuncName(h http.Handler) string {
	if chain, ok := h.(*chi.ChainHandler); ok {
		h = chain.Endpoint
	}
	if hf, ok := h.(http.HandlerFunc); ok {
		if fn := runtime.FuncForPC(reflect.ValueOf(hf).Pointer()); fn != nil {
			return fn.Name()
		}
	}
	return fmt.Sprintf("%T", h)
}
