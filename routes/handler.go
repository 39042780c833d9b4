package routes

import (
	"strings"
)

const controllerSuffix = "Controller"

// HandlerName cleans a Go function name as reported by the runtime:
//
//	"github.com/acme/app/web.(*FoosController).Index-fm" → "FoosController.Index"
//	"github.com/acme/app/web.healthz"                    → "web.healthz"
//	"github.com/acme/app/web.Health.func1"               → "web.Health"
func HandlerName(fullName string) string {
	name := trimClosure(strings.TrimSuffix(fullName, "-fm"))

	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	// Drop the package when a receiver follows: "web.FoosController.Index".
	parts := strings.Split(name, ".")
	if len(parts) >= 3 && !hasUpper(parts[0]) && parts[1] != "" && hasUpper(parts[1][:1]) {
		name = strings.Join(parts[1:], ".")
	}
	return name
}

// ValuesFromHandler maps a handler's runtime name to route values. Methods on
// a type named <Name>Controller yield controller <Name> and the method as the
// action; any other handler is reported as a page named after the function.
func ValuesFromHandler(fullName string) map[string]string {
	name := HandlerName(fullName)
	if name == "" {
		return map[string]string{}
	}

	parts := strings.Split(name, ".")
	if len(parts) == 2 {
		recv, method := parts[0], parts[1]
		if controller, ok := strings.CutSuffix(recv, controllerSuffix); ok && controller != "" && method != "" {
			return map[string]string{
				ValueController: controller,
				ValueAction:     method,
			}
		}
	}
	return map[string]string{ValuePage: name}
}

// FromHandler builds an attribute-routed descriptor for a handler mounted at
// path for method. The leading slash of path is not part of the template.
func FromHandler(method, path, handlerName string) Descriptor {
	return Descriptor{
		AttributeRouteInfo: Attribute(strings.TrimPrefix(path, "/")),
		Constraints:        []Constraint{NewHTTPMethodConstraint(method)},
		RouteValues:        ValuesFromHandler(handlerName),
		DisplayName:        method + " " + path,
	}
}

// trimClosure drops the ".funcN" and ".N" segments the compiler appends to
// closures so they report the function that built them.
func trimClosure(name string) string {
	for {
		idx := strings.LastIndex(name, ".")
		if idx < 0 || !isClosureSegment(name[idx+1:]) {
			return name
		}
		name = name[:idx]
	}
}

func isClosureSegment(seg string) bool {
	seg = strings.TrimPrefix(seg, "func")
	if seg == "" {
		return false
	}
	for _, c := range seg {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func hasUpper(s string) bool {
	for _, c := range s {
		if c >= 'A' && c <= 'Z' {
			return true
		}
	}
	return false
}
