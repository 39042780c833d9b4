package routes

import (
	"net"
	"net/http"
	"strings"
)

// Route value keys.
const (
	ValueController = "controller"
	ValueAction     = "action"
	ValuePage       = "page"
)

// AttributeRouteInfo marks a descriptor as an attribute-routed endpoint.
// A nil Template means the route was declared without one.
type AttributeRouteInfo struct {
	Template *string
	Name     string
}

// Attribute returns route info for the given template.
func Attribute(template string) *AttributeRouteInfo {
	return &AttributeRouteInfo{Template: &template}
}

// Descriptor is one action known to the route table.
type Descriptor struct {
	// AttributeRouteInfo is nil for conventionally routed actions, which are
	// left out of the report.
	AttributeRouteInfo *AttributeRouteInfo
	Constraints        []Constraint
	RouteValues        map[string]string
	DisplayName        string
}

// Value returns a route value, or "" when absent.
func (d Descriptor) Value(key string) string {
	return d.RouteValues[key]
}

// Constraint restricts which requests an action accepts.
type Constraint interface {
	Accept(r *http.Request) bool
}

// HTTPMethodConstraint accepts requests whose method is one of Methods.
type HTTPMethodConstraint struct {
	Methods []string
}

// NewHTTPMethodConstraint returns a constraint for the given verbs, upper-cased.
func NewHTTPMethodConstraint(methods ...string) HTTPMethodConstraint {
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	return HTTPMethodConstraint{Methods: upper}
}

func (c HTTPMethodConstraint) Accept(r *http.Request) bool {
	if len(c.Methods) == 0 {
		return true
	}
	for _, m := range c.Methods {
		if strings.EqualFold(m, r.Method) {
			return true
		}
	}
	return false
}

// HostConstraint accepts requests addressed to one of Hosts.
type HostConstraint struct {
	Hosts []string
}

func (c HostConstraint) Accept(r *http.Request) bool {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for _, h := range c.Hosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// ConstraintFunc adapts a predicate to Constraint.
type ConstraintFunc func(r *http.Request) bool

func (f ConstraintFunc) Accept(r *http.Request) bool { return f(r) }
