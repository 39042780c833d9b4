package routes

import "strings"

// Defaults used when a descriptor lacks the data.
const (
	AnyMethod       = "*"
	UnknownTemplate = "Unknown"
)

// LogLine is one rendered row of the route report.
type LogLine struct {
	HTTPMethod    string
	RouteTemplate string
	RouteSource   string
}

// FromDescriptor derives the log line for d. Missing data falls back to
// AnyMethod, UnknownTemplate and an empty source.
func FromDescriptor(d Descriptor) LogLine {
	template := UnknownTemplate
	if d.AttributeRouteInfo != nil && d.AttributeRouteInfo.Template != nil {
		template = *d.AttributeRouteInfo.Template
	}
	return LogLine{
		HTTPMethod:    firstMethod(d.Constraints),
		RouteTemplate: template,
		RouteSource:   routeSource(d),
	}
}

// firstMethod returns the first verb of the first method constraint as
// declared. A constraint listing no verbs counts as unconstrained.
func firstMethod(constraints []Constraint) string {
	for _, c := range constraints {
		var mc HTTPMethodConstraint
		switch v := c.(type) {
		case HTTPMethodConstraint:
			mc = v
		case *HTTPMethodConstraint:
			if v == nil {
				continue
			}
			mc = *v
		default:
			continue
		}
		if len(mc.Methods) == 0 {
			return AnyMethod
		}
		return mc.Methods[0]
	}
	return AnyMethod
}

func routeSource(d Descriptor) string {
	controller, action := d.Value(ValueController), d.Value(ValueAction)
	if controller != "" && action != "" {
		return controller + "Controller#" + action
	}
	return d.Value(ValuePage)
}

// Compare orders lines by template, then method, comparing bytes.
func (l LogLine) Compare(other LogLine) int {
	if c := strings.Compare(l.RouteTemplate, other.RouteTemplate); c != 0 {
		return c
	}
	return strings.Compare(l.HTTPMethod, other.HTTPMethod)
}

// String renders "<method> /<template> (<source>)" with the method
// right-aligned to seven columns.
func (l LogLine) String() string {
	return padMethod(l.HTTPMethod) + " /" + l.RouteTemplate + " (" + l.RouteSource + ")"
}

var paddedMethods = map[string]string{
	"GET":     "    GET",
	"HEAD":    "   HEAD",
	"PATCH":   "  PATCH",
	"POST":    "   POST",
	"PUT":     "    PUT",
	"DELETE":  " DELETE",
	"OPTIONS": "OPTIONS",
	"TRACE":   "  TRACE",
	AnyMethod: "      *",
}

// padMethod pads known verbs. Anything else is returned unchanged.
func padMethod(method string) string {
	if p, ok := paddedMethods[method]; ok {
		return p
	}
	return method
}
