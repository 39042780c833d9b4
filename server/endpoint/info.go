package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/hostkit/version"
)

var processStart = time.Now()

// InfoReport is the body of GET /info.
type InfoReport struct {
	Service string       `json:"service"`
	Version string       `json:"version"`
	Build   version.Info `json:"build"`
	Started time.Time    `json:"started"`
	Uptime  string       `json:"uptime"`
}

// Info reports the service identity, build stamp and uptime.
func Info(serviceName, serviceVersion string) gin.HandlerFunc {
	build := version.Get()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoReport{
			Service: serviceName,
			Version: serviceVersion,
			Build:   build,
			Started: processStart.UTC(),
			Uptime:  time.Since(processStart).Round(time.Second).String(),
		})
	}
}
