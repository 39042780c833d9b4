// Package version reports the build version of the host binary.
//
// Values are set at link time and fall back to the module build info:
//
//	go build -ldflags "-X github.com/kbukum/hostkit/version.Version=1.4.0" ./cmd/hostd
package version
