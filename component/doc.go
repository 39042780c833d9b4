// Package component defines the lifecycle interface shared by everything the
// host starts and stops, and the Registry that orders them.
//
// Components start in registration order and stop in reverse order. The
// startup action runner is itself a component, so registering it before the
// HTTP server guarantees every startup action completes before the server
// binds its port.
package component
