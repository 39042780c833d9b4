// Package catalog is the sample domain served by hostd: an in-memory store
// of foos, a Gin controller over it, a chi admin router and the startup
// action that seeds the store.
package catalog
