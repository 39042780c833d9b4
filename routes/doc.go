// Package routes describes the HTTP routes a host exposes and renders them
// as a deterministic report.
//
// A Provider lists Descriptors. Each descriptor may carry an attribute route
// template, constraints (the first HTTPMethodConstraint decides the reported
// verb) and route values naming the controller, action or page that serves
// it. ReportingAction is a startup action that logs the report once:
//
//	The following paths were found for the configured controllers:
//
//	    GET /foos (FoosController#Index)
//	   POST /foos (FoosController#Create)
//	    GET /foos/{id:int} (FoosController#Show)
//
// Lines are ordered by template, then verb, with byte-wise comparison.
// Exact duplicates are reported once; lines that share a template and verb
// but differ in source are all kept, in provider order.
//
// Providers exist for a static Table, chi routers (ChiProvider) and the gin
// engine behind server.Server. Combine merges several of them.
package routes
