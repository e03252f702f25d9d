// Package application provides application initialization and dependency wiring.
// It builds the diagnostics handlers, router and HTTP server from the resolved
// council configuration and the server settings, keeping the main package
// focused on CLI parsing and orchestration.
package application
