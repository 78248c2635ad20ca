// Package main provides the entry point of the FinanSync API server.
// It starts a Fiber based JSON API that authenticates users with bearer
// tokens and exposes their profile, their typed settings reconciled against
// a global settings catalog, and their financial accounts and transactions.
// Persistence is handled by gorm on MySQL, PostgreSQL or SQLite.
package main
