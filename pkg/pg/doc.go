// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retry, goose schema migrations, a health check, and error
// classification helpers.
//
// The service connects and migrates before it starts listening; an
// unreachable database fails startup rather than the first request. The
// IsDuplicateKeyError helper is how the user store distinguishes the
// unique-index race on concurrent first logins from other storage faults.
package pg
