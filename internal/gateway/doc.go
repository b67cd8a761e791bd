// Package gateway ties the login flow together: it drives one callback
// request from authorization grant to session cookie, and serves the
// session introspection and logout endpoints.
//
// The callback is strictly sequential (exchange, reconcile, session)
// because each step consumes the previous step's output. The
// only cross-request race lives in the user store's unique index; the
// orchestrator's part is to retry the lookup once when it loses the
// first-login create race.
package gateway
