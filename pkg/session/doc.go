// Package session holds server-side login state referenced by an opaque
// token in a signed cookie.
//
// A session is created only after a successful login, carries the local
// user id, and lives for a fixed TTL (24h by default). Expiry is enforced
// lazily on Resolve; there is no background sweep of the authoritative
// state. Destroy is idempotent: destroying an absent session is success.
//
// The cookie is a capability. It carries the token and nothing else; all
// user data is re-derived from the store on every request.
package session
