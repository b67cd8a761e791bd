// Package redis connects the optional Redis session store backend.
// The gateway falls back to the in-memory store when REDIS_URL is unset.
package redis
