// Package cookie manages HTTP cookies with HMAC signing.
//
// The session token travels in a signed cookie: the client can read it but
// cannot forge or tamper with it. Multiple secrets are accepted so keys can
// be rotated without invalidating cookies signed by the previous key.
package cookie
