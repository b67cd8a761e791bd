// Package credential generates throwaway passwords for accounts that
// originate from a federated login.
//
// The user table requires a non-null password hash even when the account
// will only ever authenticate through the identity provider. Generate
// produces a random secret and its bcrypt hash; only the hash is stored,
// and no login path ever verifies against it.
package credential
