// Package session talks to the remote form service. Client registers a user
// and fetches that user's form; Flow sequences both calls behind a login
// guard and keeps the resulting authenticated state.
package session
