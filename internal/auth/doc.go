// Package auth provides session authentication for taskdeck.
//
// # Sessions
//
// Callers authenticate with JWT bearer tokens signed HS256 with the
// configured jwt_secret. The sub claim carries the user id. Tokens are
// minted by the CLI (bootstrap, user-add) with a configurable TTL.
//
// # Request Flow
//
// The HTTP middleware extracts the Authorization header, verifies the
// token, resolves the user from the store, and attaches an Identity to the
// request context. Handlers read it back with FromContext/MustFromContext.
//
// Authentication failure always surfaces before any validation, policy, or
// existence check, as a uniform 401 that leaks nothing about the target.
package auth
