// Package middleware decorates a ports.SessionStore with transformations
// applied on the way to and from storage.
package middleware

import "github.com/aretw0/botcmd/pkg/ports"

// Middleware wraps a SessionStore.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies the middlewares so that the first one sees the session first
// on Save and last on Load.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
