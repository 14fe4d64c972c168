package catalog

import (
	"context"

	"github.com/goliatone/go-catalog/middleware/jwtware"
)

// ValidationListener aliases the jwtware listener so consumers can wire gates
// without importing the middleware package directly.
type ValidationListener = jwtware.ValidationListener

// ContextEnricherAdapter narrows jwtware.AuthClaims to catalog.AuthClaims and
// stores the claims in the standard context for downstream handlers.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}
	return WithClaimsContext(c, authClaims)
}

// RegisterValidationListeners appends listeners to a jwtware.Config, skipping
// nil entries.
func RegisterValidationListeners(cfg *jwtware.Config, listeners ...ValidationListener) {
	if cfg == nil {
		return
	}
	for _, listener := range listeners {
		if listener == nil {
			continue
		}
		cfg.ValidationListeners = append(cfg.ValidationListeners, listener)
	}
}
