package catalog

import (
	"net/http"

	"github.com/goliatone/go-catalog/middleware/jwtware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

type RouteAuthenticator struct {
	auth         Authenticator
	cfg          Config
	resolver     *CurrentUserResolver
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

// WithUserResolver attaches a resolver so protected routes re-check the token
// subject against the user store on every request.
func (a *RouteAuthenticator) WithUserResolver(resolver *CurrentUserResolver) *RouteAuthenticator {
	a.resolver = resolver
	return a
}

// tokenValidatorAdapter bridges the Authenticator claim parser into the
// middleware's validator interface.
type tokenValidatorAdapter struct {
	auth Authenticator
}

func (t tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := t.auth.ClaimsFromToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	mwConfig := jwtware.Config{
		ErrorHandler: errorHandler,
		SigningKey: jwtware.SigningKey{
			Key:    []byte(cfg.GetSigningKey()),
			JWTAlg: cfg.GetSigningMethod(),
		},
		AuthScheme:      cfg.GetAuthScheme(),
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		TokenValidator:  tokenValidatorAdapter{auth: a.auth},
		ContextEnricher: ContextEnricherAdapter,
	}

	if a.resolver != nil {
		RegisterValidationListeners(&mwConfig, UserGateValidationListener(a.resolver))
	}

	return jwtware.New(mwConfig)
}

// UserGateValidationListener rejects tokens whose subject no longer maps to a
// live user. The resolved identity is stored in the router context for
// downstream handlers.
func UserGateValidationListener(resolver *CurrentUserResolver) jwtware.ValidationListener {
	return func(ctx router.Context, claims jwtware.AuthClaims) error {
		identity, err := resolver.ResolveIdentifier(ctx.Context(), claims.Subject())
		if err != nil {
			return err
		}
		SetRouterIdentity(ctx, identity)
		return nil
	}
}

// MakeAPIAuthErrorHandler builds the error handler protected routes use. When
// optional is true a failed authentication lets the request proceed anonymously.
func (a *RouteAuthenticator) MakeAPIAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(http.StatusUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

// Login authenticates the payload credentials and returns a signed token.
func (a *RouteAuthenticator) Login(ctx router.Context, identifier, password string) (string, error) {
	token, err := a.auth.Login(ctx.Context(), identifier, password)
	if err != nil {
		a.Logger.Error("Login error", "error", err)
		return "", err
	}
	return token, nil
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	return RespondWithError(a.Logger, c, err)
}

// RespondWithError maps a rich error to an HTTP status and JSON body.
func RespondWithError(logger Logger, c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(http.StatusInternalServerError)
	}

	logger.Info(
		"Request error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"path", c.Path(),
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return c.JSON(StatusForError(richErr), map[string]any{
		"detail": richErr.Message,
	})
}

// StatusForError maps error categories to HTTP status codes.
func StatusForError(err *errors.Error) int {
	switch err.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return http.StatusUnauthorized
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryBadInput, errors.CategoryValidation, errors.CategoryConflict:
		return http.StatusBadRequest
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
