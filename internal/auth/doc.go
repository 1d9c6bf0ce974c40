// Package auth implements the authentication core: bcrypt password
// hashing, registration and login, the session-token lifecycle and the
// password-reset flow, plus the HTTP layer around them (endpoints, the
// gate middleware and the pluggable session strategies).
//
// # Strategies
//
// The gate middleware authenticates requests through a Strategy. Which one
// runs is selected with AUTH_STRATEGY:
//
//	AUTH_STRATEGY=base         # exclusion gate only, record-backed sessions
//	AUTH_STRATEGY=basic        # Authorization: Basic credentials
//	AUTH_STRATEGY=session      # in-memory session table, no expiry
//	AUTH_STRATEGY=session_exp  # in-memory with SESSION_DURATION expiry
//	AUTH_STRATEGY=session_db   # durable session table with expiry
//
// Strategies that manage their own sessions (the session* family) issue
// and destroy cookie tokens through their session table. The base and
// basic strategies fall back to the record-backed single-session-per-user
// model kept by Service, where the token lives on the user row itself.
//
// # Usage
//
// Initialize in the entrypoint:
//
//	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
//	service := auth.NewService(userRepo, hasher)
//	strategy := auth.NewBareSession(cfg.Auth.CookieName, userRepo)
//	router.Use(auth.NewMiddleware(service, strategy, cfg.Auth).Handler())
//
// Extract the user in handlers with auth.CurrentUser(c).
package auth
