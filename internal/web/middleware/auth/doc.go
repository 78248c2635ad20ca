// Package auth provides the bearer token middleware of the API.
//
// The middleware reads the Authorization header, verifies the token with the
// token service and adds the user id of the token to fiber.Locals, where
// handlers read it with handler.UserID. Requests without a valid token get a
// 401 problem response.
//
// Usage:
//
//	authn := authmiddleware.New(tokens)
//	app.Get("/user", authn, profileHandler)
package auth
