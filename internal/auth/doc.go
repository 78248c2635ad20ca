// Package auth authenticates local users and issues the bearer tokens that
// identify them on the API.
//
// LocalProvider checks user name and password against the users table with
// Argon2id password hashes. TokenService signs HMAC JWTs carrying the user id
// (nameid), user name (unique_name) and email, and verifies them for the bearer
// middleware.
//
// Example usage:
//
//	tokens, err := auth.NewTokenService(cfg.Authentication.Bearer)
//	user, err := auth.NewLocalProvider(db).Authenticate(ctx, "admin", "secret")
//	token, err := tokens.Issue(user)
//	claims, err := tokens.Parse(token.Value)
package auth
