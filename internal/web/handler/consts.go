package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// IDPath is the route of a single entity in a route group.
	IDPath = "/:id"

	// UserIDLocal is the fiber.Locals key of the authenticated user id.
	UserIDLocal = "user_id"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// ErrNilAuthnMsg is used if a handler with protected routes gets no authentication middleware.
	ErrNilAuthnMsg = "authentication middleware is nil"
)
