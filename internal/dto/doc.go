// Package dto holds the request and response shapes of the API together with
// their mapping from the persisted models.
package dto
