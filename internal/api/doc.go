// Package api contains the HTTP handlers, request/response models and the
// error-to-status mapping for the Plank REST surface. Handlers stay thin:
// decode, validate, call the service, translate the result. All policy
// (authorization, ordering, cache and event side effects) lives in the
// service layer.
package api
