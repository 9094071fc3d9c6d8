// Package api provides the HTTP layer for the Oddly Enough service.
// It uses Huma over a chi router for OpenAPI generation and request validation.
//
// Layout:
//
//   - server.go: Huma API configuration and middleware chain
//   - handlers/: endpoint handlers for articles, content, admin and engagement
//   - dto/: request and response shapes plus mappers from domain types
//   - middleware/: request logging and per-IP rate limiting
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// Errors use the RFC 7807 shape produced by Huma; domain errors are mapped to
// status codes in handlers.toHumaError. The article listing never fails: when
// every tier is empty it answers with the fallback set instead.
package api
