// Package api serves the card database over HTTP with gin.
//
// Routes:
//
//	GET /healthcheck
//	GET /api/search?q=...&limit=...&sets=a,b
//	GET /api/suggest?q=...
//	GET /api/stats
//	GET /api/cards/:name
//
// Errors are returned as {"error": {"code": ..., "message": ...}}. Query
// parse errors add the offending fragment and its byte offset.
package api
