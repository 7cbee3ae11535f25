// Package api handles incoming HTTP requests, request validation and
// response formatting. It translates HTTP concerns into calls on the auth
// and task services and maps their errors onto status codes in one place.
package api
