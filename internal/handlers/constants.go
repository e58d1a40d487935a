package handlers

const (
	RequestIDHeader = "X-Request-ID"

	ErrInvalidJSON = "Invalid JSON body"
	ErrInvalidID   = "must be a positive integer"
	ErrRateLimited = "Too many requests, please try again later"
)
