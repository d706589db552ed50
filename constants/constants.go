package constants

const (
	APP_NAME = "Inkwell"

	MAX_COMMENT_LENGTH  = 500
	MIN_PASSWORD_LENGTH = 8

	// layout for BlogPost.Date, e.g. "August 31, 2026"
	POST_DATE_FORMAT = "January 2, 2006"
)
