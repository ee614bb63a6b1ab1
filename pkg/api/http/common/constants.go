package common

const (
	// HEADER_API_KEY carries the caller's credential
	HEADER_API_KEY = "x-api-key"

	// API_HEALTH reports the server is up
	API_HEALTH = "/healthz"

	// API_AUTHENTICATE checks a credential without doing anything else
	API_AUTHENTICATE = "/authenticate"

	// API_JOBS is used to look up jobs (by id)
	API_JOBS = "/api/v1/jobs"

	// API_MODELS is used to fetch documentation models (by resource)
	API_MODELS = "/api/v1/models"

	// API_SUBMIT is used to submit a job to a resource; the path is the resource name
	API_SUBMIT = "/"
)

const (
	MSG_VALID_KEY      = "API key is valid"
	MSG_MISSING_KEY    = "API key is missing"
	MSG_INVALID_KEY    = "Invalid API key"
	MSG_INVALID_JSON   = "Invalid JSON payload"
	MSG_NOT_FOUND      = "Not found"
	MSG_NOT_ALLOWED    = "Method not allowed"
	MSG_INTERNAL_ERROR = "Internal server error"
	MSG_UNAVAILABLE    = "Queue unavailable"
)
