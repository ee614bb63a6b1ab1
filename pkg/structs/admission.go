package structs

const (
	// FieldID is the acknowledgment field holding the job id
	FieldID = "id"

	// FieldStatus is the acknowledgment field holding the job status
	FieldStatus = "status"

	// FieldWebhookURL is the payload field the worker notifies on completion
	FieldWebhookURL = "webhook_url"
)

// AdmissionRequest is a single inbound job submission. It lives only as long as the call
// that admits it.
type AdmissionRequest struct {
	// Resource names the request & response schemas to use
	Resource string

	// Credential is the caller's api key (may be empty)
	Credential string

	// Payload is the raw, untrusted request body
	Payload []byte
}

// Acknowledgment is the body returned to a caller whose job was accepted.
type Acknowledgment map[string]any
