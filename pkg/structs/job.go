package structs

// Job is the unit of work handed to the queue.
type Job struct {
	// ID is a unique identifier for this job, assigned on admission.
	ID string `json:"id"`

	// Resource is the name of the resource (endpoint) the job was submitted to.
	Resource string `json:"resource"`

	// Payload is the request body, filtered down to the fields the resource's
	// request schema declares.
	Payload map[string]any `json:"payload"`
}

// WebhookURL returns the webhook_url field of the payload, if it's set to a string.
func (j *Job) WebhookURL() string {
	if j.Payload == nil {
		return ""
	}
	u, _ := j.Payload[FieldWebhookURL].(string)
	return u
}

// JobHandle is returned by the queue when a job is enqueued (or looked up).
type JobHandle struct {
	// ID of the job
	ID string `json:"id"`

	// Status of the job. Only the worker side changes this.
	Status Status `json:"status"`
}
