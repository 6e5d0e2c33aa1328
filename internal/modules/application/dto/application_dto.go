package dto

type UpdateStatusInput struct {
	Status string `json:"status" form:"status"`
}

// ApplicationSubmittedEvent is the payload of events.ApplicationSubmitted.
type ApplicationSubmittedEvent struct {
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	ApplicantID   string `json:"applicantId"`
	RecruiterID   string `json:"recruiterId"`
}

// ApplicationStatusChangedEvent is the payload of events.ApplicationStatusChanged.
type ApplicationStatusChangedEvent struct {
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	ApplicantID   string `json:"applicantId"`
	Previous      string `json:"previous"`
	Status        string `json:"status"`
}
