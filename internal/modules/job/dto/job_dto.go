package dto

import "encoding/json"

// PostJobInput mirrors the posting form. Salary and position arrive either as
// JSON numbers or as form strings, so they are parsed by the service.
type PostJobInput struct {
	Title        string      `json:"title" form:"title" validate:"required,max=200"`
	Description  string      `json:"description" form:"description" validate:"required"`
	Requirements string      `json:"requirements" form:"requirements" validate:"required"`
	Salary       json.Number `json:"salary" form:"salary" validate:"required"`
	Location     string      `json:"location" form:"location" validate:"required,max=150"`
	JobType      string      `json:"jobType" form:"jobType" validate:"required,max=50"`
	Experience   string      `json:"experience" form:"experience" validate:"required"`
	Position     json.Number `json:"position" form:"position" validate:"required"`
	CompanyID    string      `json:"companyId" form:"companyId" validate:"required"`
}

type ListJobsQuery struct {
	Keyword string `form:"keyword"`
}

// JobPostedEvent is the payload of events.JobPosted.
type JobPostedEvent struct {
	JobID     string `json:"jobId"`
	CompanyID string `json:"companyId"`
	Title     string `json:"title"`
	PostedBy  string `json:"postedBy"`
}
