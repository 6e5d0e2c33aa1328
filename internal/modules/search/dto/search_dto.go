package dto

type SearchQuery struct {
	Query      string `form:"q"`
	JobType    string `form:"jobType"`
	Experience string `form:"experience"`
	CompanyID  string `form:"companyId"`
	SortBy     string `form:"sortBy"` // newest, salary
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// JobDocument is what the jobs index stores for each posting.
type JobDocument struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Location        string   `json:"location"`
	JobType         string   `json:"jobType"`
	ExperienceLevel string   `json:"experienceLevel"`
	Salary          float64  `json:"salary"`
	Position        int      `json:"position"`
	CompanyID       string   `json:"companyId"`
	CompanyName     string   `json:"companyName"`
	CompanyLogo     string   `json:"companyLogo"`
	CreatedAt       int64    `json:"createdAt"`
}

type SearchResult struct {
	Hits       []JobDocument `json:"hits"`
	TotalHits  int64         `json:"totalHits"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Processing int64         `json:"processingTimeMs"`
}
