package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ExperienceLevels is the closed set accepted for Job.ExperienceLevel.
var ExperienceLevels = []string{"Entry Level", "1-3 Years", "3-5 Years", "5-7 Years", "7+ Years"}

func IsExperienceLevel(v string) bool {
	for _, level := range ExperienceLevels {
		if level == v {
			return true
		}
	}
	return false
}

type Job struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Requirements    pq.StringArray `gorm:"type:text[];default:'{}'" json:"requirements"`
	Salary          float64        `gorm:"not null;check:salary >= 0" json:"salary"`
	Location        string         `gorm:"size:150;not null" json:"location"`
	JobType         string         `gorm:"size:50;not null" json:"jobType"`
	ExperienceLevel string         `gorm:"size:20;not null" json:"experienceLevel"`
	Position        int            `gorm:"not null;check:position > 0" json:"position"`
	CompanyID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"companyId"`
	Company         *Company       `gorm:"constraint:OnDelete:CASCADE" json:"company,omitempty"`
	CreatedBy       uuid.UUID      `gorm:"type:uuid;not null;index" json:"createdBy"`
	Creator         *User          `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"-"`
	Views           int            `gorm:"default:0" json:"views"`
	Applications    []Application  `gorm:"foreignKey:JobID" json:"applications,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID, err = uuid.NewV7()
	}
	return
}
