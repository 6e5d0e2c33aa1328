package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"fullName"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	PhoneNumber  string    `gorm:"size:30;not null" json:"phoneNumber"`
	Role         string    `gorm:"size:20;not null;index" json:"role"`
	Profile      Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Profile struct {
	UserID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	Bio                string         `gorm:"type:text" json:"bio"`
	Skills             pq.StringArray `gorm:"type:text[];default:'{}'" json:"skills"`
	Resume             string         `gorm:"type:text" json:"resume"`
	ResumeOriginalName string         `gorm:"size:255" json:"resumeOriginalName"`
	ProfilePhoto       string         `gorm:"type:text" json:"profilePhoto"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"-"`
}
