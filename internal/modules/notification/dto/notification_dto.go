package dto

import (
	"anoa.com/jobportal/internal/entity"
	commonDto "anoa.com/jobportal/pkg/dto"
)

type NotificationListResponse struct {
	Notifications []entity.Notification   `json:"notifications"`
	Meta          commonDto.PaginationMeta `json:"meta"`
}
