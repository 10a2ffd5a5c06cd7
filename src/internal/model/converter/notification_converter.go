package converter

import (
	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
)

func NotificationToResponse(n *entity.Notification) *model.NotificationResponse {
	return &model.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func DemoRequestToResponse(d *entity.DemoRequest) *model.DemoRequestResponse {
	return &model.DemoRequestResponse{
		ID:        d.ID,
		FullName:  d.FullName,
		Email:     d.Email,
		Company:   d.Company,
		Phone:     d.Phone,
		Datetime:  d.Datetime,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}

func DemoRequestToTask(d *entity.DemoRequest) *model.DemoRequestEmailTask {
	return &model.DemoRequestEmailTask{
		DemoRequestID: d.ID,
		FullName:      d.FullName,
		Email:         d.Email,
		Company:       d.Company,
		Phone:         d.Phone,
		Datetime:      d.Datetime,
		Message:       d.Message,
		RequestedAt:   d.CreatedAt,
	}
}
