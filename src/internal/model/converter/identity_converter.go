package converter

import (
	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/token"
)

func UserToResponse(user *entity.User, profileID string) *model.UserResponse {
	return &model.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		ProfileID: profileID,
		CreatedAt: user.CreatedAt,
	}
}

func UserToAuthResponse(user *entity.User, pair *token.Pair) *model.AuthResponse {
	return &model.AuthResponse{
		Tokens: model.TokensResponse{Refresh: pair.Refresh, Access: pair.Access},
		User: model.AuthUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	}
}

func DriverToResponse(driver *entity.Driver) *model.DriverResponse {
	return &model.DriverResponse{
		ID:               driver.ID,
		UserID:           driver.UserID,
		LicenseNumber:    driver.LicenseNumber,
		FrequentLocation: driver.FrequentLocation,
		PersonalIDURL:    driver.PersonalIDURL,
		CreatedAt:        driver.CreatedAt,
		UpdatedAt:        driver.UpdatedAt,
	}
}

func ClientToResponse(client *entity.Client) *model.ClientResponse {
	return &model.ClientResponse{
		ID:        client.ID,
		UserID:    client.UserID,
		CreatedAt: client.CreatedAt,
	}
}
