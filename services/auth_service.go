package services

import (
	"errors"
	"strings"

	"github.com/JimmyMcBride/nutrition-tracker-be/config"
	"github.com/JimmyMcBride/nutrition-tracker-be/models"
	"github.com/JimmyMcBride/nutrition-tracker-be/utils"
)

func RegisterUser(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var bad []string
	if email == "" || !strings.Contains(email, "@") {
		bad = append(bad, "email")
	}
	if len(password) < 8 {
		bad = append(bad, "password")
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, Password: hashed}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, &StoreError{Op: "create user", Err: err}
	}
	return &user, nil
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	if result.Error != nil {
		return "", errors.New("incorrect email or password")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect email or password")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}
