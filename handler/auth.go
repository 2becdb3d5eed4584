package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"eventhub/config"
	"eventhub/constants"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/model"
	"eventhub/utils"
	"fmt"
	"log"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
)

func Register(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("RegisterInput").(model.RegisterInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	existing, err := helper.GetUserByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.EMAIL_EXISTS, nil)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	newUser := new(model.User)
	copier.Copy(&newUser, &input)
	newUser.Password = hash
	newUser.IsActive = true
	if newUser.Role == "" {
		newUser.Role = constants.ROLE_ATTENDEE
	}

	if err := db.Create(&newUser).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.EMAIL_EXISTS, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Registered successfully",
		"user":    newUser,
	})
}

func Login(c *fiber.Ctx) error {
	input, ok := c.Locals("LoginInput").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	user, err := helper.GetUserByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_EMAIL, errors.New("user not exists"))
	}
	if !helper.CheckPasswordHash(input.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match email"))
	}
	if !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	claim := model.TokenClaim{UserId: user.ID, Email: user.Email, Role: user.Role}
	token, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"token": model.TokenData{AccessToken: token, RefreshToken: refreshToken},
		"user":  user,
	})
}

func RefreshToken(c *fiber.Ctx) error {
	type refreshInput struct {
		RefreshToken string `json:"refreshToken"`
	}
	var input refreshInput
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Refresh token is required", err)
	}

	token, err := helper.ParseToken(input.RefreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil)
	}
	userIdFloat, _ := claims["userId"].(float64)

	var user model.User
	if err := database.DB.First(&user, uint(userIdFloat)).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	if !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, nil)
	}

	claim := model.TokenClaim{UserId: user.ID, Email: user.Email, Role: user.Role}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	newRefresh, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"token": model.TokenData{AccessToken: accessToken, RefreshToken: newRefresh},
	})
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Logged out"})
}

func Me(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"user": user})
}

func UpdateProfile(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	input, ok := c.Locals("UpdateProfileInput").(model.UpdateProfileInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	copier.CopyWithOption(user, &input, copier.Option{IgnoreEmpty: true})
	if err := database.DB.Save(user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"user": user})
}

func ChangePassword(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	input, ok := c.Locals("ChangePasswordInput").(model.ChangePasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if !helper.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, nil)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	if err := database.DB.Model(user).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Password updated"})
}

func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("ForgotPasswordInput").(model.ForgotPasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var user model.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		// do not reveal whether the address is registered
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"message": "If that email is registered, a reset link has been sent",
		})
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	token := hex.EncodeToString(raw)

	resetToken := model.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.Config("FRONTEND_URL"), token)
	if err := utils.SendPlainEmail(user.Email, "Reset your EventHub password",
		"Use the link below to reset your password. It expires in 1 hour.\n\n"+resetLink); err != nil {
		log.Printf("failed to send reset email to %s: %v", user.Email, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "If that email is registered, a reset link has been sent",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("ResetPasswordInput").(model.ResetPasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND used = ?", input.Token, false).First(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired reset token", err)
	}
	if time.Now().Unix() > resetToken.ExpiresAt {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired reset token", nil)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	if err := db.Model(&model.User{}).Where("id = ?", resetToken.UserID).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	db.Model(&resetToken).Update("used", true)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Password reset successfully"})
}

// SendOTP emails a 6-digit verification code stored in Redis with a 10 minute TTL.
func SendOTP(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}
	if user.IsVerified {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email is already verified", nil)
	}

	otp := fmt.Sprintf("%06d", mrand.Intn(1000000))
	if err := utils.Redis().Set(context.Background(), "otp:"+user.Email, otp, 10*time.Minute).Err(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := utils.SendPlainEmail(user.Email, "Your EventHub verification code",
		"Your verification code is "+otp+". It expires in 10 minutes."); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not send verification email", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Verification code sent"})
}

func VerifyOTP(c *fiber.Ctx) error {
	input, ok := c.Locals("VerifyOTPInput").(model.VerifyOTPInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	stored, err := utils.Redis().Get(context.Background(), "otp:"+input.Email).Result()
	if err != nil || stored != input.OTP {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired verification code", nil)
	}

	if err := database.DB.Model(&model.User{}).Where("email = ?", input.Email).
		Update("is_verified", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	utils.Redis().Del(context.Background(), "otp:"+input.Email)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Email verified"})
}
