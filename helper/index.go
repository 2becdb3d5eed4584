package helper

import (
	"errors"
	"eventhub/config"
	"eventhub/database"
	"eventhub/model"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func jwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

func accessTokenTTL() time.Duration {
	if v := config.Config("JWT_EXPIRES_MINUTES"); v != "" {
		if d, err := time.ParseDuration(v + "m"); err == nil {
			return d
		}
	}
	return 60 * time.Minute
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = claim.UserId
	claims["email"] = claim.Email
	claims["role"] = claim.Role
	claims["exp"] = time.Now().Add(accessTokenTTL()).Unix()

	return token.SignedString(jwtSecret())
}

func GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = claim.UserId
	claims["email"] = claim.Email
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
}

func GetUserByEmail(e string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{Email: e}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserFromToken resolves the authenticated user from the JWT stored in
// Locals by the Protected middleware. Returns a zero claim for guests.
func GetUserFromToken(c *fiber.Ctx) (model.TokenClaim, *model.User) {
	guest := model.TokenClaim{}

	u := c.Locals("user")
	if u == nil {
		return guest, nil
	}
	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return guest, nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return guest, nil
	}

	userIdFloat, _ := claims["userId"].(float64)
	if userIdFloat == 0 {
		return guest, nil
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	claim := model.TokenClaim{UserId: uint(userIdFloat), Email: email, Role: role}

	var user model.User
	if err := database.DB.First(&user, claim.UserId).Error; err != nil {
		return guest, nil
	}
	if !user.IsActive {
		return guest, nil
	}
	// role in the DB wins over a stale token claim
	claim.Role = user.Role

	return claim, &user
}
