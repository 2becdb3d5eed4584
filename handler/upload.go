package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"eventhub/config"
	"eventhub/constants"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/utils"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateUploadSignature signs Cloudinary upload params so the SPA can
// upload directly to Cloudinary.
func GenerateUploadSignature(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	type sigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}
	var params sigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid signature params", err)
	}

	timestamp := time.Now().Unix()

	paramMap := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
	}
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// raw values joined k=v&..., secret appended, SHA1 hex
	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(config.Config("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    config.Config("CLOUDINARY_API_KEY"),
		"cloudName": config.Config("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadAvatar uploads the user's avatar through the server and stores the
// resulting URL on the profile.
func UploadAvatar(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Avatar file is required", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not read avatar file", err)
	}
	defer file.Close()

	cld := helper.InitCloudinary()
	result, err := cld.Upload.Upload(c.Context(), file, uploader.UploadParams{
		Folder:   "eventhub/avatars",
		PublicID: fmt.Sprintf("user_%d", user.ID),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Avatar upload failed", err)
	}

	if err := database.DB.Model(user).Update("avatar_url", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	user.AvatarURL = result.SecureURL
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"user": user})
}
