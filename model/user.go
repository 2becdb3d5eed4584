package model

type User struct {
	DTO
	Name       string `json:"name"`
	Email      string `gorm:"unique;size:120" json:"email"`
	Password   string `json:"-"`
	Phone      string `json:"phone"`
	Role       string `gorm:"size:20;default:attendee" json:"role"` // attendee, organizer, admin
	IsVerified bool   `gorm:"default:false" json:"isVerified"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`
	AvatarURL  string `json:"avatarUrl"`
	Bio        string `json:"bio"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=attendee organizer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone"`
	Bio   *string `json:"bio" validate:"omitempty,max=500"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type PasswordResetToken struct {
	DTO
	UserID    uint   `json:"userId"`
	Token     string `gorm:"unique;size:64" json:"-"`
	ExpiresAt int64  `json:"expiresAt"`
	Used      bool   `gorm:"default:false" json:"used"`
}
