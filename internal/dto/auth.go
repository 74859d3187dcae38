package dto

type RegisterRequestDTO struct {
	Login        string `json:"login" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=8"`
	ReferralCode string `json:"referral_code,omitempty" validate:"omitempty,numeric,len=11" example:"79927398713"`
}

type RegisterResponseDTO struct {
	Message      string `json:"message"`
	ReferralCode string `json:"referral_code" example:"12345678903"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}
