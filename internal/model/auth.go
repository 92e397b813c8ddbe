package model

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	HospitalID int64  `json:"hospitalId"`
}

type TokenClaims struct {
	StaffID    int64  `json:"staff_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	HospitalID int64  `json:"hospital_id"`
}
