package dto

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	TokenType    string         `json:"tokenType"`
	ExpiresIn    int            `json:"expiresIn"`
	User         SellerResponse `json:"user"`
}

type CreateSellerRequest struct {
	Firstname string `json:"firstname" validate:"required"`
	Phone     string `json:"phone"`
	Login     string `json:"login" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"type"`
	Status    string `json:"status"`
}

type UpdateSellerRequest struct {
	Firstname string `json:"firstname"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"type"`
	Status    string `json:"status"`
}

type SellerResponse struct {
	ID        string `json:"_id"`
	Firstname string `json:"firstname"`
	Phone     string `json:"phone"`
	Login     string `json:"login"`
	Role      string `json:"type"`
	Status    string `json:"status"`
}
