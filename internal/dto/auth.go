package dto

// RegisterRequest is the payload for creating a new customer.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for authenticating a customer.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token after a successful login.
type AuthResponse struct {
	Token      string `json:"token"`
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
}
