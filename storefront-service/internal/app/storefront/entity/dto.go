package entity

// CreateReviewRequest - тело POST /api/products/:id/reviews
type CreateReviewRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"required,min=10,max=2000"`
}

// RegisterRequest - тело POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"` // 72 - предел bcrypt
}

// LoginRequest - тело POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse - аккаунт без пароля
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

// FieldError - ошибка валидации одного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// MessageResponse - ответ без данных
type MessageResponse struct {
	Message string `json:"message"`
}
