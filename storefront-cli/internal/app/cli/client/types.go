package client

import "time"

// Product - товар в том виде, в каком его отдаёт API. Цена в пайсах.
type Product struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Price            int64    `json:"price"`
	ImageURLs        []string `json:"imageUrls"`
	Sizes            []string `json:"sizes"`
	Category         string   `json:"category"`
	IsNewArrival     bool     `json:"isNewArrival"`
	IsBestSeller     bool     `json:"isBestSeller"`
	AverageRating    float64  `json:"averageRating"`
	InStock          bool     `json:"inStock"`
}

// PrimaryImage - первое изображение или пустая строка
func (p *Product) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// HasSize проверяет, продаётся ли товар в объёме size
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewRequest - тело нового отзыва
type ReviewRequest struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User - аккаунт без пароля
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

type messageResponse struct {
	Message string `json:"message"`
}
