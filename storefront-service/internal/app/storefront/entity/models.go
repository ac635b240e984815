package entity

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Product - духи в каталоге. Цена в пайсах (1/100 рупии).
type Product struct {
	ID               int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string         `json:"name" gorm:"not null"`
	Description      string         `json:"description" gorm:"not null"`
	ShortDescription string         `json:"shortDescription" gorm:"column:short_description;not null"`
	Price            int64          `json:"price" gorm:"not null"`
	ImageURLs        pq.StringArray `json:"imageUrls" gorm:"column:image_urls;type:text[]"` // первый - основной
	Sizes            pq.StringArray `json:"sizes" gorm:"type:text[]"`
	Category         string         `json:"category" gorm:"not null"`
	IsNewArrival     bool           `json:"isNewArrival" gorm:"column:is_new_arrival"`
	IsBestSeller     bool           `json:"isBestSeller" gorm:"column:is_best_seller"`
	AverageRating    float64        `json:"averageRating" gorm:"column:average_rating"` // пересчитывается при каждом новом отзыве
	InStock          bool           `json:"inStock" gorm:"column:in_stock"`
}

func (Product) TableName() string {
	return "products"
}

// Matches - регистронезависимый поиск подстроки в названии, описаниях и категории
func (p *Product) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.ShortDescription), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

// Review - отзыв о товаре. Username - свободный текст, с аккаунтом не связан.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement" bson:"review_id"`
	ProductID int64     `json:"productId" gorm:"column:product_id;not null" bson:"product_id"`
	Username  string    `json:"username" gorm:"not null" bson:"username"`
	Rating    int       `json:"rating" gorm:"not null" bson:"rating"` // 1..5
	Comment   string    `json:"comment" gorm:"not null" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at" bson:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// AverageRating - среднее по всем оценкам; без оценок 0
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}

// User - аккаунт покупателя. Пароль хранится только как bcrypt хэш.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session - серверная запись сессии в Redis
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity - результат аутентификации запроса, его читают handlers
type Identity struct {
	UserID    int64
	Username  string
	SessionID string
}
