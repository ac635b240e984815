package entity

import "time"

const (
	EventReviewCreated  = "REVIEW_CREATED"
	EventUserRegistered = "USER_REGISTERED"
)

// ReviewEvent публикуется в Kafka после сохранения отзыва и пересчёта рейтинга
type ReviewEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	ReviewID      int64     `json:"review_id"`
	ProductID     int64     `json:"product_id"`
	Rating        int       `json:"rating"`
	AverageRating float64   `json:"average_rating"`
	Timestamp     time.Time `json:"timestamp"`
}

// AccountEvent публикуется после регистрации
type AccountEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}
