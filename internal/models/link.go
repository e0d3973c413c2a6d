package models

import "time"

// DefaultShortIDLength длина короткого идентификатора по умолчанию.
const DefaultShortIDLength = 7

// Link структура модели хранения короткой ссылки.
type Link struct {
	ID          uint      `json:"-"           bson:"-"           gorm:"primaryKey"`
	CreatedAt   time.Time `json:"createdAt"   bson:"created_at"`
	ShortID     string    `json:"shortId"     bson:"short_id"     gorm:"size:32;not null;uniqueIndex"`
	ShortURL    string    `json:"shortUrl"    bson:"short_url"    gorm:"size:512;not null;uniqueIndex"`
	OriginalURL string    `json:"originalUrl" bson:"original_url" gorm:"not null"`
}

// TableName имя таблицы для GORM.
func (Link) TableName() string {
	return "links"
}
