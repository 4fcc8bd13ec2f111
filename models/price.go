package models

import "time"

type PriceTrend string

const (
	TrendUp     PriceTrend = "up"
	TrendDown   PriceTrend = "down"
	TrendStable PriceTrend = "stable"
)

type PriceEntry struct {
	ID            string     `bson:"id" json:"id"`
	IngredientID  string     `bson:"ingredientId" json:"ingredientId"`
	Name          string     `bson:"name" json:"name"`
	Category      string     `bson:"category" json:"category"`
	Country       string     `bson:"country" json:"country"`
	CountryCode   string     `bson:"countryCode" json:"countryCode"`
	Supplier      string     `bson:"supplier" json:"supplier"`
	Unit          string     `bson:"unit" json:"unit"`
	Price         float64    `bson:"price" json:"price"`
	PreviousPrice float64    `bson:"previousPrice,omitempty" json:"previousPrice,omitempty"`
	Currency      string     `bson:"currency" json:"currency"`
	LastUpdated   time.Time  `bson:"lastUpdated" json:"lastUpdated"`
	Trend         PriceTrend `bson:"trend" json:"trend"`
	TrendValue    string     `bson:"trendValue" json:"trendValue"`
}

type Article struct {
	TopicID     string    `bson:"topicId" json:"topicId"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category" json:"category"`
	Content     string    `bson:"content" json:"content"` // markdown
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ReadingTime string    `bson:"readingTime,omitempty" json:"readingTime,omitempty"`
	Author      string    `bson:"author,omitempty" json:"author,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
