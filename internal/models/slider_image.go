package models

type SliderImage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	ImageURL    string `gorm:"size:512;not null" json:"image_url"`
	Position    int    `gorm:"default:0" json:"position"`
}
