package models

import "gorm.io/gorm"

// Categories lists the themed category slugs the simulator ships with. Items
// are seeded out of band; the API only reads them and bumps tallies.
var Categories = []string{
	"ipl_teams",
	"ai_tools",
	"browsers",
	"cars",
	"food_chains",
	"programming_languages",
	"quick_commerce",
	"social_media",
	"street_foods",
	"influencers",
}

func IsValidCategory(slug string) bool {
	for _, c := range Categories {
		if c == slug {
			return true
		}
	}
	return false
}

// CategoryItem is one votable option within a category. Count is mutated only
// by the vote transaction and never decreases.
type CategoryItem struct {
	gorm.Model
	Category    string `gorm:"column:category;index" json:"category"`
	Name        string `gorm:"column:name" json:"name"`
	Logo        string `gorm:"column:logo" json:"logo"`
	Description string `gorm:"column:description" json:"description"`
	Count       int    `gorm:"column:count;default:0" json:"count"`
}

// CategoryStats aggregates the tallies of one category.
type CategoryStats struct {
	TotalVotes int `json:"totalVotes"`
	MaxVotes   int `json:"maxVotes"`
	MinVotes   int `json:"minVotes"`
}
