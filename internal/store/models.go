package store

import "time"

type groupRow struct {
	Code       string `gorm:"primarykey;type:varchar(6)"`
	Name       string
	Status     string `gorm:"index"`
	Creator    string
	MaxMembers int
	CreatedAt  time.Time
}

func (groupRow) TableName() string { return "groups" }

type memberRow struct {
	GroupCode string `gorm:"primarykey;type:varchar(6)"`
	Username  string `gorm:"primarykey;type:varchar(36)"`
	Name      string
	IsReady   bool
	JoinedAt  time.Time
}

func (memberRow) TableName() string { return "group_members" }

type restaurantRow struct {
	RestaurantID  string `gorm:"primarykey"`
	Name          string
	Rating        float64
	PriceLevel    int
	PriceRangeMin int
	PriceRangeMax int
	Type          string
	Summary       string
	URL           string
	Reservable    bool
	Vegetarian    bool
}

func (restaurantRow) TableName() string { return "restaurants" }

// likeRow is one user's standing like of a restaurant. Group tallies
// are derived by joining against current group membership, so a member
// leaving implicitly retracts their contribution.
type likeRow struct {
	Username     string `gorm:"primarykey;type:varchar(36)"`
	RestaurantID string `gorm:"primarykey"`
	CreatedAt    time.Time
}

func (likeRow) TableName() string { return "restaurant_likes" }
