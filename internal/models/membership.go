package models

import "time"

// Favorite marks a recipe as favorited by a user. The composite unique
// index resolves concurrent duplicate adds at the storage level.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// ShoppingCart marks a recipe as added to a user's shopping cart.
type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Follow is a subscription of one user to an author. Self-follow is
// rejected before the write and backed by a check constraint.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;check:chk_no_self_follow,follower_id <> author_id" json:"follower"`
	Follower   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"-"`
}
