package database

import "time"

// Interaction is one analysis performed for a chat user. Field names match
// the meat_check collection schema.
type Interaction struct {
	ID          string    `db:"id"               bson:"_id"`
	UserID      int64     `db:"tg_user_id"       bson:"tg_user_id"`
	DisplayName string    `db:"tg_user_fullname" bson:"tg_user_fullname"`
	CreatedAt   time.Time `db:"created_date"     bson:"created_date"`
	// ProductType is nil when the analysis text declared none.
	ProductType *string `db:"product_type" bson:"product_type"`
}
