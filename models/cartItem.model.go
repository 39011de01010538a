package models

// CartItem is scoped to an anonymous browser session, not to a user.
type CartItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PlanType    string  `gorm:"size:50;not null;index:idx_cart_session_plan,priority:2" json:"plan_type"`
	Price       float64 `gorm:"not null" json:"price"`
	UserSession string  `gorm:"size:100;not null;index:idx_cart_session_plan,priority:1" json:"-"`
}
