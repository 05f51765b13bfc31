package entity

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Category{}, &MenuItem{},
		&DiningTable{}, &Customer{}, &Reservation{},
		&TaxSetting{},
		&Order{}, &OrderItem{},
		&Bill{}, &LoyaltyTransaction{},
	}
}
