package models

// All returns every persisted model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Blog{},
		&Post{},
		&Subscription{},
		&SubscriptionReadPost{},
	}
}
