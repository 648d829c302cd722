package model

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Package{},
		&Membership{},
		&GymService{},
		&Booking{},
		&Attendance{},
		&Payment{},
		&SystemLog{},
		&NutritionTip{},
		&Product{},
	}
}
