package main

import (
	"errors"
	"strings"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedAdmin(db *gorm.DB, email, password string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing model.Account
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return 0, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	hashed := string(hash)

	admin := model.Account{
		Id:           uuid.New(),
		Email:        email,
		FullName:     "Gym Administrator",
		PasswordHash: &hashed,
		Role:         string(entity.AccountRoleAdmin),
		Status:       string(entity.AccountStatusActive),
		AuthProvider: entity.AuthProviderLocal,
	}
	if err := db.Create(&admin).Error; err != nil {
		return 0, err
	}
	return 1, nil
}

// Package names match the plan names accepted by the payment flow.
func seedPackages(db *gorm.DB) (int, error) {
	packages := []model.Package{
		{
			Name:         "Basic",
			Description:  "Gym floor access during staffed hours",
			Price:        decimal.RequireFromString("29.99"),
			DurationDays: 30,
			Features:     datatypes.JSONSlice[string]{"Gym floor", "Locker room"},
		},
		{
			Name:         "Premium",
			Description:  "Full access plus group classes",
			Price:        decimal.RequireFromString("49.99"),
			DurationDays: 30,
			Features:     datatypes.JSONSlice[string]{"Gym floor", "Locker room", "Group classes", "Sauna"},
		},
		{
			Name:         "Elite",
			Description:  "Everything in Premium with monthly coaching",
			Price:        decimal.RequireFromString("79.99"),
			DurationDays: 30,
			Features:     datatypes.JSONSlice[string]{"Gym floor", "Locker room", "Group classes", "Sauna", "Personal coaching"},
		},
	}

	created := 0
	for _, p := range packages {
		var count int64
		if err := db.Model(&model.Package{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		p.Id = uuid.New()
		p.IsActive = true
		if err := db.Create(&p).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func seedServices(db *gorm.DB) (int, error) {
	services := []model.GymService{
		{Name: "Personal Training", Description: "One-on-one session with a certified trainer", Price: decimal.RequireFromString("40.00"), BillingCycle: string(entity.BillingCyclePerSession), Category: "training", Capacity: 1},
		{Name: "Yoga Flow", Description: "Morning vinyasa class", Price: decimal.RequireFromString("12.00"), BillingCycle: string(entity.BillingCyclePerSession), Category: "class", Capacity: 20},
		{Name: "HIIT Circuit", Description: "High intensity interval training", Price: decimal.RequireFromString("15.00"), BillingCycle: string(entity.BillingCyclePerSession), Category: "class", Capacity: 15},
		{Name: "Nutrition Consult", Description: "Diet plan review with a nutritionist", Price: decimal.RequireFromString("60.00"), BillingCycle: string(entity.BillingCycleOneTime), Category: "wellness", Capacity: 1},
		{Name: "Towel Service", Description: "Fresh towels every visit", Price: decimal.RequireFromString("5.00"), BillingCycle: string(entity.BillingCycleMonthly), Category: "amenity", Capacity: 0},
	}

	created := 0
	for _, s := range services {
		var count int64
		if err := db.Model(&model.GymService{}).Where("name = ?", s.Name).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		s.Id = uuid.New()
		s.IsActive = true
		if err := db.Create(&s).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func seedNutritionTips(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&model.NutritionTip{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tips := []model.NutritionTip{
		{Title: "Protein after training", Summary: "Aim for 20-40g within two hours", Body: "A protein-rich meal after a session supports muscle repair.", Category: "recovery"},
		{Title: "Hydrate early", Summary: "Drink water before you feel thirsty", Body: "Start each workout well hydrated and sip during long sessions.", Category: "hydration"},
		{Title: "Carbs are fuel", Summary: "Eat complex carbs before endurance work", Body: "Oats, rice and potatoes top up glycogen for longer efforts.", Category: "performance"},
	}
	for i := range tips {
		tips[i].Id = uuid.New()
		tips[i].Published = true
	}
	if err := db.Create(&tips).Error; err != nil {
		return 0, err
	}
	return len(tips), nil
}

func seedProducts(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	products := []model.Product{
		{Name: "Whey Protein 1kg", Description: "Vanilla whey isolate", Price: decimal.RequireFromString("34.90"), Category: "supplements", Stock: 40},
		{Name: "Shaker Bottle", Description: "700ml leak-proof shaker", Price: decimal.RequireFromString("8.50"), Category: "accessories", Stock: 120},
		{Name: "Lifting Straps", Description: "Padded cotton straps", Price: decimal.RequireFromString("14.00"), Category: "accessories", Stock: 60},
	}
	for i := range products {
		products[i].Id = uuid.New()
		products[i].IsActive = true
	}
	if err := db.Create(&products).Error; err != nil {
		return 0, err
	}
	return len(products), nil
}
