package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The enum values below are the labels the marketplace application persists;
// the database predates this tool and stores Portuguese labels.

type UserType string

const (
	UserTypeAdventurer UserType = "AVENTUREIRO"
	UserTypeGameMaster UserType = "MESTRE"
)

var UserTypes = []UserType{UserTypeAdventurer, UserTypeGameMaster}

func ParseUserType(s string) (UserType, error) {
	for _, t := range UserTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown user type %q (valid: %v)", s, UserTypes)
}

type ProductCategory string

const (
	CategoryWeapons    ProductCategory = "ARMAS"
	CategoryArmor      ProductCategory = "ARMADURA_VESTIMENTA"
	CategoryPotions    ProductCategory = "POCOES"
	CategoryAlchemy    ProductCategory = "INGREDIENTES_ALQUIMIA"
	CategoryParchments ProductCategory = "PERGAMINHOS"
)

var ProductCategories = []ProductCategory{
	CategoryWeapons,
	CategoryArmor,
	CategoryPotions,
	CategoryAlchemy,
	CategoryParchments,
}

func ParseProductCategory(s string) (ProductCategory, error) {
	for _, c := range ProductCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (valid: %v)", s, ProductCategories)
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

var TransactionStatuses = []TransactionStatus{StatusPending, StatusCompleted, StatusCancelled}

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	for _, st := range TransactionStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (valid: %v)", s, TransactionStatuses)
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	UserType  UserType           `bson:"userType"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// SellerRef is the denormalized seller document embedded in products.
type SellerRef struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    ProductCategory    `bson:"category"`
	Seller      *SellerRef         `bson:"seller,omitempty"`
	Sold        bool               `bson:"sold,omitempty"`
	ImagePath   string             `bson:"imagePath,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type Transaction struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	Buyer           primitive.ObjectID  `bson:"buyer,omitempty"`
	Seller          primitive.ObjectID  `bson:"seller,omitempty"`
	Product         primitive.ObjectID  `bson:"product,omitempty"`
	Price           float64             `bson:"price"`
	Status          TransactionStatus   `bson:"status"`
	DeliveryAddress *primitive.ObjectID `bson:"deliveryAddress,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt"`
}

type DeliveryAddress struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	User   primitive.ObjectID `bson:"user,omitempty"`
	Street string             `bson:"street,omitempty"`
	City   string             `bson:"city,omitempty"`
}
