package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Aggregation pipelines, one builder per report. Builders are pure so the
// pipeline documents can be checked in tests; the exported methods run them.

func SalesByStatusPipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":        "$status",
			"count":      bson.M{"$sum": 1},
			"totalValue": bson.M{"$sum": "$price"},
			"avgValue":   bson.M{"$avg": "$price"},
		}},
		{"$sort": bson.M{"totalValue": -1}},
	}
}

// TopSellersPipeline ranks sellers by revenue, or by number of sales when
// byCount is set; both rankings exist in the operator playbook.
func TopSellersPipeline(limit int64, byCount bool) []bson.M {
	sortKey := "totalRevenue"
	if byCount {
		sortKey = "salesCount"
	}
	return []bson.M{
		{"$group": bson.M{
			"_id":          "$seller",
			"salesCount":   bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": "$price"},
			"avgSale":      bson.M{"$avg": "$price"},
		}},
		{"$sort": bson.M{sortKey: -1}},
		{"$limit": limit},
	}
}

func TopBuyersPipeline(limit int64) []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":           "$buyer",
			"purchaseCount": bson.M{"$sum": 1},
			"totalSpent":    bson.M{"$sum": "$price"},
		}},
		{"$sort": bson.M{"purchaseCount": -1}},
		{"$limit": limit},
	}
}

func CategorySalesPipeline() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "products",
			"localField":   "product",
			"foreignField": "_id",
			"as":           "productInfo",
		}},
		{"$unwind": "$productInfo"},
		{"$group": bson.M{
			"_id":          "$productInfo.category",
			"salesCount":   bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": "$price"},
			"avgPrice":     bson.M{"$avg": "$price"},
			"minPrice":     bson.M{"$min": "$price"},
			"maxPrice":     bson.M{"$max": "$price"},
		}},
		{"$sort": bson.M{"salesCount": -1}},
	}
}

func DailySalesPipeline(since time.Time) []bson.M {
	return []bson.M{
		{"$match": bson.M{"createdAt": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
				"day":   bson.M{"$dayOfMonth": "$createdAt"},
			},
			"dailySales":   bson.M{"$sum": 1},
			"dailyRevenue": bson.M{"$sum": "$price"},
		}},
		{"$sort": bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.month", Value: 1},
			{Key: "_id.day", Value: 1},
		}},
	}
}

func ConversionPipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":           nil,
			"totalProducts": bson.M{"$sum": 1},
			"soldProducts": bson.M{"$sum": bson.M{
				"$cond": []interface{}{bson.M{"$eq": []interface{}{"$sold", true}}, 1, 0},
			}},
		}},
	}
}

func UsersByTypePipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{"_id": "$userType", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}
}

func CategoryStockPipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":      "$category",
			"count":    bson.M{"$sum": 1},
			"avgPrice": bson.M{"$avg": "$price"},
		}},
		{"$sort": bson.M{"count": -1}},
	}
}

func UnsoldProductsPipeline() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "transactions",
			"localField":   "_id",
			"foreignField": "product",
			"as":           "transactions",
		}},
		{"$match": bson.M{"transactions": bson.M{"$size": 0}}},
		{"$project": bson.M{"name": 1, "category": 1, "price": 1, "createdAt": 1}},
		{"$sort": bson.M{"createdAt": -1}},
	}
}

func UsersWithoutAddressPipeline() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "deliveryAddresses",
			"localField":   "_id",
			"foreignField": "user",
			"as":           "addresses",
		}},
		{"$match": bson.M{"addresses": bson.M{"$size": 0}}},
		{"$project": bson.M{"username": 1, "email": 1, "userType": 1, "createdAt": 1}},
	}
}

func SalesDetailPipeline(limit int64) []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "products",
			"localField":   "product",
			"foreignField": "_id",
			"as":           "productInfo",
		}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "buyer",
			"foreignField": "_id",
			"as":           "buyerInfo",
		}},
		{"$unwind": "$productInfo"},
		{"$unwind": "$buyerInfo"},
		{"$project": bson.M{
			"productName":     "$productInfo.name",
			"productCategory": "$productInfo.category",
			"buyerUsername":   "$buyerInfo.username",
			"amount":          "$price",
			"status":          "$status",
			"date":            "$createdAt",
		}},
		{"$sort": bson.M{"date": -1}},
		{"$limit": limit},
	}
}

type StatusSales struct {
	Status     TransactionStatus `bson:"_id"`
	Count      int64             `bson:"count"`
	TotalValue float64           `bson:"totalValue"`
	AvgValue   float64           `bson:"avgValue"`
}

type SellerSales struct {
	Seller       primitive.ObjectID `bson:"_id"`
	SalesCount   int64              `bson:"salesCount"`
	TotalRevenue float64            `bson:"totalRevenue"`
	AvgSale      float64            `bson:"avgSale"`
}

type BuyerActivity struct {
	Buyer         primitive.ObjectID `bson:"_id"`
	PurchaseCount int64              `bson:"purchaseCount"`
	TotalSpent    float64            `bson:"totalSpent"`
}

type CategorySales struct {
	Category     ProductCategory `bson:"_id"`
	SalesCount   int64           `bson:"salesCount"`
	TotalRevenue float64         `bson:"totalRevenue"`
	AvgPrice     float64         `bson:"avgPrice"`
	MinPrice     float64         `bson:"minPrice"`
	MaxPrice     float64         `bson:"maxPrice"`
}

type DayKey struct {
	Year  int `bson:"year"`
	Month int `bson:"month"`
	Day   int `bson:"day"`
}

type DailySales struct {
	Day     DayKey  `bson:"_id"`
	Sales   int64   `bson:"dailySales"`
	Revenue float64 `bson:"dailyRevenue"`
}

type ConversionStats struct {
	TotalProducts int64   `bson:"totalProducts"`
	SoldProducts  int64   `bson:"soldProducts"`
	Rate          float64 `bson:"-"`
}

type TypeCount struct {
	UserType UserType `bson:"_id"`
	Count    int64    `bson:"count"`
}

type CategoryStock struct {
	Category ProductCategory `bson:"_id"`
	Count    int64           `bson:"count"`
	AvgPrice float64         `bson:"avgPrice"`
}

type SaleDetail struct {
	ID              primitive.ObjectID `bson:"_id"`
	ProductName     string             `bson:"productName"`
	ProductCategory ProductCategory    `bson:"productCategory"`
	BuyerUsername   string             `bson:"buyerUsername"`
	Amount          float64            `bson:"amount"`
	Status          TransactionStatus  `bson:"status"`
	Date            time.Time          `bson:"date"`
}

func (m *MongoDB) SalesByStatus() ([]StatusSales, error) {
	var out []StatusSales
	err := m.runAggregate(m.Txns, SalesByStatusPipeline(), &out)
	return out, err
}

func (m *MongoDB) TopSellers(limit int64, byCount bool) ([]SellerSales, error) {
	var out []SellerSales
	err := m.runAggregate(m.Txns, TopSellersPipeline(limit, byCount), &out)
	return out, err
}

func (m *MongoDB) TopBuyers(limit int64) ([]BuyerActivity, error) {
	var out []BuyerActivity
	err := m.runAggregate(m.Txns, TopBuyersPipeline(limit), &out)
	return out, err
}

func (m *MongoDB) CategorySalesReport() ([]CategorySales, error) {
	var out []CategorySales
	err := m.runAggregate(m.Txns, CategorySalesPipeline(), &out)
	return out, err
}

func (m *MongoDB) DailySalesReport(since time.Time) ([]DailySales, error) {
	var out []DailySales
	err := m.runAggregate(m.Txns, DailySalesPipeline(since), &out)
	return out, err
}

// ConversionRate reports listed-vs-sold stats. An empty products collection
// produces a zero-valued result, not an error.
func (m *MongoDB) ConversionRate() (*ConversionStats, error) {
	var out []ConversionStats
	if err := m.runAggregate(m.Products, ConversionPipeline(), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return &ConversionStats{}, nil
	}
	stats := out[0]
	stats.Rate = conversionRate(stats.SoldProducts, stats.TotalProducts)
	return &stats, nil
}

// conversionRate guards the division: zero products means zero rate.
func conversionRate(sold, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(sold) / float64(total) * 100
}

func (m *MongoDB) UsersByType() ([]TypeCount, error) {
	var out []TypeCount
	err := m.runAggregate(m.Users, UsersByTypePipeline(), &out)
	return out, err
}

func (m *MongoDB) CategoryStockReport() ([]CategoryStock, error) {
	var out []CategoryStock
	err := m.runAggregate(m.Products, CategoryStockPipeline(), &out)
	return out, err
}

func (m *MongoDB) CountInCategory(category ProductCategory) (int64, error) {
	ctx, cancel := m.opCtx()
	defer cancel()
	return m.Products.CountDocuments(ctx, bson.M{"category": category})
}

func (m *MongoDB) UnsoldProducts() ([]*Product, error) {
	var out []*Product
	err := m.runAggregate(m.Products, UnsoldProductsPipeline(), &out)
	return out, err
}

func (m *MongoDB) UsersWithoutAddress() ([]*User, error) {
	var out []*User
	err := m.runAggregate(m.Users, UsersWithoutAddressPipeline(), &out)
	return out, err
}

func (m *MongoDB) SalesDetail(limit int64) ([]SaleDetail, error) {
	var out []SaleDetail
	err := m.runAggregate(m.Txns, SalesDetailPipeline(limit), &out)
	return out, err
}
