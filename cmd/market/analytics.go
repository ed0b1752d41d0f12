package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"rpg_market/internal/models"
)

const analyticsUsage = `analytics commands:
  sales-by-status        transaction count/sum/avg per status
  top-sellers            ranked sellers  [-limit K] [-by revenue|count]
  top-buyers             buyers ranked by purchase count  [-limit K]
  category-sales         sales joined to product category
  daily-sales            per-day sales in a trailing window  [-days N]
  conversion-rate        sold vs listed products
  users-by-type          user count per type
  category-stock         listed products per category  [-category C]
  unsold-products        products with no transaction at all
  users-without-address  users with no delivery address
  sales-detail           transactions joined to product and buyer  [-limit N]
`

func (app *application) runAnalytics(args []string) error {
	if len(args) < 1 {
		return errors.New(analyticsUsage)
	}

	switch args[0] {
	case "sales-by-status":
		rows, err := app.db.SalesByStatus()
		if err != nil {
			return err
		}
		renderStatusSales(app.out, rows)
		return nil

	case "top-sellers":
		fs := flag.NewFlagSet("analytics top-sellers", flag.ExitOnError)
		limit := fs.Int64("limit", 10, "number of sellers to rank")
		by := fs.String("by", "revenue", "ranking key: revenue or count")
		fs.Parse(args[1:])

		if *limit <= 0 {
			return errors.New("-limit must be positive")
		}
		var byCount bool
		switch *by {
		case "revenue":
		case "count":
			byCount = true
		default:
			return fmt.Errorf("unknown ranking key %q (valid: revenue, count)", *by)
		}
		rows, err := app.db.TopSellers(*limit, byCount)
		if err != nil {
			return err
		}
		renderSellerSales(app.out, rows)
		return nil

	case "top-buyers":
		fs := flag.NewFlagSet("analytics top-buyers", flag.ExitOnError)
		limit := fs.Int64("limit", 20, "number of buyers to rank")
		fs.Parse(args[1:])

		if *limit <= 0 {
			return errors.New("-limit must be positive")
		}
		rows, err := app.db.TopBuyers(*limit)
		if err != nil {
			return err
		}
		renderBuyerActivity(app.out, rows)
		return nil

	case "category-sales":
		rows, err := app.db.CategorySalesReport()
		if err != nil {
			return err
		}
		renderCategorySales(app.out, rows)
		return nil

	case "daily-sales":
		fs := flag.NewFlagSet("analytics daily-sales", flag.ExitOnError)
		days := fs.Int("days", 30, "trailing window in days")
		fs.Parse(args[1:])

		if *days <= 0 {
			return errors.New("-days must be positive")
		}
		since := time.Now().AddDate(0, 0, -*days)
		rows, err := app.db.DailySalesReport(since)
		if err != nil {
			return err
		}
		renderDailySales(app.out, rows)
		return nil

	case "conversion-rate":
		stats, err := app.db.ConversionRate()
		if err != nil {
			return err
		}
		renderConversion(app.out, stats)
		return nil

	case "users-by-type":
		rows, err := app.db.UsersByType()
		if err != nil {
			return err
		}
		renderTypeCounts(app.out, rows)
		return nil

	case "category-stock":
		fs := flag.NewFlagSet("analytics category-stock", flag.ExitOnError)
		category := fs.String("category", "", "report a single category")
		fs.Parse(args[1:])

		if *category != "" {
			cat, err := models.ParseProductCategory(*category)
			if err != nil {
				return err
			}
			count, err := app.db.CountInCategory(cat)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%s: %d products\n", cat, count)
			return nil
		}
		rows, err := app.db.CategoryStockReport()
		if err != nil {
			return err
		}
		renderCategoryStock(app.out, rows)
		return nil

	case "unsold-products":
		products, err := app.db.UnsoldProducts()
		if err != nil {
			return err
		}
		renderProducts(app.out, products)
		return nil

	case "users-without-address":
		users, err := app.db.UsersWithoutAddress()
		if err != nil {
			return err
		}
		renderUsers(app.out, users)
		return nil

	case "sales-detail":
		fs := flag.NewFlagSet("analytics sales-detail", flag.ExitOnError)
		limit := fs.Int64("limit", 10, "max rows")
		fs.Parse(args[1:])

		if *limit <= 0 {
			return errors.New("-limit must be positive")
		}
		rows, err := app.db.SalesDetail(*limit)
		if err != nil {
			return err
		}
		renderSaleDetails(app.out, rows)
		return nil

	default:
		return fmt.Errorf("unknown analytics command %q\n%s", args[0], analyticsUsage)
	}
}
