package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rpg_market/internal/models"
)

const reportUsage = `report commands:
  counts        document count per collection
  users         list users       [-type T] [-limit N]
  products      list products    [-category C] [-available] [-sold] [-no-image] [-by-price] [-limit N]
  transactions  list transactions [-status S | -min-price P | -since-days D | -no-address] [-limit N]
  user-history  a user's transactions, listings and addresses  -user <hex id>
  samples       one raw document per collection
  search        product name search  -name <regex> [-limit N]
`

func (app *application) runReport(args []string) error {
	if len(args) < 1 {
		return errors.New(reportUsage)
	}

	switch args[0] {
	case "counts":
		counts, err := app.db.Counts()
		if err != nil {
			return err
		}
		renderCounts(app.out, counts)
		return nil

	case "users":
		fs := flag.NewFlagSet("report users", flag.ExitOnError)
		typ := fs.String("type", "", "filter by user type")
		limit := fs.Int64("limit", 0, "max results (0 = all)")
		fs.Parse(args[1:])

		var userType models.UserType
		if *typ != "" {
			var err error
			if userType, err = models.ParseUserType(*typ); err != nil {
				return err
			}
		}
		users, err := app.db.ListUsers(userType, *limit)
		if err != nil {
			return err
		}
		renderUsers(app.out, users)
		return nil

	case "products":
		fs := flag.NewFlagSet("report products", flag.ExitOnError)
		category := fs.String("category", "", "filter by category")
		available := fs.Bool("available", false, "only products still for sale")
		sold := fs.Bool("sold", false, "only sold products")
		noImage := fs.Bool("no-image", false, "only products without an image")
		byPrice := fs.Bool("by-price", false, "sort by price descending (most expensive first)")
		limit := fs.Int64("limit", 0, "max results (0 = all)")
		fs.Parse(args[1:])

		if *available && *sold {
			return errors.New("-available and -sold are mutually exclusive")
		}
		listing := models.ProductListing{
			Available: *available,
			Sold:      *sold,
			NoImage:   *noImage,
			ByPrice:   *byPrice,
		}
		if *category != "" {
			cat, err := models.ParseProductCategory(*category)
			if err != nil {
				return err
			}
			listing.Category = cat
		}
		products, err := app.db.ListProducts(listing, *limit)
		if err != nil {
			return err
		}
		renderProducts(app.out, products)
		return nil

	case "transactions":
		fs := flag.NewFlagSet("report transactions", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		minPrice := fs.Float64("min-price", 0, "only transactions at or above this price")
		sinceDays := fs.Int("since-days", 0, "only transactions created in the last D days")
		noAddress := fs.Bool("no-address", false, "only transactions without a delivery address")
		limit := fs.Int64("limit", 0, "max results (0 = all)")
		fs.Parse(args[1:])

		modes := 0
		for _, set := range []bool{*status != "", *minPrice > 0, *sinceDays > 0, *noAddress} {
			if set {
				modes++
			}
		}
		if modes > 1 {
			return errors.New("-status, -min-price, -since-days and -no-address are mutually exclusive")
		}

		switch {
		case *minPrice > 0:
			txns, err := app.db.TransactionsAbovePrice(*minPrice, *limit)
			if err != nil {
				return err
			}
			renderTransactions(app.out, txns)
		case *sinceDays > 0:
			since := time.Now().AddDate(0, 0, -*sinceDays)
			txns, err := app.db.TransactionsSince(since, *limit)
			if err != nil {
				return err
			}
			renderTransactions(app.out, txns)
		case *noAddress:
			txns, err := app.db.TransactionsWithoutAddress(*limit)
			if err != nil {
				return err
			}
			renderTransactions(app.out, txns)
		default:
			var txStatus models.TransactionStatus
			if *status != "" {
				var err error
				if txStatus, err = models.ParseTransactionStatus(*status); err != nil {
					return err
				}
			}
			txns, err := app.db.ListTransactions(txStatus, *limit)
			if err != nil {
				return err
			}
			renderTransactions(app.out, txns)
		}
		return nil

	case "user-history":
		fs := flag.NewFlagSet("report user-history", flag.ExitOnError)
		user := fs.String("user", "", "user id (hex)")
		fs.Parse(args[1:])

		userID, err := parseObjectID(*user)
		if err != nil {
			return err
		}
		txns, err := app.db.UserTransactions(userID)
		if err != nil {
			return err
		}
		products, err := app.db.UserProducts(userID)
		if err != nil {
			return err
		}
		addrs, err := app.db.UserAddresses(userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.out, "== transactions (buyer or seller) ==")
		renderTransactions(app.out, txns)
		fmt.Fprintln(app.out, "== listed products ==")
		renderProducts(app.out, products)
		fmt.Fprintln(app.out, "== delivery addresses ==")
		renderAddresses(app.out, addrs)
		return nil

	case "samples":
		samples, err := app.db.Samples()
		if err != nil {
			return err
		}
		renderSamples(app.out, samples)
		return nil

	case "search":
		fs := flag.NewFlagSet("report search", flag.ExitOnError)
		name := fs.String("name", "", "case-insensitive name pattern")
		limit := fs.Int64("limit", 0, "max results (0 = all)")
		fs.Parse(args[1:])

		if *name == "" {
			return errors.New("-name is required")
		}
		products, err := app.db.SearchProductsByName(*name, *limit)
		if err != nil {
			return err
		}
		renderProducts(app.out, products)
		return nil

	default:
		return fmt.Errorf("unknown report command %q\n%s", args[0], reportUsage)
	}
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, errors.New("-user is required (hex object id)")
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid object id %q: %w", hex, err)
	}
	return id, nil
}
