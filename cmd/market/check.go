package main

import (
	"errors"
	"fmt"
)

const checkUsage = `check commands:
  duplicate-users      users sharing an email or username
  product-prices       products with missing or invalid price
  transaction-prices   transactions with missing or invalid price
  orphan-products      products without a seller reference
  orphan-addresses     delivery addresses whose user no longer exists
  orphan-transactions  transactions whose product or buyer no longer exists
  sold-mismatch        products flagged sold with no transaction
  all                  run every check and summarize
`

func (app *application) runCheck(args []string) error {
	if len(args) < 1 {
		return errors.New(checkUsage)
	}

	switch args[0] {
	case "duplicate-users":
		emails, err := app.db.DuplicateUsersByEmail()
		if err != nil {
			return err
		}
		renderDuplicateGroups(app.out, "EMAIL", emails)

		usernames, err := app.db.DuplicateUsersByUsername()
		if err != nil {
			return err
		}
		renderDuplicateGroups(app.out, "USERNAME", usernames)
		return nil

	case "product-prices":
		products, err := app.db.InvalidPriceProducts()
		if err != nil {
			return err
		}
		renderProducts(app.out, products)
		return nil

	case "transaction-prices":
		txns, err := app.db.InvalidPriceTransactions()
		if err != nil {
			return err
		}
		renderTransactions(app.out, txns)
		return nil

	case "orphan-products":
		products, err := app.db.OrphanProducts()
		if err != nil {
			return err
		}
		renderProducts(app.out, products)
		return nil

	case "orphan-addresses":
		addrs, err := app.db.OrphanAddresses()
		if err != nil {
			return err
		}
		renderAddresses(app.out, addrs)
		return nil

	case "orphan-transactions":
		txns, err := app.db.OrphanTransactions()
		if err != nil {
			return err
		}
		renderTransactions(app.out, txns)
		return nil

	case "sold-mismatch":
		products, err := app.db.SoldMismatchProducts()
		if err != nil {
			return err
		}
		renderProducts(app.out, products)
		return nil

	case "all":
		summary, err := app.db.IntegrityCheck()
		if err != nil {
			return err
		}
		renderSummary(app.out, summary)
		return nil

	default:
		return fmt.Errorf("unknown check command %q\n%s", args[0], checkUsage)
	}
}
