package main

import (
	"errors"
	"flag"
	"fmt"
)

const maintainUsage = `maintain commands (dry-run unless -execute is given):
  purge-invalid-products  delete products failing the price check   [-execute]
  purge-orphan-addresses  delete addresses whose user is gone       [-execute]
  reconcile-sold          recompute sold flags from completed sales [-execute]
  wipe-all                delete ALL documents                      [-execute -confirm <database>]
`

// wipeConfirmToken must be typed verbatim by the operator; combined with
// -execute it makes the full wipe a two-step opt-in.
const wipeConfirmToken = "rpg-market"

func (app *application) runMaintain(args []string) error {
	if len(args) < 1 {
		return errors.New(maintainUsage)
	}

	switch args[0] {
	case "purge-invalid-products":
		fs := flag.NewFlagSet("maintain purge-invalid-products", flag.ExitOnError)
		execute := fs.Bool("execute", false, "actually delete (default is dry run)")
		fs.Parse(args[1:])

		if !*execute {
			count, err := app.db.CountInvalidPriceProducts()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "dry run: %d product(s) would be deleted; rerun with -execute\n", count)
			return nil
		}
		deleted, err := app.db.DeleteInvalidPriceProducts()
		if err != nil {
			return err
		}
		app.infoLog.Printf("deleted %d product(s) with invalid prices", deleted)
		fmt.Fprintf(app.out, "deleted %d product(s)\n", deleted)
		return nil

	case "purge-orphan-addresses":
		fs := flag.NewFlagSet("maintain purge-orphan-addresses", flag.ExitOnError)
		execute := fs.Bool("execute", false, "actually delete (default is dry run)")
		fs.Parse(args[1:])

		ids, err := app.db.OrphanAddressIDs()
		if err != nil {
			return err
		}
		if !*execute {
			fmt.Fprintf(app.out, "dry run: %d orphan address(es) would be deleted; rerun with -execute\n", len(ids))
			for _, id := range ids {
				fmt.Fprintf(app.out, "  %s\n", id.Hex())
			}
			return nil
		}
		deleted, err := app.db.DeleteAddressesByID(ids)
		if err != nil {
			return err
		}
		app.infoLog.Printf("deleted %d orphan address(es)", deleted)
		fmt.Fprintf(app.out, "deleted %d address(es)\n", deleted)
		return nil

	case "reconcile-sold":
		fs := flag.NewFlagSet("maintain reconcile-sold", flag.ExitOnError)
		execute := fs.Bool("execute", false, "actually update (default is dry run)")
		fs.Parse(args[1:])

		ids, err := app.db.CompletedProductIDs()
		if err != nil {
			return err
		}
		if !*execute {
			fmt.Fprintf(app.out, "dry run: %d product(s) have completed sales and would be flagged sold;\n", len(ids))
			fmt.Fprintln(app.out, "all others would be flagged unsold; rerun with -execute")
			return nil
		}
		markedSold, markedUnsold, err := app.db.ReconcileSoldFlags(ids)
		if err != nil {
			return err
		}
		app.infoLog.Printf("reconciled sold flags: %d set, %d cleared", markedSold, markedUnsold)
		fmt.Fprintf(app.out, "flagged sold: %d, flagged unsold: %d\n", markedSold, markedUnsold)
		return nil

	case "wipe-all":
		fs := flag.NewFlagSet("maintain wipe-all", flag.ExitOnError)
		execute := fs.Bool("execute", false, "actually wipe")
		confirm := fs.String("confirm", "", "type the database name to confirm")
		fs.Parse(args[1:])

		if !*execute {
			counts, err := app.db.Counts()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, "dry run: this would delete EVERY document:")
			renderCounts(app.out, counts)
			fmt.Fprintf(app.out, "rerun with -execute -confirm %s\n", wipeConfirmToken)
			return nil
		}
		if *confirm != wipeConfirmToken {
			return fmt.Errorf("wipe refused: pass -confirm %s to proceed", wipeConfirmToken)
		}
		deleted, err := app.db.WipeAll()
		if err != nil {
			return err
		}
		app.errorLog.Printf("WIPED database: users=%d products=%d transactions=%d addresses=%d",
			deleted.Users, deleted.Products, deleted.Transactions, deleted.Addresses)
		fmt.Fprintln(app.out, "all collections wiped:")
		renderCounts(app.out, deleted)
		return nil

	default:
		return fmt.Errorf("unknown maintain command %q\n%s", args[0], maintainUsage)
	}
}
