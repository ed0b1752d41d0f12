package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"rpg_market/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func renderCounts(w io.Writer, c *models.CollectionCounts) {
	tw := newTable(w)
	fmt.Fprintf(tw, "COLLECTION\tDOCUMENTS\n")
	fmt.Fprintf(tw, "users\t%d\n", c.Users)
	fmt.Fprintf(tw, "products\t%d\n", c.Products)
	fmt.Fprintf(tw, "transactions\t%d\n", c.Transactions)
	fmt.Fprintf(tw, "deliveryAddresses\t%d\n", c.Addresses)
	tw.Flush()
	fmt.Fprintf(w, "checked at %s\n", c.Timestamp.Format(timeLayout))
}

func renderUsers(w io.Writer, users []*models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "no users found")
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\tUSERNAME\tEMAIL\tTYPE\tCREATED\n")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.ID.Hex(), u.Username, u.Email, u.UserType, formatTime(u.CreatedAt))
	}
	tw.Flush()
}

func renderProducts(w io.Writer, products []*models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "no products found")
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\tNAME\tCATEGORY\tPRICE\tSOLD\tSELLER\tCREATED\n")
	for _, p := range products {
		seller := "-"
		if p.Seller != nil {
			seller = p.Seller.Username
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%t\t%s\t%s\n",
			p.ID.Hex(), p.Name, p.Category, p.Price, p.Sold, seller, formatTime(p.CreatedAt))
	}
	tw.Flush()
}

func renderTransactions(w io.Writer, txns []*models.Transaction) {
	if len(txns) == 0 {
		fmt.Fprintln(w, "no transactions found")
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\tBUYER\tSELLER\tPRODUCT\tPRICE\tSTATUS\tCREATED\n")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			t.ID.Hex(), t.Buyer.Hex(), t.Seller.Hex(), t.Product.Hex(),
			t.Price, t.Status, formatTime(t.CreatedAt))
	}
	tw.Flush()
}

func renderAddresses(w io.Writer, addrs []*models.DeliveryAddress) {
	if len(addrs) == 0 {
		fmt.Fprintln(w, "no addresses found")
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\tUSER\tSTREET\tCITY\n")
	for _, a := range addrs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID.Hex(), a.User.Hex(), a.Street, a.City)
	}
	tw.Flush()
}

func renderStatusSales(w io.Writer, rows []models.StatusSales) {
	tw := newTable(w)
	fmt.Fprintf(tw, "STATUS\tCOUNT\tTOTAL\tAVG\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n", r.Status, r.Count, r.TotalValue, r.AvgValue)
	}
	tw.Flush()
}

func renderSellerSales(w io.Writer, rows []models.SellerSales) {
	tw := newTable(w)
	fmt.Fprintf(tw, "RANK\tSELLER\tSALES\tREVENUE\tAVG SALE\n")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\n",
			i+1, r.Seller.Hex(), r.SalesCount, r.TotalRevenue, r.AvgSale)
	}
	tw.Flush()
}

func renderBuyerActivity(w io.Writer, rows []models.BuyerActivity) {
	tw := newTable(w)
	fmt.Fprintf(tw, "RANK\tBUYER\tPURCHASES\tTOTAL SPENT\n")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\n", i+1, r.Buyer.Hex(), r.PurchaseCount, r.TotalSpent)
	}
	tw.Flush()
}

func renderCategorySales(w io.Writer, rows []models.CategorySales) {
	tw := newTable(w)
	fmt.Fprintf(tw, "CATEGORY\tSALES\tREVENUE\tAVG\tMIN\tMAX\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			r.Category, r.SalesCount, r.TotalRevenue, r.AvgPrice, r.MinPrice, r.MaxPrice)
	}
	tw.Flush()
}

func renderDailySales(w io.Writer, rows []models.DailySales) {
	tw := newTable(w)
	fmt.Fprintf(tw, "DATE\tSALES\tREVENUE\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%04d-%02d-%02d\t%d\t%.2f\n",
			r.Day.Year, r.Day.Month, r.Day.Day, r.Sales, r.Revenue)
	}
	tw.Flush()
}

func renderConversion(w io.Writer, stats *models.ConversionStats) {
	tw := newTable(w)
	fmt.Fprintf(tw, "listed products\t%d\n", stats.TotalProducts)
	fmt.Fprintf(tw, "sold products\t%d\n", stats.SoldProducts)
	fmt.Fprintf(tw, "conversion rate\t%.1f%%\n", stats.Rate)
	tw.Flush()
}

func renderTypeCounts(w io.Writer, rows []models.TypeCount) {
	tw := newTable(w)
	fmt.Fprintf(tw, "USER TYPE\tCOUNT\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", r.UserType, r.Count)
	}
	tw.Flush()
}

func renderCategoryStock(w io.Writer, rows []models.CategoryStock) {
	tw := newTable(w)
	fmt.Fprintf(tw, "CATEGORY\tPRODUCTS\tAVG PRICE\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", r.Category, r.Count, r.AvgPrice)
	}
	tw.Flush()
}

func renderSaleDetails(w io.Writer, rows []models.SaleDetail) {
	tw := newTable(w)
	fmt.Fprintf(tw, "PRODUCT\tCATEGORY\tBUYER\tAMOUNT\tSTATUS\tDATE\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			r.ProductName, r.ProductCategory, r.BuyerUsername, r.Amount, r.Status, formatTime(r.Date))
	}
	tw.Flush()
}

func renderDuplicateGroups(w io.Writer, label string, groups []models.DuplicateGroup) {
	if len(groups) == 0 {
		fmt.Fprintf(w, "no duplicate %s found\n", label)
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\tCOUNT\tIDS\n", label)
	for _, g := range groups {
		ids := ""
		for i, id := range g.Users {
			if i > 0 {
				ids += ","
			}
			ids += id.Hex()
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", g.Value, g.Count, ids)
	}
	tw.Flush()
}

func renderSummary(w io.Writer, s *models.IntegritySummary) {
	tw := newTable(w)
	fmt.Fprintf(tw, "CHECK\tVIOLATIONS\n")
	fmt.Fprintf(tw, "duplicate emails\t%d\n", s.DuplicateEmails)
	fmt.Fprintf(tw, "duplicate usernames\t%d\n", s.DuplicateUsernames)
	fmt.Fprintf(tw, "invalid product prices\t%d\n", s.InvalidProductPrices)
	fmt.Fprintf(tw, "invalid transaction prices\t%d\n", s.InvalidTxnPrices)
	fmt.Fprintf(tw, "orphan products\t%d\n", s.OrphanProducts)
	fmt.Fprintf(tw, "orphan addresses\t%d\n", s.OrphanAddresses)
	fmt.Fprintf(tw, "orphan transactions\t%d\n", s.OrphanTransactions)
	fmt.Fprintf(tw, "sold-flag mismatches\t%d\n", s.SoldMismatches)
	tw.Flush()
	if s.Total() == 0 {
		fmt.Fprintln(w, "all checks passed")
	} else {
		fmt.Fprintf(w, "%d violation(s) found\n", s.Total())
	}
}

func renderSamples(w io.Writer, samples map[string]bson.M) {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc, err := json.MarshalIndent(samples[name], "", "  ")
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", name, samples[name])
			continue
		}
		fmt.Fprintf(w, "--- %s ---\n%s\n", name, doc)
	}
	if len(samples) == 0 {
		fmt.Fprintln(w, "all collections are empty")
	}
}
