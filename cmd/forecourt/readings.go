package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"forecourt/internal/app"
	"forecourt/internal/entry"
	"forecourt/internal/sales"
)

// pairList collects repeatable key=value flags (-set nz-1=1234.5).
type pairList struct {
	keys   []string
	values []string
}

func (p *pairList) String() string { return strings.Join(p.keys, ",") }

func (p *pairList) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

// stringList collects a repeatable bare flag (-sample nz-2).
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runReadings(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("readings", flag.ExitOnError)
	stationFlag := fs.String("station", "", "station id")
	date := fs.String("date", time.Now().Format("2006-01-02"), "transaction date")
	var set pairList
	fs.Var(&set, "set", "closing reading as nozzleID=value (repeatable)")
	var samples stringList
	fs.Var(&samples, "sample", "mark a nozzle's entry as a quality check (repeatable)")
	var payTypes pairList
	fs.Var(&payTypes, "paytype", "payment channel note as nozzleID=cash|online|credit (repeatable)")
	cash := fs.Float64("cash", -1, "cash collected (omit to keep the automatic split)")
	online := fs.Float64("online", 0, "online/UPI collected")
	var credits pairList
	fs.Var(&credits, "credit", "credit sale as creditorID=amount (repeatable)")
	submit := fs.Bool("submit", false, "post the entry; without it the summary is a dry run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stationID, err := stationOrDefault(a, *stationFlag)
	if err != nil {
		return err
	}

	sess := entry.NewSession(a.Client, a.Cache, a.Config.CacheTTL(), a.Logger(), stationID, *date)
	if err := sess.Load(ctx); err != nil {
		return err
	}

	for i, nozzleID := range set.keys {
		sess.SetReading(nozzleID, set.values[i])
	}
	for _, nozzleID := range samples {
		sess.MarkQualityCheck(nozzleID, true)
	}
	for i, nozzleID := range payTypes.keys {
		sess.SetPaymentType(nozzleID, payTypes.values[i])
	}

	if *cash >= 0 || *online > 0 || len(credits.keys) > 0 {
		alloc := sales.Allocation{Online: *online}
		if *cash >= 0 {
			alloc.Cash = *cash
		}
		for i, creditorID := range credits.keys {
			amount, err := strconv.ParseFloat(credits.values[i], 64)
			if err != nil {
				return fmt.Errorf("credit amount for %s: %w", creditorID, err)
			}
			alloc.Credits = append(alloc.Credits, sales.CreditLine{CreditorID: creditorID, Amount: amount})
		}
		sess.SetAllocation(alloc)
		sess.FinishAllocationEdit()
	}

	printEntrySummary(sess)

	findings := sess.Validate()
	for _, nozzleID := range findings.Rollbacks {
		fmt.Printf("note: nozzle %s entered below its comparison reading, counted as zero litres\n", nozzleID)
	}
	if err := findings.Blocking(); err != nil {
		return err
	}

	if !*submit {
		fmt.Println("dry run: pass -submit to post")
		return nil
	}

	resp, err := sess.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("submitted transaction %s (%d readings)\n", resp.TransactionID, resp.ReadingCount)
	return nil
}

func printEntrySummary(sess *entry.Session) {
	summary := sess.Summary()
	w := newTable()
	fmt.Fprintln(w, "NOZZLE\tFUEL\tOPENING\tCLOSING\tLITRES\tVALUE")
	for _, sale := range summary.Sales {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			sale.NozzleID, sale.FuelType, sale.Comparison, sale.Entered, sale.Litres, sale.SaleValue)
	}
	w.Flush()

	alloc := sess.Allocation()
	fmt.Printf("total: %.2f litres, %.2f\n", summary.TotalLitres, summary.TotalSaleValue)
	fmt.Printf("allocation: cash %.2f, online %.2f, credit %.2f\n",
		alloc.Cash, alloc.Online, alloc.CreditTotal())
}
