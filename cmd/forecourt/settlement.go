package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"forecourt/internal/app"
	"forecourt/internal/models"
	"forecourt/internal/settlement"
)

func runSettlement(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("settlement", flag.ExitOnError)
	stationFlag := fs.String("station", "", "station id")
	date := fs.String("date", time.Now().Format("2006-01-02"), "settlement date")
	list := fs.Bool("list", false, "list past settlements instead of reviewing")
	selection := fs.String("select", "", `reading ids to settle, comma separated, or "all"`)
	cash := fs.Float64("cash", 0, "cash actually counted")
	online := fs.Float64("online", 0, "online/UPI actually received")
	credit := fs.Float64("credit", 0, "credit actually booked")
	notes := fs.String("notes", "", "settlement notes")
	final := fs.Bool("final", false, "finalize instead of saving a draft")
	confirm := fs.Bool("confirm", false, "accept variances above the warning threshold")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stationID, err := stationOrDefault(a, *stationFlag)
	if err != nil {
		return err
	}

	if *list {
		return listSettlements(ctx, a, stationID)
	}

	review := settlement.NewReview(a.Client, a.Cache, a.Logger(), stationID, *date)
	if err := review.Load(ctx); err != nil {
		return err
	}

	if *selection == "" {
		printReviewState(review)
		return nil
	}

	if strings.EqualFold(*selection, "all") {
		review.SelectAll()
	} else {
		for _, id := range strings.Split(*selection, ",") {
			review.ToggleReading(strings.TrimSpace(id))
		}
	}

	actual := models.PaymentBreakdown{Cash: *cash, Online: *online, Credit: *credit}
	stmt, err := review.Submit(ctx, actual, *notes, *final, *confirm, a.Operator)
	var varErr *settlement.VarianceError
	if errors.As(err, &varErr) {
		return fmt.Errorf("%w (re-run with -confirm to accept)", varErr)
	}
	if err != nil {
		return err
	}

	state := "draft"
	if stmt.IsFinal {
		state = "final"
	}
	fmt.Printf("settlement %s saved (%s)\n", stmt.ID, state)
	printBreakdown("expected", stmt.Expected)
	printBreakdown("actual", stmt.Actual)
	printBreakdown("variance", stmt.Variance)
	return nil
}

func printReviewState(review *settlement.Review) {
	daily := review.DailySales()
	fmt.Printf("day sales: %.2f litres, %.2f\n", daily.Litres, daily.SaleValue)

	unlinked := review.UnlinkedReadings()
	if len(unlinked) == 0 {
		fmt.Println("no readings awaiting settlement")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "READING\tNOZZLE\tFUEL\tLITRES\tVALUE\tTRANSACTION")
	for _, r := range unlinked {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%s\n",
			r.ID, r.NozzleID, r.FuelType, r.Litres, r.SaleValue, r.TransactionID)
	}
	w.Flush()

	review.SelectAll()
	printBreakdown("expected if all settled", review.Expected())
	fmt.Println(`pass -select all (or -select id,id) with -cash/-online/-credit to settle`)
}

func printBreakdown(label string, b models.PaymentBreakdown) {
	fmt.Printf("%s: cash %.2f, online %.2f, credit %.2f\n", label, b.Cash, b.Online, b.Credit)
}

func listSettlements(ctx context.Context, a *app.App, stationID string) error {
	settlements, err := a.Client.ListSettlements(ctx, stationID)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tDATE\tSTATE\tEXPECTED\tACTUAL\tVARIANCE")
	for _, s := range settlements {
		state := "draft"
		if s.IsFinal {
			state = "final"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
			s.ID, s.Date, state, s.Expected.Total(), s.Actual.Total(), s.Variance.Total())
	}
	return w.Flush()
}

func runExport(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	stationFlag := fs.String("station", "", "station id")
	date := fs.String("date", "", "settlement date, defaults to the most recent")
	format := fs.String("format", "pdf", "output format: pdf or xlsx")
	out := fs.String("out", "", "output path, defaults to statement-<date>.<format>")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stationID, err := stationOrDefault(a, *stationFlag)
	if err != nil {
		return err
	}

	settlements, err := a.Client.ListSettlements(ctx, stationID)
	if err != nil {
		return err
	}
	stmt := pickSettlement(settlements, *date)
	if stmt == nil {
		return fmt.Errorf("no settlement found for station %s", stationID)
	}

	daily, err := a.Client.DailySales(ctx, stationID, stmt.Date)
	if err != nil {
		return err
	}

	var data []byte
	switch strings.ToLower(*format) {
	case "pdf":
		data, err = settlement.BuildStatementPDF(stmt, daily)
	case "xlsx":
		data, err = settlement.BuildStatementXLSX(stmt, daily)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("statement-%s.%s", stmt.Date, strings.ToLower(*format))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(data))
	return nil
}

// pickSettlement prefers a final settlement for the date, then any for the
// date, then the newest overall.
func pickSettlement(settlements []models.Settlement, date string) *models.Settlement {
	var forDate, newest *models.Settlement
	for i := range settlements {
		s := &settlements[i]
		if newest == nil || s.CreatedAt.After(newest.CreatedAt) {
			newest = s
		}
		if date != "" && s.Date == date {
			if s.IsFinal {
				return s
			}
			if forDate == nil || s.CreatedAt.After(forDate.CreatedAt) {
				forDate = s
			}
		}
	}
	if date != "" {
		return forDate
	}
	return newest
}
