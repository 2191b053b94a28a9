package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"forecourt/internal/app"
	"forecourt/internal/models"
	"forecourt/internal/query"
	"forecourt/internal/session"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func runStations(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("stations", flag.ExitOnError)
	create := fs.Bool("create", false, "create a station instead of listing")
	remove := fs.String("delete", "", "station id to delete")
	name := fs.String("name", "", "station name (create)")
	code := fs.String("code", "", "station code (create)")
	address := fs.String("address", "", "street address (create)")
	city := fs.String("city", "", "city (create)")
	state := fs.String("state", "", "state (create)")
	pincode := fs.String("pincode", "", "postal code (create)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *remove != "":
		if err := a.Client.DeleteStation(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("deleted station %s\n", *remove)
		return nil
	case *create:
		if *name == "" || *code == "" {
			return fmt.Errorf("stations -create needs -name and -code")
		}
		station, err := a.Client.CreateStation(ctx, models.StationCreateRequest{
			Name:    *name,
			Code:    *code,
			Address: *address,
			City:    *city,
			State:   *state,
			Pincode: *pincode,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created station %s (%s)\n", station.ID, station.Name)
		return nil
	}

	stations, err := a.Client.ListStations(ctx)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tCODE\tNAME\tCITY\tPUMPS\tTODAY")
	for _, s := range stations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\n", s.ID, s.Code, s.Name, s.City, s.PumpCount, s.TodaySales)
	}
	return w.Flush()
}

func runPumps(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("pumps", flag.ExitOnError)
	stationFlag := fs.String("station", "", "station id")
	create := fs.Bool("create", false, "create a pump instead of listing")
	number := fs.Int("number", 0, "pump number (create)")
	name := fs.String("name", "", "pump name (create)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stationID, err := stationOrDefault(a, *stationFlag)
	if err != nil {
		return err
	}

	if *create {
		if *number <= 0 {
			return fmt.Errorf("pumps -create needs -number")
		}
		pump, err := a.Client.CreatePump(ctx, stationID, models.PumpCreateRequest{
			Number: *number,
			Name:   *name,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created pump %s (#%d)\n", pump.ID, pump.Number)
		return nil
	}

	pumps, err := a.Client.ListPumps(ctx, stationID)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "PUMP\tSTATUS\tNOZZLE\tFUEL\tLAST READING")
	for _, pump := range pumps {
		for _, nz := range pump.Nozzles {
			last := "-"
			if nz.LastReading != nil {
				last = fmt.Sprintf("%.2f", *nz.LastReading)
			}
			fmt.Fprintf(w, "%d %s\t%s\t%s (#%d)\t%s\t%s\n",
				pump.Number, pump.Name, pump.Status, nz.ID, nz.Number, nz.FuelType, last)
		}
	}
	return w.Flush()
}

func runNozzles(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("nozzles", flag.ExitOnError)
	pumpID := fs.String("pump", "", "pump id (create)")
	nozzleID := fs.String("nozzle", "", "nozzle id (update)")
	number := fs.Int("number", 0, "nozzle number")
	fuel := fs.String("fuel", "", "fuel type")
	initial := fs.Float64("initial", 0, "initial meter reading (create)")
	status := fs.String("status", "", "nozzle status (update)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *pumpID != "":
		if *number <= 0 || *fuel == "" {
			return fmt.Errorf("nozzles -pump needs -number and -fuel")
		}
		nz, err := a.Client.CreateNozzle(ctx, *pumpID, models.NozzleCreateRequest{
			Number:         *number,
			FuelType:       *fuel,
			InitialReading: *initial,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created nozzle %s (#%d %s)\n", nz.ID, nz.Number, nz.FuelType)
		return nil
	case *nozzleID != "":
		req := models.NozzleUpdateRequest{}
		if *number > 0 {
			req.Number = number
		}
		if *fuel != "" {
			req.FuelType = fuel
		}
		if *status != "" {
			req.Status = status
		}
		nz, err := a.Client.UpdateNozzle(ctx, *nozzleID, req)
		if err != nil {
			return err
		}
		fmt.Printf("updated nozzle %s\n", nz.ID)
		return nil
	}
	return fmt.Errorf("nozzles needs -pump (create) or -nozzle (update)")
}

func runPrices(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("prices", flag.ExitOnError)
	stationFlag := fs.String("station", "", "station id")
	fuel := fs.String("fuel", "", "fuel type to set")
	price := fs.Float64("price", 0, "per-litre price to set")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stationID, err := stationOrDefault(a, *stationFlag)
	if err != nil {
		return err
	}

	if *fuel != "" {
		if *price <= 0 {
			return fmt.Errorf("prices -fuel needs a positive -price")
		}
		saved, err := a.Client.SavePrices(ctx, stationID, models.SavePricesRequest{
			Prices: []models.FuelPrice{{FuelType: *fuel, Price: *price, EffectiveFrom: time.Now()}},
		})
		if err != nil {
			return err
		}
		_ = a.Cache.Invalidate(ctx, query.StationPrefix(stationID))
		for _, p := range saved {
			fmt.Printf("%s = %.2f\n", p.FuelType, p.Price)
		}
		return nil
	}

	prices, err := a.Client.ListPrices(ctx, stationID)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "FUEL\tPRICE\tEFFECTIVE FROM")
	for _, p := range prices {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", p.FuelType, p.Price, p.EffectiveFrom.Format("2006-01-02"))
	}
	return w.Flush()
}

func runCreditors(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("creditors", flag.ExitOnError)
	stationFlag := fs.String("station", "", "station id")
	create := fs.Bool("create", false, "add a creditor instead of listing")
	name := fs.String("name", "", "creditor name (create)")
	phone := fs.String("phone", "", "phone (create)")
	limit := fs.Float64("limit", 0, "credit limit (create)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stationID, err := stationOrDefault(a, *stationFlag)
	if err != nil {
		return err
	}

	if *create {
		if *name == "" {
			return fmt.Errorf("creditors -create needs -name")
		}
		creditor, err := a.Client.CreateCreditor(ctx, stationID, models.CreditorCreateRequest{
			Name:        *name,
			Phone:       *phone,
			CreditLimit: *limit,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created creditor %s (%s)\n", creditor.ID, creditor.Name)
		return nil
	}

	creditors, err := a.Client.ListCreditors(ctx, stationID)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tBALANCE\tLIMIT\tAVAILABLE")
	for _, c := range creditors {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\n", c.ID, c.Name, c.CurrentBalance, c.CreditLimit, c.AvailableCredit())
	}
	return w.Flush()
}

func runWhoami(a *app.App) error {
	if a.Operator == nil {
		return session.ErrNoToken
	}
	fmt.Printf("name: %s\nrole: %s\n", a.Operator.Name, a.Operator.Role)
	if !a.Operator.ExpiresAt.IsZero() {
		fmt.Printf("token expires: %s\n", a.Operator.ExpiresAt.Format(time.RFC3339))
		if a.Operator.Expired(time.Now()) {
			fmt.Println("token is EXPIRED")
		}
	}
	return nil
}
