package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"trip-planner-service/internal/adapters/store"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/export"
	"trip-planner-service/internal/services"
)

func (c *cli) planCommand(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	destination := fs.String("destination", "", "where to go (required unless --surprise)")
	origin := fs.String("origin", "", "departure city (default from DEFAULT_ORIGIN)")
	budget := fs.Int("budget", 0, "total budget in USD (default 2000)")
	days := fs.Int("days", 0, "trip length in days, 1-14 (default 3)")
	interests := fs.String("interests", "", "comma separated interests")
	surprise := fs.Bool("surprise", false, "pick a random destination, length and budget")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := domain.TripForm{
		Destination: *destination,
		Origin:      *origin,
		BudgetUSD:   *budget,
		Days:        *days,
		Interests:   splitList(*interests),
	}

	if *surprise {
		a, err := c.load()
		if err != nil {
			return err
		}
		s := a.Catalog.SurpriseForm(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
		form.Destination, form.Days, form.BudgetUSD = s.Destination, s.Days, s.BudgetUSD
	}

	sess, err := c.session()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Planning a trip to %s...\n", strings.TrimSpace(form.Destination))
	it, err := sess.Planner.Submit(c.ctx, form)
	if err != nil {
		return describeFailure(err)
	}
	printSummary(c, it)
	return nil
}

func (c *cli) showCommand(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	format := fs.String("format", "summary", "summary, text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := c.session()
	if err != nil {
		return err
	}
	it, ok := sess.Planner.Current()
	if !ok {
		return errors.New("no current plan; run 'tripctl plan' first")
	}

	switch *format {
	case "summary":
		printSummary(c, it)
	case "text":
		fmt.Fprint(c.out, export.TextReport(it))
	case "json":
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(it)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	return nil
}

func (c *cli) resetCommand(args []string) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	sess.Planner.Reset(c.ctx)
	fmt.Fprintln(c.out, "Plan discarded.")
	return nil
}

func (c *cli) importCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: tripctl import <file.json>")
	}
	a, err := c.load()
	if err != nil {
		return err
	}
	it, err := store.ImportPlanFile(c.ctx, a.Store, localSessionID, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Imported plan for %s.\n", it.Destination)
	return nil
}

func printSummary(c *cli, it domain.Itinerary) {
	v := domain.NewView(it)

	fmt.Fprintf(c.out, "\n%s: %d days, budget $%s, %d activities\n\n",
		it.Destination, it.Duration, v.BudgetTotal(), v.TotalActivities())

	costs := NewTableWriter(c.out, []string{"Category", "Amount"})
	for _, e := range v.CostEntries() {
		costs.AddRow(domain.Title(e.Label), "$"+e.Amount.String())
	}
	costs.Print()

	days := NewTableWriter(c.out, []string{"Day", "Title", "Activities", "Est. cost"})
	for _, d := range it.DailyItinerary {
		days.AddRow(fmt.Sprint(d.Day), d.Title, fmt.Sprint(len(d.Activities)), "$"+d.EstimatedDailyCost.String())
	}
	days.Print()
}

// describeFailure turns a planning error into a user-facing message.
func describeFailure(err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return err
	case errors.Is(err, services.ErrSuperseded):
		return errors.New("request was superseded by a newer one")
	case domain.Retriable(err):
		return fmt.Errorf("%w (kind=%s, try again)", err, domain.Kind(err))
	}
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
