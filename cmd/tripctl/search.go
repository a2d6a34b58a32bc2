package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"
)

func (c *cli) searchCommand(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	destination := fs.String("destination", "", "destination to look up")
	origin := fs.String("origin", "", "departure city for flight prices")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := c.load()
	if err != nil {
		return err
	}
	if *origin == "" {
		*origin = a.Config.DefaultOrigin
	}

	report, err := services.SearchDestination(c.ctx, a.Lookup, *destination, *origin, c.log)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s (from %s)\n", report.Destination, report.Origin)
	fmt.Fprintf(c.out, "Image: %s\n\n", a.Catalog.DestinationImage(report.Destination))

	t := NewTableWriter(c.out, []string{"Lookup", "Result"})
	if f := report.Flights; f != nil {
		t.AddRow("Flights", fmt.Sprintf("economy $%s / premium $%s / business $%s", f.Economy, f.Premium, f.Business))
	}
	if h := report.Hotels; h != nil {
		t.AddRow("Hotels", fmt.Sprintf("budget $%s / standard $%s / luxury $%s", h.Budget, h.Standard, h.Luxury))
	}
	if w := report.Weather; w != nil {
		t.AddRow("Weather", fmt.Sprintf("%s, %s, humidity %s, wind %s", w.Temperature, w.Condition, w.Humidity, w.Wind))
	}
	if report.Err(services.TaskEvents) == nil {
		t.AddRow("Events", fmt.Sprintf("%d upcoming", len(report.Events)))
	}

	failed := make([]string, 0, len(report.Unavailable))
	for task := range report.Unavailable {
		failed = append(failed, task)
	}
	sort.Strings(failed)
	for _, task := range failed {
		t.AddRow(domain.Title(task), "unavailable")
	}
	t.Print()

	for _, e := range report.Events {
		fmt.Fprintf(c.out, "  %s - %s at %s (%s)\n", e.Date, e.Name, e.Venue, e.Type)
	}
	return nil
}

func (c *cli) detectOriginCommand(args []string) error {
	fs := flag.NewFlagSet("detect-origin", flag.ContinueOnError)
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := c.load()
	if err != nil {
		return err
	}
	origin, err := services.DetectOrigin(c.ctx, a.Geocoder, *lat, *lon, c.log)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, origin.Name)
	if origin.Degraded {
		fmt.Fprintln(os.Stderr, "warning: location lookup failed, using a generic origin")
	}
	return nil
}

func (c *cli) photoCommand(args []string) error {
	fs := flag.NewFlagSet("photo", flag.ContinueOnError)
	image := fs.String("image", "", "path to your photo")
	landmark := fs.String("landmark", "", "landmark id (see 'tripctl themes')")
	ai := fs.Bool("ai", true, "composite with the AI model")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *image == "" {
		return errors.New("--image is required")
	}

	a, err := c.load()
	if err != nil {
		return err
	}

	f, err := os.Open(*image)
	if err != nil {
		return err
	}
	defer f.Close()

	url, err := a.Photos.Generate(c.ctx, services.PhotoInput{Image: f, LandmarkID: *landmark, UseAI: *ai})
	if err != nil {
		return describeFailure(err)
	}
	fmt.Fprintln(c.out, url)
	return nil
}

func (c *cli) themesCommand(args []string) error {
	t := NewTableWriter(c.out, []string{"Theme", "Name", "Season", "Accent"})
	for _, th := range domain.Themes() {
		t.AddRow(th.ID, th.Name, th.Season, th.AccentHex)
	}
	t.Print()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	l := NewTableWriter(c.out, []string{"Landmark", "Name", "City"})
	for _, lm := range cat.Landmarks {
		l.AddRow(lm.ID, lm.Name, lm.City)
	}
	l.Print()
	return nil
}
