package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"trip-planner-service/internal/export"
	"trip-planner-service/internal/services"
)

func (c *cli) exportCommand(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: tripctl export <text|pdf|qr|postcard> [flags]")
	}
	kind := args[0]

	fs := flag.NewFlagSet("export "+kind, flag.ContinueOnError)
	out := fs.String("out", ".", "output directory")
	theme := fs.String("theme", "", "postcard theme id (default: classic)")
	ai := fs.Bool("ai", true, "use a generated weather scene for the postcard")
	temperature := fs.String("temperature", "", "postcard scene temperature")
	condition := fs.String("condition", "", "postcard scene weather condition")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	sess, err := c.session()
	if err != nil {
		return err
	}

	var f services.File
	switch kind {
	case "text":
		f, err = sess.Exports.Text(c.ctx)
	case "pdf":
		f, err = sess.Exports.PDF(c.ctx)
	case "qr":
		f, err = sess.Exports.ShareQR(c.ctx, 512)
	case "postcard":
		var pc export.Postcard
		pc, err = sess.Exports.Postcard(c.ctx, export.PostcardOptions{
			ThemeID:     *theme,
			UseAI:       *ai,
			Temperature: *temperature,
			Condition:   *condition,
		})
		f = services.File{Name: pc.Filename, ContentType: "image/png", Body: pc.PNG}
	default:
		return fmt.Errorf("unknown export %q", kind)
	}
	if err != nil {
		return describeFailure(err)
	}

	path := filepath.Join(*out, f.Name)
	if err := os.WriteFile(path, f.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(c.out, "Saved %s\n", path)
	return nil
}

func (c *cli) shareCommand(args []string) error {
	sess, err := c.session()
	if err != nil {
		return err
	}

	res, err := sess.Exports.Share(c.ctx)
	if err != nil {
		// Without a clipboard the text is still useful on stdout.
		text, textErr := sess.Exports.ShareText(c.ctx)
		if textErr != nil {
			return describeFailure(err)
		}
		fmt.Fprint(c.out, text)
		return nil
	}
	switch res {
	case export.SharedClipboard:
		fmt.Fprintln(c.out, "Trip details copied to clipboard!")
	case export.SharedNative:
		fmt.Fprintln(c.out, "Trip shared.")
	}
	return nil
}
