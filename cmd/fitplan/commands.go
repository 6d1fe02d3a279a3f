package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/2beens/fitcoach/internal/generation"
	"github.com/2beens/fitcoach/internal/illustration"
	"github.com/2beens/fitcoach/internal/planstore"
	"github.com/2beens/fitcoach/internal/profile"
	"github.com/2beens/fitcoach/internal/speech"
)

var errNoCurrentPlan = errors.New("no current plan, run 'fitplan generate' first")

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "generate":
		return a.generate(ctx, rest)
	case "current":
		return a.current(ctx)
	case "history":
		return a.history(ctx)
	case "delete":
		return a.delete(ctx, rest)
	case "clear":
		return a.clear(ctx)
	case "export":
		return a.export(ctx, rest)
	case "speak":
		return a.speak(ctx, rest)
	case "illustrate":
		return a.illustrate(ctx, rest)
	case "models":
		return a.listModels(ctx)
	default:
		return fmt.Errorf("unknown command [%s]", cmd)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) generate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate")
	profilePath := fs.String("profile", "", "path of the JSON profile file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *profilePath == "" {
		return errors.New("generate: -profile is required")
	}

	f, err := os.Open(*profilePath)
	if err != nil {
		return fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	p, err := a.validator.Decode(f)
	if err != nil {
		return describeValidation(err)
	}

	fmt.Fprintf(a.out, "Generating a plan for %s ...\n", p.Name)
	generated, err := a.generator.Generate(ctx, p)
	if err != nil {
		return describeValidation(err)
	}

	item, res, err := a.store.Save(ctx, generated)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	printPlan(a.out, generated)
	fmt.Fprintf(a.out, "\nSaved as %s\n", item.ID)
	printDegraded(a.out, res)
	return nil
}

func (a *app) current(ctx context.Context) error {
	p, found := a.store.LoadCurrent(ctx)
	if !found {
		return errNoCurrentPlan
	}
	printPlan(a.out, p)
	return nil
}

func (a *app) history(ctx context.Context) error {
	items, res := a.store.LoadHistory(ctx)
	printHistory(a.out, items, res.Source)
	printDegraded(a.out, res)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete")
	id := fs.String("id", "", "id of the saved plan")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("delete: -id is required")
	}

	res, err := a.store.Delete(ctx, *id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	fmt.Fprintf(a.out, "Deleted %s\n", *id)
	printDegraded(a.out, res)
	return nil
}

func (a *app) clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear plans: %w", err)
	}
	fmt.Fprintln(a.out, "Local plans cleared")
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	out := fs.String("out", "fitness-plan.pdf", "output PDF file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, found := a.store.LoadCurrent(ctx)
	if !found {
		return errNoCurrentPlan
	}

	pdf, err := a.exporter.PDF(p)
	if err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	if err := os.WriteFile(*out, pdf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(a.out, "Plan exported to %s\n", *out)
	return nil
}

func (a *app) speak(ctx context.Context, args []string) error {
	fs := newFlagSet("speak")
	sectionName := fs.String("section", "full", "section to narrate [workout | diet | tips | full]")
	voice := fs.String("voice", "", "voice id, empty for the default voice")
	out := fs.String("out", "", "output mp3 file, defaults to <section>.mp3")
	if err := fs.Parse(args); err != nil {
		return err
	}

	section, err := speech.ParseSection(*sectionName)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = string(section) + ".mp3"
	}

	p, found := a.store.LoadCurrent(ctx)
	if !found {
		return errNoCurrentPlan
	}

	audio, err := a.synth.Synthesize(ctx, speech.Narrate(p, section), *voice)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, audio.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(a.out, "Narration saved to %s\n", *out)
	return nil
}

func (a *app) illustrate(ctx context.Context, args []string) error {
	fs := newFlagSet("illustrate")
	kind := fs.String("type", "meal", "illustration type [exercise | meal]")
	subject := fs.String("subject", "", "exercise or meal name")
	out := fs.String("out", "illustration.png", "output image file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subject == "" {
		return errors.New("illustrate: -subject is required")
	}

	img, err := a.illus.Illustrate(ctx, *subject, illustration.ParseCategory(*kind))
	if err != nil {
		return errors.New(illustration.UserMessage(err))
	}

	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return fmt.Errorf("decode image data: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(a.out, "Illustration saved to %s\n", *out)
	return nil
}

func (a *app) listModels(ctx context.Context) error {
	if a.models == nil {
		return generation.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	names, err := a.models.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, name := range names {
		fmt.Fprintln(a.out, name)
	}
	return nil
}

func describeValidation(err error) error {
	var verr *profile.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	msg := "invalid profile:"
	for _, f := range verr.Fields {
		msg += fmt.Sprintf("\n  - %s: %s", f.Field, f.Message)
	}
	return errors.New(msg)
}

func printDegraded(w io.Writer, res planstore.Result) {
	if res.Degraded() {
		fmt.Fprintln(w, "Warning: remote store unavailable, the local copy is up to date")
	}
}
