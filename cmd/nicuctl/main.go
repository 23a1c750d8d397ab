// nicuctl consulta la API de nicu-progress y muestra la serie de progreso
// de un paciente en la terminal.
//
//	nicuctl -user ana patients
//	nicuctl -user ana -aggregation weekly progress <patient-uuid>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"nicu-progress/internal/adapters/recordsapi"
	"nicu-progress/internal/domain/progress"
	"nicu-progress/internal/platform/logger"
)

func main() {
	apiURL := flag.String("api", envOr("NICU_API_URL", "http://localhost:8080"), "Base URL of the nicu-progress API")
	user := flag.String("user", os.Getenv("NICU_USER"), "Clinician username")
	aggregation := flag.String("aggregation", "daily", "Aggregation level: daily, weekly or monthly")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	// La contraseña solo por env para no dejarla en el historial del shell.
	password := os.Getenv("NICU_PASSWORD")
	if *user == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Error: -user (or NICU_USER) and NICU_PASSWORD are required")
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: logger.Warn, Output: os.Stderr})
	client, err := recordsapi.NewClient(*apiURL, *timeout, recordsapi.NewSession(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2**timeout)
	defer cancel()

	if err := client.Login(ctx, *user, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "patients":
		err = listPatients(ctx, os.Stdout, client)
	case "progress":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: progress requires a patient id")
			os.Exit(2)
		}
		var level progress.Level
		level, err = progress.ParseLevel(*aggregation)
		if err == nil {
			err = showProgress(ctx, os.Stdout, client, flag.Arg(1), level)
		}
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] patients | progress <patient-id>\n", os.Args[0])
	flag.PrintDefaults()
}

func listPatients(ctx context.Context, out io.Writer, client *recordsapi.Client) error {
	items, err := client.ListPatients(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATIENT ID\tNAME\tDOB\tGA")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.PatientID, p.Name, p.DOB, p.GA)
	}
	return tw.Flush()
}

func showProgress(ctx context.Context, out io.Writer, client *recordsapi.Client, id string, level progress.Level) error {
	p, err := client.GetPatient(ctx, id)
	if err != nil {
		return err
	}

	series, err := progress.Build(progress.Patient{DOB: p.DOB, GA: p.GA}, p.Entries, level)
	for _, d := range series.Diagnostics {
		fmt.Fprintf(os.Stderr, "warning: entry %s (%q) skipped: %s\n", d.EntryID, d.Date, d.Reason)
	}
	if errors.Is(err, progress.ErrNoData) {
		fmt.Fprintf(out, "%s (%s): no data\n", p.Name, p.PatientID)
		return nil
	}
	if err != nil {
		return err
	}

	return renderSeries(out, p, series)
}

func renderSeries(out io.Writer, p recordsapi.Patient, s progress.Series) error {
	dol := progress.Unavailable
	if s.Summary.DOL != nil {
		dol = strconv.Itoa(*s.Summary.DOL)
	}
	fmt.Fprintf(out, "%s (%s)  DOB %s  GA %s  |  DOL %s  PMA %s  |  %s\n\n",
		p.Name, p.PatientID, p.DOB, p.GA, dol, s.Summary.PMA, s.Level)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "DATE\t")
	for _, m := range s.Metrics {
		fmt.Fprintf(tw, "%s\t", m.Label)
	}
	fmt.Fprintln(tw)

	for _, pt := range s.Points {
		fmt.Fprintf(tw, "%s\t", pt.DateString)
		for _, m := range s.Metrics {
			if v := pt.Value(m.Key); v != nil {
				fmt.Fprintf(tw, "%s\t", strconv.FormatFloat(*v, 'f', 2, 64))
			} else {
				fmt.Fprint(tw, "-\t")
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
