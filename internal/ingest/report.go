package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// reportItems caps the entries listed per topic.
const reportItems = 10

// WriteReport prints a human summary of a run.
func WriteReport(w io.Writer, buckets []Bucket, result UpdateResult, opts UpdateOptions, at time.Time) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  RAPPORT DE VEILLE AUTOMATIQUE")
	fmt.Fprintf(w, "  %s\n", at.Format("02/01/2006 15:04:05"))
	switch {
	case opts.DryRun:
		fmt.Fprintln(w, "  [MODE APERCU - aucune modification]")
	case opts.Apply:
		fmt.Fprintln(w, "  [MODE APPLY - document ecrase]")
	default:
		fmt.Fprintln(w, "  [MODE VERSION - fichier date cree]")
	}
	fmt.Fprintln(w, rule)

	added := make(map[string]int, len(result.Topics))
	for _, t := range result.Topics {
		added[t.Name] = len(t.New)
	}
	for _, b := range buckets {
		fmt.Fprintf(w, "\n  %s : %d trouves, %d nouveaux\n", b.Topic.Name, len(b.Items), added[b.Topic.Name])
		for i, item := range b.Items {
			if i == reportItems {
				fmt.Fprintf(w, "  ... et %d autres articles\n", len(b.Items)-reportItems)
				break
			}
			date := item.Date
			if date == "" {
				date = "date inconnue"
			}
			fmt.Fprintf(w, "  - [%s] %s (%s)\n    %s\n", item.Source, item.Title, date, item.Link)
		}
	}

	fmt.Fprintf(w, "\n%s\n  TOTAL : %d nouveaux articles\n", rule, result.Total)
	if result.VersionPath != "" {
		fmt.Fprintf(w, "  FICHIER : %s\n  CHEMIN  : %s\n", filepath.Base(result.VersionPath), result.VersionPath)
	}
	if !opts.DryRun && !opts.Apply && result.Total > 0 {
		fmt.Fprintln(w, "\n  Pour ecraser le document, relancer avec --apply")
	}
	fmt.Fprintln(w, rule)
}
