package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/arnavshah/workload-governance-go/internal/snapshot"
	"github.com/arnavshah/workload-governance-go/pkg/alerts"
	"github.com/arnavshah/workload-governance-go/pkg/balancing"
	"github.com/arnavshah/workload-governance-go/pkg/config"
	"github.com/arnavshah/workload-governance-go/pkg/formatter"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/metrics"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Input is the snapshot file read by the CLI
type Input struct {
	Employees   []models.Employee               `json:"employees"`
	Stores      []models.Store                  `json:"stores"`
	Shifts      []models.Shift                  `json:"shifts"`
	Settings    *models.ValidationAdminSettings `json:"settings"`
	WeekStart   string                          `json:"week_start"`
	Suggestions []models.BalancingSuggestion    `json:"suggestions"`
}

func main() {
	input := flag.String("input", "", "Input JSON snapshot file (required)")
	week := flag.String("week", "", "Week start YYYY-MM-DD (defaults to week_start in the input)")
	format := flag.String("format", "text", "Output format: text|json|csv")
	policy := flag.String("policy", "", "YAML policy file with default settings")
	apply := flag.Bool("apply", false, "Apply the suggestions in the input and report the batch result")
	rebase := flag.Bool("rebase", false, "Evaluate each suggestion against the result of the previous ones")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	flag.Parse()

	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		fmt.Printf("Error parsing file: %v\n", err)
		os.Exit(1)
	}

	settings := models.ValidationAdminSettings{}.WithDefaults()
	if *policy != "" {
		p, err := config.LoadPolicy(*policy)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		settings = p.Defaults.WithDefaults()
	}
	if in.Settings != nil {
		settings = settings.Merge(*in.Settings)
	}

	if *week != "" {
		in.WeekStart = *week
	}
	weekStart, err := hours.ParseDay(in.WeekStart)
	if err != nil {
		fmt.Printf("Error: week start must be YYYY-MM-DD (got: %q)\n", in.WeekStart)
		os.Exit(1)
	}

	report := alerts.NewDetector().Detect(alerts.Input{
		Employees: in.Employees,
		Stores:    in.Stores,
		Shifts:    in.Shifts,
		Settings:  settings,
		WeekStart: weekStart,
	})
	metrics.ObserveAlerts(report.Alerts, report.EquityScore)

	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(report))
	case "csv":
		fmt.Print(formatter.FormatCSV(report))
	default: // "text"
		fmt.Print(formatter.FormatText(report))
	}

	if *apply && len(in.Suggestions) > 0 {
		engine := balancing.NewEngine(snapshot.New(in.Employees, in.Stores, in.Shifts))
		var batch models.BatchResult
		if *rebase {
			batch = engine.ApplyMultipleRebased(in.Suggestions)
		} else {
			batch = engine.ApplyMultiple(in.Suggestions)
		}
		metrics.ObserveBatch(batch)
		fmt.Print("\n" + formatter.FormatBatch(batch))
	}

	if *pushGateway != "" {
		jobName := "workload_governance"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}
}
