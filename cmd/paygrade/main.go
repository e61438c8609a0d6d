package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/paygrade/internal/batch"
	"github.com/fr4nk3nst1ner/paygrade/internal/client"
	"github.com/fr4nk3nst1ner/paygrade/internal/config"
	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/tableio"
	"github.com/fr4nk3nst1ner/paygrade/internal/template"
	"github.com/fr4nk3nst1ner/paygrade/internal/ui"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 paygrade Usage Examples 📋")
	fmt.Println("\n1. Derive midpoints and spreads from an Excel sheet of minimums and maximums:")
	fmt.Println("   paygrade -scenario 1 -input grades.xlsx")

	fmt.Println("\n2. Spread 8 grades evenly between two midpoints and save the result as Excel:")
	fmt.Println("   paygrade -scenario 2 -input spreads.csv -lowest 20000 -highest 100000 -output structure.xlsx")

	fmt.Println("\n3. Build midpoints from a progression starting at 50,000:")
	fmt.Println("   paygrade -scenario 3 -input progression.csv -lowest 50000")

	fmt.Println("\n4. Price grades at the 75th percentile of a published market survey table:")
	fmt.Println("   paygrade -scenario 5 -input https://example.com/survey.html -percentile 75 -chart")

	fmt.Println("\n5. Write a 10-grade template for scenario 4:")
	fmt.Println("   paygrade -scenario 4 -template 10 -output template_scenario_4.xlsx")

	fmt.Println("\n6. Save the current defaults plus overrides as a config file:")
	fmt.Println("   paygrade -scenario 5 -percentile 60 -currency € -save-config paygrade.yaml")

	fmt.Println("\n7. Compute every table in a directory with 8 workers, writing JSON:")
	fmt.Println("   paygrade -scenario 1 -batch ./departments -format json -workers 8")

	os.Exit(0)
}

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to a YAML config file")
	saveConfig := flag.String("save-config", "", "Write the effective configuration to this YAML file and exit")
	scenario := flag.Int("scenario", 0, "Scenario: 1 minimums & maximums, 2 lowest & highest midpoint, 3 midpoint progression, 4 salary midpoints, 5 market rate")
	input := flag.String("input", "", "Input table (csv, xlsx, html, json) or http(s) URL")
	output := flag.String("output", "", "Write the result to this file (format from extension unless -format is set)")
	format := flag.String("format", "", "Output format: csv, xlsx or json")
	currency := flag.String("currency", "", "Currency symbol used in the results table")
	lowest := flag.Float64("lowest", 0, "Lowest midpoint (scenarios 2 and 3)")
	highest := flag.Float64("highest", 0, "Highest midpoint (scenario 2)")
	percentile := flag.Int("percentile", 0, "Target market percentile (scenario 5)")
	templateGrades := flag.Int("template", 0, "Write an input template with this many grades instead of calculating")
	batchDir := flag.String("batch", "", "Compute every input table in this directory")
	outDir := flag.String("outdir", "", "Directory for batch results (defaults to the batch directory)")
	workers := flag.Int("workers", 0, "Number of concurrent batch workers")
	proxyURL := flag.String("proxy", "", "Proxy URL used for remote inputs")
	chart := flag.Bool("chart", false, "Show midpoint and overlap bar charts")
	debug := flag.Bool("debug", false, "Enable debug logging")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	logger := pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Error loading config", logger.Args("error", err))
	}

	// flags given explicitly win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scenario":
			cfg.Scenario = *scenario
		case "currency":
			cfg.Currency = *currency
		case "lowest":
			cfg.Params.LowestMidpoint = *lowest
		case "highest":
			cfg.Params.HighestMidpoint = *highest
		case "percentile":
			cfg.Params.TargetPercentile = *percentile
		case "format":
			cfg.Output.Format = *format
		case "outdir":
			cfg.Output.Dir = *outDir
		case "workers":
			cfg.Workers = *workers
		case "proxy":
			cfg.Proxy = *proxyURL
		case "chart":
			cfg.Output.Chart = *chart
		case "debug":
			cfg.Debug = *debug
		case "template":
			cfg.Grades = *templateGrades
		}
	})
	if *output != "" && !isFlagSet("format") {
		if f, err := tableio.FormatFromPath(*output); err == nil {
			cfg.Output.Format = string(f)
		}
	}

	if cfg.Debug {
		logger = logger.WithLevel(pterm.LogLevelDebug)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", logger.Args("error", err))
	}

	if *saveConfig != "" {
		if err := cfg.Write(*saveConfig); err != nil {
			logger.Fatal("Error writing config", logger.Args("path", *saveConfig, "error", err))
		}
		pterm.Success.Printfln("Configuration written to %s", *saveConfig)
		return
	}

	s := engine.Scenario(cfg.Scenario)
	outFormat, _ := tableio.ParseFormat(cfg.Output.Format)
	logger.Debug("configuration", logger.Args("scenario", s.String(), "format", outFormat, "workers", cfg.Workers))

	switch {
	case *templateGrades > 0:
		writeTemplate(logger, s, cfg.Grades, *output, outFormat)
	case *batchDir != "":
		runBatch(logger, cfg, s, *batchDir, outFormat)
	case *input != "":
		runSingle(logger, cfg, s, *input, *output, outFormat)
	default:
		logger.Fatal("An -input, -batch directory or -template count is required")
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func writeTemplate(logger *pterm.Logger, s engine.Scenario, grades int, output string, format tableio.Format) {
	tbl, err := template.Generate(s, grades)
	if err != nil {
		logger.Fatal("Error generating template", logger.Args("error", err))
	}
	if output == "" {
		output = fmt.Sprintf("template_scenario_%d%s", int(s), format.Extension())
	}

	opts := tableio.SaveOptions{
		Meta:  tableio.Meta{Scenario: s, Params: template.DefaultParams(s)},
		Sheet: tableio.TemplateSheet,
	}
	if err := tableio.Save(output, format, tbl, opts); err != nil {
		logger.Fatal("Error writing template", logger.Args("error", err))
	}
	pterm.Success.Printfln("Template for \"%s\" with %d grades written to %s", s, grades, output)
}

func runSingle(logger *pterm.Logger, cfg *config.AppConfig, s engine.Scenario, input, output string, format tableio.Format) {
	logger.Debug("loading input", logger.Args("source", input))
	in, err := tableio.Load(input, client.CreateHTTPClient(cfg.Proxy))
	if err != nil {
		logger.Fatal("Error loading input", logger.Args("error", err))
	}
	logger.Debug("input loaded", logger.Args("grades", in.Len(), "columns", len(in.Columns)))

	result, err := engine.Compute(s, in, cfg.Params)
	if err != nil {
		ui.PrintError(err)
		os.Exit(1)
	}

	pterm.DefaultSection.Printfln("Salary structure: %s", s)
	rendered, err := ui.RenderTable(result, cfg.Currency)
	if err != nil {
		logger.Fatal("Error rendering table", logger.Args("error", err))
	}
	fmt.Println(rendered)

	pterm.DefaultSection.Println("Quick Statistics")
	summary, err := ui.RenderSummary(engine.Summarize(result), cfg.Currency)
	if err != nil {
		logger.Fatal("Error rendering summary", logger.Args("error", err))
	}
	fmt.Println(summary)

	if cfg.Output.Chart {
		pterm.DefaultSection.Println("Salary Midpoints & Progression")
		chart, err := ui.RenderMidpointChart(result)
		if err != nil {
			logger.Warn("Could not render chart", logger.Args("error", err))
		} else {
			fmt.Println(chart)
		}

		pterm.DefaultSection.Println("Range Overlap %")
		chart, err = ui.RenderOverlapChart(result)
		if err != nil {
			logger.Warn("Could not render chart", logger.Args("error", err))
		} else {
			fmt.Println(chart)
		}
	}

	if output == "" {
		return
	}
	if cfg.Output.Dir != "" && !filepath.IsAbs(output) {
		output = filepath.Join(cfg.Output.Dir, output)
	}
	opts := tableio.SaveOptions{
		Meta:  tableio.Meta{Scenario: s, Params: cfg.Params},
		Input: &in,
	}
	if err := tableio.Save(output, format, result, opts); err != nil {
		logger.Fatal("Error writing result", logger.Args("error", err))
	}
	pterm.Success.Printfln("Result written to %s", output)
}

func runBatch(logger *pterm.Logger, cfg *config.AppConfig, s engine.Scenario, dir string, format tableio.Format) {
	jobs, err := batch.Discover(dir, cfg.Output.Dir, format)
	if err != nil {
		logger.Fatal("Error reading batch directory", logger.Args("dir", dir, "error", err))
	}
	if len(jobs) == 0 {
		logger.Warn("No input tables found", logger.Args("dir", dir))
		return
	}
	logger.Info("Starting batch", logger.Args("tables", len(jobs), "scenario", s.String(), "workers", cfg.Workers))

	bar := batch.NewProgressBar(len(jobs), os.Stderr)
	bar.Start()
	runner := &batch.Runner{
		Scenario: s,
		Params:   cfg.Params,
		Format:   format,
		Workers:  cfg.Workers,
		Client:   client.CreateHTTPClient(cfg.Proxy),
		Bar:      bar,
		Logger:   logger,
	}
	results := runner.Run(jobs)
	bar.Finish()

	for _, res := range results {
		if res.Err != nil {
			pterm.Error.Printfln("%s", res.Job.Input)
			for _, line := range ui.DescribeError(res.Err) {
				pterm.Println("  " + line)
			}
			continue
		}
		pterm.Success.Printfln("%s -> %s (%d grades)", res.Job.Input, res.Job.Output, res.Grades)
	}

	if failed := batch.Failed(results); failed > 0 {
		logger.Error("Batch finished with failures", logger.Args("failed", failed, "total", len(results)))
		os.Exit(1)
	}
	logger.Info("Batch finished", logger.Args("total", len(results)))
}
