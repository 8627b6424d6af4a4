// Command cli vets a single candidate from a lightcurve file and prints the
// modshift metrics as JSON. With -diag-dir it also exports the intermediate
// arrays to an Excel workbook.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"modshift/adapters/boxcar"
	"modshift/adapters/excel"
	"modshift/app"
	"modshift/domain/core"
	"modshift/domain/lightcurve"
	"modshift/internal/config"
	"modshift/internal/pipeline"
	"modshift/ports"
)

func main() {
	var (
		file     = flag.String("file", "", "lightcurve file (.csv or .xlsx): time_days, flux columns")
		target   = flag.String("target", "", "optional target label for the report")
		period   = flag.Float64("period", 0, "orbital period in days")
		epoch    = flag.Float64("epoch", 0, "epoch of first transit in days")
		duration = flag.Float64("duration", 0, "transit duration in hours")
		depth    = flag.Float64("depth", 0, "box-car model depth as a flux fraction, e.g. 1e-3")
		diagDir  = flag.String("diag-dir", "", "directory for the diagnostics workbook (omit to skip)")
	)
	flag.Parse()

	if *file == "" || *period <= 0 || *epoch <= 0 || *duration <= 0 || *depth <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		log.Printf("[CLI] loaded .env")
	}
	cfg, err := config.Load(false)
	if err != nil {
		log.Fatalf("[CLI] failed to load configuration: %v", err)
	}

	var source ports.LightcurveSource = excel.NewLightcurveReader()
	series, err := source.Read(*file)
	if err != nil {
		log.Fatalf("[CLI] failed to read lightcurve: %v", err)
	}

	var diag ports.DiagnosticSink
	if *diagDir != "" {
		diag = excel.NewDiagnosticsWriter(*diagDir)
	}

	service := app.NewVetService(
		pipeline.New(cfg.PipelineSettings()),
		boxcar.NewGenerator(),
		nil, // CLI runs without a ledger
		diag,
	)

	report, err := service.Vet(context.Background(), app.VetRequest{
		Target: core.TargetKey(*target),
		Series: *series,
		Ephemeris: lightcurve.Ephemeris{
			PeriodDays:  *period,
			EpochDays:   *epoch,
			DurationHrs: *duration,
		},
		DepthFrac: *depth,
	})
	if err != nil {
		log.Fatalf("[CLI] vetting failed: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("[CLI] failed to encode report: %v", err)
	}
	fmt.Println(string(out))
}
