// Command imdcalc screens the IMD products of an LMR and a WiFi transmitter
// operating simultaneously and flags those that land in GNSS bands.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/RMahshie/imdscreen/internal/calculation"
	"github.com/RMahshie/imdscreen/internal/config"
	"github.com/RMahshie/imdscreen/internal/console"
	apperrors "github.com/RMahshie/imdscreen/internal/errors"
	"github.com/RMahshie/imdscreen/internal/export"
	"github.com/RMahshie/imdscreen/internal/logging"
	"github.com/RMahshie/imdscreen/pkg/models"
)

var (
	f1Flag = cli.Float64Flag{
		Name:  "f1",
		Usage: "LMR Tx frequency in MHz",
		Value: 100.0,
	}
	f2Flag = cli.Float64Flag{
		Name:  "f2",
		Usage: "WiFi Tx frequency in MHz (must be greater than f1)",
		Value: 200.0,
	}
	csvFlag = cli.StringFlag{
		Name:  "csv",
		Usage: "Write the result table to this CSV file (use \"-\" for " + export.FileName + ")",
	}
	noBandsFlag = cli.BoolFlag{
		Name:  "no-bands",
		Usage: "Do not print the reference band table before the results",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "Do not highlight rows that overlap a checked band",
	}
)

type options struct {
	input   models.CalculationInput
	csvPath string
	bands   bool
	color   bool
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "imdcalc"
	app.Usage = "RF intermodulation distortion (IMD) frequency calculator"
	app.Description = "Simultaneous LMR Tx & WiFi Tx operation. Lists every IMD product up to the configured " +
		"harmonic order and flags those inside GNSS receive bands."
	app.Flags = []cli.Flag{f1Flag, f2Flag, csvFlag, noBandsFlag, noColorFlag}
	app.Action = func(ctx *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return cli.NewExitError(err.Error(), apperrors.ExitErrorGeneric)
		}
		logging.Setup(os.Stderr, cfg.Log.Level, cfg.Server.Env)

		svc := calculation.NewCalculationService(calculation.Limits{
			NMax: cfg.Harmonics.NMax,
			MMax: cfg.Harmonics.MMax,
		}, nil)

		if err := run(context.Background(), ctx.App.Writer, svc, optionsFrom(ctx)); err != nil {
			return cli.NewExitError(err.Error(), apperrors.ExitCode(err))
		}
		return nil
	}
	return app
}

func optionsFrom(ctx *cli.Context) options {
	return options{
		input:   models.CalculationInput{F1: ctx.Float64(f1Flag.Name), F2: ctx.Float64(f2Flag.Name)},
		csvPath: ctx.String(csvFlag.Name),
		bands:   !ctx.Bool(noBandsFlag.Name),
		color:   !ctx.Bool(noColorFlag.Name),
	}
}

func run(ctx context.Context, out io.Writer, svc calculation.CalculationService, opts options) error {
	if opts.bands {
		fmt.Fprintln(out, "Frequency Ranges for Reference")
		console.RenderBands(out, svc.ReferenceBands(), svc.CheckedBands())
		fmt.Fprintln(out)
	}

	calc, err := svc.Calculate(ctx, opts.input)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Calculated IMD Frequencies")
	console.RenderResults(out, calc, opts.color)
	console.RenderSummary(out, calc)

	if opts.csvPath == "" {
		return nil
	}
	path := opts.csvPath
	if path == "-" {
		path = export.FileName
	}
	if err := writeCSV(path, calc.Rows); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("rows", len(calc.Rows)).Msg("CSV written")
	return nil
}

func writeCSV(path string, rows []models.ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperrors.ExitErrorGeneric)
	}
}
