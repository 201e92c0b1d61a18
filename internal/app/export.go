package app

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"signalboard/internal/market"
	sig "signalboard/internal/signal"
)

// Export runs one refresh cycle and writes the snapshot as CSV and/or a
// 24h-change bar chart PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	p := a.newPoller()
	engine := sig.NewEngine()

	snap := p.Refresh(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	a.Logger.Info().Str("source", snap.Source).Int("assets", len(snap.Assets)).Msg("exporting snapshot")

	if opts.CSVPath != "" {
		if err := writeSnapshotCSV(opts.CSVPath, snap, engine); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeSnapshotPNG(opts.PNGPath, snap); err != nil {
			return err
		}
	}

	return nil
}

func writeSnapshotCSV(path string, snap *market.Snapshot, engine *sig.Engine) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"symbol", "name", "price_usd", "change_24h_pct", "change_7d_pct", "volume_24h", "high_24h", "low_24h", "ath", "ath_change_pct", "circulating_supply", "funding_rate", "trade_signal", "source", "updated_at"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, rec := range snap.Assets {
		fundingCol := ""
		if rate, ok := snap.Funding[rec.Symbol]; ok {
			fundingCol = rate.String()
		}
		record := []string{
			rec.Symbol,
			rec.Name,
			rec.CurrentPrice.String(),
			rec.Change24h.String(),
			rec.Change7d.String(),
			rec.Volume24h.String(),
			rec.High24h.String(),
			rec.Low24h.String(),
			rec.ATHPrice.String(),
			rec.ATHChangePct.String(),
			rec.CirculatingSupply.String(),
			fundingCol,
			string(engine.SignalFor(snap, rec.Symbol)),
			snap.Source,
			snap.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeSnapshotPNG(path string, snap *market.Snapshot) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	bars := make([]chart.Value, 0, len(snap.Assets))
	for _, rec := range snap.Assets {
		bars = append(bars, chart.Value{
			Label: rec.Symbol,
			Value: rec.Change24h.InexactFloat64(),
		})
	}

	graph := chart.BarChart{
		Title:    "24h change (%)",
		Width:    1280,
		Height:   720,
		BarWidth: 80,
		Bars:     bars,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
