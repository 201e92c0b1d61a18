package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"signalboard/internal/links"
	"signalboard/internal/market"
	sig "signalboard/internal/signal"
)

var hundred = decimal.NewFromInt(100)

// Snapshot runs one refresh cycle and prints the board as a table. This is
// also the manual-retry surface: it invokes acquisition immediately.
func (a *App) Snapshot(ctx context.Context) error {
	p := a.newPoller()
	engine := sig.NewEngine()

	snap := p.Refresh(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSnapshot(snap, engine)
	return nil
}

func printSnapshot(snap *market.Snapshot, engine *sig.Engine) {
	if snap.Advisory != "" {
		fmt.Fprintf(os.Stdout, "! %s\n\n", snap.Advisory)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Symbol\tPrice (USD)\t24h%\t7d%\tFunding%\tSignal\tChart")

	for _, rec := range snap.Assets {
		fundingCol := "-"
		if rate, ok := snap.Funding[rec.Symbol]; ok {
			fundingCol = rate.Mul(hundred).StringFixed(3)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Symbol,
			rec.CurrentPrice.StringFixed(4),
			rec.Change24h.StringFixed(2),
			rec.Change7d.StringFixed(2),
			fundingCol,
			engine.SignalFor(snap, rec.Symbol),
			links.ChartURL(rec.Symbol),
		)
	}

	writer.Flush()
	fmt.Fprintf(os.Stdout, "\nsource: %s, updated: %s UTC\n", snap.Source, snap.UpdatedAt.Format(time.RFC3339))
}
