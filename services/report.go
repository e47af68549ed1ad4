package services

import (
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"airbnb-webmap/models"
)

// ReportPrinter renders query results and sweeps for the terminal.
type ReportPrinter struct {
	out     io.Writer
	printer *message.Printer
	color   bool
}

// NewReportPrinter writes to stdout with ANSI colors.
func NewReportPrinter() *ReportPrinter {
	return NewReportPrinterTo(os.Stdout, true)
}

// NewReportPrinterTo writes to w; color toggles ANSI escapes.
func NewReportPrinterTo(w io.Writer, color bool) *ReportPrinter {
	return &ReportPrinter{out: w, printer: message.NewPrinter(language.English), color: color}
}

func (p *ReportPrinter) paint(code, s string) string {
	if !p.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func (p *ReportPrinter) printf(format string, args ...any) {
	p.printer.Fprintf(p.out, format, args...)
}

// Print renders the headline cards and the top of the listing table.
func (p *ReportPrinter) Print(r *models.QueryResult) {
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)

	p.printf("\n%s\n", p.paint("1;35", sep))
	p.printf("%s\n", p.paint("1;35", "  AIRBNB LISTINGS - TOKYO"))
	p.printf("%s\n\n", p.paint("1;35", sep))

	if r.Status == models.StatusEmpty {
		p.printf("  %s\n\n", models.ApplyFiltersNotice)
		return
	}

	price := "-"
	if r.Filter.MaxPrice != nil {
		price = p.printer.Sprintf("%.0f", *r.Filter.MaxPrice)
	}
	p.printf("%s\n", p.paint("1;33", "  Filter"))
	p.printf("  %s\n", thin)
	p.printf("  Neighbourhood : %s\n", r.Filter.Neighbourhood)
	p.printf("  Room type     : %s\n", r.Filter.RoomType)
	p.printf("  Price below   : %s\n\n", price)

	p.printf("%s\n", p.paint("1;33", "  Summary"))
	p.printf("  %s\n", thin)
	p.printf("  Number of listings : %s\n", p.paint("1", p.printer.Sprintf("%d", r.Count)))
	if r.MeanPrice != nil {
		p.printf("  Average price      : %s\n", p.paint("1;32", p.printer.Sprintf("%.1f", *r.MeanPrice)))
	} else {
		p.printf("  Average price      : no data\n")
	}
	if r.MostReviewed != nil {
		p.printf("  Most reviews       : %s  %s\n",
			p.paint("1", p.printer.Sprintf("%d", r.MostReviewed.Value)), truncate(r.MostReviewed.Label.Name, 36))
	}
	if r.MostAvailable != nil {
		p.printf("  Highly available   : %s  %s\n",
			p.paint("1", p.printer.Sprintf("%d days/year", r.MostAvailable.Value)), truncate(r.MostAvailable.Label.Name, 36))
	}
	if r.Centroid != nil {
		p.printf("  Map centre         : %.5f, %.5f (%s)\n", r.Centroid.Latitude, r.Centroid.Longitude, r.Centroid.Geohash)
	}
	p.printf("\n")

	if len(r.Points) == 0 {
		p.printf("  No listings match this filter\n\n")
		return
	}

	p.printf("%s\n", p.paint("1;33", "  Listings"))
	p.printf("  %s\n", thin)
	for i, pt := range r.Points {
		if i == 20 {
			p.printf("  ... and %d more\n", len(r.Points)-i)
			break
		}
		mark := " "
		switch pt.Marker.Emphasis {
		case models.EmphasisMostReviewed:
			mark = p.paint("1;34", "R")
		case models.EmphasisMostAvailable:
			mark = p.paint("1;33", "A")
		}
		p.printf("  %s %-38s %10s %6d rev %4d d\n", mark, truncate(pt.Listing.Name, 38),
			p.printer.Sprintf("%.0f", pt.Listing.Price), pt.Listing.NumberOfReviews, pt.Listing.Availability365)
	}
	p.printf("\n")
}

// PrintSweep renders one line per (neighbourhood, room type) pair.
func (p *ReportPrinter) PrintSweep(rows []SweepRow) {
	thin := strings.Repeat("─", 72)

	p.printf("\n%s\n", p.paint("1;33", "  Listings per neighbourhood and room type"))
	p.printf("  %s\n", thin)
	if len(rows) == 0 {
		p.printf("  No listings\n\n")
		return
	}
	for _, row := range rows {
		avg := "no data"
		if row.MeanPrice != nil {
			avg = p.printer.Sprintf("%.1f", *row.MeanPrice)
		}
		p.printf("  %-28s %-18s %6d  %12s\n", truncate(row.Neighbourhood, 28), truncate(row.RoomType, 18), row.Count, avg)
	}
	p.printf("\n")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
