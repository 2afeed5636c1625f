package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/couchcryptid/weather-lookup/internal/format"
)

// TextRenderer writes each state as a plain-text block.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer creates a renderer that writes to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render writes s. Idle renders nothing.
func (r *TextRenderer) Render(s State) {
	switch s.Phase {
	case PhaseLoading:
		fmt.Fprintln(r.w, "Loading weather data...")
	case PhaseError:
		fmt.Fprintf(r.w, "Error: %s\n", s.Message)
	case PhaseLoaded:
		r.renderReport(format.BuildReport(s.Snapshot, s.DisplayName))
	}
}

func (r *TextRenderer) renderReport(rep format.Report) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rep.Location)
	fmt.Fprintln(r.w, rep.Coordinates)
	fmt.Fprintln(r.w)

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s %s\t%s\n", rep.Icon, rep.Temperature, rep.Description)
	fmt.Fprintf(tw, "Wind:\t%s\t%s\n", rep.WindSpeed, rep.WindDirection)
	fmt.Fprintf(tw, "Updated:\t%s\n", rep.UpdatedAt)
	_ = tw.Flush()

	if len(rep.Forecast) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Forecast")
	tw = tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	for _, day := range rep.Forecast {
		fmt.Fprintf(tw, "%s\t%s\t%s / %s\t%s\n", day.Day, day.Icon, day.High, day.Low, day.Condition)
	}
	_ = tw.Flush()
}
