package main

import (
	"fmt"
	"io"
	"log"
	"sunside-service/internal/adapters/routes"
	"sunside-service/internal/config"
	"sunside-service/internal/domain"
	"sunside-service/internal/dto"
	"sunside-service/internal/platform/obs"
	"sunside-service/internal/ports"
	"sunside-service/internal/services"
	"time"

	"github.com/spf13/cobra"
)

// app carries what the commands share. main fills it; tests swap the provider.
type app struct {
	cfg      config.Config
	provider ports.SolarAltitudeProvider
}

func newRootCmd(a *app) *cobra.Command {
	var started time.Time

	root := &cobra.Command{
		Use:           "sunside",
		Short:         "Which side of the vehicle gets the sun",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			started = time.Now()
		},
		// Mirrors request logging: one line per command.
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Printf("cmd=%s dur=%dms", cmd.Name(), time.Since(started).Milliseconds())
		},
	}

	root.AddCommand(
		newEvaluateCmd(a),
		newTrajectoryCmd(a),
		newDaylightCmd(),
	)
	return root
}

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		routePath    string
		routeFormat  string
		at           string
		step         time.Duration
		withSegments bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Summarize on which side the sun shines along a route",
		Long: `Reads a route file (JSON [[lat, lon], ...], GeoJSON LineString or an
encoded polyline) and reports, for every segment, whether the sun is on the
left or the right of the direction of travel.

With --step each segment is evaluated that much later than the previous one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			start, err := parseInstant(at)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("step") {
				step = a.cfg.Step
			}

			ctx := obs.WithEvalID(cmd.Context(), obs.NewEvalID())
			defer obs.Time(ctx, "cli.evaluate")(&err)

			var src ports.RouteSource = routes.NewFileRouteSource(routePath, routes.Format(routeFormat))
			points, err := src.LoadRoute(ctx)
			if err != nil {
				return err
			}

			report, err := services.EvaluateRouteDetailed(
				ctx,
				points,
				domain.NewTimePolicy(start, step),
				a.provider,
				services.EvaluateOptions{Concurrency: a.cfg.Concurrency},
			)
			if err != nil {
				return err
			}

			res := dto.NewEvaluateResponse(report, withSegments)
			if asJSON {
				return dto.WriteJSON(cmd.OutOrStdout(), res)
			}
			printEvaluation(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&routePath, "route", "", "route file")
	cmd.Flags().StringVar(&routeFormat, "format", "", "route format: json, geojson or polyline (default: detect)")
	cmd.Flags().StringVar(&at, "at", "", "departure time, RFC 3339")
	cmd.Flags().DurationVar(&step, "step", 0, "time between consecutive segments (0 keeps one instant)")
	cmd.Flags().BoolVar(&withSegments, "segments", false, "include per-segment results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.MarkFlagRequired("route")
	cmd.MarkFlagRequired("at")
	return cmd
}

func newTrajectoryCmd(a *app) *cobra.Command {
	var (
		lat, lon float64
		at       string
		steps    int
		every    time.Duration
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Sample the sun's path above the horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseInstant(at)
			if err != nil {
				return err
			}
			location, err := domain.NewCoordinates(lat, lon)
			if err != nil {
				return err
			}

			points, err := services.SunTrajectory(cmd.Context(), location, start, steps, every, a.provider)
			if err != nil {
				return err
			}

			res := dto.NewTrajectoryResponse(location, points)
			if asJSON {
				return dto.WriteJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			if len(res.Points) == 0 {
				fmt.Fprintln(out, "The sun stays below the horizon.")
				return nil
			}
			for _, p := range res.Points {
				fmt.Fprintf(out, "%s  azimuth %6.2f°  altitude %5.2f°\n",
					p.At.Format(time.RFC3339), p.Azimuth, p.Altitude)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "observer latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "observer longitude")
	cmd.Flags().StringVar(&at, "at", "", "first sample, RFC 3339")
	cmd.Flags().IntVar(&steps, "steps", services.DefaultTrajectorySteps, "number of samples")
	cmd.Flags().DurationVar(&every, "every", services.DefaultTrajectoryStep, "time between samples")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lon")
	cmd.MarkFlagRequired("at")
	return cmd
}

func newDaylightCmd() *cobra.Command {
	var (
		lat, lon float64
		date     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "daylight",
		Short: "Print sunrise and sunset for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(time.DateOnly, date)
			if err != nil {
				return fmt.Errorf("%w: date %q: want YYYY-MM-DD", domain.ErrInvalidInput, date)
			}
			location, err := domain.NewCoordinates(lat, lon)
			if err != nil {
				return err
			}

			window, err := services.Daylight(location, day)
			if err != nil {
				return err
			}

			res := dto.DaylightResponse{
				Lat:       location.Lat,
				Lon:       location.Lon,
				Date:      day.Format(time.DateOnly),
				Sunrise:   dto.TimePtr(window.Sunrise),
				Sunset:    dto.TimePtr(window.Sunset),
				SolarNoon: dto.TimePtr(window.SolarNoon()),
				Polar:     window.Polar(),
			}
			if asJSON {
				return dto.WriteJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			if res.Polar {
				fmt.Fprintln(out, "No sunrise or sunset on this day.")
				return nil
			}
			fmt.Fprintf(out, "Sunrise: %s\nSunset:  %s\n",
				res.Sunrise.Format(time.RFC3339), res.Sunset.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&date, "date", "", "day, YYYY-MM-DD (UTC)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lon")
	cmd.MarkFlagRequired("date")
	return cmd
}

func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q: want RFC 3339 with an offset", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func printEvaluation(w io.Writer, res dto.EvaluateResponse) {
	s := res.Summary
	fmt.Fprintf(w, "Segments: %d (skipped %d), %.1f km\n",
		s.TotalSegments, res.Skipped, res.TotalDistanceMeters/1000)
	fmt.Fprintf(w, "Left:  %d (%.1f%%)\n", s.LeftCount, s.LeftPercentage)
	fmt.Fprintf(w, "Right: %d (%.1f%%)\n", s.RightCount, s.RightPercentage)
	fmt.Fprintf(w, "Sun mostly on the %s; sit on the %s for shade.\n", s.PreferredSide, s.ShadedSide)

	for _, seg := range res.Segments {
		fmt.Fprintf(w, "  #%d %s bearing %6.2f° (%s) sun %6.2f° %s\n",
			seg.Index, seg.At.Format(time.RFC3339), seg.Bearing,
			services.CompassPoint(seg.Bearing), seg.Azimuth, seg.Side)
	}
}
