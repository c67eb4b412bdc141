package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/waabox/pipelinedeck/internal/clock"
	"github.com/waabox/pipelinedeck/internal/sim"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the dashboard headless on a virtual clock",
		Long: `Run the simulation without a terminal UI. Time is virtual, so a long
window completes instantly. Runs are triggered at evenly spaced offsets;
a trigger that lands while a run is in progress is ignored, exactly as in
the dashboard. Counter changes are persisted to the configured store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			window, _ := cmd.Flags().GetDuration("for")
			runs, _ := cmd.Flags().GetInt("runs")
			if window <= 0 {
				return fmt.Errorf("--for must be positive, got %s", window)
			}
			if runs < 0 {
				return fmt.Errorf("--runs must not be negative, got %d", runs)
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := s.cfg.EngineOptions()
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				opts.Activity.Rand = rand.New(rand.NewPCG(seed, seed)).Float64
			}

			start := time.Now().Truncate(time.Second)
			clk := clock.NewManual(start)
			engine := sim.NewEngine(clk, s.counters, opts, s.logger)

			out := cmd.OutOrStdout()
			engine.Subscribe(func(ev sim.Event) {
				fmt.Fprintln(out, formatEvent(start, ev))
			})

			result := scheduleRuns(clk, engine, window, runs)
			engine.Start(cmd.Context())
			clk.Advance(window)
			engine.Stop()
			for clk.Pending() > 0 {
				clk.Advance(opts.Run.RunDuration)
			}

			final := engine.Snapshot().Counters
			fmt.Fprintf(out, "\nSimulated %s: %d run(s) started, %d trigger(s) ignored\n",
				window, result.started, result.ignored)
			fmt.Fprintf(out, "Builds: %d  Scans: %d  Deployments: %d\n", final.Builds, final.Scans, final.Deployments)
			return nil
		},
	}
	cmd.Flags().Duration("for", 5*time.Minute, "Virtual time to simulate")
	cmd.Flags().Int("runs", 1, "Pipeline runs to trigger, evenly spaced across the window")
	cmd.Flags().Uint64("seed", 0, "Seed for background activity (random when unset)")
	return cmd
}

type simulateResult struct {
	started int
	ignored int
}

// scheduleRuns schedules the run triggers on clk. The counts are filled in as the
// triggers fire.
func scheduleRuns(clk *clock.Manual, engine *sim.Engine, window time.Duration, runs int) *simulateResult {
	result := &simulateResult{}
	if runs == 0 {
		return result
	}
	gap := window / time.Duration(runs)
	for i := 0; i < runs; i++ {
		clk.AfterFunc(time.Duration(i)*gap, func() {
			if engine.Trigger() {
				result.started++
			} else {
				result.ignored++
			}
		})
	}
	return result
}

func formatEvent(start time.Time, ev sim.Event) string {
	offset := fmt.Sprintf("+%-9s", ev.At.Sub(start).Round(time.Millisecond))
	switch ev.Kind {
	case sim.EventCountersChanged:
		return fmt.Sprintf("%s %-17s %s -> %d", offset, ev.Kind, ev.Counter, ev.Counters.Get(ev.Counter))
	case sim.EventRunStarted:
		return fmt.Sprintf("%s %-17s run %s", offset, ev.Kind, ev.RunID)
	case sim.EventStepActivated, sim.EventStepPulseEnded:
		return fmt.Sprintf("%s %-17s [%d] %s", offset, ev.Kind, ev.StepIndex, ev.StepName)
	case sim.EventRunCompleted:
		return fmt.Sprintf("%s %-17s builds=%d scans=%d deployments=%d",
			offset, ev.Kind, ev.Counters.Builds, ev.Counters.Scans, ev.Counters.Deployments)
	case sim.EventNotification:
		return fmt.Sprintf("%s %-17s %s %q", offset, ev.Kind, ev.Notification.State, ev.Notification.Message)
	default:
		return fmt.Sprintf("%s %s", offset, ev.Kind)
	}
}
