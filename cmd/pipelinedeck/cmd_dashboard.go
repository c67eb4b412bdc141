package main

import (
	"github.com/spf13/cobra"

	"github.com/waabox/pipelinedeck/internal/sim"
	"github.com/waabox/pipelinedeck/internal/tui"
)

func runDashboard(cmd *cobra.Command, _ []string) error {
	project, err := projectLabel()
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sched := tui.NewScheduler()
	engine := sim.NewEngine(sched, s.counters, s.cfg.EngineOptions(), s.logger)
	engine.Start(cmd.Context())
	return tui.Run(engine, sched, project)
}
