package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the persisted build, scan and deployment counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.counters.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("resetting counters: %w", err)
			}
			s.logger.Info("counters reset")
			fmt.Fprintf(cmd.OutOrStdout(), "Counters reset (%s)\n", s.cfg.StoreOrDefault())
			return nil
		},
	}
}
