package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LavishGent/wordbook/pkg/wordbook"
)

func newServicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "Show the dictionary provider chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			status := client.GetServiceStatus()
			if len(status) == 0 {
				fmt.Println("No providers configured")
				return nil
			}

			snapshots := make([]wordbook.ServiceSnapshot, 0, len(status))
			for _, snap := range status {
				snapshots = append(snapshots, snap)
			}
			sort.Slice(snapshots, func(i, j int) bool {
				if snapshots[i].Priority != snapshots[j].Priority {
					return snapshots[i].Priority < snapshots[j].Priority
				}
				return snapshots[i].Name < snapshots[j].Name
			})

			for _, snap := range snapshots {
				if snap.TotalCalls == 0 {
					fmt.Printf("%-10s %-12s %s\n",
						snap.Priority, snap.Name, statusLabel(snap.Status))
					continue
				}
				fmt.Printf("%-10s %-12s %s  %d calls, %.0f%% success\n",
					snap.Priority, snap.Name, statusLabel(snap.Status),
					snap.TotalCalls, snap.SuccessRate*100)
			}
			return nil
		},
	}
}

func statusLabel(status wordbook.ServiceStatus) string {
	switch status {
	case wordbook.StatusActive:
		return color.GreenString("active")
	case wordbook.StatusDegraded:
		return color.YellowString("degraded")
	case wordbook.StatusFailed:
		return color.RedString("failed")
	default:
		return status.String()
	}
}
