package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

func newDispatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Pickup and delivery commands",
	}

	cmd.AddCommand(newDispatchPickupCmd())
	cmd.AddCommand(newDispatchDeliveryCmd())
	cmd.AddCommand(newDispatchListCmd())
	cmd.AddCommand(newDispatchAssignCmd())
	cmd.AddCommand(newDispatchCompleteCmd())

	return cmd
}

func newDispatchPickupCmd() *cobra.Command {
	var address, window string

	cmd := &cobra.Command{
		Use:   "pickup <order-id>",
		Short: "Schedule a pickup for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseWindow(window)
			if err != nil {
				return err
			}

			task, err := app.DispatchService.SchedulePickup(cmd.Context(), model.OrderID(args[0]), address, when)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(taskView(task))
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Pickup address (required)")
	cmd.Flags().StringVar(&window, "window", "", "Window start, RFC 3339 or 2006-01-02 15:04 (required)")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("window")

	return cmd
}

func newDispatchDeliveryCmd() *cobra.Command {
	var address, window string

	cmd := &cobra.Command{
		Use:   "delivery <order-id>",
		Short: "Schedule a delivery for a ready order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseWindow(window)
			if err != nil {
				return err
			}

			task, err := app.DispatchService.ScheduleDelivery(cmd.Context(), model.OrderID(args[0]), address, when)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(taskView(task))
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Delivery address (required)")
	cmd.Flags().StringVar(&window, "window", "", "Window start, RFC 3339 or 2006-01-02 15:04 (required)")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("window")

	return cmd
}

func newDispatchListCmd() *cobra.Command {
	var kind string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dispatch tasks by window",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.DispatchService.List(cmd.Context(), model.TaskKind(kind), !all)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(taskListView(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind: pickup, delivery")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")

	return cmd
}

func newDispatchAssignCmd() *cobra.Command {
	var staffID string

	cmd := &cobra.Command{
		Use:   "assign <task-id>",
		Short: "Put a driver on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.DispatchService.Assign(cmd.Context(), model.TaskID(args[0]), model.StaffID(staffID))
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(taskView(task))
			return nil
		},
	}

	cmd.Flags().StringVar(&staffID, "staff", "", "Driver staff ID (required)")
	_ = cmd.MarkFlagRequired("staff")

	return cmd
}

func newDispatchCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task done and update its order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.DispatchService.Complete(cmd.Context(), model.TaskID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(taskView(task))
			return nil
		},
	}
}

func parseWindow(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid window %q: use RFC 3339 or 2006-01-02 15:04", raw)
}
