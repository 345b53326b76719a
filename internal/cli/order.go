package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Order intake and workflow commands",
	}

	cmd.AddCommand(newOrderCreateCmd())
	cmd.AddCommand(newOrderListCmd())
	cmd.AddCommand(newOrderShowCmd())
	cmd.AddCommand(newOrderAdvanceCmd())
	cmd.AddCommand(newOrderCancelCmd())
	cmd.AddCommand(newOrderAssignCmd())

	return cmd
}

func newOrderCreateCmd() *cobra.Command {
	var customer, email, notes string
	var items []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Take in a new order",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseItems(items)
			if err != nil {
				return err
			}

			order, err := app.OrderService.Create(cmd.Context(), customer, email, parsed, notes)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(orderView(order))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Customer email")
	cmd.Flags().StringSliceVar(&items, "item", nil, "Order line as service:quantity, e.g. wash_fold:3 (repeatable, required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func newOrderListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.OrderService.List(cmd.Context(), model.OrderStatus(status))
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(orderListView(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (received, processing, ready, out_for_delivery, delivered, cancelled)")

	return cmd
}

func newOrderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show a single order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := app.OrderService.Get(cmd.Context(), model.OrderID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(orderView(order))
			return nil
		},
	}
}

func newOrderAdvanceCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "advance <order-id>",
		Short: "Move an order forward in the workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.OrderID(args[0])

			var order *model.Order
			var err error
			if to != "" {
				order, err = app.OrderService.MoveTo(cmd.Context(), id, model.OrderStatus(to))
			} else {
				order, err = app.OrderService.Advance(cmd.Context(), id)
			}
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(orderView(order))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target status (default: next step in the workflow)")

	return cmd
}

func newOrderCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an open order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := app.OrderService.Cancel(cmd.Context(), model.OrderID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(orderView(order))
			return nil
		},
	}
}

func newOrderAssignCmd() *cobra.Command {
	var staffID string

	cmd := &cobra.Command{
		Use:   "assign <order-id>",
		Short: "Assign a staff member to an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := app.OrderService.Assign(cmd.Context(), model.OrderID(args[0]), model.StaffID(staffID))
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(orderView(order))
			return nil
		},
	}

	cmd.Flags().StringVar(&staffID, "staff", "", "Staff member ID (required)")
	_ = cmd.MarkFlagRequired("staff")

	return cmd
}

func newQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the processing queue, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue, err := app.OrderService.ProcessingQueue(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(orderListView(queue))
			return nil
		},
	}
}

// parseItems turns service:quantity strings into order items
func parseItems(raw []string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	for _, entry := range raw {
		service, qtyStr, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("invalid item %q: expected service:quantity", entry)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in item %q", entry)
		}
		switch model.ServiceType(service) {
		case model.ServiceWashFold, model.ServiceDryClean, model.ServiceIroning:
		default:
			return nil, fmt.Errorf("unknown service %q: expected wash_fold, dry_clean or ironing", service)
		}
		items = append(items, model.OrderItem{
			Service:  model.ServiceType(service),
			Quantity: qty,
		})
	}
	return items, nil
}
