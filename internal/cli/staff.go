package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

func newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Staff roster commands",
	}

	cmd.AddCommand(newStaffAddCmd())
	cmd.AddCommand(newStaffListCmd())
	cmd.AddCommand(newStaffSetActiveCmd())

	return cmd
}

func newStaffAddCmd() *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a staff member to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch model.StaffRole(role) {
			case model.RoleAttendant, model.RoleDriver, model.RoleManager:
			default:
				return fmt.Errorf("unknown role %q: expected attendant, driver or manager", role)
			}

			member, err := app.StaffService.Add(cmd.Context(), name, model.StaffRole(role))
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(staffView(member))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Member name (required)")
	cmd.Flags().StringVar(&role, "role", string(model.RoleAttendant), "Role: attendant, driver, manager")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStaffListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the staff roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.StaffService.List(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(staffListView(members))
			return nil
		},
	}
}

func newStaffSetActiveCmd() *cobra.Command {
	var inactive bool

	cmd := &cobra.Command{
		Use:   "set-active <staff-id>",
		Short: "Mark a member active or inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := app.StaffService.SetActive(cmd.Context(), model.StaffID(args[0]), !inactive)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(staffView(member))
			return nil
		},
	}

	cmd.Flags().BoolVar(&inactive, "off", false, "Mark inactive instead of active")

	return cmd
}
