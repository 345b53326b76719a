package cli

import (
	"github.com/spf13/cobra"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

func newOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Summarize orders, open dispatch tasks and staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.OrderService.List(cmd.Context(), "")
			if err != nil {
				return err
			}
			tasks, err := app.DispatchService.List(cmd.Context(), "", true)
			if err != nil {
				return err
			}
			members, err := app.StaffService.List(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(overviewView(orders, tasks, members))
			return nil
		},
	}
}

func overviewView(orders []*model.Order, tasks []*model.Task, members []*model.StaffMember) OverviewView {
	v := OverviewView{
		Orders:    make(map[string]int),
		OpenTasks: make(map[string]int),
	}
	for _, ord := range orders {
		v.Orders[string(ord.Status)]++
	}
	for _, task := range tasks {
		v.OpenTasks[string(task.Kind)]++
	}
	for _, m := range members {
		v.TotalStaff++
		if m.Active {
			v.ActiveStaff++
		}
	}
	return v
}
