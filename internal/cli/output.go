package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AccountView:
		o.printAccount(v)
	case OrderView:
		o.printOrder(v)
	case []OrderView:
		o.printOrderList(v)
	case TaskView:
		o.printTask(v)
	case []TaskView:
		o.printTaskList(v)
	case StaffView:
		o.printStaff(v)
	case []StaffView:
		o.printStaffList(v)
	case OverviewView:
		o.printOverview(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AccountView is the display shape for an account
type AccountView struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// OrderView is the display shape for an order
type OrderView struct {
	ID         string          `json:"id"`
	Customer   string          `json:"customer"`
	Email      string          `json:"email,omitempty"`
	Items      []OrderItemView `json:"items"`
	Status     string          `json:"status"`
	AssignedTo string          `json:"assigned_to,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

// OrderItemView is a single order line
type OrderItemView struct {
	Service  string `json:"service"`
	Quantity int    `json:"quantity"`
}

// TaskView is the display shape for a dispatch task
type TaskView struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	Kind       string `json:"kind"`
	Address    string `json:"address"`
	Window     string `json:"window"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// OverviewView summarizes the shop at a glance: order counts by status,
// open dispatch tasks by kind, and staff availability
type OverviewView struct {
	Orders      map[string]int `json:"orders"`
	OpenTasks   map[string]int `json:"open_tasks"`
	ActiveStaff int            `json:"active_staff"`
	TotalStaff  int            `json:"total_staff"`
}

// StaffView is the display shape for a staff member
type StaffView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

const timeLayout = "2006-01-02 15:04"

func accountView(a *model.Account) AccountView {
	return AccountView{
		ID:     string(a.ID),
		Email:  a.Email,
		Name:   a.Name,
		Avatar: a.Avatar,
	}
}

func orderView(o *model.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{
			Service:  string(item.Service),
			Quantity: item.Quantity,
		})
	}
	return OrderView{
		ID:         string(o.ID),
		Customer:   o.CustomerName,
		Email:      o.CustomerEmail,
		Items:      items,
		Status:     string(o.Status),
		AssignedTo: string(o.AssignedTo),
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt.Format(timeLayout),
	}
}

func orderListView(orders []*model.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	return views
}

func taskView(t *model.Task) TaskView {
	return TaskView{
		ID:         string(t.ID),
		OrderID:    string(t.OrderID),
		Kind:       string(t.Kind),
		Address:    t.Address,
		Window:     t.Window.Format(timeLayout),
		Status:     string(t.Status),
		AssignedTo: string(t.AssignedTo),
	}
}

func taskListView(tasks []*model.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t))
	}
	return views
}

func staffView(m *model.StaffMember) StaffView {
	return StaffView{
		ID:     string(m.ID),
		Name:   m.Name,
		Role:   string(m.Role),
		Active: m.Active,
	}
}

func staffListView(members []*model.StaffMember) []StaffView {
	views := make([]StaffView, 0, len(members))
	for _, m := range members {
		views = append(views, staffView(m))
	}
	return views
}

func (o *Output) printAccount(a AccountView) {
	fmt.Printf("Account: %s <%s>\n", a.Name, a.Email)
	fmt.Printf("ID: %s\n", a.ID)
	if a.Avatar != "" {
		fmt.Printf("Avatar: %s\n", a.Avatar)
	}
}

func (o *Output) printOrder(v OrderView) {
	fmt.Printf("Order: %s\n", v.ID)
	fmt.Printf("Customer: %s", v.Customer)
	if v.Email != "" {
		fmt.Printf(" <%s>", v.Email)
	}
	fmt.Println()
	fmt.Printf("Status: %s\n", v.Status)
	if v.AssignedTo != "" {
		fmt.Printf("Assigned to: %s\n", v.AssignedTo)
	}
	fmt.Printf("Created: %s\n", v.CreatedAt)
	fmt.Printf("Items (%d):\n", len(v.Items))
	for _, item := range v.Items {
		fmt.Printf("  - %s x%d\n", item.Service, item.Quantity)
	}
	if v.Notes != "" {
		fmt.Printf("Notes: %s\n", v.Notes)
	}
}

func (o *Output) printOrderList(orders []OrderView) {
	if len(orders) == 0 {
		fmt.Println("No orders")
		return
	}
	for _, v := range orders {
		assigned := ""
		if v.AssignedTo != "" {
			assigned = " [" + v.AssignedTo + "]"
		}
		fmt.Printf("%s  %-16s  %s (%d items)%s\n", v.ID, v.Status, v.Customer, len(v.Items), assigned)
	}
}

func (o *Output) printTask(v TaskView) {
	fmt.Printf("Task: %s\n", v.ID)
	fmt.Printf("Order: %s\n", v.OrderID)
	fmt.Printf("Kind: %s\n", v.Kind)
	fmt.Printf("Status: %s\n", v.Status)
	fmt.Printf("Address: %s\n", v.Address)
	fmt.Printf("Window: %s\n", v.Window)
	if v.AssignedTo != "" {
		fmt.Printf("Driver: %s\n", v.AssignedTo)
	}
}

func (o *Output) printTaskList(tasks []TaskView) {
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return
	}
	for _, v := range tasks {
		driver := ""
		if v.AssignedTo != "" {
			driver = " [" + v.AssignedTo + "]"
		}
		fmt.Printf("%s  %-8s  %-9s  %s  %s%s\n", v.Window, v.Kind, v.Status, v.OrderID, v.Address, driver)
	}
}

func (o *Output) printStaff(v StaffView) {
	activeStr := "yes"
	if !v.Active {
		activeStr = "no"
	}
	fmt.Printf("Staff: %s (%s)\n", v.Name, v.ID)
	fmt.Printf("Role: %s\n", v.Role)
	fmt.Printf("Active: %s\n", activeStr)
}

func (o *Output) printOverview(v OverviewView) {
	orderTotal := 0
	for _, n := range v.Orders {
		orderTotal += n
	}
	fmt.Printf("Orders (%d):\n", orderTotal)
	for _, status := range []model.OrderStatus{
		model.OrderStatusReceived,
		model.OrderStatusProcessing,
		model.OrderStatusReady,
		model.OrderStatusOutForDelivery,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	} {
		if n := v.Orders[string(status)]; n > 0 {
			fmt.Printf("  %s: %d\n", status, n)
		}
	}

	taskTotal := 0
	for _, n := range v.OpenTasks {
		taskTotal += n
	}
	fmt.Printf("Open tasks (%d):\n", taskTotal)
	for _, kind := range []model.TaskKind{model.TaskKindPickup, model.TaskKindDelivery} {
		if n := v.OpenTasks[string(kind)]; n > 0 {
			fmt.Printf("  %s: %d\n", kind, n)
		}
	}

	fmt.Printf("Staff: %d active / %d\n", v.ActiveStaff, v.TotalStaff)
}

func (o *Output) printStaffList(members []StaffView) {
	if len(members) == 0 {
		fmt.Println("No staff")
		return
	}
	for _, v := range members {
		status := ""
		if !v.Active {
			status = " (inactive)"
		}
		fmt.Printf("%s  %-9s  %s%s\n", v.ID, v.Role, v.Name, status)
	}
}
