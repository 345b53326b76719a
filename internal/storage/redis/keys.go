package redis

import (
	"fmt"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

// Key prefix for all laundrydesk data
const keyPrefix = "laundrydesk"

// credentialsKey returns the Redis key for the full credential mapping blob
func credentialsKey() string {
	return fmt.Sprintf("%s:credentials", keyPrefix)
}

// sessionKey returns the Redis key for the current session snapshot blob
func sessionKey() string {
	return fmt.Sprintf("%s:session", keyPrefix)
}

// orderKey returns the Redis key for an Order
func orderKey(id model.OrderID) string {
	return fmt.Sprintf("%s:order:%s", keyPrefix, id)
}

// ordersIndexKey returns the Redis key for the SET of all order IDs
func ordersIndexKey() string {
	return fmt.Sprintf("%s:idx:orders", keyPrefix)
}

// taskKey returns the Redis key for a dispatch Task
func taskKey(id model.TaskID) string {
	return fmt.Sprintf("%s:task:%s", keyPrefix, id)
}

// tasksIndexKey returns the Redis key for the SET of all task IDs
func tasksIndexKey() string {
	return fmt.Sprintf("%s:idx:tasks", keyPrefix)
}

// staffKey returns the Redis key for a StaffMember
func staffKey(id model.StaffID) string {
	return fmt.Sprintf("%s:staff:%s", keyPrefix, id)
}

// staffIndexKey returns the Redis key for the SET of all staff IDs
func staffIndexKey() string {
	return fmt.Sprintf("%s:idx:staff", keyPrefix)
}
