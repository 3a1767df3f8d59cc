package shop

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var validNext = map[Status]map[Status]bool{
	StatusConfirmed: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// CanCancel: cancel boleh dari state mana pun selama belum shipped/delivered
// dan belum cancelled.
func CanCancel(from Status) bool {
	switch from {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return false
	}
	return true
}
