package orders

type Status string

const (
	StatusAwaitingEmail   Status = "awaiting_email"
	StatusAwaitingPhone   Status = "awaiting_phone"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusCompleted       Status = "completed"
)

// The lifecycle is strictly forward-moving: no back-transitions, no
// branching. Cancellation removes the record instead of transitioning it.
var validNext = map[Status]Status{
	StatusAwaitingEmail:   StatusAwaitingPhone,
	StatusAwaitingPhone:   StatusAwaitingPayment,
	StatusAwaitingPayment: StatusCompleted,
}

func CanTransition(from, to Status) bool {
	return validNext[from] == to
}
