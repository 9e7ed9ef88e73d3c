package gateway

// PlacedOrder is the normalized view of an accepted order. Fields the
// exchange omitted from its response are empty strings; the reporter shows
// those as absent rather than the gateway inventing values.
type PlacedOrder struct {
	Symbol   string
	OrderID  string
	Kind     string
	Side     string
	Status   string
	AvgPrice string
}

// Rejection carries the refusal text: the exchange's own message for a
// structured rejection, the raw error text for transport failures.
type Rejection struct {
	Message string
}

// Outcome is the result of one order submission. Exactly one of Placed and
// Rejected is non-nil; callers branch on the tag, never on field truthiness,
// so a rejection can never be mistaken for a fill.
type Outcome struct {
	Placed   *PlacedOrder
	Rejected *Rejection
}

func Accepted(p PlacedOrder) Outcome { return Outcome{Placed: &p} }

func Reject(msg string) Outcome { return Outcome{Rejected: &Rejection{Message: msg}} }
