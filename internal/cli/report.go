package cli

import (
	"fmt"
	"io"

	"github.com/Yashhpatill/trading-bot/internal/core/gateway"
)

// absentField is shown for any response field the exchange omitted.
const absentField = "N/A"

// Report prints the normalized outcome of one order submission. No
// interpretation — fields come out exactly as the exchange returned them.
func Report(w io.Writer, out gateway.Outcome) {
	fmt.Fprintln(w, "\n--- Order Result ---")
	switch {
	case out.Rejected != nil:
		fmt.Fprintf(w, "Error placing order: %s\n", out.Rejected.Message)
	case out.Placed != nil:
		p := out.Placed
		fmt.Fprintln(w, "Order successfully placed!")
		fmt.Fprintf(w, "   Symbol: %s\n", orAbsent(p.Symbol))
		fmt.Fprintf(w, "   OrderID: %s\n", orAbsent(p.OrderID))
		fmt.Fprintf(w, "   Type: %s\n", orAbsent(p.Kind))
		fmt.Fprintf(w, "   Side: %s\n", orAbsent(p.Side))
		fmt.Fprintf(w, "   Status: %s\n", orAbsent(p.Status))
		fmt.Fprintf(w, "   Avg Price: %s\n", orAbsent(p.AvgPrice))
	}
	fmt.Fprintln(w, "----------------------")
}

func orAbsent(s string) string {
	if s == "" {
		return absentField
	}
	return s
}
