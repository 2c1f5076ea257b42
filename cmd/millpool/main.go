// MillPool selects the daily milling pool for a furniture-facade workshop.
//
// Build:
//   go build -o millpool ./cmd/millpool
//
// Usage:
//   millpool pool                 show the next pool
//   millpool accept               mark the pool as milled
//   millpool import orders.xlsx   add orders to the backlog
//   millpool serve                run the station API
//   millpool ui                   open the station window

package main

import "github.com/piwi3910/MillPool/internal/cli"

func main() {
	cli.Execute()
}
