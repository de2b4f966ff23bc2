// Package fifo tracks a position in a single security bought in several lots
// at different prices, and computes the capital gains realized when shares are
// sold, using the First-In-First-Out method.
//
// The core functionalities include:
//   - Ledger: the lots currently held, in purchase order. A sale consumes the
//     oldest lots first, and a partially sold lot stays first in line.
//   - Tracker: buys and sells shares, and accumulates the realized gain.
//     Every operation either fully succeeds or fails without any effect.
//
// Amounts are exact decimals (see Money), they carry no currency: displaying
// them is left to the renderer package.
//
// This package serves as the foundational logic for the `fifo` command-line
// tool.
package fifo
