// Package folio provides the functions and types to track a personal
// investment portfolio against a target allocation. It is designed to be
// local-first and auditable, keeping the user's data in a single
// human-readable file under their full control.
//
// The core functionalities include:
//   - Categories and Mapping: Declaring investment categories and mapping
//     ticker symbols to them, so positions aggregate into a meaningful
//     breakdown of the portfolio.
//   - Allocation Engine: A stateless engine that values positions at known
//     prices and computes the portfolio's allocation per category, its
//     deviation from a model portfolio, and the whole-share trades that
//     would bring it back on target.
//   - Investment Planning: Buy-only plans that spread fresh cash across
//     underweight categories without selling anything, and what-if
//     simulations of category-level trades.
//   - Market Data: Fetching latest quotes for known symbols, with a daily
//     on-disk cache to stay friendly to the quote provider.
//   - Data Persistence: Encoding and decoding the whole store to and from
//     a stable, version-controllable JSONL file.
//
// This package serves as the foundational logic for the `folio`
// command-line tool.
package folio
