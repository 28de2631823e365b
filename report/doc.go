// Package report turns an admixture.Result into labeled percentages: the
// textual "Results / Genetic Distance" block, table rows for terminals and a
// JSON-friendly component list.
package report
