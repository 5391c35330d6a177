// Package harness runs query scenarios against a card database.
//
// A scenario is a YAML file listing search queries and what each should
// return. The harness evaluates every case against one immutable
// carddb.Database, concurrently, and collects failures instead of stopping
// at the first one.
//
// # Scenario format
//
//	name: rtr_block
//	description: Return to Ravnica block lookups
//	sets: [rtr, gtc, dgm]        # optional: run against this subset
//	cases:
//	  - query: "b:rtr"
//	    expect:
//	      same_as: "e:rtr or e:gtc or e:dgm"
//	      count: 12
//	  - query: "zz:foo"
//	    expect:
//	      error: unknown_field
//
// Expectations on a case:
//   - cards: exactly these card names, any order
//   - ordered: exactly these card names, in this order
//   - include / exclude: names that must or must not be present
//   - count: number of matched cards
//   - scope: "cards" or "printings"
//   - error: the query must fail to parse with this error code
//   - same_as: another query that must return the same cards in the same order
//
// # Golden files
//
// RunWithGolden snapshots every case's outcome as JSON under
// testdata/golden/{scenario}.golden. To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
