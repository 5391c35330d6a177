// Package query parses and evaluates the card search language.
//
// QUERY LANGUAGE:
//
// A query is a boolean combination of terms. Juxtaposition and "and" mean
// AND, "or" means OR and binds loosest, "-" negates the following term and
// parentheses group:
//
//	t:goblin (c:r or c:b) -e:rtr
//
// Terms are:
//   - bare words and "quoted phrases", looked up in names and rules text
//   - !Exact Name, matching one card name exactly
//   - field op value, where op is one of : = != ! < <= > >=
//
// Unquoted values of list fields expand commas into alternatives, so
// e:rtr,gtc means (e:rtr or e:gtc).
//
// FIELDS:
//
// Each field is a registry entry naming its operators, its value parser,
// whether it decides per card or per printing, and its matcher. Values are
// parsed and references resolved in Parse, so Evaluate never fails on user
// input. See Fields for the list of names.
//
// Two fields take a subquery instead of a value:
//   - alt:Q matches every printing of a card with some printing matching Q
//   - part:Q matches a card when some part of its multipart family matches
//     Q; several part: terms in one conjunction must match distinct parts
//
// EVALUATION:
//
// Evaluate computes one match flag per printing, in catalog order. AND and
// OR combine flags, NOT complements them, card-level fields set or clear a
// card's printings together. A query with any printing-level test yields a
// printing-scoped Result; otherwise the Result is card-scoped.
//
// Evaluation is read-only and safe to run concurrently against one catalog.
package query
