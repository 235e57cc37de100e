// Package types defines the schema, record, criterion, and rule-set types
// shared by the normalizer, the evaluator, the Notion client, and the
// rule-set store, along with the standard errors each of them returns.
package types
