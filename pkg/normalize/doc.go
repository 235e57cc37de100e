// Package normalize converts between the Notion API's tagged property
// values and the flat values the rest of the system works with.
//
// The read direction (Value, Page) erases the tag: every property becomes
// a string, a float64, a bool, or a []string. The write direction
// (Property) consults the database schema to pick the tag for a field
// name and rebuilds the tagged payload. Both directions are pure and
// surface conversion failures instead of substituting defaults.
package normalize
