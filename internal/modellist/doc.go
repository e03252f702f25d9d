// Package modellist parses comma-separated lists of model identifiers as they
// appear in environment variables such as COUNCIL_MODELS. Parsing never fails:
// malformed separators simply yield fewer entries.
package modellist
