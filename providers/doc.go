// Package providers groups the launcher auth provider clients. Each
// subpackage owns its wire types and its error code table.
package providers
