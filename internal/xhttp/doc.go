// Package xhttp provides a retrying HTTP client for fetching archive
// files from the exchange's public data repository.
package xhttp
