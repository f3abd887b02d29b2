// Package security holds the filesystem and argument checks used when
// installing the SDK and handling service account keys.
package security
