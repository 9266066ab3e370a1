// Package config provides configuration loading, merging, and validation
// for the sync client and the reference backend.
//
// Configuration is assembled from multiple sources; for every field the
// first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetClientConfig] and [GetServerConfig], each
// returning a validated view of [StructuredConfig].
package config
