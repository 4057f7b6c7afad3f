// Package model contains the shared interfaces and data structures.
//
// # Criteria for adding a type to this package
//
// This package should contain two types:
//
// 1. important interfaces that are shared by several packages
// within the codebase, with the objective of separating unrelated
// pieces of code and making unit testing easier;
//
// 2. important pieces of data that are shared across different
// packages (e.g., the API credentials).
//
// In general, this package should not contain logic, unless
// this logic is strictly related to data structures.
//
// # Content of this package
//
// - credentials.go: the API key, shared secret and auth token;
//
// - http.go: the HTTP client abstraction and common headers;
//
// - keyvaluestore.go: generic definition of a key-value store;
//
// - logger.go: generic definition of an apex/log compatible logger.
package model
