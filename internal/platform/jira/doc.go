// Package jira provides the remote gateway used to read and write Jira state
// through the REST API v2.
//
// # Gateway
//
// [Gateway] is the only contract the provisioning core depends on:
//
//   - Read: GET a resource; returns the status code and body without failing
//     on 4xx/5xx, so callers can tell "not found" from other answers.
//   - Create: POST a document; any non-2xx status is a *[RemoteError].
//   - Replace: PUT a document; any non-2xx status is a *[RemoteError].
//   - Delete: DELETE a resource; any non-2xx status is a *[RemoteError].
//
// Resources are addressed relative to <base>/rest/api/2/ with [R], for
// example R("project", "FEAT") or R("user").With("username", "kabir").
//
// # Transport
//
// [RESTClient] sends every call with a Basic-Authentication header built from
// the credentials passed to [NewRESTClient]. The underlying HTTP client is
// created on the first call and its idle connections are released after each
// call, so no connection is held open between provisioning steps.
//
// Payloads and responses are [Document] values: decoded JSON objects with
// numbers kept as json.Number so ids survive unchanged.
package jira
