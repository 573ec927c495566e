// Package config defines the configuration model used by the populator.
//
// Two separate inputs are modelled here:
//
//   - [Connection] holds where and how to reach Jira (base URL, credentials,
//     and whether existing projects are deleted and recreated). It is resolved
//     with viper from flags, OB_SETUP_* environment variables, an optional
//     Java-style properties file, and built-in defaults.
//   - [Dataset] holds what to create: users, projects and the value pools the
//     issue generator cycles through. It is read from YAML; the built-in
//     default is returned by [DefaultDataset].
//
// Both are validated before any remote call is made. Validation failures are
// reported as *[ConfigurationError].
package config
