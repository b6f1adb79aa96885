// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EntryStore: Time-card entry persistence (SQLite)
//   - FormDriverFactory: Opens sessions against the remote time-card UI (browser)
//   - FormDriver: Navigate, click, clear, type and read remote controls
//   - ConfigStore: Application configuration (TOML)
//   - SecretStore: Remote account passwords (OS keychain)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SecretPrompter: Asks the operator for a missing secret. Without it a
//     missing secret fails the submission.
//   - ConfigWatcher: Signals configuration file changes. Without it the UI
//     only sees settings changed through the settings service.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
