// Package service contains the application use cases. It orchestrates the
// domain entities and the store interfaces to fulfill the REST operations,
// applying transactional boundaries where an operation spans several reads
// and writes.
//
// Key components:
//
//   - UserService: registration, login (credential issuance), user listing and
//     role changes
//   - ProjectService: project listing, creation and updates
//   - TaskService: task queries and mutations; every committed mutation is
//     followed by a task notification through events.Publisher
//
// Notifications are strictly best-effort. A mutation's result never depends
// on whether its notification reached anyone.
//
// The service layer depends on domain entities and store interfaces, never
// on specific infrastructure implementations.
package service
