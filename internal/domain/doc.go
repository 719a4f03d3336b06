// Package domain contains the core business entities of the task management
// system (users, roles, projects and tasks) together with their validation
// rules. It is independent of storage and delivery mechanisms.
package domain
