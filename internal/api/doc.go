// Package api holds the REST handlers of the task management server. It
// translates HTTP requests into service calls and service errors into
// status codes; authorization by role is applied by middleware at the
// router.
package api
