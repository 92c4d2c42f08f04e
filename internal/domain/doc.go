// Package domain contains the core business entities, value objects, and
// domain logic of the application: the task forest and its tree assembly,
// attendance records with their month filter, and the user directory
// (users, roles, employees, departments). It is independent of any specific
// infrastructure or delivery mechanism.
package domain
