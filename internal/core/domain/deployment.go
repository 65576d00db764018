package domain

import "time"

// DeploymentStatus is the state of an asset assignment.
type DeploymentStatus string

const (
	DeploymentActive   DeploymentStatus = "ACTIVE"
	DeploymentReturned DeploymentStatus = "RETURNED"
)

// Deployment is the assignment of an asset to an employee/location.
// Open deployments (ReturnedDate nil) are closed automatically when the
// asset is retired.
type Deployment struct {
	DeploymentID   string           `json:"deploymentID"` // Primary Key (UUID)
	AssetID        string           `json:"assetID"`
	BusinessUnitID string           `json:"businessUnitID"`
	AssignedTo     string           `json:"assignedTo"` // Employee reference
	Location       string           `json:"location"`
	DeployedDate   time.Time        `json:"deployedDate"`
	ReturnedDate   *time.Time       `json:"returnedDate"`
	ReturnNotes    string           `json:"returnNotes"`
	Status         DeploymentStatus `json:"status"`
	AuditFields
}
