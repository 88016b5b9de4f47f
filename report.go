// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certdeploy

import "time"

// Action is the outcome of a reconciliation run.
type Action string

const (
	// ActionUpToDate means the remote already held the desired material.
	ActionUpToDate Action = "up_to_date"
	// ActionUploaded means new material was uploaded and is serving.
	ActionUploaded Action = "uploaded"
	// ActionPartiallyFailed means new material is live but activation or cleanup left residue.
	ActionPartiallyFailed Action = "partially_failed"
	// ActionFailed means nothing was deployed; old material keeps serving.
	ActionFailed Action = "failed"
)

// Op is a single remote effect recorded in a report.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
	OpSkipped Op = "skipped"
	OpFailed  Op = "failed"
)

// Kind names a remote resource collection.
type Kind string

const (
	KindPrivateKey  Kind = "private_key"
	KindCertificate Kind = "certificate"
	KindActivation  Kind = "activation"
)

// Stage names a step of the reconciliation pipeline.
type Stage string

const (
	StageValidate Stage = "validate"
	StageLookup   Stage = "lookup"
	StageUpload   Stage = "upload"
	StageActivate Stage = "activate"
	StageCleanup  Stage = "cleanup"
	StagePersist  Stage = "persist"
)

// Step is one entry of the structured action log.
type Step struct {
	Stage  Stage  `json:"stage"`
	Op     Op     `json:"op"`
	Kind   Kind   `json:"kind"`
	ID     string `json:"id,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ReportError is a failure recorded without aborting the run.
type ReportError struct {
	Stage      Stage  `json:"stage"`
	ResourceID string `json:"resource_id,omitempty"`
	Message    string `json:"message"`
}

// ResourceIDs identifies a key and certificate pair.
type ResourceIDs struct {
	PrivateKeyID  string `json:"private_key_id,omitempty"`
	CertificateID string `json:"certificate_id,omitempty"`
}

// Report describes everything a reconciliation run did.
type Report struct {
	ID                string        `json:"id"`
	CommonName        string        `json:"common_name"`
	Fingerprint       string        `json:"fingerprint"`
	Action            Action        `json:"action"`
	Created           ResourceIDs   `json:"created"`
	Deleted           ResourceIDs   `json:"deleted"`
	Migrated          []string      `json:"migrated,omitempty"`
	FailedActivations []string      `json:"failed_activations,omitempty"`
	Steps             []Step        `json:"steps,omitempty"`
	Errors            []ReportError `json:"errors,omitempty"`
	StartedAt         time.Time     `json:"started_at"`
	FinishedAt        time.Time     `json:"finished_at"`
}

// Deployed reports whether the desired material is serving.
func (r Report) Deployed() bool {
	return r.Action == ActionUpToDate || r.Action == ActionUploaded || r.Action == ActionPartiallyFailed
}

// HasWarnings reports a deployed run that left something for an operator.
func (r Report) HasWarnings() bool {
	return r.Deployed() && len(r.Errors) > 0
}

// Mutations counts the remote writes the run performed.
func (r Report) Mutations() int {
	n := 0
	for _, s := range r.Steps {
		switch s.Op {
		case OpCreated, OpUpdated, OpDeleted:
			n++
		}
	}
	return n
}

func (r *Report) record(stage Stage, op Op, kind Kind, id, detail string) {
	r.Steps = append(r.Steps, Step{Stage: stage, Op: op, Kind: kind, ID: id, Detail: detail})
}

func (r *Report) fail(stage Stage, id string, err error) {
	r.Errors = append(r.Errors, ReportError{Stage: stage, ResourceID: id, Message: err.Error()})
}
