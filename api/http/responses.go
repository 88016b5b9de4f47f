// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/internal/api"
)

var (
	_ api.Response = (*deployRes)(nil)
	_ api.Response = (*deployBatchRes)(nil)
	_ api.Response = (*viewReportRes)(nil)
	_ api.Response = (*listReportsRes)(nil)
)

type deployRes struct {
	certdeploy.Report
	Warnings bool   `json:"warnings"`
	Error    string `json:"error,omitempty"`
}

func newDeployRes(rep certdeploy.Report, err error) deployRes {
	res := deployRes{Report: rep, Warnings: rep.HasWarnings()}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func (res deployRes) Code() int {
	switch {
	case res.Action == certdeploy.ActionFailed:
		return http.StatusUnprocessableEntity
	case res.Action == certdeploy.ActionUploaded:
		return http.StatusCreated
	default:
		return http.StatusOK
	}
}

func (res deployRes) Headers() map[string]string {
	if res.ID == "" {
		return map[string]string{}
	}
	return map[string]string{
		"Location": "/deployments/" + res.ID,
	}
}

func (res deployRes) Empty() bool {
	return false
}

type deployBatchRes struct {
	Reports []deployRes `json:"reports"`
}

func (res deployBatchRes) Code() int {
	return http.StatusOK
}

func (res deployBatchRes) Headers() map[string]string {
	return map[string]string{}
}

func (res deployBatchRes) Empty() bool {
	return false
}

type viewReportRes struct {
	certdeploy.Report
}

func (res viewReportRes) Code() int {
	return http.StatusOK
}

func (res viewReportRes) Headers() map[string]string {
	return map[string]string{}
}

func (res viewReportRes) Empty() bool {
	return false
}

type listReportsRes struct {
	certdeploy.ReportPage
}

func (res listReportsRes) Code() int {
	return http.StatusOK
}

func (res listReportsRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listReportsRes) Empty() bool {
	return false
}
