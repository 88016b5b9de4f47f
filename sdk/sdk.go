// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/absmach/certdeploy/pkg/errors"
	"moul.io/http2curl"
)

const (
	deploymentsEndpoint = "deployments"
	batchEndpoint       = "deployments/batch"
)

const (
	// CTJSON represents JSON content type.
	CTJSON ContentType = "application/json"

	// CTBinary represents binary content type.
	CTBinary ContentType = "application/octet-stream"
)

// ContentType represents all possible content types.
type ContentType string

// Deployment outcomes.
const (
	ActionUpToDate        = "up_to_date"
	ActionUploaded        = "uploaded"
	ActionPartiallyFailed = "partially_failed"
	ActionFailed          = "failed"
)

type PageMetadata struct {
	Total      uint64 `json:"total,omitempty"`
	Offset     uint64 `json:"offset,omitempty"`
	Limit      uint64 `json:"limit,omitempty"`
	CommonName string `json:"common_name,omitempty"`
}

// Certificate is the material to deploy. CommonName and
// PublicKeyFingerprint are derived by the service when left empty.
type Certificate struct {
	CommonName           string `json:"common_name,omitempty"`
	Certificate          string `json:"certificate"`
	Chain                string `json:"chain,omitempty"`
	PrivateKey           string `json:"private_key"`
	PublicKeyFingerprint string `json:"public_key_fingerprint,omitempty"`
}

type ResourceIDs struct {
	PrivateKeyID  string `json:"private_key_id,omitempty"`
	CertificateID string `json:"certificate_id,omitempty"`
}

type Step struct {
	Stage  string `json:"stage"`
	Op     string `json:"op"`
	Kind   string `json:"kind"`
	ID     string `json:"id,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type StepError struct {
	Stage      string `json:"stage"`
	ResourceID string `json:"resource_id,omitempty"`
	Message    string `json:"message"`
}

// Deployment is the report of a single reconciliation run.
type Deployment struct {
	ID                string      `json:"id"`
	CommonName        string      `json:"common_name"`
	Fingerprint       string      `json:"fingerprint"`
	Action            string      `json:"action"`
	Created           ResourceIDs `json:"created"`
	Deleted           ResourceIDs `json:"deleted"`
	Migrated          []string    `json:"migrated,omitempty"`
	FailedActivations []string    `json:"failed_activations,omitempty"`
	Steps             []Step      `json:"steps,omitempty"`
	Errors            []StepError `json:"errors,omitempty"`
	StartedAt         time.Time   `json:"started_at"`
	FinishedAt        time.Time   `json:"finished_at"`
	Warnings          bool        `json:"warnings,omitempty"`
	Error             string      `json:"error,omitempty"`
}

type DeploymentPage struct {
	Total       uint64       `json:"total"`
	Offset      uint64       `json:"offset"`
	Limit       uint64       `json:"limit"`
	Deployments []Deployment `json:"reports"`
}

type Config struct {
	CertDeployURL string

	MsgContentType  ContentType
	TLSVerification bool
	CurlFlag        bool
}

type mgSDK struct {
	certDeployURL string

	msgContentType ContentType
	client         *http.Client
	curlFlag       bool
}

type SDK interface {
	// Deploy reconciles a certificate onto the remote service. A run that
	// deployed nothing returns its report together with the error.
	//
	// example:
	//  dep, _ := sdk.Deploy(sdk.Certificate{Certificate: certPEM, PrivateKey: keyPEM})
	//  fmt.Println(dep.Action)
	Deploy(cert Certificate) (Deployment, errors.SDKError)

	// DeployBatch reconciles certificates with distinct common names.
	//
	// example:
	//  deps, _ := sdk.DeployBatch([]sdk.Certificate{cert1, cert2})
	//  fmt.Println(deps)
	DeployBatch(certs []Certificate) ([]Deployment, errors.SDKError)

	// ViewDeployment returns a recorded deployment report.
	//
	// example:
	//  dep, _ := sdk.ViewDeployment("id")
	//  fmt.Println(dep)
	ViewDeployment(id string) (Deployment, errors.SDKError)

	// ListDeployments lists recorded reports, newest first.
	//
	// example:
	//  page, _ := sdk.ListDeployments(sdk.PageMetadata{Limit: 10, CommonName: "example.com"})
	//  fmt.Println(page)
	ListDeployments(pm PageMetadata) (DeploymentPage, errors.SDKError)
}

func (sdk mgSDK) Deploy(cert Certificate) (Deployment, errors.SDKError) {
	d, err := json.Marshal(cert)
	if err != nil {
		return Deployment{}, errors.NewSDKError(err)
	}

	url := fmt.Sprintf("%s/%s", sdk.certDeployURL, deploymentsEndpoint)
	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, d, nil, http.StatusOK, http.StatusCreated, http.StatusUnprocessableEntity)
	if sdkerr != nil {
		return Deployment{}, sdkerr
	}

	var dep Deployment
	if err := json.Unmarshal(body, &dep); err != nil {
		return Deployment{}, errors.NewSDKError(err)
	}

	switch dep.Action {
	case ActionFailed:
		return dep, errors.NewSDKErrorWithStatus(errors.New(dep.Error), http.StatusUnprocessableEntity)
	case "":
		// Not a report: the run never started.
		resp := &http.Response{StatusCode: http.StatusUnprocessableEntity, Body: io.NopCloser(bytes.NewReader(body))}
		return Deployment{}, errors.CheckError(resp)
	}

	return dep, nil
}

func (sdk mgSDK) DeployBatch(certs []Certificate) ([]Deployment, errors.SDKError) {
	d, err := json.Marshal(batchReq{Certificates: certs})
	if err != nil {
		return nil, errors.NewSDKError(err)
	}

	url := fmt.Sprintf("%s/%s", sdk.certDeployURL, batchEndpoint)
	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, d, nil, http.StatusOK)
	if sdkerr != nil {
		return nil, sdkerr
	}

	var res batchRes
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.NewSDKError(err)
	}

	return res.Deployments, nil
}

func (sdk mgSDK) ViewDeployment(id string) (Deployment, errors.SDKError) {
	url := fmt.Sprintf("%s/%s/%s", sdk.certDeployURL, deploymentsEndpoint, id)
	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Deployment{}, sdkerr
	}

	var dep Deployment
	if err := json.Unmarshal(body, &dep); err != nil {
		return Deployment{}, errors.NewSDKError(err)
	}
	return dep, nil
}

func (sdk mgSDK) ListDeployments(pm PageMetadata) (DeploymentPage, errors.SDKError) {
	url, err := sdk.withQueryParams(sdk.certDeployURL, deploymentsEndpoint, pm)
	if err != nil {
		return DeploymentPage{}, errors.NewSDKError(err)
	}

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return DeploymentPage{}, sdkerr
	}

	var dp DeploymentPage
	if err := json.Unmarshal(body, &dp); err != nil {
		return DeploymentPage{}, errors.NewSDKError(err)
	}
	return dp, nil
}

func NewSDK(conf Config) SDK {
	return &mgSDK{
		certDeployURL: conf.CertDeployURL,

		msgContentType: conf.MsgContentType,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !conf.TLSVerification,
				},
			},
		},
		curlFlag: conf.CurlFlag,
	}
}

// processRequest creates and send a new HTTP request, and checks for errors in the HTTP response.
// It then returns the response headers, the response body, and the associated error(s) (if any).
func (sdk mgSDK) processRequest(method, reqURL string, data []byte, headers map[string]string, expectedRespCodes ...int) (http.Header, []byte, errors.SDKError) {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(data))
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	// Sets a default value for the Content-Type.
	// Overridden if Content-Type is passed in the headers arguments.
	ct := sdk.msgContentType
	if ct == "" {
		ct = CTJSON
	}
	req.Header.Add("Content-Type", string(ct))

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	if sdk.curlFlag {
		curlCommand, err := http2curl.GetCurlCommand(req)
		if err != nil {
			return nil, nil, errors.NewSDKError(err)
		}
		log.Println(curlCommand.String())
	}

	resp, err := sdk.client.Do(req)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}
	defer resp.Body.Close()
	sdkerr := errors.CheckError(resp, expectedRespCodes...)
	if sdkerr != nil {
		return make(http.Header), []byte{}, sdkerr
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}
	return resp.Header, body, nil
}

func (sdk mgSDK) withQueryParams(baseURL, endpoint string, pm PageMetadata) (string, error) {
	q, err := pm.query()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s?%s", baseURL, endpoint, q), nil
}

func (pm PageMetadata) query() (string, error) {
	q := url.Values{}
	if pm.Offset != 0 {
		q.Add("offset", strconv.FormatUint(pm.Offset, 10))
	}
	if pm.Limit != 0 {
		q.Add("limit", strconv.FormatUint(pm.Limit, 10))
	}
	if pm.CommonName != "" {
		q.Add("common_name", pm.CommonName)
	}

	return q.Encode(), nil
}

type batchReq struct {
	Certificates []Certificate `json:"certificates"`
}

type batchRes struct {
	Deployments []Deployment `json:"reports"`
}
