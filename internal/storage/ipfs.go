// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package storage

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when the gateway has no content for a CID.
var ErrNotFound = errors.New("storage: content not found")

const (
	uploadTimeout = 60 * time.Second
	readTimeout   = 20 * time.Second
)

// IPFSClient implements [Backend] with the IPFS HTTP API and a public gateway.
type IPFSClient struct {
	api     *resty.Client
	gateway *resty.Client
}

// IPFSOptions configures an [IPFSClient].
type IPFSOptions struct {
	APIURL     string
	APIKey     string
	APISecret  string
	GatewayURL string
}

// NewIPFSClient constructs an [IPFSClient].
func NewIPFSClient(options IPFSOptions) *IPFSClient {
	api := resty.New().
		SetBaseURL(strings.TrimRight(options.APIURL, "/")).
		SetTimeout(uploadTimeout)
	if options.APIKey != "" {
		api.SetBasicAuth(options.APIKey, options.APISecret)
	}

	gateway := resty.New().
		SetBaseURL(strings.TrimRight(options.GatewayURL, "/")).
		SetTimeout(readTimeout)

	return &IPFSClient{api: api, gateway: gateway}
}

// Add pins data and returns its CID.
func (client *IPFSClient) Add(ctx context.Context, name string, data []byte) (string, error) {
	var added struct {
		Name string `json:"Name"`
		Hash string `json:"Hash"`
		Size string `json:"Size"`
	}

	res, err := client.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"pin": "true", "cid-version": "0"}).
		SetFileReader("file", name, bytes.NewReader(data)).
		SetResult(&added).
		Post("/api/v0/add")
	if err != nil {
		return "", errors.WithMessagef(err, "storage: upload of %s failed", name)
	}

	if res.IsError() {
		return "", errors.Errorf("storage: upload of %s returned http %d: %s", name, res.StatusCode(), res.String())
	}

	if added.Hash == "" {
		return "", errors.Errorf("storage: upload of %s returned no hash", name)
	}

	return added.Hash, nil
}

// Cat downloads the payload of cid through the gateway.
func (client *IPFSClient) Cat(ctx context.Context, cid string) ([]byte, error) {
	res, err := client.gateway.R().
		SetContext(ctx).
		Get("/ipfs/" + cid)
	if err != nil {
		return nil, errors.WithMessagef(err, "storage: fetch of %s failed", cid)
	}

	if res.StatusCode() == http.StatusNotFound {
		return nil, errors.WithMessage(ErrNotFound, cid)
	}

	if res.IsError() {
		return nil, errors.Errorf("storage: fetch of %s returned http %d", cid, res.StatusCode())
	}

	return res.Body(), nil
}
