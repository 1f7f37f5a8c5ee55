// default_method.go is file to declare method of default struct

package agent

import (
	"bytes"
	"consultags/entity"
	"context"
	"encoding/json"
	"fmt"
	"github.com/hashicorp/consul/api"
	"io/ioutil"
	"net/http"
)

const (
	catalogServiceEndpoint  = "/v1/catalog/service/%s"
	catalogRegisterEndpoint = "/v1/catalog/register"
	nodeIDFilterFormat      = "ID == %q"
	consulTokenHeader       = "X-Consul-Token"
)

// query catalog service endpoint filtered with node id & return first record
func (d *_default) GetServiceRecord(ctx context.Context, nodeID string) (record entity.ServiceRecord, err error) {
	opts := (&api.QueryOptions{Filter: fmt.Sprintf(nodeIDFilterFormat, nodeID)}).WithContext(ctx)

	var body json.RawMessage
	if _, err = d.client.Raw().Query(fmt.Sprintf(catalogServiceEndpoint, d.service), &body, opts); err != nil {
		err = fmt.Errorf("%w (service: %s), err: %v", ErrCatalogRequestFailed, d.service, err)
		return
	}

	var records []entity.ServiceRecord
	if err = json.Unmarshal(body, &records); err != nil {
		err = fmt.Errorf("%w, err: %v", ErrMalformedCatalogResponse, err)
		return
	}

	if len(records) == 0 {
		err = fmt.Errorf("%w (service: %s, node id: %s)", ErrServiceRecordNotFound, d.service, nodeID)
		return
	}

	record = records[0]
	return
}

// register record in catalog, previous record of same (Node, ServiceID) pair is overwritten by consul.
// response body is returned as it is, not decoded
func (d *_default) RegisterEntity(ctx context.Context, record entity.EntityRecord) (resp []byte, err error) {
	reqBody, err := json.Marshal(record)
	if err != nil {
		err = fmt.Errorf("unable to marshal entity record, err: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, d.endpointURL(catalogRegisterEndpoint), bytes.NewReader(reqBody))
	if err != nil {
		err = fmt.Errorf("%w (node: %s, service id: %s), err: %v", ErrCatalogRequestFailed, record.Node, record.Service.ID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if d.config.Token != "" {
		req.Header.Set(consulTokenHeader, d.config.Token)
	}

	httpClient := d.config.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	httpResp, err := httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%w (node: %s, service id: %s), err: %v", ErrCatalogRequestFailed, record.Node, record.Service.ID, err)
		return
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := ioutil.ReadAll(httpResp.Body)
	if err != nil {
		err = fmt.Errorf("%w (node: %s, service id: %s), err: unable to read response body, %v", ErrCatalogRequestFailed, record.Node, record.Service.ID, err)
		return
	}

	if httpResp.StatusCode/100 != 2 {
		err = fmt.Errorf("%w (node: %s, service id: %s), err: unexpected response code: %d (%s)", ErrCatalogRequestFailed, record.Node, record.Service.ID, httpResp.StatusCode, body)
		return
	}

	resp = body
	return
}

// build url of endpoint with scheme & address in config, scheme is http if not set
func (d *_default) endpointURL(endpoint string) string {
	scheme := d.config.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s%s", scheme, d.config.Address, endpoint)
}
