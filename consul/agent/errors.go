package agent

import "errors"

var (
	ErrServiceRecordNotFound    = errors.New("there is no service record registered by this node in catalog")
	ErrMalformedCatalogResponse = errors.New("unable to decode catalog response into service records")
	ErrCatalogRequestFailed     = errors.New("request to consul catalog failed")
)
