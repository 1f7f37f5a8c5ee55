// default.go is file to declare default struct implementing consul.Agent with consul api client

package agent

import (
	"consultags/consul"
	"consultags/entity"
	"github.com/hashicorp/consul/api"
)

type _default struct {
	client  *api.Client
	service consul.ServiceName

	// config of client, its http client is used for requests whose body is not JSON decoded
	config *api.Config
}

func Default(setters ...FieldSetter) *_default {
	return newDefault(setters...)
}

func newDefault(setters ...FieldSetter) (h *_default) {
	h = new(_default)
	h.service = consul.ServiceName(entity.DefaultServiceName)
	for _, setter := range setters {
		setter(h)
	}
	if h.config == nil {
		h.config = api.DefaultConfig()
	}
	return
}

type FieldSetter func(*_default)

func Client(c *api.Client) FieldSetter {
	return func(d *_default) {
		d.client = c
	}
}

// Service set name of service that is looked up & registered, default is mysql-orchestrator
func Service(s consul.ServiceName) FieldSetter {
	return func(d *_default) {
		d.service = s
	}
}

// Config set config that client was created with, address & http client of it are used in RegisterEntity
func Config(c *api.Config) FieldSetter {
	return func(d *_default) {
		d.config = c
	}
}
