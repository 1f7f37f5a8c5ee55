// consul package declare interface to access catalog of consul agent

package consul

import (
	"consultags/entity"
	"context"
)

type ServiceName string

type Agent interface {
	// method to look up service record registered by node with node id
	GetServiceRecord(ctx context.Context, nodeID string) (entity.ServiceRecord, error)
	// method to overwrite node & service record in catalog, returns raw response body
	RegisterEntity(ctx context.Context, record entity.EntityRecord) ([]byte, error)
}
