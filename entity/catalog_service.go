// catalog_service.go is file that declare entity read from consul catalog service lookup

package entity

// element of response from GET /v1/catalog/service/:service
type ServiceRecord struct {
	Datacenter      string            `json:"Datacenter"`
	ID              string            `json:"ID"`
	Node            string            `json:"Node"`
	Address         string            `json:"Address"`
	TaggedAddresses map[string]string `json:"TaggedAddresses"`
	NodeMeta        map[string]string `json:"NodeMeta"`
	ServiceID       string            `json:"ServiceID"`
	ServiceName     string            `json:"ServiceName"`
	ServiceTags     []string          `json:"ServiceTags"`
	ServicePort     int               `json:"ServicePort"`
}

// ToEntity nest flat service fields of record into EntityRecord with tags parameter
func (r ServiceRecord) ToEntity(tags []string) EntityRecord {
	return EntityRecord{
		Datacenter:      r.Datacenter,
		ID:              r.ID,
		Node:            r.Node,
		Address:         r.Address,
		TaggedAddresses: r.TaggedAddresses,
		NodeMeta:        r.NodeMeta,
		Service: EntityService{
			ID:      r.ServiceID,
			Service: r.ServiceName,
			Tags:    tags,
			Port:    r.ServicePort,
		},
	}
}
