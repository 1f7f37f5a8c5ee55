// catalog_register.go is file that declare entity written to consul catalog register endpoint

package entity

// request body of PUT /v1/catalog/register
type EntityRecord struct {
	Datacenter      string            `json:"Datacenter"`
	ID              string            `json:"ID"`
	Node            string            `json:"Node"`
	Address         string            `json:"Address"`
	TaggedAddresses map[string]string `json:"TaggedAddresses"`
	NodeMeta        map[string]string `json:"NodeMeta"`
	Service         EntityService     `json:"Service"`
}

type EntityService struct {
	ID      string   `json:"ID"`
	Service string   `json:"Service"`
	Tags    []string `json:"Tags"`
	Port    int      `json:"Port"`
}
