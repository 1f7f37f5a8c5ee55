// config.go is file that declare entity about configuration of one role tagging run

package entity

import "time"

const (
	DefaultServiceName = "mysql-orchestrator"
	DefaultActiveTag   = "active"
	DefaultStandbyTag  = "standby"
)

// Config is assembled from command line flags & environment variables
// ResultTrue & ResultFalse may be empty, probe printing nothing is a valid result
type Config struct {
	Command     string `validate:"required,command_line"`
	ResultTrue  string
	ResultFalse string

	ConsulDataDir string `validate:"required"`
	ConsulAgent   string `validate:"required,agent_address"`

	ServiceName     string `validate:"required"`
	ActiveTag       string `validate:"required,tag,nefield=StandbyTag"`
	StandbyTag      string `validate:"required,tag"`
	ReplaceRoleTags bool
	DryRun          bool
	Timeout         time.Duration `validate:"gte=0"`
}
