// probe package declare interface to run health check command deciding role of node

package probe

import "context"

type Runner interface {
	// run command line split on whitespace & return standard output as text
	Run(ctx context.Context, commandLine string) (string, error)
}
